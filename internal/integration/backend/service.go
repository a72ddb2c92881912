// Package backend é a fachada tipada do backend A1Betting.
//
// Cada método devolve sempre um valor com o formato do endpoint real: quando o
// modo está DEGRADED a resposta vem direto do mock.Provider, sem I/O; quando a
// chamada falha, só aquele recurso cai para o mock. Nenhum método retorna erro.
package backend

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/a1betting-bridge/internal/integration/httpclient"
	"github.com/radieske/a1betting-bridge/internal/integration/mock"
	"github.com/radieske/a1betting-bridge/internal/integration/state"
	"github.com/radieske/a1betting-bridge/pkg/contracts/api"
)

// Nomes de recurso usados em chaves de cache, logs e labels de métricas
const (
	ResourceHealth                   = "health"
	ResourceBettingOpportunities     = "betting_opportunities"
	ResourceValueBets                = "value_bets"
	ResourceArbitrageOpportunities   = "arbitrage_opportunities"
	ResourcePredictions              = "predictions"
	ResourceAdvancedAnalytics        = "advanced_analytics"
	ResourceModelPerformance         = "model_performance"
	ResourceUltraAccuracyPredictions = "ultra_accuracy_predictions"
	ResourceTransactions             = "transactions"
	ResourceActiveBets               = "active_bets"
	ResourceRiskProfiles             = "risk_profiles"
	ResourcePassthrough              = "passthrough"
)

const defaultCacheTTL = 5 * time.Minute

// Cache guarda apenas payloads vindos do backend real; mock nunca é cacheado
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Hooks recebem a origem de cada resposta (usados pelo main para métricas)
type Hooks struct {
	OnLive     func(resource string)
	OnMock     func(resource, reason string)
	OnCacheHit func(resource string)
}

type Option func(*Service)

// WithCache liga o cache de respostas vivas; ttl <= 0 usa 5 minutos
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		s.cache, s.ttl = c, ttl
	}
}

func WithHooks(h Hooks) Option {
	return func(s *Service) { s.hooks = h }
}

type Service struct {
	client *httpclient.Client
	mode   *state.Mode
	mock   *mock.Provider
	log    *zap.Logger

	cache Cache
	ttl   time.Duration
	hooks Hooks
}

func New(client *httpclient.Client, mode *state.Mode, provider *mock.Provider, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		client: client,
		mode:   mode,
		mock:   provider,
		log:    log,
		ttl:    defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Mode() *state.Mode { return s.mode }

func (s *Service) BaseURL() string { return s.client.BaseURL }

func (s *Service) Health(ctx context.Context) api.HealthStatus {
	return fetch(ctx, s, ResourceHealth, httpclient.Request{Path: "/health"}, s.mock.Health)
}

func (s *Service) BettingOpportunities(ctx context.Context, sport string, limit int) []api.BettingOpportunity {
	req := httpclient.Request{Path: "/api/betting-opportunities", Params: filterParams(sport, limit)}
	out := fetch(ctx, s, ResourceBettingOpportunities, req, func() []api.BettingOpportunity {
		return s.mock.BettingOpportunities(sport, limit)
	})
	return nonNil(out)
}

func (s *Service) ValueBets(ctx context.Context) []api.BettingOpportunity {
	out := fetch(ctx, s, ResourceValueBets, httpclient.Request{Path: "/api/v4/betting/value-bets"}, s.mock.ValueBets)
	return nonNil(out)
}

func (s *Service) ArbitrageOpportunities(ctx context.Context, limit int) []api.ArbitrageOpportunity {
	req := httpclient.Request{Path: "/api/arbitrage-opportunities", Params: filterParams("", limit)}
	out := fetch(ctx, s, ResourceArbitrageOpportunities, req, func() []api.ArbitrageOpportunity {
		return s.mock.ArbitrageOpportunities(limit)
	})
	return nonNil(out)
}

func (s *Service) Predictions(ctx context.Context, sport string, limit int) api.PredictionsResponse {
	req := httpclient.Request{Path: "/api/predictions", Params: filterParams(sport, limit)}
	out := fetch(ctx, s, ResourcePredictions, req, func() api.PredictionsResponse {
		return s.mock.Predictions(sport, limit)
	})
	out.Predictions = nonNil(out.Predictions)
	return out
}

func (s *Service) AdvancedAnalytics(ctx context.Context) api.AdvancedAnalytics {
	out := fetch(ctx, s, ResourceAdvancedAnalytics, httpclient.Request{Path: "/api/advanced-analytics"}, s.mock.AdvancedAnalytics)
	out.PerformanceTrends = nonNil(out.PerformanceTrends)
	return out
}

func (s *Service) ModelPerformance(ctx context.Context) api.ModelPerformance {
	out := fetch(ctx, s, ResourceModelPerformance, httpclient.Request{Path: "/api/ultra-accuracy/model-performance"}, s.mock.ModelPerformance)
	if out.PerformanceBySport == nil {
		out.PerformanceBySport = map[string]api.SportAccuracy{}
	}
	return out
}

func (s *Service) UltraAccuracyPredictions(ctx context.Context) api.UltraAccuracyPredictions {
	out := fetch(ctx, s, ResourceUltraAccuracyPredictions, httpclient.Request{Path: "/api/ultra-accuracy/predictions"}, s.mock.UltraAccuracyPredictions)
	out.EnhancedPredictions = nonNil(out.EnhancedPredictions)
	return out
}

func (s *Service) Transactions(ctx context.Context) api.TransactionsResponse {
	out := fetch(ctx, s, ResourceTransactions, httpclient.Request{Path: "/api/transactions"}, s.mock.Transactions)
	out.Transactions = nonNil(out.Transactions)
	return out
}

func (s *Service) ActiveBets(ctx context.Context) api.ActiveBetsResponse {
	out := fetch(ctx, s, ResourceActiveBets, httpclient.Request{Path: "/api/active-bets"}, s.mock.ActiveBets)
	out.ActiveBets = nonNil(out.ActiveBets)
	return out
}

func (s *Service) RiskProfiles(ctx context.Context) api.RiskProfilesResponse {
	out := fetch(ctx, s, ResourceRiskProfiles, httpclient.Request{Path: "/api/risk-profiles"}, s.mock.RiskProfiles)
	out.Profiles = nonNil(out.Profiles)
	return out
}

// Invalidate descarta do cache as respostas dos recursos informados
func (s *Service) Invalidate(ctx context.Context, resources ...string) {
	if s.cache == nil {
		return
	}
	for _, r := range resources {
		if err := s.cache.Delete(ctx, r); err != nil {
			s.log.Warn("cache invalidate failed", zap.String("resource", r), zap.Error(err))
		}
	}
}

// fetch aplica a ordem degraded -> cache -> backend -> mock para um recurso
func fetch[T any](ctx context.Context, s *Service, resource string, req httpclient.Request, fallback func() T) T {
	if s.mode.IsDegraded() {
		s.onMock(resource, "degraded")
		return fallback()
	}

	key := cacheKey(resource, req.Params)
	if s.cache != nil {
		var cached T
		ok, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Debug("cache read failed", zap.String("resource", resource), zap.Error(err))
		}
		if ok && err == nil {
			s.onCacheHit(resource)
			return cached
		}
	}

	var out T
	if err := s.client.DoJSON(ctx, req, &out); err != nil {
		reason := httpclient.Reason(err)
		s.log.Warn("backend call failed, serving demo data",
			zap.String("resource", resource),
			zap.String("reason", reason),
			zap.Error(err),
		)
		s.onMock(resource, reason)
		return fallback()
	}

	s.onLive(resource)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out, s.ttl); err != nil {
			s.log.Debug("cache write failed", zap.String("resource", resource), zap.Error(err))
		}
	}
	return out
}

func (s *Service) onLive(resource string) {
	if s.hooks.OnLive != nil {
		s.hooks.OnLive(resource)
	}
}

func (s *Service) onMock(resource, reason string) {
	if s.hooks.OnMock != nil {
		s.hooks.OnMock(resource, reason)
	}
}

func (s *Service) onCacheHit(resource string) {
	if s.hooks.OnCacheHit != nil {
		s.hooks.OnCacheHit(resource)
	}
}

func cacheKey(resource string, params url.Values) string {
	if len(params) == 0 {
		return resource
	}
	return resource + ":" + params.Encode()
}

// filterParams só envia sport/limit quando informados
func filterParams(sport string, limit int) url.Values {
	p := url.Values{}
	if sport != "" {
		p.Set("sport", sport)
	}
	if limit > 0 {
		p.Set("limit", strconv.Itoa(limit))
	}
	return p
}

// nonNil garante [] em vez de null no JSON devolvido à UI
func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
