// Package service adapta as respostas da fachada para os formatos que cada
// tela da UI espera. Não tem fallback próprio: a fachada já nunca falha.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/radieske/a1betting-bridge/internal/integration/backend"
	"github.com/radieske/a1betting-bridge/pkg/contracts/api"
	"github.com/radieske/a1betting-bridge/pkg/contracts/events"
)

// Stream é o lado do WebSocket que o serviço usa para assinar atualizações
type Stream interface {
	On(msgType string, fn func(events.RealtimeMessage))
}

type Option func(*Service)

func WithStream(st Stream) Option {
	return func(s *Service) { s.stream = st }
}

type Service struct {
	facade *backend.Service
	stream Stream
	log    *zap.Logger
}

func New(facade *backend.Service, log *zap.Logger, opts ...Option) *Service {
	s := &Service{facade: facade, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// API dá acesso à fachada para endpoints sem adaptação
func (s *Service) API() *backend.Service { return s.facade }

func (s *Service) CheckSystemHealth(ctx context.Context) SystemHealth {
	h := s.facade.Health(ctx)
	out := SystemHealth{Status: StatusOnline, Data: &h}

	switch {
	case s.facade.Mode().IsDegraded():
		reason, _ := s.facade.Mode().Reason()
		out.Status = StatusOffline
		out.Error = "backend unavailable, serving demo data: " + reason
	case h.Status != "healthy":
		out.Status = StatusOffline
		out.Error = "backend reports status " + h.Status
	}
	return out
}

func (s *Service) HealthStatus(ctx context.Context) (HealthView, error) {
	v, err := mapHealth(s.facade.Health(ctx), !s.facade.Mode().IsDegraded())
	return v, s.shapeFailure("health_status", err)
}

func (s *Service) UserProfile(ctx context.Context, userID string) (UserProfile, error) {
	p, err := mapProfile(userID, s.facade.AdvancedAnalytics(ctx))
	return p, s.shapeFailure("user_profile", err)
}

func (s *Service) UserAnalytics(ctx context.Context, userID string) (UserAnalytics, error) {
	analytics := s.facade.AdvancedAnalytics(ctx)
	txs := s.facade.Transactions(ctx)

	a, err := mapAnalytics(analytics, txs.Transactions)
	return a, s.shapeFailure("user_analytics", err)
}

func (s *Service) AccuracyMetrics(ctx context.Context) (AccuracyMetrics, error) {
	m, err := mapAccuracy(s.facade.ModelPerformance(ctx))
	return m, s.shapeFailure("accuracy_metrics", err)
}

func (s *Service) Predictions(ctx context.Context, sport string, limit int) api.PredictionsResponse {
	return s.facade.Predictions(ctx, sport, limit)
}

func (s *Service) BettingOpportunities(ctx context.Context, sport string, limit int) []api.BettingOpportunity {
	return s.facade.BettingOpportunities(ctx, sport, limit)
}

func (s *Service) ArbitrageOpportunities(ctx context.Context, limit int) []api.ArbitrageOpportunity {
	return s.facade.ArbitrageOpportunities(ctx, limit)
}

func (s *Service) ValueBets(ctx context.Context) []api.BettingOpportunity {
	return s.facade.ValueBets(ctx)
}

func (s *Service) ActiveBets(ctx context.Context) api.ActiveBetsResponse {
	return s.facade.ActiveBets(ctx)
}

func (s *Service) Transactions(ctx context.Context) api.TransactionsResponse {
	return s.facade.Transactions(ctx)
}

func (s *Service) RiskProfiles(ctx context.Context) api.RiskProfilesResponse {
	return s.facade.RiskProfiles(ctx)
}

func (s *Service) ModelPerformance(ctx context.Context) api.ModelPerformance {
	return s.facade.ModelPerformance(ctx)
}

func (s *Service) AdvancedAnalytics(ctx context.Context) api.AdvancedAnalytics {
	return s.facade.AdvancedAnalytics(ctx)
}

func (s *Service) UltraAccuracyPredictions(ctx context.Context) api.UltraAccuracyPredictions {
	return s.facade.UltraAccuracyPredictions(ctx)
}

// OnRealtimeUpdate assina odds, previsões e apostas no stream do backend
func (s *Service) OnRealtimeUpdate(fn func(events.RealtimeMessage)) {
	if s.stream == nil {
		s.log.Debug("realtime stream not configured, update subscription ignored")
		return
	}
	for _, t := range []string{events.RealtimeOddsUpdate, events.RealtimePredictionUpdate, events.RealtimeBetUpdate} {
		s.stream.On(t, fn)
	}
}

// shapeFailure registra divergências de formato; erros chegam só como valor
func (s *Service) shapeFailure(view string, err error) error {
	if err == nil {
		return nil
	}
	var se *ShapeError
	if errors.As(err, &se) {
		s.log.Warn("backend payload drifted from expected shape",
			zap.String("view", view),
			zap.String("field", se.Field),
			zap.String("reason", se.Reason),
		)
	}
	return err
}
