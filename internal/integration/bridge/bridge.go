// Package bridge compõe várias chamadas do service em pacotes prontos para a
// interface simplificada (previsões, analytics, oportunidades, money maker e
// PrizePicks). Qualquer falha vira um objeto de fallback zerado com uma
// mensagem explicativa; nada chega à UI como erro.
package bridge

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/radieske/a1betting-bridge/internal/integration/service"
	"github.com/radieske/a1betting-bridge/pkg/contracts/api"
)

const (
	defaultUserID       = "default_user"
	topPredictions      = 5
	predictionFetch     = 10
	opportunityFetch    = 5
	arbitrageFetch      = 3
	moneyMakerPicks     = 3
	arbitrageConfidence = 95
	defaultMultiplier   = 0.5
	defaultOdds         = 2.0
	prizePicksFetch     = 10
)

var reasonTemplates = []string{
	"Strong %s model confidence",
	"Historical performance advantage",
	"Advanced ML analysis suggests value",
	"Market inefficiency detected",
	"Statistical edge identified",
}

// estratégias da UI que não batem 1:1 com o id do perfil de risco
var strategyProfiles = map[string]string{
	"balanced": "moderate",
}

type Option func(*Bridge)

// WithRand fixa a fonte aleatória (tempo restante e textos de justificativa)
func WithRand(r *rand.Rand) Option {
	return func(b *Bridge) { b.rng = r }
}

type Bridge struct {
	svc *service.Service
	log *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func New(svc *service.Service, log *zap.Logger, opts ...Option) *Bridge {
	b := &Bridge{
		svc: svc,
		log: log,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bridge) timeRemaining() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return TimeRemaining(b.rng)
}

func (b *Bridge) reasoning(sport string) string {
	b.mu.Lock()
	tpl := reasonTemplates[b.rng.Intn(len(reasonTemplates))]
	b.mu.Unlock()
	if strings.Contains(tpl, "%s") {
		return fmt.Sprintf(tpl, sport)
	}
	return tpl
}

// SimplifiedPredictions devolve as 5 primeiras previsões em formato simples,
// com reforço do ultra-accuracy quando o evento bate
func (b *Bridge) SimplifiedPredictions(ctx context.Context) []SimplifiedPrediction {
	var (
		preds api.PredictionsResponse
		ultra api.UltraAccuracyPredictions
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		preds = b.svc.Predictions(gctx, "", predictionFetch)
		return gctx.Err()
	})
	g.Go(func() error {
		ultra = b.svc.UltraAccuracyPredictions(gctx)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		b.log.Warn("simplified predictions unavailable", zap.Error(err))
		return fallbackPredictions()
	}

	strength := make(map[string]string, len(ultra.EnhancedPredictions))
	for _, e := range ultra.EnhancedPredictions {
		strength[e.Event] = e.PredictionStrength
	}

	out := make([]SimplifiedPrediction, 0, topPredictions)
	for _, p := range preds.Predictions {
		if len(out) == topPredictions {
			break
		}
		reason := b.reasoning(p.Sport)
		if s, ok := strength[p.Event]; ok {
			reason = "Ultra-accuracy signal: " + strings.ReplaceAll(s, "_", " ") + " strength"
		}
		out = append(out, SimplifiedPrediction{
			ID:            p.ID,
			Game:          p.Event,
			Pick:          p.Prediction,
			Confidence:    percent(p.Confidence),
			Odds:          strconv.FormatFloat(p.Odds, 'f', -1, 64),
			Reasoning:     reason,
			ExpectedValue: p.ExpectedValue,
			RiskLevel:     RiskLevel(p.Confidence),
			Sport:         p.Sport,
			ModelVersion:  p.ModelVersion,
		})
	}
	return out
}

// SimplifiedAnalytics resume banca, acurácia e volume de oportunidades
func (b *Bridge) SimplifiedAnalytics(ctx context.Context) SimplifiedAnalytics {
	var (
		user  service.UserAnalytics
		acc   service.AccuracyMetrics
		opps  []api.BettingOpportunity
		preds api.PredictionsResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = b.svc.UserAnalytics(gctx, defaultUserID)
		return err
	})
	g.Go(func() (err error) {
		acc, err = b.svc.AccuracyMetrics(gctx)
		return err
	})
	g.Go(func() error {
		opps = b.svc.BettingOpportunities(gctx, "", 0)
		return gctx.Err()
	})
	g.Go(func() error {
		preds = b.svc.Predictions(gctx, "", 0)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		b.log.Warn("simplified analytics unavailable", zap.Error(err))
		return fallbackAnalytics()
	}

	return SimplifiedAnalytics{
		TotalProfit:     user.TotalProfit,
		WinRate:         percent(user.WinRate),
		ROI:             user.ROI,
		TodaysPicks:     len(preds.Predictions),
		ActiveGames:     len(opps),
		AIAccuracy:      percent(acc.OverallAccuracy),
		Recommendations: recommendations(opps),
		Alerts:          alerts(user, acc),
	}
}

func recommendations(opps []api.BettingOpportunity) []string {
	recs := []string{
		fmt.Sprintf("%d live opportunities available", len(opps)),
		"Focus on high-confidence bets",
		"Consider bankroll management",
	}
	for _, o := range opps {
		if normalize(o.Recommendation) == "strong_buy" {
			recs = append(recs, "Strong buy signals detected")
			break
		}
	}
	return recs
}

func alerts(user service.UserAnalytics, acc service.AccuracyMetrics) []string {
	out := []string{}
	if acc.OverallAccuracy > 0.9 {
		out = append(out, "Exceptional model performance detected")
	}
	if user.ROI > 10 {
		out = append(out, "Strong ROI performance")
	}
	return out
}

// SimplifiedOpportunities junta apostas de valor e arbitragens, ordenadas
// pelo retorno esperado (maior primeiro)
func (b *Bridge) SimplifiedOpportunities(ctx context.Context) []SimplifiedOpportunity {
	out, err := b.opportunities(ctx)
	if err != nil {
		b.log.Warn("simplified opportunities unavailable", zap.Error(err))
		return fallbackOpportunities()
	}
	return out
}

func (b *Bridge) opportunities(ctx context.Context) ([]SimplifiedOpportunity, error) {
	var (
		bets []api.BettingOpportunity
		arbs []api.ArbitrageOpportunity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bets = b.svc.BettingOpportunities(gctx, "", opportunityFetch)
		return gctx.Err()
	})
	g.Go(func() error {
		arbs = b.svc.ArbitrageOpportunities(gctx, arbitrageFetch)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]SimplifiedOpportunity, 0, len(bets)+len(arbs))
	for _, o := range bets {
		out = append(out, SimplifiedOpportunity{
			ID:             o.ID,
			Title:          strings.ToUpper(o.Sport) + ": " + o.Event,
			Description:    o.Market + " - " + o.Recommendation,
			Confidence:     percent(o.Confidence),
			ExpectedReturn: percent(o.ExpectedValue),
			RiskLevel:      o.RiskLevel,
			TimeRemaining:  b.timeRemaining(),
			Sport:          o.Sport,
			ActionRequired: actionRequired(o.Recommendation),
			Odds:           o.Odds,
		})
	}
	for _, a := range arbs {
		// profit_margin já é percentual
		out = append(out, SimplifiedOpportunity{
			ID:             a.ID,
			Title:          "ARBITRAGE: " + a.Event,
			Description:    strconv.FormatFloat(a.ProfitMargin, 'f', -1, 64) + "% guaranteed profit",
			Confidence:     arbitrageConfidence,
			ExpectedReturn: int(math.Round(a.ProfitMargin)),
			RiskLevel:      api.RiskLow,
			TimeRemaining:  b.timeRemaining(),
			Sport:          a.Sport,
			ActionRequired: "Place bets on both bookmakers",
			Odds:           a.OddsA,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpectedReturn > out[j].ExpectedReturn })
	return out, nil
}

// MoneyMakerRecommendations monta até 3 apostas para o investimento, filtradas
// pela estratégia e dimensionadas por Kelly com o multiplicador do perfil
func (b *Bridge) MoneyMakerRecommendations(ctx context.Context, investment float64, strategy string) MoneyMakerRecommendation {
	if investment <= 0 {
		return fallbackMoneyMaker(strategy, "Investment must be greater than zero")
	}

	var (
		opps     []SimplifiedOpportunity
		profiles api.RiskProfilesResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		opps, err = b.opportunities(gctx)
		return err
	})
	g.Go(func() error {
		profiles = b.svc.RiskProfiles(gctx)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		b.log.Warn("money maker recommendations unavailable", zap.Error(err))
		return fallbackMoneyMaker(strategy, "Unable to generate recommendations at this time")
	}

	profile, found := findProfile(profiles.Profiles, strategy)
	multiplier := defaultMultiplier
	if found && profile.KellyMultiplier > 0 {
		multiplier = profile.KellyMultiplier
	}

	rec := MoneyMakerRecommendation{
		Picks:       []MoneyMakerPick{},
		RiskLevel:   strategyRisk(strategy),
		Strategy:    strategy,
		TimeHorizon: "24 hours",
	}
	if found {
		rec.Strategy = profile.Name
	}

	var total, confidence float64
	for _, o := range opps {
		if len(rec.Picks) == moneyMakerPicks {
			break
		}
		if !passesStrategy(strategy, o) {
			continue
		}
		odds := o.Odds
		if odds <= 1 {
			odds = defaultOdds
		}
		kelly := KellyFraction(float64(o.Confidence)/100, odds)
		stake := RecommendedStake(investment, kelly, multiplier)

		total += stake
		rec.ProjectedReturn += stake * float64(o.ExpectedReturn) / 100
		confidence += float64(o.Confidence)
		rec.Picks = append(rec.Picks, MoneyMakerPick{
			Game:          o.Title,
			Pick:          o.Description,
			Confidence:    o.Confidence,
			Odds:          strconv.FormatFloat(odds, 'f', -1, 64),
			Reasoning:     o.ActionRequired,
			BetSize:       stake,
			KellyFraction: kelly,
		})
	}

	rec.Investment = min(total, investment)
	if total > 0 {
		rec.ROI = rec.ProjectedReturn / total * 100
	}
	if n := len(rec.Picks); n > 0 {
		rec.Confidence = confidence / float64(n)
	} else {
		rec.Message = "No opportunities match the " + strategy + " strategy right now"
	}
	return rec
}

func findProfile(profiles []api.RiskProfile, strategy string) (api.RiskProfile, bool) {
	id := strategy
	if alias, ok := strategyProfiles[strategy]; ok {
		id = alias
	}
	for _, p := range profiles {
		if p.ID == id {
			return p, true
		}
	}
	if len(profiles) > 0 {
		return profiles[0], true
	}
	return api.RiskProfile{}, false
}

// PrizePicks converte oportunidades de apostas em props de jogador
func (b *Bridge) PrizePicks(ctx context.Context, sport string) []PrizePick {
	opps := b.svc.BettingOpportunities(ctx, sport, prizePicksFetch)
	if ctx.Err() != nil {
		b.log.Warn("prizepicks unavailable", zap.Error(ctx.Err()))
		return []PrizePick{}
	}

	out := make([]PrizePick, 0, len(opps))
	for _, o := range opps {
		pick := PrizePick{
			ID:             o.ID,
			Player:         "Featured Player",
			Stat:           o.Market,
			Line:           o.Odds,
			Confidence:     o.Confidence,
			ProjectedValue: o.ExpectedValue,
			Recommendation: strings.ToUpper(o.Recommendation),
			Sport:          o.Sport,
		}
		if player, _, _ := strings.Cut(o.Event, " vs "); player != "" {
			pick.Player = player
		}
		if pick.Stat == "" {
			pick.Stat = "Points"
		}
		if pick.Line == 0 {
			pick.Line = 20.5
		}
		if pick.Recommendation == "" {
			pick.Recommendation = "BUY"
		}
		if pick.Sport == "" {
			pick.Sport = "basketball"
		}
		out = append(out, pick)
	}
	return out
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
