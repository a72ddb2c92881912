// Package mock gera os payloads de demonstração usados quando o backend não
// responde. Cada método devolve exatamente o mesmo formato do endpoint real.
package mock

import (
	"time"

	"github.com/radieske/a1betting-bridge/pkg/contracts/api"
)

const (
	defaultOpportunityLimit = 10
	defaultArbitrageLimit   = 5
	defaultPredictionLimit  = 10
	valueBetsLimit          = 20
)

// Provider não faz I/O; apenas o relógio é injetável para os timestamps relativos
type Provider struct {
	now func() time.Time
}

func NewProvider() *Provider { return &Provider{now: time.Now} }

// NewProviderWithClock fixa o relógio (testes e fixtures determinísticas)
func NewProviderWithClock(now func() time.Time) *Provider { return &Provider{now: now} }

func (p *Provider) ago(d time.Duration) string {
	return p.now().Add(-d).UTC().Format(time.RFC3339)
}

func (p *Provider) Health() api.HealthStatus {
	return api.HealthStatus{
		Status:    "healthy",
		Timestamp: p.ago(0),
		Version:   "1.0.0-demo",
		Uptime:    86400,
		Services: map[string]string{
			"prediction_engine": "healthy",
			"ultra_accuracy":    "healthy",
			"data_pipeline":     "healthy",
			"api_gateway":       "healthy",
		},
	}
}

func bettingFixture() []api.BettingOpportunity {
	return []api.BettingOpportunity{
		{
			ID: "bet_001", Sport: "basketball", Event: "Lakers vs Warriors", Market: "Point Total Over",
			Odds: 1.85, Probability: 0.67, ExpectedValue: 0.24, KellyFraction: 0.15, Confidence: 0.89,
			RiskLevel: api.RiskMedium, Recommendation: "strong_buy",
		},
		{
			ID: "bet_002", Sport: "football", Event: "Chiefs vs Bills", Market: "Spread",
			Odds: 2.1, Probability: 0.72, ExpectedValue: 0.51, KellyFraction: 0.22, Confidence: 0.94,
			RiskLevel: api.RiskLow, Recommendation: "buy",
		},
		{
			ID: "bet_003", Sport: "baseball", Event: "Yankees vs Red Sox", Market: "Moneyline",
			Odds: 1.75, Probability: 0.61, ExpectedValue: 0.07, KellyFraction: 0.05, Confidence: 0.76,
			RiskLevel: api.RiskHigh, Recommendation: "hold",
		},
	}
}

// BettingOpportunities filtra por esporte quando informado; senão corta em limit
func (p *Provider) BettingOpportunities(sport string, limit int) []api.BettingOpportunity {
	all := bettingFixture()
	if sport != "" {
		out := []api.BettingOpportunity{}
		for _, o := range all {
			if o.Sport == sport {
				out = append(out, o)
			}
		}
		return out
	}
	return head(all, limit, defaultOpportunityLimit)
}

func (p *Provider) ValueBets() []api.BettingOpportunity {
	return p.BettingOpportunities("", valueBetsLimit)
}

func (p *Provider) ArbitrageOpportunities(limit int) []api.ArbitrageOpportunity {
	all := []api.ArbitrageOpportunity{
		{
			ID: "arb_001", Sport: "basketball", Event: "Celtics vs Heat",
			BookmakerA: "DraftKings", BookmakerB: "FanDuel", OddsA: 2.15, OddsB: 1.95,
			ProfitMargin: 3.2, RequiredStake: 1000,
		},
		{
			ID: "arb_002", Sport: "football", Event: "Cowboys vs Eagles",
			BookmakerA: "BetMGM", BookmakerB: "Caesars", OddsA: 1.87, OddsB: 2.05,
			ProfitMargin: 2.8, RequiredStake: 750,
		},
	}
	return head(all, limit, defaultArbitrageLimit)
}

func (p *Provider) Transactions() api.TransactionsResponse {
	txs := []api.Transaction{
		{ID: "tx_001", Type: "win", Amount: 150, Description: "Lakers Over 215.5 - Win", Timestamp: p.ago(time.Hour), Status: "completed"},
		{ID: "tx_002", Type: "bet", Amount: -100, Description: "Chiefs -3.5 Spread", Timestamp: p.ago(2 * time.Hour), Status: "pending"},
		{ID: "tx_003", Type: "win", Amount: 85, Description: "Yankees ML - Win", Timestamp: p.ago(3 * time.Hour), Status: "completed"},
	}
	return api.TransactionsResponse{Transactions: txs, TotalCount: len(txs)}
}

func (p *Provider) ActiveBets() api.ActiveBetsResponse {
	bets := []api.ActiveBet{
		{
			ID: "active_001", Event: "Warriors vs Nuggets", Market: "Point Total", Selection: "Over 225.5",
			Stake: 100, PotentialPayout: 191, Status: "active", PlacedAt: p.ago(30 * time.Minute),
		},
		{
			ID: "active_002", Event: "Bills vs Dolphins", Market: "Spread", Selection: "Bills -7.5",
			Stake: 150, PotentialPayout: 280.5, Status: "active", PlacedAt: p.ago(time.Hour),
		},
	}
	return api.ActiveBetsResponse{ActiveBets: bets, TotalCount: len(bets)}
}

// RiskProfiles é o catálogo fixo; nunca muda em runtime
func (p *Provider) RiskProfiles() api.RiskProfilesResponse {
	return api.RiskProfilesResponse{Profiles: []api.RiskProfile{
		{
			ID: "conservative", Name: "Conservative", Description: "Low risk, steady returns",
			MaxBetPercentage: 2, MaxExposure: 10, RiskTolerance: api.RiskLow,
			KellyMultiplier: 0.5, MinConfidence: 0.8,
		},
		{
			ID: "moderate", Name: "Moderate", Description: "Balanced risk and reward",
			MaxBetPercentage: 5, MaxExposure: 25, RiskTolerance: api.RiskMedium,
			KellyMultiplier: 0.75, MinConfidence: 0.7,
		},
		{
			ID: "aggressive", Name: "Aggressive", Description: "High risk, high reward",
			MaxBetPercentage: 10, MaxExposure: 50, RiskTolerance: api.RiskHigh,
			KellyMultiplier: 1.0, MinConfidence: 0.6,
		},
	}}
}

func (p *Provider) Predictions(sport string, limit int) api.PredictionsResponse {
	now := p.ago(0)
	all := []api.Prediction{
		{
			ID: "pred_001", Sport: "basketball", Event: "Lakers vs Warriors", Prediction: "Lakers +3.5",
			Confidence: 0.89, Odds: 1.85, ExpectedValue: 0.24, Timestamp: now, ModelVersion: "xgboost_v2.1",
			Features: map[string]float64{"home_advantage": 0.15, "recent_form": 0.72, "head_to_head": 0.68},
		},
		{
			ID: "pred_002", Sport: "football", Event: "Chiefs vs Bills", Prediction: "Under 47.5",
			Confidence: 0.94, Odds: 2.1, ExpectedValue: 0.51, Timestamp: now, ModelVersion: "xgboost_v2.1",
			Features: map[string]float64{"weather_factor": 0.23, "defense_rating": 0.85, "pace_factor": 0.42},
		},
	}

	var out []api.Prediction
	if sport != "" {
		out = []api.Prediction{}
		for _, pr := range all {
			if pr.Sport == sport {
				out = append(out, pr)
			}
		}
	} else {
		out = head(all, limit, defaultPredictionLimit)
	}
	// total_count reflete o catálogo inteiro, não o recorte
	return api.PredictionsResponse{Predictions: out, TotalCount: len(all)}
}

func (p *Provider) AdvancedAnalytics() api.AdvancedAnalytics {
	return api.AdvancedAnalytics{
		ROIAnalysis: api.ROIAnalysis{OverallROI: 12.8, MonthlyROI: 8.5, WinRate: 0.67},
		BankrollMetrics: api.BankrollMetrics{
			CurrentBalance: 3250, TotalWagered: 18500, ProfitLoss: 1150, MaxDrawdown: -85,
		},
		PerformanceTrends: []api.PerformancePoint{
			{Date: "2024-01-01", CumulativeProfit: 0},
			{Date: "2024-01-15", CumulativeProfit: 250},
			{Date: "2024-02-01", CumulativeProfit: 580},
			{Date: "2024-02-15", CumulativeProfit: 925},
			{Date: "2024-03-01", CumulativeProfit: 1150},
		},
	}
}

func (p *Provider) ModelPerformance() api.ModelPerformance {
	return api.ModelPerformance{
		OverallAccuracy: 0.965,
		RecentAccuracy:  0.972,
		ModelMetrics:    api.ModelMetrics{Precision: 0.94, Recall: 0.96, F1Score: 0.95, AUCROC: 0.98},
		PerformanceBySport: map[string]api.SportAccuracy{
			"basketball": {Accuracy: 0.965, Games: 150},
			"football":   {Accuracy: 0.968, Games: 120},
			"baseball":   {Accuracy: 0.961, Games: 180},
			"hockey":     {Accuracy: 0.959, Games: 95},
		},
	}
}

func (p *Provider) UltraAccuracyPredictions() api.UltraAccuracyPredictions {
	return api.UltraAccuracyPredictions{
		EnhancedPredictions: []api.EnhancedPrediction{
			{
				ID: "ultra_001", Event: "Lakers vs Warriors", UltraConfidence: 0.965,
				PredictionStrength: "very_high", Recommendation: "strong_bet",
				EnhancementFactors: map[string]float64{
					"ml_ensemble":         0.89,
					"pattern_recognition": 0.94,
					"sentiment_analysis":  0.78,
					"weather_impact":      0.12,
				},
			},
		},
		SystemStatus: api.UltraSystemStatus{
			UltraAccuracyActive: true,
			ModelSyncStatus:     "synchronized",
			LastUpdate:          p.ago(0),
		},
	}
}

// head devolve os primeiros limit itens; limit <= 0 usa o default do recurso
func head[T any](all []T, limit, def int) []T {
	if limit <= 0 {
		limit = def
	}
	if limit > len(all) {
		limit = len(all)
	}
	return all[:limit]
}
