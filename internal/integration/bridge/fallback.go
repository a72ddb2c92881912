package bridge

import "github.com/radieske/a1betting-bridge/pkg/contracts/api"

// Fallbacks: campos zerados e um texto que explica o que falta para a UI renderizar algo

func fallbackPredictions() []SimplifiedPrediction {
	return []SimplifiedPrediction{{
		ID:           "fallback-1",
		Game:         "Loading predictions...",
		Pick:         "Connect to backend for live data",
		Odds:         "2.0",
		Reasoning:    "Backend connection required",
		RiskLevel:    api.RiskMedium,
		Sport:        "all",
		ModelVersion: "offline",
	}}
}

func fallbackAnalytics() SimplifiedAnalytics {
	return SimplifiedAnalytics{
		Recommendations: []string{"Connect to backend for live analytics"},
		Alerts:          []string{"Backend offline - connect for real-time data"},
	}
}

func fallbackOpportunities() []SimplifiedOpportunity {
	return []SimplifiedOpportunity{{
		ID:             "fallback-1",
		Title:          "Connect to Backend",
		Description:    "Live opportunities available when connected",
		RiskLevel:      api.RiskMedium,
		TimeRemaining:  "N/A",
		Sport:          "all",
		ActionRequired: "Check backend connection",
	}}
}

func fallbackMoneyMaker(strategy, message string) MoneyMakerRecommendation {
	return MoneyMakerRecommendation{
		Picks:       []MoneyMakerPick{},
		RiskLevel:   strategyRisk(strategy),
		Strategy:    strategy,
		TimeHorizon: "24 hours",
		Message:     message,
	}
}
