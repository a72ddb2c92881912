package bridge

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/radieske/a1betting-bridge/pkg/contracts/api"
)

const (
	maxStakeShare = 0.10 // teto de cada aposta sobre o investimento
	minStake      = 10.0 // aposta mínima em dólares
)

// KellyFraction calcula (p*b - q) / b com b = odds - 1 e q = 1 - p.
// Odds <= 1 não têm retorno; devolve 0.
func KellyFraction(p, odds float64) float64 {
	b := odds - 1
	if b <= 0 {
		return 0
	}
	q := 1 - p
	return (p*b - q) / b
}

// RecommendedStake limita o stake de Kelly a 10% do investimento com piso de $10
func RecommendedStake(investment, fraction, multiplier float64) float64 {
	return math.Max(math.Min(investment*fraction*multiplier, investment*maxStakeShare), minStake)
}

// RiskLevel é a taxonomia de risco do produto a partir da confiança (fração)
func RiskLevel(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return api.RiskLow
	case confidence >= 0.7:
		return api.RiskMedium
	default:
		return api.RiskHigh
	}
}

// TimeRemaining sorteia de 1 a 24 horas
func TimeRemaining(rng *rand.Rand) string {
	return fmt.Sprintf("%dh remaining", rng.Intn(24)+1)
}

func actionRequired(recommendation string) string {
	switch normalize(recommendation) {
	case "strong_buy":
		return "Place bet immediately"
	case "buy":
		return "Consider betting"
	case "hold":
		return "Monitor situation"
	default:
		return "Review opportunity"
	}
}

func strategyRisk(strategy string) string {
	switch strategy {
	case "conservative":
		return api.RiskLow
	case "aggressive":
		return api.RiskHigh
	default:
		return api.RiskMedium
	}
}

// passesStrategy aplica o filtro de cada estratégia sobre a confiança em %
func passesStrategy(strategy string, o SimplifiedOpportunity) bool {
	switch strategy {
	case "conservative":
		return o.RiskLevel == api.RiskLow && o.Confidence >= 80
	case "balanced":
		return o.Confidence >= 70
	default:
		return o.Confidence >= 60
	}
}

func percent(fraction float64) int { return int(math.Round(fraction * 100)) }
