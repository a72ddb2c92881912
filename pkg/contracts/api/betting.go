package api

// Níveis de risco aceitos em oportunidades e projeções da UI
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// BettingOpportunity representa uma oportunidade de aposta de valor
// Probability e Confidence são frações em [0,1]
type BettingOpportunity struct {
	ID             string  `json:"id"`
	Sport          string  `json:"sport"`
	Event          string  `json:"event"`
	Market         string  `json:"market"`
	Odds           float64 `json:"odds"`
	Probability    float64 `json:"probability"`
	ExpectedValue  float64 `json:"expected_value"`
	KellyFraction  float64 `json:"kelly_fraction"`
	Confidence     float64 `json:"confidence"`
	RiskLevel      string  `json:"risk_level"`     // low | medium | high
	Recommendation string  `json:"recommendation"` // strong_buy | buy | hold | ...
}

// ArbitrageOpportunity representa uma arbitragem entre duas casas
// ProfitMargin é percentual e sempre > 0
type ArbitrageOpportunity struct {
	ID            string  `json:"id"`
	Sport         string  `json:"sport"`
	Event         string  `json:"event"`
	BookmakerA    string  `json:"bookmaker_a"`
	BookmakerB    string  `json:"bookmaker_b"`
	OddsA         float64 `json:"odds_a"`
	OddsB         float64 `json:"odds_b"`
	ProfitMargin  float64 `json:"profit_margin"`
	RequiredStake float64 `json:"required_stake"`
}

// Transaction representa uma movimentação da banca
type Transaction struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`   // bet | win | loss | deposit | withdrawal
	Amount      float64 `json:"amount"` // com sinal
	Description string  `json:"description"`
	Timestamp   string  `json:"timestamp"` // ISO-8601
	Status      string  `json:"status"`    // pending | completed | failed
}

type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	TotalCount   int           `json:"total_count"`
}

// ActiveBet representa uma aposta em aberto do usuário
type ActiveBet struct {
	ID              string  `json:"id"`
	Event           string  `json:"event"`
	Market          string  `json:"market"`
	Selection       string  `json:"selection"`
	Stake           float64 `json:"stake"`
	PotentialPayout float64 `json:"potential_payout"`
	Status          string  `json:"status"` // active | settled | voided
	PlacedAt        string  `json:"placed_at"`
}

type ActiveBetsResponse struct {
	ActiveBets []ActiveBet `json:"active_bets"`
	TotalCount int         `json:"total_count"`
}

// RiskProfile é uma entrada do catálogo fixo conservative/moderate/aggressive
type RiskProfile struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	MaxBetPercentage float64 `json:"max_bet_percentage"`
	MaxExposure      float64 `json:"max_exposure"`
	RiskTolerance    string  `json:"risk_tolerance"`
	KellyMultiplier  float64 `json:"kelly_multiplier"`
	MinConfidence    float64 `json:"min_confidence"`
}

type RiskProfilesResponse struct {
	Profiles []RiskProfile `json:"profiles"`
}
