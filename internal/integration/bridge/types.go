package bridge

// Projeções prontas para a UI simplificada; criadas a cada chamada, nunca cacheadas.
// Os nomes JSON seguem o camelCase que os componentes já consomem.

type SimplifiedPrediction struct {
	ID            string  `json:"id"`
	Game          string  `json:"game"`
	Pick          string  `json:"pick"`
	Confidence    int     `json:"confidence"` // %
	Odds          string  `json:"odds"`
	Reasoning     string  `json:"reasoning"`
	ExpectedValue float64 `json:"expectedValue"`
	RiskLevel     string  `json:"riskLevel"`
	Sport         string  `json:"sport"`
	ModelVersion  string  `json:"modelVersion"`
}

type SimplifiedAnalytics struct {
	TotalProfit     float64  `json:"totalProfit"`
	WinRate         int      `json:"winRate"` // %
	ROI             float64  `json:"roi"`
	TodaysPicks     int      `json:"todaysPicks"`
	ActiveGames     int      `json:"activeGames"`
	AIAccuracy      int      `json:"aiAccuracy"` // %
	Recommendations []string `json:"recommendations"`
	Alerts          []string `json:"alerts"`
}

type SimplifiedOpportunity struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Confidence     int     `json:"confidence"`     // %
	ExpectedReturn int     `json:"expectedReturn"` // %
	RiskLevel      string  `json:"riskLevel"`
	TimeRemaining  string  `json:"timeRemaining"`
	Sport          string  `json:"sport"`
	ActionRequired string  `json:"actionRequired"`
	Odds           float64 `json:"odds"`
}

type MoneyMakerPick struct {
	Game          string  `json:"game"`
	Pick          string  `json:"pick"`
	Confidence    int     `json:"confidence"`
	Odds          string  `json:"odds"`
	Reasoning     string  `json:"reasoning"`
	BetSize       float64 `json:"betSize"`
	KellyFraction float64 `json:"kellyFraction"`
}

// MoneyMakerRecommendation é o pacote de apostas sugerido para um investimento
type MoneyMakerRecommendation struct {
	Investment      float64          `json:"investment"`
	ProjectedReturn float64          `json:"projectedReturn"`
	ROI             float64          `json:"roi"`
	Confidence      float64          `json:"confidence"`
	Picks           []MoneyMakerPick `json:"picks"`
	RiskLevel       string           `json:"riskLevel"`
	Strategy        string           `json:"strategy"`
	TimeHorizon     string           `json:"timeHorizon"`
	Message         string           `json:"message,omitempty"`
}

type PrizePick struct {
	ID             string  `json:"id"`
	Player         string  `json:"player"`
	Stat           string  `json:"stat"`
	Line           float64 `json:"line"`
	Confidence     float64 `json:"confidence"`
	ProjectedValue float64 `json:"projectedValue"`
	Recommendation string  `json:"recommendation"`
	Sport          string  `json:"sport"`
}
