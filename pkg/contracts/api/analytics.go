package api

// Prediction representa um palpite gerado pelo backend de modelos
type Prediction struct {
	ID            string             `json:"id"`
	Sport         string             `json:"sport"`
	Event         string             `json:"event"`
	Prediction    string             `json:"prediction"`
	Confidence    float64            `json:"confidence"`
	Odds          float64            `json:"odds"`
	ExpectedValue float64            `json:"expected_value"`
	Timestamp     string             `json:"timestamp"`
	ModelVersion  string             `json:"model_version"`
	Features      map[string]float64 `json:"features,omitempty"`
}

type PredictionsResponse struct {
	Predictions []Prediction `json:"predictions"`
	TotalCount  int          `json:"total_count"`
}

// HealthStatus é o payload de GET /health
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    float64           `json:"uptime"`
	Services  map[string]string `json:"services"`
}

type ROIAnalysis struct {
	OverallROI float64 `json:"overall_roi"`
	MonthlyROI float64 `json:"monthly_roi"`
	WinRate    float64 `json:"win_rate"`
}

type BankrollMetrics struct {
	CurrentBalance float64 `json:"current_balance"`
	TotalWagered   float64 `json:"total_wagered"`
	ProfitLoss     float64 `json:"profit_loss"`
	MaxDrawdown    float64 `json:"max_drawdown"`
}

type PerformancePoint struct {
	Date             string  `json:"date"`
	CumulativeProfit float64 `json:"cumulative_profit"`
}

// AdvancedAnalytics agrupa ROI, banca e tendência de lucro
type AdvancedAnalytics struct {
	ROIAnalysis       ROIAnalysis        `json:"roi_analysis"`
	BankrollMetrics   BankrollMetrics    `json:"bankroll_metrics"`
	PerformanceTrends []PerformancePoint `json:"performance_trends"`
}

type ModelMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
	AUCROC    float64 `json:"auc_roc"`
}

type SportAccuracy struct {
	Accuracy float64 `json:"accuracy"`
	Games    int     `json:"games"`
}

// ModelPerformance é a visão de acurácia dos modelos por esporte
type ModelPerformance struct {
	OverallAccuracy    float64                  `json:"overall_accuracy"`
	RecentAccuracy     float64                  `json:"recent_accuracy"`
	ModelMetrics       ModelMetrics             `json:"model_metrics"`
	PerformanceBySport map[string]SportAccuracy `json:"performance_by_sport"`
}

type EnhancedPrediction struct {
	ID                 string             `json:"id"`
	Event              string             `json:"event"`
	UltraConfidence    float64            `json:"ultra_confidence"`
	PredictionStrength string             `json:"prediction_strength"`
	Recommendation     string             `json:"recommendation"`
	EnhancementFactors map[string]float64 `json:"enhancement_factors"`
}

type UltraSystemStatus struct {
	UltraAccuracyActive bool   `json:"ultra_accuracy_active"`
	ModelSyncStatus     string `json:"model_sync_status"`
	LastUpdate          string `json:"last_update"`
}

// UltraAccuracyPredictions é o payload de /api/ultra-accuracy/predictions
type UltraAccuracyPredictions struct {
	EnhancedPredictions []EnhancedPrediction `json:"enhanced_predictions"`
	SystemStatus        UltraSystemStatus    `json:"system_status"`
}
