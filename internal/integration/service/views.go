package service

import (
	"math"
	"strconv"
	"time"

	"github.com/radieske/a1betting-bridge/pkg/contracts/api"
)

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// SystemHealth é o resultado de CheckSystemHealth
type SystemHealth struct {
	Status string            `json:"status"` // online | offline
	Data   *api.HealthStatus `json:"data"`
	Error  string            `json:"error,omitempty"`
}

type HealthMetrics struct {
	ActivePredictions int `json:"active_predictions"`
	ActiveConnections int `json:"active_connections"`
}

// HealthView é o painel de status do sistema
type HealthView struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
	Uptime   float64           `json:"uptime"`
	Version  string            `json:"version"`
	Metrics  HealthMetrics     `json:"metrics"`
}

type ProfileSettings struct {
	Notifications bool   `json:"notifications"`
	Autobet       bool   `json:"autobet"`
	RiskLevel     string `json:"riskLevel"`
}

// UserProfile segue os nomes camelCase que o cabeçalho da UI já consome
type UserProfile struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Tier        string          `json:"tier"`
	Balance     float64         `json:"balance"`
	WinRate     float64         `json:"winRate"`
	TotalProfit float64         `json:"totalProfit"`
	Settings    ProfileSettings `json:"settings"`
}

// UserAnalytics é o objeto achatado do dashboard
type UserAnalytics struct {
	CurrentBalance float64            `json:"current_balance"`
	TotalProfit    float64            `json:"total_profit"`
	WinRate        float64            `json:"win_rate"`
	ROI            float64            `json:"roi"`
	Daily          map[string]float64 `json:"daily"`
	MonthlyProfit  float64            `json:"monthly_profit"`
	TotalWagered   float64            `json:"total_wagered"`
	MaxDrawdown    float64            `json:"max_drawdown"`
}

type AccuracyMetrics struct {
	OverallAccuracy float64                      `json:"overall_accuracy"`
	RecentAccuracy  float64                      `json:"recent_accuracy"`
	Precision       float64                      `json:"precision"`
	Recall          float64                      `json:"recall"`
	F1Score         float64                      `json:"f1_score"`
	AUCROC          float64                      `json:"auc_roc"`
	BySport         map[string]api.SportAccuracy `json:"by_sport"`
}

func emptyProfile(userID string) UserProfile {
	return UserProfile{
		ID: userID, Name: "User", Email: "user@a1betting.com", Tier: "Free",
		Settings: defaultSettings(),
	}
}

func defaultSettings() ProfileSettings {
	return ProfileSettings{Notifications: true, RiskLevel: "moderate"}
}

func emptyAnalytics() UserAnalytics {
	return UserAnalytics{Daily: map[string]float64{}}
}

func emptyAccuracy() AccuracyMetrics {
	return AccuracyMetrics{BySport: map[string]api.SportAccuracy{}}
}

func emptyHealthView() HealthView {
	return HealthView{Status: StatusOffline, Services: map[string]string{}, Version: "0.0.0"}
}

// timestampLayouts cobre RFC3339 e o isoformat "naive" do Python (tratado como UTC)
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// DailyProfit soma amount por dia (UTC) do timestamp de cada transação.
// São totais, não médias, e dias sem transação ficam de fora.
func DailyProfit(txs []api.Transaction) (map[string]float64, error) {
	daily := make(map[string]float64)
	for i, tx := range txs {
		ts, err := parseTimestamp(tx.Timestamp)
		if err != nil {
			return nil, shapeErr("transactions["+strconv.Itoa(i)+"].timestamp", "unparseable %q", tx.Timestamp)
		}
		daily[ts.UTC().Format("2006-01-02")] += tx.Amount
	}
	return daily, nil
}

func parseTimestamp(s string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func mapHealth(h api.HealthStatus, connected bool) (HealthView, error) {
	if h.Status == "" {
		return emptyHealthView(), shapeErr("status", "missing")
	}
	v := HealthView{
		Status:   StatusOffline,
		Services: h.Services,
		Uptime:   h.Uptime,
		Version:  h.Version,
		Metrics:  HealthMetrics{ActivePredictions: len(h.Services)},
	}
	if v.Services == nil {
		v.Services = map[string]string{}
	}
	if h.Status == "healthy" {
		v.Status = StatusOnline
	}
	if connected {
		v.Metrics.ActiveConnections = 1
	}
	return v, nil
}

func mapProfile(userID string, a api.AdvancedAnalytics) (UserProfile, error) {
	if err := fraction("roi_analysis.win_rate", a.ROIAnalysis.WinRate); err != nil {
		return emptyProfile(userID), err
	}
	return UserProfile{
		ID:          userID,
		Name:        "Pro Bettor",
		Email:       "user@a1betting.com",
		Tier:        "Premium",
		Balance:     a.BankrollMetrics.CurrentBalance,
		WinRate:     a.ROIAnalysis.WinRate,
		TotalProfit: a.BankrollMetrics.ProfitLoss,
		Settings:    defaultSettings(),
	}, nil
}

func mapAnalytics(a api.AdvancedAnalytics, txs []api.Transaction) (UserAnalytics, error) {
	if err := fraction("roi_analysis.win_rate", a.ROIAnalysis.WinRate); err != nil {
		return emptyAnalytics(), err
	}
	daily, err := DailyProfit(txs)
	if err != nil {
		return emptyAnalytics(), err
	}
	return UserAnalytics{
		CurrentBalance: a.BankrollMetrics.CurrentBalance,
		TotalProfit:    a.BankrollMetrics.ProfitLoss,
		WinRate:        a.ROIAnalysis.WinRate,
		ROI:            a.ROIAnalysis.OverallROI,
		Daily:          daily,
		MonthlyProfit:  a.ROIAnalysis.MonthlyROI,
		TotalWagered:   a.BankrollMetrics.TotalWagered,
		MaxDrawdown:    a.BankrollMetrics.MaxDrawdown,
	}, nil
}

func mapAccuracy(p api.ModelPerformance) (AccuracyMetrics, error) {
	if err := fraction("overall_accuracy", p.OverallAccuracy); err != nil {
		return emptyAccuracy(), err
	}
	if err := fraction("recent_accuracy", p.RecentAccuracy); err != nil {
		return emptyAccuracy(), err
	}
	m := AccuracyMetrics{
		OverallAccuracy: p.OverallAccuracy,
		RecentAccuracy:  p.RecentAccuracy,
		Precision:       p.ModelMetrics.Precision,
		Recall:          p.ModelMetrics.Recall,
		F1Score:         p.ModelMetrics.F1Score,
		AUCROC:          p.ModelMetrics.AUCROC,
		BySport:         p.PerformanceBySport,
	}
	if m.BySport == nil {
		m.BySport = map[string]api.SportAccuracy{}
	}
	return m, nil
}

// fraction rejeita valores que deveriam estar em [0,1]
func fraction(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return shapeErr(field, "expected fraction in [0,1], got %v", v)
	}
	return nil
}
