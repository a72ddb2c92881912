package httpapi

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/radieske/a1betting-bridge/internal/bff/ws"
	"github.com/radieske/a1betting-bridge/internal/integration/bridge"
	"github.com/radieske/a1betting-bridge/internal/integration/service"
)

const (
	defaultInvestment = 1000
	defaultStrategy   = "balanced"
	defaultUserID     = "default_user"
)

// API expõe para a UI os agregados da integração A1Betting.
// Nenhuma rota devolve erro do backend: em falha a resposta já vem do fallback.
type API struct {
	Service        *service.Service
	Bridge         *bridge.Bridge
	Log            *zap.Logger
	Stream         *ws.Hub // opcional
	AllowedOrigins []string
}

// ModeView é o estado atual do modo de integração
type ModeView struct {
	Mode    string    `json:"mode"`
	Reason  string    `json:"reason,omitempty"`
	Since   time.Time `json:"since"`
	BaseURL string    `json:"base_url"`
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Route("/v1", func(r chi.Router) {
		// stream fica fora do timeout: a conexão vive enquanto a UI estiver aberta
		if a.Stream != nil {
			r.Get("/stream", a.Stream.HandleWS)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))
			r.Get("/health", a.health)
			r.Get("/system-health", a.systemHealth)
			r.Get("/connection-status", a.connectionStatus)
			r.Get("/mode", a.mode)

			r.Get("/users/{id}/profile", a.userProfile)
			r.Get("/users/{id}/analytics", a.userAnalytics)
			r.Get("/accuracy", a.accuracy)

			r.Get("/predictions", a.predictions)
			r.Get("/opportunities/betting", a.bettingOpportunities)
			r.Get("/opportunities/arbitrage", a.arbitrageOpportunities)
			r.Get("/value-bets", a.valueBets)
			r.Get("/bets/active", a.activeBets)
			r.Get("/transactions", a.transactions)
			r.Get("/risk-profiles", a.riskProfiles)

			r.Get("/simple/predictions", a.simplePredictions)
			r.Get("/simple/analytics", a.simpleAnalytics)
			r.Get("/simple/opportunities", a.simpleOpportunities)
			r.Get("/money-maker", a.moneyMaker)
			r.Get("/prizepicks", a.prizePicks)
		})
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *API) badRequest(w http.ResponseWriter, r *http.Request, param string) {
	a.Log.Debug("rejected query parameter", zap.String("path", r.URL.Path), zap.String("param", param))
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid query parameter: " + param})
}

// queryInt lê um inteiro opcional; ok=false só quando o valor existe e é inválido
func queryInt(r *http.Request, key string) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func userID(r *http.Request) string {
	if id := chi.URLParam(r, "id"); id != "" {
		return id
	}
	return defaultUserID
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	view, _ := a.Service.HealthStatus(r.Context())
	writeJSON(w, http.StatusOK, view)
}

func (a *API) systemHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Service.CheckSystemHealth(r.Context()))
}

func (a *API) connectionStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Service.API().ConnectionStatus(r.Context()))
}

func (a *API) mode(w http.ResponseWriter, r *http.Request) {
	m := a.Service.API().Mode()
	reason, since := m.Reason()
	writeJSON(w, http.StatusOK, ModeView{
		Mode:    string(m.Current()),
		Reason:  reason,
		Since:   since.UTC(),
		BaseURL: a.Service.API().BaseURL(),
	})
}

func (a *API) userProfile(w http.ResponseWriter, r *http.Request) {
	view, _ := a.Service.UserProfile(r.Context(), userID(r))
	writeJSON(w, http.StatusOK, view)
}

func (a *API) userAnalytics(w http.ResponseWriter, r *http.Request) {
	view, _ := a.Service.UserAnalytics(r.Context(), userID(r))
	writeJSON(w, http.StatusOK, view)
}

func (a *API) accuracy(w http.ResponseWriter, r *http.Request) {
	view, _ := a.Service.AccuracyMetrics(r.Context())
	writeJSON(w, http.StatusOK, view)
}

func (a *API) predictions(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		a.badRequest(w, r, "limit")
		return
	}
	writeJSON(w, http.StatusOK, a.Service.Predictions(r.Context(), r.URL.Query().Get("sport"), limit))
}

func (a *API) bettingOpportunities(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		a.badRequest(w, r, "limit")
		return
	}
	writeJSON(w, http.StatusOK, a.Service.BettingOpportunities(r.Context(), r.URL.Query().Get("sport"), limit))
}

func (a *API) arbitrageOpportunities(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		a.badRequest(w, r, "limit")
		return
	}
	writeJSON(w, http.StatusOK, a.Service.ArbitrageOpportunities(r.Context(), limit))
}

func (a *API) valueBets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Service.ValueBets(r.Context()))
}

func (a *API) activeBets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Service.ActiveBets(r.Context()))
}

func (a *API) transactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Service.Transactions(r.Context()))
}

func (a *API) riskProfiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Service.RiskProfiles(r.Context()))
}

func (a *API) simplePredictions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Bridge.SimplifiedPredictions(r.Context()))
}

func (a *API) simpleAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Bridge.SimplifiedAnalytics(r.Context()))
}

func (a *API) simpleOpportunities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Bridge.SimplifiedOpportunities(r.Context()))
}

func (a *API) moneyMaker(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	investment := float64(defaultInvestment)
	if v := q.Get("investment"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			a.badRequest(w, r, "investment")
			return
		}
		investment = f
	}
	strategy := q.Get("strategy")
	if strategy == "" {
		strategy = defaultStrategy
	}
	writeJSON(w, http.StatusOK, a.Bridge.MoneyMakerRecommendations(r.Context(), investment, strategy))
}

func (a *API) prizePicks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Bridge.PrizePicks(r.Context(), r.URL.Query().Get("sport")))
}
