package httpapi

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/radieske/a1betting-bridge/internal/bff/ws"
	"github.com/radieske/a1betting-bridge/internal/integration/backend"
	"github.com/radieske/a1betting-bridge/internal/integration/bridge"
	"github.com/radieske/a1betting-bridge/internal/integration/httpclient"
	"github.com/radieske/a1betting-bridge/internal/integration/mock"
	"github.com/radieske/a1betting-bridge/internal/integration/service"
	"github.com/radieske/a1betting-bridge/internal/integration/state"
)

// demoRouter serve tudo a partir dos dados de demonstração
func demoRouter(t *testing.T) http.Handler {
	t.Helper()
	log := zaptest.NewLogger(t)
	mode := state.NewMode()
	mode.Degrade("offline test")
	client := httpclient.New("http://127.0.0.1:1", time.Second, mode, log)
	svc := service.New(backend.New(client, mode, mock.NewProvider(), log), log)
	api := &API{
		Service:        svc,
		Bridge:         bridge.New(svc, log, bridge.WithRand(rand.New(rand.NewSource(3)))),
		Log:            log,
		AllowedOrigins: []string{"http://localhost:5173"},
	}
	return api.Router()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRouter_EveryRouteAnswersJSON(t *testing.T) {
	h := demoRouter(t)
	routes := []string{
		"/v1/health",
		"/v1/system-health",
		"/v1/connection-status",
		"/v1/mode",
		"/v1/users/u1/profile",
		"/v1/users/u1/analytics",
		"/v1/accuracy",
		"/v1/predictions?sport=basketball&limit=2",
		"/v1/opportunities/betting",
		"/v1/opportunities/arbitrage?limit=1",
		"/v1/value-bets",
		"/v1/bets/active",
		"/v1/transactions",
		"/v1/risk-profiles",
		"/v1/simple/predictions",
		"/v1/simple/analytics",
		"/v1/simple/opportunities",
		"/v1/money-maker?investment=500&strategy=conservative",
		"/v1/prizepicks?sport=basketball",
	}
	for _, route := range routes {
		t.Run(route, func(t *testing.T) {
			rec := get(t, h, route)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.True(t, json.Valid(rec.Body.Bytes()))
			assert.NotEqual(t, "null\n", rec.Body.String())
		})
	}
}

func TestRouter_Mode(t *testing.T) {
	rec := get(t, demoRouter(t), "/v1/mode")

	var view ModeView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "DEGRADED", view.Mode)
	assert.Equal(t, "offline test", view.Reason)
	assert.Equal(t, "http://127.0.0.1:1", view.BaseURL)
	assert.False(t, view.Since.IsZero())
}

func TestRouter_SystemHealthOfflineInDemoMode(t *testing.T) {
	rec := get(t, demoRouter(t), "/v1/system-health")

	var view service.SystemHealth
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, service.StatusOffline, view.Status)
	assert.Contains(t, view.Error, "offline test")
}

func TestRouter_MoneyMakerDefaults(t *testing.T) {
	rec := get(t, demoRouter(t), "/v1/money-maker")
	require.Equal(t, http.StatusOK, rec.Code)

	var rec2 bridge.MoneyMakerRecommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rec2))
	assert.Equal(t, "Moderate", rec2.Strategy)
	assert.NotEmpty(t, rec2.Picks)
}

func TestRouter_NonPositiveInvestmentStillOK(t *testing.T) {
	rec := get(t, demoRouter(t), "/v1/money-maker?investment=-5")
	require.Equal(t, http.StatusOK, rec.Code)

	var out bridge.MoneyMakerRecommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Empty(t, out.Picks)
	assert.NotEmpty(t, out.Message)
}

func TestRouter_MalformedQueryIs400(t *testing.T) {
	h := demoRouter(t)
	for _, target := range []string{
		"/v1/predictions?limit=abc",
		"/v1/predictions?limit=-1",
		"/v1/opportunities/betting?limit=1.5",
		"/v1/opportunities/arbitrage?limit=x",
		"/v1/money-maker?investment=lots",
		"/v1/money-maker?investment=NaN",
	} {
		rec := get(t, h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "invalid query parameter")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := demoRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/v1/simple/analytics", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, get(t, demoRouter(t), "/v1/nope").Code)
}

func TestRouter_StreamRoute(t *testing.T) {
	log := zaptest.NewLogger(t)
	mode := state.NewMode()
	mode.Degrade("offline test")
	client := httpclient.New("http://127.0.0.1:1", time.Second, mode, log)
	svc := service.New(backend.New(client, mode, mock.NewProvider(), log), log)
	api := &API{
		Service: svc,
		Bridge:  bridge.New(svc, log),
		Log:     log,
		Stream:  ws.NewHub(ws.AllowOrigins(nil), log),
	}
	srv := httptest.NewServer(api.Router())
	defer srv.Close()

	c, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/v1/stream", nil)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.WriteJSON(ws.ClientMsg{Type: "ping"}))
	_ = c.SetReadDeadline(time.Now().Add(time.Second))
	var got map[string]string
	require.NoError(t, c.ReadJSON(&got))
	assert.Equal(t, "pong", got["type"])
}

func TestRouter_NoStreamWithoutHub(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, get(t, demoRouter(t), "/v1/stream").Code)
}
