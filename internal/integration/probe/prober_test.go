package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/a1betting-bridge/internal/integration/httpclient"
	"github.com/radieske/a1betting-bridge/internal/integration/state"
)

// flakyHealth responde 503 nas primeiras falhas e depois um /health válido
func flakyHealth(failures int32) (*httptest.Server, *atomic.Int32) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= failures {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","timestamp":"t","version":"1","uptime":1,"services":{}}`))
	}))
	return srv, &hits
}

func startProber(t *testing.T, baseURL string, mode *state.Mode) {
	t.Helper()
	startProberWith(t, httpclient.New(baseURL, time.Second, mode, zap.NewNop()), mode, 5*time.Millisecond)
}

func startProberWith(t *testing.T, client *httpclient.Client, mode *state.Mode, initial time.Duration) {
	t.Helper()
	p := New(client, mode, zap.NewNop(), initial, 4*initial)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestProber_RecoversAfterBackendReturns(t *testing.T) {
	srv, hits := flakyHealth(2)
	defer srv.Close()

	mode := state.NewMode()
	mode.Degrade("connection refused")

	startProber(t, srv.URL, mode)

	require.Eventually(t, func() bool { return !mode.IsDegraded() }, 2*time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, hits.Load(), int32(3))
}

func TestProber_IdleWhileLive(t *testing.T) {
	srv, hits := flakyHealth(0)
	defer srv.Close()

	mode := state.NewMode()
	startProber(t, srv.URL, mode)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, hits.Load())
	assert.False(t, mode.IsDegraded())
}

func TestProber_WakesOnLaterDegrade(t *testing.T) {
	srv, hits := flakyHealth(1)
	defer srv.Close()

	mode := state.NewMode()
	startProber(t, srv.URL, mode)

	mode.Degrade("html instead of json")

	require.Eventually(t, func() bool { return !mode.IsDegraded() }, 2*time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, hits.Load(), int32(2))
}

func TestProber_RejectsNonJSONHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	mode := state.NewMode()
	mode.Degrade("static host")
	startProber(t, srv.URL, mode)

	time.Sleep(60 * time.Millisecond)
	assert.True(t, mode.IsDegraded())
}

func TestProber_WaitsInitialIntervalBeforeFirstCheck(t *testing.T) {
	srv, hits := flakyHealth(0)
	defer srv.Close()

	mode := state.NewMode()
	startProberWith(t, httpclient.New(srv.URL, time.Second, mode, zap.NewNop()), mode, 300*time.Millisecond)
	mode.Degrade("503 on /api/predictions")

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, hits.Load())
	assert.True(t, mode.IsDegraded())

	require.Eventually(t, func() bool { return !mode.IsDegraded() }, 2*time.Second, 10*time.Millisecond)
}

// /health saudável com recursos em 503: o modo não pode oscilar a cada chamada
func TestProber_HealthyHealthDoesNotFlapMode(t *testing.T) {
	var apiHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"healthy"}`))
			return
		}
		apiHits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	mode := state.NewMode()
	var transitions atomic.Int32
	mode.OnChange(func(state.Change) { transitions.Add(1) })
	client := httpclient.New(srv.URL, time.Second, mode, zap.NewNop())
	startProberWith(t, client, mode, 5*time.Second)

	for i := 0; i < 10; i++ {
		_, _ = client.Do(context.Background(), httpclient.Request{Path: "/api/betting-opportunities"})
		time.Sleep(20 * time.Millisecond)
	}

	assert.Equal(t, int32(1), apiHits.Load())
	assert.Equal(t, int32(1), transitions.Load())
	assert.True(t, mode.IsDegraded())
}
