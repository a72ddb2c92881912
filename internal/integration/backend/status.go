package backend

import (
	"context"
	"time"

	"github.com/radieske/a1betting-bridge/internal/integration/httpclient"
	"github.com/radieske/a1betting-bridge/internal/integration/state"
)

// endpoints testados pelo diagnóstico de conexão, na ordem de exibição
var statusEndpoints = []string{
	"/health",
	"/api/betting-opportunities",
	"/api/arbitrage-opportunities",
	"/api/advanced-analytics",
}

// ConnectionStatus é o diagnóstico exibido pela tela de debug da UI
type ConnectionStatus struct {
	IsConnected bool            `json:"is_connected"`
	BaseURL     string          `json:"base_url"`
	Mode        state.Phase     `json:"mode"`
	ModeReason  string          `json:"mode_reason,omitempty"`
	ModeSince   time.Time       `json:"mode_since"`
	Error       string          `json:"error,omitempty"`
	Endpoints   map[string]bool `json:"endpoints"`
}

// ConnectionStatus testa os endpoints principais sem passar pelo fast-path
// e sem alterar o modo; serve só para diagnóstico
func (s *Service) ConnectionStatus(ctx context.Context) ConnectionStatus {
	reason, since := s.mode.Reason()
	st := ConnectionStatus{
		BaseURL:    s.client.BaseURL,
		Mode:       s.mode.Current(),
		ModeReason: reason,
		ModeSince:  since,
		Endpoints:  make(map[string]bool, len(statusEndpoints)),
	}
	if st.BaseURL == "" {
		st.BaseURL = "not set"
	}

	for _, path := range statusEndpoints {
		_, err := s.client.Probe(ctx, httpclient.Request{Path: path})
		st.Endpoints[path] = err == nil
		if path == "/health" {
			st.IsConnected = err == nil
			if err != nil {
				st.Error = err.Error()
			}
		}
	}
	return st
}
