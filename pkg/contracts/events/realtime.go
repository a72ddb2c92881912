package events

import "encoding/json"

// Tipos de mensagem emitidos pelo WebSocket do backend
const (
	RealtimeOddsUpdate       = "odds_update"
	RealtimePredictionUpdate = "prediction_update"
	RealtimeBetUpdate        = "bet_update"

	// sintéticos, gerados pelo próprio cliente
	RealtimeConnection    = "connection"
	RealtimeDisconnection = "disconnection"

	// enviado pelo bridge para a UI quando o modo LIVE/DEGRADED muda
	RealtimeModeChanged = "mode_changed"
)

// RealtimeMessage é o envelope {type, data} recebido do backend
type RealtimeMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}
