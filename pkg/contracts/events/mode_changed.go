package events

import "time"

// Evento publicado no tópico "integration_mode_changes"
// sempre que a camada de integração alterna entre LIVE e DEGRADED
type ModeChanged struct {
	From      string    `json:"from"` // LIVE | DEGRADED
	To        string    `json:"to"`
	Reason    string    `json:"reason,omitempty"`
	BaseURL   string    `json:"base_url"`
	Source    string    `json:"source"` // nome do serviço que detectou
	ChangedAt time.Time `json:"changed_at"`
}
