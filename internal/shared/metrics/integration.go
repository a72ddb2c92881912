package metrics

import "github.com/prometheus/client_golang/prometheus"

// Integration reúne as métricas da camada de integração com o backend
type Integration struct {
	Requests  *prometheus.CounterVec // por recurso e origem (live | mock | cache)
	Fallbacks *prometheus.CounterVec // por recurso e motivo
	Degraded  prometheus.Gauge       // 1 enquanto o modo DEGRADED estiver ativo
	Realtime  *prometheus.CounterVec // mensagens WS por tipo
}

// NewIntegration cria e registra as métricas no registry informado
func NewIntegration(reg prometheus.Registerer) *Integration {
	m := &Integration{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "integration_requests_total",
			Help: "requisições atendidas por recurso e origem dos dados",
		}, []string{"resource", "source"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "integration_fallbacks_total",
			Help: "substituições por dados mock por recurso e motivo",
		}, []string{"resource", "reason"}),
		Degraded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "integration_degraded",
			Help: "1 quando o backend foi classificado como indisponível",
		}),
		Realtime: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "integration_realtime_messages_total",
			Help: "mensagens recebidas do WebSocket do backend por tipo",
		}, []string{"type"}),
	}
	reg.MustRegister(m.Requests, m.Fallbacks, m.Degraded, m.Realtime)
	return m
}
