package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/a1betting-bridge/internal/integration/state"
	contracts "github.com/radieske/a1betting-bridge/pkg/contracts/events"
)

const (
	relayBuffer  = 16
	writeTimeout = 5 * time.Second
)

// Relay recebe as transições do state.Mode e publica fora da goroutine que
// chamou Degrade/Recover. Com a fila cheia o evento é descartado.
type Relay struct {
	pub     Publisher
	source  string
	baseURL string
	log     *zap.Logger
	queue   chan contracts.ModeChanged
}

func NewRelay(pub Publisher, source, baseURL string, log *zap.Logger) *Relay {
	return &Relay{
		pub:     pub,
		source:  source,
		baseURL: baseURL,
		log:     log,
		queue:   make(chan contracts.ModeChanged, relayBuffer),
	}
}

// Attach registra o relay como listener do modo
func (r *Relay) Attach(mode *state.Mode) {
	mode.OnChange(r.enqueue)
}

func (r *Relay) enqueue(c state.Change) {
	ev := contracts.ModeChanged{
		From:      string(c.From),
		To:        string(c.To),
		Reason:    c.Reason,
		BaseURL:   r.baseURL,
		Source:    r.source,
		ChangedAt: c.At.UTC(),
	}
	select {
	case r.queue <- ev:
	default:
		r.log.Warn("mode change dropped, relay queue full", zap.String("to", ev.To))
	}
}

// Run publica até o contexto ser cancelado
func (r *Relay) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-r.queue:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			if err := r.pub.PublishModeChanged(wctx, ev); err != nil && ctx.Err() == nil {
				r.log.Warn("mode change not published", zap.String("to", ev.To), zap.Error(err))
			}
			cancel()
		}
	}
}
