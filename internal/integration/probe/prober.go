// Package probe tenta trazer o modo de volta para LIVE enquanto o backend
// estiver DEGRADED, consultando /health com backoff exponencial.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/radieske/a1betting-bridge/internal/integration/httpclient"
	"github.com/radieske/a1betting-bridge/internal/integration/state"
	"github.com/radieske/a1betting-bridge/pkg/contracts/api"
)

const (
	DefaultInitial = 5 * time.Second
	DefaultMax     = 2 * time.Minute
	healthPath     = "/health"
)

type Prober struct {
	client  *httpclient.Client
	mode    *state.Mode
	log     *zap.Logger
	initial time.Duration
	max     time.Duration
	wake    chan struct{}
}

func New(client *httpclient.Client, mode *state.Mode, log *zap.Logger, initial, maxInterval time.Duration) *Prober {
	if initial <= 0 {
		initial = DefaultInitial
	}
	if maxInterval < initial {
		maxInterval = DefaultMax
	}
	p := &Prober{
		client:  client,
		mode:    mode,
		log:     log,
		initial: initial,
		max:     maxInterval,
		wake:    make(chan struct{}, 1),
	}
	mode.OnChange(func(c state.Change) {
		if c.To == state.Degraded {
			p.signal()
		}
	})
	return p
}

func (p *Prober) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Start bloqueia até o contexto ser cancelado; rode numa goroutine
func (p *Prober) Start(ctx context.Context) {
	if p.mode.IsDegraded() {
		p.signal()
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.wake:
		}
		if !p.mode.IsDegraded() {
			continue
		}
		if err := p.untilHealthy(ctx); err != nil {
			if ctx.Err() == nil {
				p.log.Warn("re-probe stopped", zap.Error(err))
			}
			continue
		}
		if p.mode.Recover() {
			p.log.Info("backend reachable again, leaving demo mode", zap.String("base_url", p.client.BaseURL))
		}
	}
}

// untilHealthy espera o intervalo inicial antes do primeiro /health: a falha
// que degradou o modo pode ter sido num recurso com o /health respondendo ok
func (p *Prober) untilHealthy(ctx context.Context) error {
	t := time.NewTimer(p.initial)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.initial
	b.MaxInterval = p.max
	b.MaxElapsedTime = 0
	b.Reset()

	notify := func(err error, next time.Duration) {
		p.log.Debug("backend still unreachable", zap.Error(err), zap.Duration("next_attempt", next))
	}
	return backoff.RetryNotify(func() error { return p.check(ctx) }, backoff.WithContext(b, ctx), notify)
}

// check só aceita um /health 2xx com JSON de status preenchido
func (p *Prober) check(ctx context.Context) error {
	body, err := p.client.Probe(ctx, httpclient.Request{Path: healthPath})
	if err != nil {
		return err
	}
	var h api.HealthStatus
	if err := json.Unmarshal(body, &h); err != nil {
		return err
	}
	if h.Status == "" {
		return errors.New("health payload without status")
	}
	return nil
}
