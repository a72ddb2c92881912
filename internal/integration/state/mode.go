// Package state guarda o modo da integração com o backend (LIVE ou DEGRADED).
//
// O Mode é criado uma vez no main e injetado em quem precisa ler ou alterar o
// modo; não existe variável global. A transição LIVE -> DEGRADED acontece na
// primeira falha classificada pelo cliente HTTP. A volta para LIVE só ocorre
// via Recover, chamado pelo re-probe quando habilitado.
package state

import (
	"sync"
	"sync/atomic"
	"time"
)

type Phase string

const (
	Live     Phase = "LIVE"
	Degraded Phase = "DEGRADED"
)

// Change descreve uma transição de modo entregue aos listeners
type Change struct {
	From   Phase
	To     Phase
	Reason string
	At     time.Time
}

type Mode struct {
	degraded atomic.Bool

	mu        sync.RWMutex
	reason    string
	since     time.Time
	listeners []func(Change)
	now       func() time.Time
}

func NewMode() *Mode {
	return &Mode{now: time.Now, since: time.Now()}
}

// IsDegraded é o fast-path lido antes de toda chamada ao backend
func (m *Mode) IsDegraded() bool { return m.degraded.Load() }

func (m *Mode) Current() Phase {
	if m.IsDegraded() {
		return Degraded
	}
	return Live
}

// Reason retorna o motivo da última transição e desde quando o modo atual vale
func (m *Mode) Reason() (string, time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reason, m.since
}

// Degrade marca o backend como indisponível. Idempotente: só quem efetivamente
// fez a troca recebe true e dispara os listeners.
func (m *Mode) Degrade(reason string) bool {
	if !m.degraded.CompareAndSwap(false, true) {
		return false
	}
	m.transition(Live, Degraded, reason)
	return true
}

// Recover volta para LIVE; usado apenas pelo re-probe
func (m *Mode) Recover() bool {
	if !m.degraded.CompareAndSwap(true, false) {
		return false
	}
	m.transition(Degraded, Live, "backend reachable again")
	return true
}

// Reset volta para LIVE sem notificar ninguém (testes)
func (m *Mode) Reset() {
	m.degraded.Store(false)
	m.mu.Lock()
	m.reason = ""
	m.since = m.now()
	m.mu.Unlock()
}

// OnChange registra um listener chamado de forma síncrona a cada transição
func (m *Mode) OnChange(fn func(Change)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

func (m *Mode) transition(from, to Phase, reason string) {
	at := m.now()

	m.mu.Lock()
	m.reason = reason
	m.since = at
	ls := append([]func(Change){}, m.listeners...)
	m.mu.Unlock()

	ch := Change{From: from, To: to, Reason: reason, At: at}
	for _, fn := range ls {
		fn(ch)
	}
}
