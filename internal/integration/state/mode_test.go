package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_StartsLive(t *testing.T) {
	m := NewMode()

	assert.False(t, m.IsDegraded())
	assert.Equal(t, Live, m.Current())
}

func TestMode_DegradeIsOneWay(t *testing.T) {
	m := NewMode()

	assert.True(t, m.Degrade("dial tcp: connection refused"))
	assert.False(t, m.Degrade("second failure"))
	assert.Equal(t, Degraded, m.Current())

	reason, _ := m.Reason()
	assert.Equal(t, "dial tcp: connection refused", reason)
}

func TestMode_ListenersSeeEveryTransition(t *testing.T) {
	m := NewMode()
	var got []Change
	m.OnChange(func(c Change) { got = append(got, c) })

	m.Degrade("timeout")
	m.Degrade("timeout again")
	m.Recover()
	m.Recover()

	require.Len(t, got, 2)
	assert.Equal(t, Live, got[0].From)
	assert.Equal(t, Degraded, got[0].To)
	assert.Equal(t, "timeout", got[0].Reason)
	assert.Equal(t, Degraded, got[1].From)
	assert.Equal(t, Live, got[1].To)
}

func TestMode_ConcurrentDegradeFlipsOnce(t *testing.T) {
	m := NewMode()
	var (
		mu    sync.Mutex
		calls int
	)
	m.OnChange(func(Change) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Degrade("concurrent")
		}()
	}
	wg.Wait()

	assert.True(t, m.IsDegraded())
	assert.Equal(t, 1, calls)
}

func TestMode_ResetIsSilent(t *testing.T) {
	m := NewMode()
	m.Degrade("x")

	notified := false
	m.OnChange(func(Change) { notified = true })
	m.Reset()

	assert.False(t, m.IsDegraded())
	assert.False(t, notified)
}
