package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/a1betting-bridge/internal/integration/backend"
	"github.com/radieske/a1betting-bridge/internal/integration/state"
	cevents "github.com/radieske/a1betting-bridge/pkg/contracts/events"
)

func TestModeMessage(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("BRT", -3*3600))
	msg := modeMessage(state.Change{From: state.Live, To: state.Degraded, Reason: "html instead of json", At: at}, "http://a1", "integration-bridge")

	assert.Equal(t, cevents.RealtimeModeChanged, msg.Type)
	var ev cevents.ModeChanged
	require.NoError(t, json.Unmarshal(msg.Data, &ev))
	assert.Equal(t, "LIVE", ev.From)
	assert.Equal(t, "DEGRADED", ev.To)
	assert.Equal(t, "html instead of json", ev.Reason)
	assert.Equal(t, "http://a1", ev.BaseURL)
	assert.True(t, ev.ChangedAt.Equal(at))
	assert.Equal(t, time.UTC, ev.ChangedAt.Location())
}

func TestInvalidations(t *testing.T) {
	assert.ElementsMatch(t, []string{
		backend.ResourceBettingOpportunities, backend.ResourceValueBets, backend.ResourceArbitrageOpportunities,
	}, invalidations[cevents.RealtimeOddsUpdate])
	assert.ElementsMatch(t, []string{
		backend.ResourcePredictions, backend.ResourceUltraAccuracyPredictions,
	}, invalidations[cevents.RealtimePredictionUpdate])
	assert.ElementsMatch(t, []string{
		backend.ResourceActiveBets, backend.ResourceTransactions,
	}, invalidations[cevents.RealtimeBetUpdate])
	assert.Empty(t, invalidations[cevents.RealtimeConnection])
}
