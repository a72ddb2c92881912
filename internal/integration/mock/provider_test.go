package mock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/a1betting-bridge/pkg/contracts/api"
)

func fixedClock() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }

func TestBettingOpportunities_FixtureOrder(t *testing.T) {
	p := NewProvider()

	opps := p.BettingOpportunities("", 0)

	require.Len(t, opps, 3)
	assert.Equal(t, []string{api.RiskMedium, api.RiskLow, api.RiskHigh},
		[]string{opps[0].RiskLevel, opps[1].RiskLevel, opps[2].RiskLevel})
}

func TestBettingOpportunities_Invariants(t *testing.T) {
	for _, o := range NewProvider().BettingOpportunities("", 10) {
		assert.GreaterOrEqual(t, o.Probability, 0.0)
		assert.LessOrEqual(t, o.Probability, 1.0)
		assert.GreaterOrEqual(t, o.Confidence, 0.0)
		assert.LessOrEqual(t, o.Confidence, 1.0)
		assert.Contains(t, []string{api.RiskLow, api.RiskMedium, api.RiskHigh}, o.RiskLevel)
	}
}

func TestBettingOpportunities_FilterAndLimit(t *testing.T) {
	p := NewProvider()

	football := p.BettingOpportunities("football", 0)
	require.Len(t, football, 1)
	assert.Equal(t, "bet_002", football[0].ID)

	assert.Len(t, p.BettingOpportunities("", 2), 2)
	assert.NotNil(t, p.BettingOpportunities("cricket", 0))
	assert.Empty(t, p.BettingOpportunities("cricket", 0))
}

func TestArbitrage_PositiveMargin(t *testing.T) {
	arbs := NewProvider().ArbitrageOpportunities(0)

	require.Len(t, arbs, 2)
	for _, a := range arbs {
		assert.Greater(t, a.ProfitMargin, 0.0)
	}
	assert.Len(t, NewProvider().ArbitrageOpportunities(1), 1)
}

func TestTransactions_RelativeTimestamps(t *testing.T) {
	p := NewProviderWithClock(fixedClock)

	resp := p.Transactions()

	require.Len(t, resp.Transactions, 3)
	assert.Equal(t, 3, resp.TotalCount)
	assert.Equal(t, "2024-03-10T11:00:00Z", resp.Transactions[0].Timestamp)
	assert.Equal(t, "2024-03-10T09:00:00Z", resp.Transactions[2].Timestamp)
}

func TestActiveBets_Shape(t *testing.T) {
	resp := NewProviderWithClock(fixedClock).ActiveBets()

	require.Len(t, resp.ActiveBets, 2)
	assert.Equal(t, "2024-03-10T11:30:00Z", resp.ActiveBets[0].PlacedAt)
	for _, b := range resp.ActiveBets {
		assert.Contains(t, []string{"active", "settled", "voided"}, b.Status)
	}
}

func TestRiskProfiles_StaticCatalog(t *testing.T) {
	profiles := NewProvider().RiskProfiles().Profiles

	require.Len(t, profiles, 3)
	assert.Equal(t, "conservative", profiles[0].ID)
	assert.Equal(t, "moderate", profiles[1].ID)
	assert.Equal(t, "aggressive", profiles[2].ID)
	assert.Equal(t, 0.5, profiles[0].KellyMultiplier)
}

func TestPredictions_TotalCountIsCatalogSize(t *testing.T) {
	resp := NewProvider().Predictions("football", 0)

	require.Len(t, resp.Predictions, 1)
	assert.Equal(t, 2, resp.TotalCount)
}

func TestProvider_IdempotentShape(t *testing.T) {
	calls := 0
	p := NewProviderWithClock(func() time.Time {
		calls++
		return fixedClock().Add(time.Duration(calls) * time.Minute)
	})

	a, b := p.Transactions(), p.Transactions()
	assert.Equal(t, len(a.Transactions), len(b.Transactions))
	assert.NotEqual(t, a.Transactions[0].Timestamp, b.Transactions[0].Timestamp)

	assert.Equal(t, len(p.BettingOpportunities("", 0)), len(p.BettingOpportunities("", 0)))
	assert.Equal(t, len(p.Health().Services), len(p.Health().Services))
	assert.Equal(t, len(p.AdvancedAnalytics().PerformanceTrends), len(p.AdvancedAnalytics().PerformanceTrends))
}

func TestProvider_ReturnsFreshSlices(t *testing.T) {
	p := NewProvider()

	first := p.BettingOpportunities("", 0)
	first[0].RiskLevel = "mutated"

	assert.Equal(t, api.RiskMedium, p.BettingOpportunities("", 0)[0].RiskLevel)
}
