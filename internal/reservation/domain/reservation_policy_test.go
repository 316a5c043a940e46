package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itineraryDeparting(t *testing.T, departure time.Time) Itinerary {
	t.Helper()
	f := mustFlight(t, mustRoute(t, "EHAM", "ENLI"), departure, departure.Add(2*time.Hour))
	it, err := NewItinerary([]ItineraryStage{NewPlannedStage(f, nil)})
	require.NoError(t, err)
	return it
}

func TestPassengerPolicyWithinRevisionWindow(t *testing.T) {
	now := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	policy := PassengerPolicy()
	policy.Now = func() time.Time { return now }

	farEnough := itineraryDeparting(t, now.AddDate(0, 0, 7))
	assert.True(t, policy.WithinRevisionPeriod(farEnough))

	tooClose := itineraryDeparting(t, now.AddDate(0, 0, 6))
	assert.False(t, policy.WithinRevisionPeriod(tooClose))
}

func TestPassengerPolicyWithinCancellationWindow(t *testing.T) {
	now := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	policy := PassengerPolicy()
	policy.Now = func() time.Time { return now }

	farEnough := itineraryDeparting(t, now.AddDate(0, 0, 1))
	assert.True(t, policy.WithinCancellationPeriod(farEnough))

	tooClose := itineraryDeparting(t, now)
	assert.False(t, policy.WithinCancellationPeriod(tooClose))
}

func TestAgentPolicyAllowsAnytime(t *testing.T) {
	now := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	policy := AgentPolicy()
	policy.Now = func() time.Time { return now }

	departsToday := itineraryDeparting(t, now)
	assert.True(t, policy.WithinRevisionPeriod(departsToday))
	assert.True(t, policy.WithinCancellationPeriod(departsToday))
}
