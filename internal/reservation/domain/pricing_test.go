package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sevenDayItinerary(t *testing.T, departure time.Time) Itinerary {
	t.Helper()
	outbound := mustFlight(t, mustRoute(t, "EHAM", "ENLI"), departure, departure.Add(2*time.Hour))
	inbound := mustFlight(t, mustRoute(t, "ENLI", "EHAM"), departure.AddDate(0, 0, 7), departure.AddDate(0, 0, 7).Add(2*time.Hour))
	it, err := NewItinerary([]ItineraryStage{NewPlannedStage(outbound, nil), NewPlannedStage(inbound, nil)})
	require.NoError(t, err)
	return it
}

func TestPriceMatchesLiteralScenario(t *testing.T) {
	departure := time.Date(2030, 5, 8, 9, 0, 0, 0, time.UTC)
	itinerary := sevenDayItinerary(t, departure)
	r, err := NewConfirmedReservation(TestPolicy(), NewReservationId(), NewJourneyId(), testContact(t), testPassengers(t, 2), itinerary)
	require.NoError(t, err)

	price := Price(r)
	assert.Equal(t, "1920.00", price.Amount.StringFixed(2))
	assert.Equal(t, "USD", price.Currency)
}

func TestCancellationChargeAt12DaysBeforeDeparture(t *testing.T) {
	departure := time.Date(2030, 5, 8, 9, 0, 0, 0, time.UTC)
	itinerary := sevenDayItinerary(t, departure)
	r, err := NewConfirmedReservation(TestPolicy(), NewReservationId(), NewJourneyId(), testContact(t), testPassengers(t, 2), itinerary)
	require.NoError(t, err)

	cancelledAt := departure.AddDate(0, 0, -12)
	cancelled, err := r.Cancel(TestPolicy(), cancelledAt)
	require.NoError(t, err)

	charge := CancellationCharge(cancelled)
	assert.Equal(t, "480.00", charge.Amount.StringFixed(2))
}

func TestRefundPercentBoundaries(t *testing.T) {
	cases := []struct {
		days    int
		percent int
	}{
		{15, 100},
		{14, 75},
		{10, 75},
		{9, 50},
		{5, 50},
		{4, 0},
		{0, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.percent, refundPercent(c.days), "days=%d", c.days)
	}
}
