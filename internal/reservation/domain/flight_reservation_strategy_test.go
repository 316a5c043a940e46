package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRequestReservesFirstPlannedStage(t *testing.T) {
	departure := time.Now().AddDate(0, 0, 30)
	itinerary := testItinerary(t, departure)
	r, err := NewConfirmedReservation(TestPolicy(), NewReservationId(), NewJourneyId(), testContact(t), testPassengers(t, 2), itinerary)
	require.NoError(t, err)

	req, ok := NextRequest(r)
	require.True(t, ok)
	assert.Equal(t, r.Itinerary.Stages[0].Flight.ID, req.Flight)
	assert.Equal(t, 2, req.Seats)
}

func TestNextRequestConvergesOnceAllStagesReserved(t *testing.T) {
	departure := time.Now().AddDate(0, 0, 30)
	itinerary := testItinerary(t, departure)
	r, err := NewConfirmedReservation(TestPolicy(), NewReservationId(), NewJourneyId(), testContact(t), testPassengers(t, 2), itinerary)
	require.NoError(t, err)
	r.Itinerary = r.Itinerary.MarkFlightAsReserved(r.Itinerary.Stages[0].Flight.ID)

	_, ok := NextRequest(r)
	assert.False(t, ok)
}

func TestNextRequestReplansLiveItineraryAfterPassengerRevision(t *testing.T) {
	departure := time.Now().AddDate(0, 0, 30)
	itinerary := testItinerary(t, departure)
	r, err := NewConfirmedReservation(TestPolicy(), NewReservationId(), NewJourneyId(), testContact(t), testPassengers(t, 2), itinerary)
	require.NoError(t, err)
	originalFlightID := r.Itinerary.Stages[0].Flight.ID
	r.Itinerary = r.Itinerary.MarkFlightAsReserved(originalFlightID)

	revised, err := r.RevisePassengers(TestPolicy(), testPassengers(t, 3))
	require.NoError(t, err)

	req, ok := NextRequest(revised)
	require.True(t, ok)
	assert.Equal(t, originalFlightID, req.Flight)
	assert.Equal(t, 3, req.Seats)
	assert.Equal(t, revised.Version(), req.Version)
}

func TestNextRequestAnnulsAllStagesOnCancellation(t *testing.T) {
	departure := time.Now().AddDate(0, 0, 30)
	itinerary := testItinerary(t, departure)
	r, err := NewConfirmedReservation(TestPolicy(), NewReservationId(), NewJourneyId(), testContact(t), testPassengers(t, 2), itinerary)
	require.NoError(t, err)
	r.Itinerary = r.Itinerary.MarkFlightAsReserved(r.Itinerary.Stages[0].Flight.ID)

	cancelled, err := r.Cancel(TestPolicy(), time.Now())
	require.NoError(t, err)

	req, ok := NextRequest(cancelled)
	require.True(t, ok)
	assert.Equal(t, 0, req.Seats)

	afterFirstStep := cancelled.MarkFlightAsAnnulled(req.Flight, req.Version)
	req2, ok := NextRequest(afterFirstStep)
	require.True(t, ok, "saga converges in two steps: revision history, then the live itinerary")

	fullyAnnulled := afterFirstStep.MarkFlightAsAnnulled(req2.Flight, req2.Version)
	_, ok = NextRequest(fullyAnnulled)
	assert.False(t, ok)
}
