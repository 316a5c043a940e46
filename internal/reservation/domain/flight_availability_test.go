package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlightAvailabilityReserveWithinCapacity(t *testing.T) {
	f, err := NewFlight(NewFlightId(), mustRoute(t, "EHAM", "ENLI"), time.Now(), time.Now().Add(time.Hour), 4)
	require.NoError(t, err)
	avail := NewFlightAvailability(f)
	assert.Equal(t, 4, avail.SeatsAvailable())

	reservationID := NewReservationId()
	updated, err := avail.Reserve(reservationID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.SeatsAvailable())
}

func TestFlightAvailabilityReserveRejectsInsufficientSeats(t *testing.T) {
	f, err := NewFlight(NewFlightId(), mustRoute(t, "EHAM", "ENLI"), time.Now(), time.Now().Add(time.Hour), 2)
	require.NoError(t, err)
	avail := NewFlightAvailability(f)

	_, err = avail.Reserve(NewReservationId(), 3)
	assert.ErrorIs(t, err, ErrInsufficientSeats)
}

func TestFlightAvailabilityReserveIsIdempotent(t *testing.T) {
	f, err := NewFlight(NewFlightId(), mustRoute(t, "EHAM", "ENLI"), time.Now(), time.Now().Add(time.Hour), 4)
	require.NoError(t, err)
	avail := NewFlightAvailability(f)
	reservationID := NewReservationId()

	first, err := avail.Reserve(reservationID, 2)
	require.NoError(t, err)
	second, err := first.Reserve(reservationID, 2)
	require.NoError(t, err)
	assert.Equal(t, first.SeatsAvailable(), second.SeatsAvailable())
	assert.Len(t, second.SeatReservations, 2)
}

func TestFlightAvailabilityReserveZeroReleasesSeats(t *testing.T) {
	f, err := NewFlight(NewFlightId(), mustRoute(t, "EHAM", "ENLI"), time.Now(), time.Now().Add(time.Hour), 4)
	require.NoError(t, err)
	avail := NewFlightAvailability(f)
	reservationID := NewReservationId()

	held, err := avail.Reserve(reservationID, 2)
	require.NoError(t, err)
	released, err := held.Reserve(reservationID, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, released.SeatsAvailable())
}
