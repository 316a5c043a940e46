package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPassengerArrangementAccepts(t *testing.T) {
	a, err := NewPassengerArrangement(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Count())
}

func TestNewPassengerArrangementRejectsZero(t *testing.T) {
	_, err := NewPassengerArrangement(0, 0)
	assert.ErrorIs(t, err, ErrNoPassengers)
}

func TestNewPassengerArrangementRejectsTooMany(t *testing.T) {
	_, err := NewPassengerArrangement(255, 1)
	assert.ErrorIs(t, err, ErrTooManyPassengers)
}

func namedPassenger(t *testing.T, name string, dob time.Time) Passenger {
	t.Helper()
	n, err := NewPersonFullName(name)
	require.NoError(t, err)
	return Passenger{Name: n, DateOfBirth: dob}
}

func TestPassengersListMatchingCount(t *testing.T) {
	arrangement, err := NewPassengerArrangement(2, 0)
	require.NoError(t, err)
	passengers := NewPassengers(arrangement)

	list := NewSortedSet(
		namedPassenger(t, "Niels Bergsma", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)),
		namedPassenger(t, "Karina Sands", time.Date(1992, 6, 1, 0, 0, 0, 0, time.UTC)),
	)
	named, err := passengers.List(list)
	require.NoError(t, err)
	assert.True(t, named.IsList())
	assert.Equal(t, 2, named.Count())
}

func TestPassengersListRejectsCountMismatch(t *testing.T) {
	arrangement, err := NewPassengerArrangement(2, 0)
	require.NoError(t, err)
	passengers := NewPassengers(arrangement)

	list := NewSortedSet(namedPassenger(t, "Niels Bergsma", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)))
	_, err = passengers.List(list)
	assert.ErrorIs(t, err, ErrNumberOfPassengersAreDifferent)
}

func TestPassengersArrangementFromList(t *testing.T) {
	arrangement, err := NewPassengerArrangement(2, 0)
	require.NoError(t, err)
	passengers := NewPassengers(arrangement)

	asOf := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	list := NewSortedSet(
		namedPassenger(t, "Niels Bergsma", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)),
		namedPassenger(t, "Baby Bergsma", time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)),
	)
	named, err := passengers.List(list)
	require.NoError(t, err)

	split := named.Arrangement(asOf)
	assert.Equal(t, uint8(1), split.Adults)
	assert.Equal(t, uint8(1), split.Children)
}

func TestPassengersEqual(t *testing.T) {
	a1, _ := NewPassengerArrangement(2, 1)
	a2, _ := NewPassengerArrangement(2, 1)
	assert.True(t, NewPassengers(a1).Equal(NewPassengers(a2)))

	a3, _ := NewPassengerArrangement(3, 0)
	assert.False(t, NewPassengers(a1).Equal(NewPassengers(a3)))
}
