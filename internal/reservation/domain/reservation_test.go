package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContact(t *testing.T) Contact {
	t.Helper()
	name, err := NewPersonFullName("Niels Bergsma")
	require.NoError(t, err)
	email, err := NewEmailAddress("n.bergsma@internet.com")
	require.NoError(t, err)
	return NewContact(name, email)
}

func testPassengers(t *testing.T, count uint8) Passengers {
	t.Helper()
	arrangement, err := NewPassengerArrangement(count, 0)
	require.NoError(t, err)
	return NewPassengers(arrangement)
}

func testItinerary(t *testing.T, departure time.Time) Itinerary {
	t.Helper()
	f := mustFlight(t, mustRoute(t, "EHAM", "ENLI"), departure, departure.Add(2*time.Hour))
	it, err := NewItinerary([]ItineraryStage{NewPlannedStage(f, nil)})
	require.NoError(t, err)
	return it
}

func TestNewConfirmedReservation(t *testing.T) {
	departure := time.Now().AddDate(0, 0, 30)
	itinerary := testItinerary(t, departure)

	r, err := NewConfirmedReservation(TestPolicy(), NewReservationId(), NewJourneyId(), testContact(t), testPassengers(t, 2), itinerary)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Version())
	assert.False(t, r.Cancelled)
}

func TestNewConfirmedReservationRejectsShortlyBeforeDeparture(t *testing.T) {
	departure := time.Now().AddDate(0, 0, 1)
	itinerary := testItinerary(t, departure)

	_, err := NewConfirmedReservation(PassengerPolicy(), NewReservationId(), NewJourneyId(), testContact(t), testPassengers(t, 2), itinerary)
	assert.ErrorIs(t, err, ErrNotAllowedToConfirmShortlyBeforeDeparture)
}

func TestRevisePassengersPushesRevisionAndReplans(t *testing.T) {
	departure := time.Now().AddDate(0, 0, 30)
	itinerary := testItinerary(t, departure)
	r, err := NewConfirmedReservation(TestPolicy(), NewReservationId(), NewJourneyId(), testContact(t), testPassengers(t, 2), itinerary)
	require.NoError(t, err)
	r.Itinerary = r.Itinerary.MarkFlightAsReserved(r.Itinerary.Stages[0].Flight.ID)

	revised, err := r.RevisePassengers(TestPolicy(), testPassengers(t, 3))
	require.NoError(t, err)
	assert.Equal(t, 1, revised.Version())
	assert.Equal(t, StagePlanned, revised.Itinerary.Stages[0].State)
	assert.Equal(t, StageReserved, revised.Revisions[0].Itinerary.Stages[0].State)
}

func TestRevisePassengersNoopWhenUnchanged(t *testing.T) {
	departure := time.Now().AddDate(0, 0, 30)
	itinerary := testItinerary(t, departure)
	passengers := testPassengers(t, 2)
	r, err := NewConfirmedReservation(TestPolicy(), NewReservationId(), NewJourneyId(), testContact(t), passengers, itinerary)
	require.NoError(t, err)

	same, err := r.RevisePassengers(TestPolicy(), passengers)
	require.NoError(t, err)
	assert.Equal(t, 0, same.Version())
}

func TestCancelReservation(t *testing.T) {
	departure := time.Now().AddDate(0, 0, 30)
	itinerary := testItinerary(t, departure)
	r, err := NewConfirmedReservation(TestPolicy(), NewReservationId(), NewJourneyId(), testContact(t), testPassengers(t, 2), itinerary)
	require.NoError(t, err)

	at := time.Now()
	cancelled, err := r.Cancel(TestPolicy(), at)
	require.NoError(t, err)
	assert.True(t, cancelled.Cancelled)
	assert.Equal(t, 1, cancelled.Version())
}

func TestCancelAlreadyCancelledReservationFails(t *testing.T) {
	departure := time.Now().AddDate(0, 0, 30)
	itinerary := testItinerary(t, departure)
	r, err := NewConfirmedReservation(TestPolicy(), NewReservationId(), NewJourneyId(), testContact(t), testPassengers(t, 2), itinerary)
	require.NoError(t, err)

	cancelled, err := r.Cancel(TestPolicy(), time.Now())
	require.NoError(t, err)

	_, err = cancelled.Cancel(TestPolicy(), time.Now())
	assert.ErrorIs(t, err, ErrReservationIsAlreadyCancelled)

	_, err = cancelled.RevisePassengers(TestPolicy(), testPassengers(t, 3))
	assert.ErrorIs(t, err, ErrReservationIsAlreadyCancelled)
}

func TestMarkFlightAsReservedRewritesCurrentVersionOnly(t *testing.T) {
	departure := time.Now().AddDate(0, 0, 30)
	itinerary := testItinerary(t, departure)
	r, err := NewConfirmedReservation(TestPolicy(), NewReservationId(), NewJourneyId(), testContact(t), testPassengers(t, 2), itinerary)
	require.NoError(t, err)
	flightID := r.Itinerary.Stages[0].Flight.ID

	revised, err := r.RevisePassengers(TestPolicy(), testPassengers(t, 3))
	require.NoError(t, err)
	assert.Equal(t, 1, revised.Version())

	marked := revised.MarkFlightAsReserved(flightID, revised.Version())
	assert.Equal(t, StageReserved, marked.Itinerary.Stages[0].State)
	assert.Equal(t, StageAnnulled, marked.Revisions[0].Itinerary.Stages[0].State)
}

func TestMarkFlightAsReservedIgnoredWhenVersionStale(t *testing.T) {
	departure := time.Now().AddDate(0, 0, 30)
	itinerary := testItinerary(t, departure)
	r, err := NewConfirmedReservation(TestPolicy(), NewReservationId(), NewJourneyId(), testContact(t), testPassengers(t, 2), itinerary)
	require.NoError(t, err)
	flightID := r.Itinerary.Stages[0].Flight.ID

	marked := r.MarkFlightAsReserved(flightID, 5)
	assert.Equal(t, StagePlanned, marked.Itinerary.Stages[0].State)
}

// TestReservationRoundTripsThroughJSON guards against the sum-type value
// objects (Passengers, EmailAddress) losing their unexported state across
// the repository's marshal/unmarshal boundary, which is how every aggregate
// is actually persisted.
func TestReservationRoundTripsThroughJSON(t *testing.T) {
	departure := time.Now().AddDate(0, 0, 30)
	itinerary := testItinerary(t, departure)

	contact := testContact(t)
	verifiedContact, err := contact.VerifyEmail(contact.EmailVerifyChallenge())
	require.NoError(t, err)
	phone, err := NewPhoneNumber("+31612345678")
	require.NoError(t, err)
	verifiedContact = verifiedContact.WithPhone(phone)

	r, err := NewConfirmedReservation(TestPolicy(), NewReservationId(), NewJourneyId(), verifiedContact, testPassengers(t, 2), itinerary)
	require.NoError(t, err)
	r.Itinerary = r.Itinerary.MarkFlightAsReserved(r.Itinerary.Stages[0].Flight.ID)
	r, err = r.RevisePassengers(TestPolicy(), testPassengers(t, 3))
	require.NoError(t, err)

	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var restored Reservation
	require.NoError(t, json.Unmarshal(raw, &restored))

	assert.True(t, restored.Contact.EmailIsVerified())
	assert.Equal(t, contact.Email.String(), restored.Contact.Email.String())
	assert.True(t, restored.Contact.PhoneIsPresent())
	assert.Equal(t, 3, restored.Passengers.Count())
	assert.Equal(t, 1, restored.Version())
	require.Len(t, restored.Revisions, 1)
	assert.Equal(t, 2, restored.Revisions[0].Passengers.Count())
}

// TestReservationWithNamedPassengerListRoundTripsThroughJSON covers the
// List variant of Passengers specifically, since it serializes through a
// SortedSet rather than a plain struct.
func TestReservationWithNamedPassengerListRoundTripsThroughJSON(t *testing.T) {
	departure := time.Now().AddDate(0, 0, 30)
	itinerary := testItinerary(t, departure)

	arrangement := testPassengers(t, 2)
	named, err := arrangement.List(NewSortedSet(
		namedPassenger(t, "Alice Anderson", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)),
		namedPassenger(t, "Bob Anderson", time.Date(1991, 2, 2, 0, 0, 0, 0, time.UTC)),
	))
	require.NoError(t, err)

	r, err := NewConfirmedReservation(TestPolicy(), NewReservationId(), NewJourneyId(), testContact(t), named, itinerary)
	require.NoError(t, err)

	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var restored Reservation
	require.NoError(t, json.Unmarshal(raw, &restored))

	assert.True(t, restored.Passengers.IsList())
	assert.Equal(t, 2, restored.Passengers.Count())
	assert.True(t, named.Equal(restored.Passengers))
}
