package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAirfieldId(t *testing.T, s string) AirfieldId {
	t.Helper()
	id, err := NewAirfieldId(s)
	require.NoError(t, err)
	return id
}

func mustRoute(t *testing.T, from, to string) FlightRoute {
	t.Helper()
	r, err := NewFlightRoute(mustAirfieldId(t, from), mustAirfieldId(t, to))
	require.NoError(t, err)
	return r
}

func twoLegSegments(t *testing.T) []Segment {
	t.Helper()
	s1, err := NewSegment(mustRoute(t, "EHAM", "ENLI"), SortedSet[Accommodation]{})
	require.NoError(t, err)
	s2, err := NewSegment(mustRoute(t, "ENLI", "EHAM"), SortedSet[Accommodation]{})
	require.NoError(t, err)
	return []Segment{s1, s2}
}

func TestNewJourneyAcceptsRoundTrip(t *testing.T) {
	id := NewJourneyId()
	name, err := NewJourneyName("Fjord Loop")
	require.NoError(t, err)

	j, err := NewJourney(id, name, twoLegSegments(t))
	require.NoError(t, err)
	assert.Len(t, j.Segments, 2)
}

func TestNewJourneyRejectsTooFewSegments(t *testing.T) {
	name, _ := NewJourneyName("Fjord Loop")
	s1, _ := NewSegment(mustRoute(t, "EHAM", "ENLI"), SortedSet[Accommodation]{})
	_, err := NewJourney(NewJourneyId(), name, []Segment{s1})
	assert.ErrorIs(t, err, ErrTooFewSegments)
}

func TestNewJourneyRejectsTooManySegments(t *testing.T) {
	name, _ := NewJourneyName("Fjord Loop")
	airfields := make([]AirfieldId, 21)
	letters := "ABCDEFGHIJKLMNOPQRSTU"
	for i := range airfields {
		code := string([]byte{letters[i], letters[i], letters[i], letters[i]})
		airfields[i] = mustAirfieldId(t, code)
	}
	segments := make([]Segment, 21)
	for i := range segments {
		route, err := NewFlightRoute(airfields[i], airfields[(i+1)%21])
		require.NoError(t, err)
		seg, err := NewSegment(route, SortedSet[Accommodation]{})
		require.NoError(t, err)
		segments[i] = seg
	}
	_, err := NewJourney(NewJourneyId(), name, segments)
	assert.ErrorIs(t, err, ErrTooManySegments)
}

func TestNewJourneyRejectsNonCycle(t *testing.T) {
	name, _ := NewJourneyName("Broken Loop")
	s1, _ := NewSegment(mustRoute(t, "EHAM", "ENLI"), SortedSet[Accommodation]{})
	s2, _ := NewSegment(mustRoute(t, "EHAM", "EDDF"), SortedSet[Accommodation]{})
	_, err := NewJourney(NewJourneyId(), name, []Segment{s1, s2})
	assert.ErrorIs(t, err, ErrSegmentsDontFormARoundTrip)
}

func mustFlight(t *testing.T, route FlightRoute, departure, arrival time.Time) Flight {
	t.Helper()
	f, err := NewFlight(NewFlightId(), route, departure, arrival, 10)
	require.NoError(t, err)
	return f
}

func TestParseItineraryHappyPath(t *testing.T) {
	name, _ := NewJourneyName("Fjord Loop")
	j, err := NewJourney(NewJourneyId(), name, twoLegSegments(t))
	require.NoError(t, err)

	depart := time.Date(2030, 5, 8, 9, 0, 0, 0, time.UTC)
	f1 := mustFlight(t, mustRoute(t, "EHAM", "ENLI"), depart, depart.Add(2*time.Hour))
	f2 := mustFlight(t, mustRoute(t, "ENLI", "EHAM"), depart.AddDate(0, 0, 6), depart.AddDate(0, 0, 6).Add(2*time.Hour))

	itinerary, err := j.ParseItinerary([]StageInput{{Flight: f1}, {Flight: f2}})
	require.NoError(t, err)
	assert.Len(t, itinerary.Stages, 2)
	assert.Equal(t, StagePlanned, itinerary.Stages[0].State)
}

func TestParseItineraryRejectsEmpty(t *testing.T) {
	name, _ := NewJourneyName("Fjord Loop")
	j, err := NewJourney(NewJourneyId(), name, twoLegSegments(t))
	require.NoError(t, err)

	_, err = j.ParseItinerary(nil)
	assert.ErrorIs(t, err, ErrNoStages)
}

func TestParseItineraryRejectsLastStageAccommodation(t *testing.T) {
	name, _ := NewJourneyName("Fjord Loop")
	place := NewPlace(mustPlaceName(t, "Lista"), mustGeoHash(t, "u4kf6x"))
	pic := mustPicture(t)
	accSet := NewSortedSet(mustAccommodation(t, place, pic))

	s1, err := NewSegment(mustRoute(t, "EHAM", "ENLI"), accSet)
	require.NoError(t, err)
	s2, err := NewSegment(mustRoute(t, "ENLI", "EHAM"), SortedSet[Accommodation]{})
	require.NoError(t, err)
	j, err := NewJourney(NewJourneyId(), name, []Segment{s1, s2})
	require.NoError(t, err)

	depart := time.Date(2030, 5, 8, 9, 0, 0, 0, time.UTC)
	f1 := mustFlight(t, mustRoute(t, "EHAM", "ENLI"), depart, depart.Add(2*time.Hour))
	f2 := mustFlight(t, mustRoute(t, "ENLI", "EHAM"), depart.AddDate(0, 0, 6), depart.AddDate(0, 0, 6).Add(2*time.Hour))
	acc := accSet.Items()[0]

	_, err = j.ParseItinerary([]StageInput{{Flight: f1}, {Flight: f2, Accommodation: &acc}})
	assert.ErrorIs(t, err, ErrLastStageHasAccommodation)
}

func TestParseItineraryRejectsStayTooShort(t *testing.T) {
	name, _ := NewJourneyName("Fjord Loop")
	place := NewPlace(mustPlaceName(t, "Lista"), mustGeoHash(t, "u4kf6x"))
	pic := mustPicture(t)
	accSet := NewSortedSet(mustAccommodation(t, place, pic))

	s1, err := NewSegment(mustRoute(t, "EHAM", "ENLI"), accSet)
	require.NoError(t, err)
	s2, err := NewSegment(mustRoute(t, "ENLI", "EHAM"), SortedSet[Accommodation]{})
	require.NoError(t, err)
	j, err := NewJourney(NewJourneyId(), name, []Segment{s1, s2})
	require.NoError(t, err)

	depart := time.Date(2030, 5, 8, 9, 0, 0, 0, time.UTC)
	f1 := mustFlight(t, mustRoute(t, "EHAM", "ENLI"), depart, depart.Add(2*time.Hour))
	f2 := mustFlight(t, mustRoute(t, "ENLI", "EHAM"), depart.AddDate(0, 0, 1), depart.AddDate(0, 0, 1).Add(2*time.Hour))
	acc := accSet.Items()[0]

	_, err = j.ParseItinerary([]StageInput{{Flight: f1, Accommodation: &acc}, {Flight: f2}})
	assert.ErrorIs(t, err, ErrDaysInAccommodationIsTooShort)
}

func mustPlaceName(t *testing.T, s string) PlaceName {
	t.Helper()
	n, err := NewPlaceName(s)
	require.NoError(t, err)
	return n
}

func mustGeoHash(t *testing.T, s string) GeoHash {
	t.Helper()
	g, err := NewGeoHash(s)
	require.NoError(t, err)
	return g
}

func mustPicture(t *testing.T) Picture {
	t.Helper()
	p, err := NewPicture("https://example.com/pic.jpg", "A scenic fjord view")
	require.NoError(t, err)
	return p
}

func mustAccommodation(t *testing.T, place Place, pic Picture) Accommodation {
	t.Helper()
	name, err := NewAccommodationName("Fjord Lodge")
	require.NoError(t, err)
	a, err := NewAccommodation(NewAccommodationId(), name, place, NewSortedSet(pic))
	require.NoError(t, err)
	return a
}

// TestJourneyWithAccommodationsRoundTripsThroughJSON guards against
// SortedSet losing its elements across the repository's marshal/unmarshal
// boundary: a Journey's segment accommodations must survive a store/reload
// cycle for FindAccommodation to keep resolving them.
func TestJourneyWithAccommodationsRoundTripsThroughJSON(t *testing.T) {
	name, err := NewJourneyName("Fjord Loop")
	require.NoError(t, err)

	place := NewPlace(mustPlaceName(t, "Lista"), mustGeoHash(t, "u4kf6x"))
	pic := mustPicture(t)
	acc := mustAccommodation(t, place, pic)
	accSet := NewSortedSet(acc)

	s1, err := NewSegment(mustRoute(t, "EHAM", "ENLI"), accSet)
	require.NoError(t, err)
	s2, err := NewSegment(mustRoute(t, "ENLI", "EHAM"), SortedSet[Accommodation]{})
	require.NoError(t, err)

	j, err := NewJourney(NewJourneyId(), name, []Segment{s1, s2})
	require.NoError(t, err)

	raw, err := json.Marshal(j)
	require.NoError(t, err)

	var restored Journey
	require.NoError(t, json.Unmarshal(raw, &restored))

	require.Len(t, restored.Segments, 2)
	require.Equal(t, 1, restored.Segments[0].Accommodations.Len())

	found, ok := restored.FindAccommodation(restored.Segments[0].ArrivesAt(), acc.ID)
	require.True(t, ok)
	assert.Equal(t, acc.ID, found.ID)
	require.Equal(t, 1, found.Pictures.Len())
	assert.Equal(t, pic.URL, found.Pictures.Items()[0].URL)
}
