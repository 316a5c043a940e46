package domain

import (
	"errors"
	"time"
)

var (
	ErrTooFewSegments              = errors.New("journey needs at least two segments")
	ErrTooManySegments             = errors.New("journey allows at most 20 segments")
	ErrSegmentsDontFormARoundTrip  = errors.New("segments do not form a round trip")
)

const (
	minJourneySegments = 2
	maxJourneySegments = 20
)

// Journey is a published template of segments forming a round trip.
// Equality is by id.
type Journey struct {
	ID       JourneyId
	Name     JourneyName
	Segments []Segment
}

// NewJourney validates that segments form a connected single cycle: for
// every segment, exactly one other segment departs from its arrival
// airfield.
func NewJourney(id JourneyId, name JourneyName, segments []Segment) (Journey, error) {
	if len(segments) < minJourneySegments {
		return Journey{}, ErrTooFewSegments
	}
	if len(segments) > maxJourneySegments {
		return Journey{}, ErrTooManySegments
	}
	for _, s := range segments {
		count := 0
		for _, other := range segments {
			if other.DepartsFrom() == s.ArrivesAt() {
				count++
			}
		}
		if count != 1 {
			return Journey{}, ErrSegmentsDontFormARoundTrip
		}
	}
	return Journey{ID: id, Name: name, Segments: segments}, nil
}

func (j Journey) Equal(other Journey) bool { return j.ID == other.ID }

// segmentFrom returns the unique segment departing from the given airfield.
func (j Journey) segmentFrom(airfield AirfieldId) (Segment, bool) {
	for _, s := range j.Segments {
		if s.DepartsFrom() == airfield {
			return s, true
		}
	}
	return Segment{}, false
}

// FindAccommodation returns the accommodation with id among segments
// arriving at location, if any.
func (j Journey) FindAccommodation(location AirfieldId, id AccommodationId) (Accommodation, bool) {
	for _, s := range j.Segments {
		if s.ArrivesAt() != location {
			continue
		}
		for _, a := range s.Accommodations.Items() {
			if a.ID == id {
				return a, true
			}
		}
	}
	return Accommodation{}, false
}

const (
	journeyMinDaysInAccommodation = 3
	journeyMaxDaysInAccommodation = 21
)

var (
	ErrNoStages                     = errors.New("no stages submitted")
	ErrLastStageHasAccommodation    = errors.New("last stage has an accommodation")
	ErrMalformedRoute               = errors.New("stages do not match a valid route")
	ErrAccommodationNotInStage      = errors.New("accommodation is not offered in this stage")
	ErrFlightsAreNotConsecutive     = errors.New("flights are not consecutive")
	ErrDaysInAccommodationIsTooShort = errors.New("stay is shorter than the minimum allowed")
	ErrDaysInAccommodationIsTooLong  = errors.New("stay is longer than the maximum allowed")
)

// StageInput is one submitted (flight, optional accommodation) pair to be
// resolved against the journey's segment graph.
type StageInput struct {
	Flight        Flight
	Accommodation *Accommodation
}

// ParseItinerary validates and lifts a submitted sequence of stage inputs
// into an Itinerary by walking the journey's cycle from the first stage's
// departure airfield.
func (j Journey) ParseItinerary(stages []StageInput) (Itinerary, error) {
	if len(stages) == 0 {
		return Itinerary{}, ErrNoStages
	}
	if stages[len(stages)-1].Accommodation != nil {
		return Itinerary{}, ErrLastStageHasAccommodation
	}

	path, err := j.resolvePath(stages[0].Flight.Route.Departure, stages[len(stages)-1].Flight.Route.Arrival, len(stages))
	if err != nil {
		return Itinerary{}, err
	}
	if len(path) != len(stages) {
		return Itinerary{}, ErrMalformedRoute
	}

	out := make([]ItineraryStage, len(stages))
	for i, input := range stages {
		segment := path[i]
		if !input.Flight.Route.Equal(segment.Flight) {
			return Itinerary{}, ErrMalformedRoute
		}
		if input.Accommodation != nil && !segment.Accommodations.Contains(*input.Accommodation) {
			return Itinerary{}, ErrAccommodationNotInStage
		}
		out[i] = NewPlannedStage(input.Flight, input.Accommodation)
	}

	for i := 0; i < len(out)-1; i++ {
		earlier := out[i]
		later := out[i+1]
		if !earlier.Flight.Arrival.Before(later.Flight.Departure) {
			return Itinerary{}, ErrFlightsAreNotConsecutive
		}
		days := daysBetween(earlier.Flight.Arrival, later.Flight.Departure)
		if earlier.Accommodation != nil && days < journeyMinDaysInAccommodation {
			return Itinerary{}, ErrDaysInAccommodationIsTooShort
		}
		if days > journeyMaxDaysInAccommodation {
			return Itinerary{}, ErrDaysInAccommodationIsTooLong
		}
	}

	return NewItinerary(out)
}

// resolvePath walks the cycle starting at departure, accumulating segments
// until arrival is reached or the path exceeds maxLen (a guard against
// infinite loops on a malformed graph).
func (j Journey) resolvePath(departure, arrival AirfieldId, maxLen int) ([]Segment, error) {
	var path []Segment
	current := departure
	for len(path) <= maxLen {
		segment, ok := j.segmentFrom(current)
		if !ok {
			return nil, ErrMalformedRoute
		}
		path = append(path, segment)
		if segment.ArrivesAt() == arrival {
			return path, nil
		}
		current = segment.ArrivesAt()
	}
	return nil, ErrMalformedRoute
}

// daysBetween returns the number of calendar days between the date of
// earlier and the date of later, truncating both to midnight UTC first.
func daysBetween(earlier, later time.Time) int {
	e := time.Date(earlier.Year(), earlier.Month(), earlier.Day(), 0, 0, 0, 0, time.UTC)
	l := time.Date(later.Year(), later.Month(), later.Day(), 0, 0, 0, 0, time.UTC)
	return int(l.Sub(e).Hours() / 24)
}
