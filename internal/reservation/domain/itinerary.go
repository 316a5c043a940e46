package domain

import (
	"errors"
	"time"
)

// StageState is the per-leg reservation status of an ItineraryStage.
type StageState string

const (
	StagePlanned        StageState = "planned"
	StageReserved       StageState = "reserved"
	StageReservedFailed StageState = "reserved_failed"
	StageAnnulled       StageState = "annulled"
)

// ItineraryStage is one leg of an itinerary: a flight, an optional
// accommodation at its arrival, and the leg's current reservation state.
type ItineraryStage struct {
	Flight        Flight
	Accommodation *Accommodation
	State         StageState
	FailureReason string
}

func NewPlannedStage(flight Flight, accommodation *Accommodation) ItineraryStage {
	return ItineraryStage{Flight: flight, Accommodation: accommodation, State: StagePlanned}
}

// Itinerary is a validated, non-empty ordered sequence of stages.
type Itinerary struct {
	Stages []ItineraryStage
}

var ErrEmptyItinerary = errors.New("itinerary must have at least one stage")

func NewItinerary(stages []ItineraryStage) (Itinerary, error) {
	if len(stages) == 0 {
		return Itinerary{}, ErrEmptyItinerary
	}
	return Itinerary{Stages: stages}, nil
}

func (it Itinerary) transform(flightID FlightId, f func(ItineraryStage) ItineraryStage) Itinerary {
	stages := make([]ItineraryStage, len(it.Stages))
	for i, s := range it.Stages {
		if s.Flight.ID == flightID {
			stages[i] = f(s)
		} else {
			stages[i] = s
		}
	}
	return Itinerary{Stages: stages}
}

func (it Itinerary) MarkFlightAsReserved(flightID FlightId) Itinerary {
	return it.transform(flightID, func(s ItineraryStage) ItineraryStage {
		s.State = StageReserved
		s.FailureReason = ""
		return s
	})
}

func (it Itinerary) MarkFlightAsReservedFailed(flightID FlightId, reason string) Itinerary {
	return it.transform(flightID, func(s ItineraryStage) ItineraryStage {
		s.State = StageReservedFailed
		s.FailureReason = reason
		return s
	})
}

func (it Itinerary) MarkFlightAsAnnulled(flightID FlightId) Itinerary {
	return it.transform(flightID, func(s ItineraryStage) ItineraryStage {
		s.State = StageAnnulled
		s.FailureReason = ""
		return s
	})
}

// AllAnnulled reports whether every stage is Annulled.
func (it Itinerary) AllAnnulled() bool {
	for _, s := range it.Stages {
		if s.State != StageAnnulled {
			return false
		}
	}
	return true
}

// AllReservedOrFailed reports whether every stage is Reserved or
// ReservedFailed (i.e. the saga has nothing further to request for the
// live itinerary).
func (it Itinerary) AllReservedOrFailed() bool {
	for _, s := range it.Stages {
		if s.State != StageReserved && s.State != StageReservedFailed {
			return false
		}
	}
	return true
}

// FirstNotYetReserved returns the index of the first stage that is Planned
// or Annulled, i.e. eligible for a new reservation request.
func (it Itinerary) FirstNotYetReserved() (int, bool) {
	for i, s := range it.Stages {
		if s.State == StagePlanned || s.State == StageAnnulled {
			return i, true
		}
	}
	return 0, false
}

// FirstNotYetAnnulled returns the index of the first stage not already
// Annulled.
func (it Itinerary) FirstNotYetAnnulled() (int, bool) {
	for i, s := range it.Stages {
		if s.State != StageAnnulled {
			return i, true
		}
	}
	return 0, false
}

// Planned projects every stage back to Planned, discarding reservation
// status but keeping flight/accommodation content.
func (it Itinerary) Planned() Itinerary {
	stages := make([]ItineraryStage, len(it.Stages))
	for i, s := range it.Stages {
		stages[i] = ItineraryStage{Flight: s.Flight, Accommodation: s.Accommodation, State: StagePlanned}
	}
	return Itinerary{Stages: stages}
}

// Equivalent reports whether the planned projections of two itineraries
// are equal (same flights/accommodations, ignoring reservation state).
func (it Itinerary) Equivalent(other Itinerary) bool {
	a, b := it.Planned(), other.Planned()
	if len(a.Stages) != len(b.Stages) {
		return false
	}
	for i := range a.Stages {
		if a.Stages[i].Flight.ID != b.Stages[i].Flight.ID {
			return false
		}
		if (a.Stages[i].Accommodation == nil) != (b.Stages[i].Accommodation == nil) {
			return false
		}
		if a.Stages[i].Accommodation != nil && a.Stages[i].Accommodation.ID != b.Stages[i].Accommodation.ID {
			return false
		}
	}
	return true
}

func (it Itinerary) DepartureDate() time.Time { return it.Stages[0].Flight.Departure }

// DurationDays returns the difference in calendar days between the first
// stage's departure and the last stage's arrival (same day is 0); the
// pricing formula adds 1 to it.
func (it Itinerary) DurationDays() int {
	first := it.Stages[0].Flight.Departure
	last := it.Stages[len(it.Stages)-1].Flight.Arrival
	return daysBetween(first, last)
}
