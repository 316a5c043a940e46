package domain

import (
	"errors"
	"time"
)

// Revision captures the state a reservation superseded at the moment of a
// passenger revision, itinerary revision, or cancellation. Revisions are
// prepended, so Revisions[0] is always the most recently superseded state.
type Revision struct {
	Version    int
	Passengers Passengers
	Itinerary  Itinerary
}

// Reservation is a sum type: Confirmed or Cancelled. Equality is by id.
// Version equals the number of revisions recorded so far.
type Reservation struct {
	ID         ReservationId
	Journey    JourneyId
	Contact    Contact
	Passengers Passengers
	Itinerary  Itinerary
	Revisions  []Revision
	Cancelled  bool
	CancelledAt time.Time
}

func (r Reservation) Version() int { return len(r.Revisions) }

func (r Reservation) Equal(other Reservation) bool { return r.ID == other.ID }

// NewConfirmedReservation constructs a fresh Confirmed reservation, gated
// by the revise-period policy check against the submitted itinerary.
func NewConfirmedReservation(policy ReservationPolicy, id ReservationId, journey JourneyId, contact Contact, passengers Passengers, itinerary Itinerary) (Reservation, error) {
	if !policy.WithinRevisionPeriod(itinerary) {
		return Reservation{}, ErrNotAllowedToConfirmShortlyBeforeDeparture
	}
	return Reservation{
		ID:         id,
		Journey:    journey,
		Contact:    contact,
		Passengers: passengers,
		Itinerary:  itinerary,
	}, nil
}

var ErrReservationIsAlreadyCancelled = errors.New("reservation is already cancelled")

func (r Reservation) pushRevision() []Revision {
	rev := Revision{Version: r.Version(), Passengers: r.Passengers, Itinerary: r.Itinerary}
	out := make([]Revision, 0, len(r.Revisions)+1)
	out = append(out, rev)
	out = append(out, r.Revisions...)
	return out
}

// RevisePassengers changes the passenger count/list, replanning the live
// itinerary (any reservation state is discarded back to Planned) so the
// saga re-drives seat reservations. No-op if passengers are unchanged.
func (r Reservation) RevisePassengers(policy ReservationPolicy, passengers Passengers) (Reservation, error) {
	if r.Cancelled {
		return r, ErrReservationIsAlreadyCancelled
	}
	if r.Passengers.Equal(passengers) {
		return r, nil
	}
	if !policy.WithinRevisionPeriod(r.Itinerary) {
		return r, ErrNotAllowedToReviseAnymore
	}
	next := r
	next.Revisions = r.pushRevision()
	next.Passengers = passengers
	next.Itinerary = r.Itinerary.Planned()
	return next, nil
}

// ReviseItinerary replaces the itinerary, gated by the revise-period check
// against both the old and new itineraries. No-op if equivalent.
func (r Reservation) ReviseItinerary(policy ReservationPolicy, itinerary Itinerary) (Reservation, error) {
	if r.Cancelled {
		return r, ErrReservationIsAlreadyCancelled
	}
	if r.Itinerary.Equivalent(itinerary) {
		return r, nil
	}
	if !policy.WithinRevisionPeriod(r.Itinerary) || !policy.WithinRevisionPeriod(itinerary) {
		return r, ErrNotAllowedToReviseAnymore
	}
	next := r
	next.Revisions = r.pushRevision()
	next.Itinerary = itinerary
	return next, nil
}

// Cancel transitions Confirmed to Cancelled, gated by the cancel-period
// check.
func (r Reservation) Cancel(policy ReservationPolicy, at time.Time) (Reservation, error) {
	if r.Cancelled {
		return r, ErrReservationIsAlreadyCancelled
	}
	if !policy.WithinCancellationPeriod(r.Itinerary) {
		return r, ErrNotAllowedToCancelAnymore
	}
	next := r
	next.Revisions = r.pushRevision()
	next.Cancelled = true
	next.CancelledAt = at
	return next, nil
}

// VerifyContactEmail delegates to the Contact's email verification.
func (r Reservation) VerifyContactEmail(challenge string) (Reservation, error) {
	contact, err := r.Contact.VerifyEmail(challenge)
	if err != nil {
		return r, err
	}
	r.Contact = contact
	return r, nil
}

// markFlight applies mark to the live itinerary iff version matches the
// current version, and additionally rewrites historical revisions: past
// revisions (rv < version) have this flight forced to Annulled (a saga
// compensation), the matching revision (rv == version) gets the same mark
// applied, and later revisions (rv > version, reached when a reply for an
// older version arrives after the reservation was revised) are left
// untouched.
func (r Reservation) markFlight(flight FlightId, version int, mark func(Itinerary) Itinerary) Reservation {
	next := r
	if version == r.Version() {
		next.Itinerary = mark(r.Itinerary)
	}
	revisions := make([]Revision, len(r.Revisions))
	for i, rev := range r.Revisions {
		switch {
		case rev.Version < version:
			rev.Itinerary = rev.Itinerary.MarkFlightAsAnnulled(flight)
		case rev.Version == version:
			rev.Itinerary = mark(rev.Itinerary)
		}
		revisions[i] = rev
	}
	next.Revisions = revisions
	return next
}

func (r Reservation) MarkFlightAsReserved(flight FlightId, version int) Reservation {
	return r.markFlight(flight, version, func(it Itinerary) Itinerary { return it.MarkFlightAsReserved(flight) })
}

func (r Reservation) MarkFlightAsReservedFailed(flight FlightId, version int, reason string) Reservation {
	return r.markFlight(flight, version, func(it Itinerary) Itinerary { return it.MarkFlightAsReservedFailed(flight, reason) })
}

func (r Reservation) MarkFlightAsAnnulled(flight FlightId, version int) Reservation {
	return r.markFlight(flight, version, func(it Itinerary) Itinerary { return it.MarkFlightAsAnnulled(flight) })
}
