package domain

import "errors"

var ErrInsufficientSeats = errors.New("insufficient seats available")

// FlightAvailability is the seat-counted inventory for a single flight,
// tracking which reservation holds how many of its seats.
type FlightAvailability struct {
	Flight            Flight
	SeatReservations  []ReservationId
}

// NewFlightAvailability constructs availability for a freshly scheduled
// flight with no seats yet reserved.
func NewFlightAvailability(flight Flight) FlightAvailability {
	return FlightAvailability{Flight: flight}
}

func (a FlightAvailability) SeatsAvailable() int {
	return int(a.Flight.Seats) - len(a.SeatReservations)
}

// Reserve sets the absolute seat count held by reservationID: any prior
// entries for that id are first removed, then `seats` new entries are
// appended if enough capacity remains. seats == 0 releases all seats held
// by reservationID. The operation is idempotent: calling it twice with the
// same arguments yields the same state.
func (a FlightAvailability) Reserve(reservationID ReservationId, seats int) (FlightAvailability, error) {
	filtered := make([]ReservationId, 0, len(a.SeatReservations))
	for _, r := range a.SeatReservations {
		if r != reservationID {
			filtered = append(filtered, r)
		}
	}

	free := int(a.Flight.Seats) - len(filtered)
	if seats > free {
		return a, ErrInsufficientSeats
	}

	for i := 0; i < seats; i++ {
		filtered = append(filtered, reservationID)
	}

	return FlightAvailability{Flight: a.Flight, SeatReservations: filtered}, nil
}
