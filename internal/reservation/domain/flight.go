package domain

import (
	"errors"
	"time"
)

// NumberOfSeats is the fixed seat capacity of a flight, bounded to a byte.
type NumberOfSeats uint8

// Flight is a scheduled leg between two airfields with a fixed seat count.
// Equality is by id only.
type Flight struct {
	ID        FlightId
	Route     FlightRoute
	Departure time.Time
	Arrival   time.Time
	Seats     NumberOfSeats
}

var ErrArrivalBeforeDeparture = errors.New("arrival is not after departure")

func NewFlight(id FlightId, route FlightRoute, departure, arrival time.Time, seats NumberOfSeats) (Flight, error) {
	if !arrival.After(departure) {
		return Flight{}, ErrArrivalBeforeDeparture
	}
	return Flight{ID: id, Route: route, Departure: departure, Arrival: arrival, Seats: seats}, nil
}

func (f Flight) Equal(other Flight) bool { return f.ID == other.ID }
