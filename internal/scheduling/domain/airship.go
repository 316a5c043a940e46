// Package domain holds Scheduling's own (thin) aggregates: Airfield,
// Airship and Flight, the upstream source of supply for Reservation.
package domain

import rdomain "github.com/nielsbergsma/blimpco/internal/reservation/domain"

// Airship is a named, modeled vehicle with a fixed seat count.
type Airship struct {
	ID            rdomain.AirshipId
	NumberOfSeats rdomain.NumberOfSeats
}

func NewAirship(id rdomain.AirshipId, seats rdomain.NumberOfSeats) Airship {
	return Airship{ID: id, NumberOfSeats: seats}
}

func (a Airship) Equal(other Airship) bool { return a.ID == other.ID }
