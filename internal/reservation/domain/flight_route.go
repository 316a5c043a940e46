package domain

import "errors"

// FlightRoute is a departure/arrival airfield pair. Equality is by both
// fields (full equality, unlike most entities here which key on id alone).
type FlightRoute struct {
	Departure AirfieldId
	Arrival   AirfieldId
}

var ErrDepartureAndArrivalAreTheSame = errors.New("departure and arrival airfields are the same")

func NewFlightRoute(departure, arrival AirfieldId) (FlightRoute, error) {
	if departure == arrival {
		return FlightRoute{}, ErrDepartureAndArrivalAreTheSame
	}
	return FlightRoute{Departure: departure, Arrival: arrival}, nil
}

func (r FlightRoute) Equal(other FlightRoute) bool {
	return r.Departure == other.Departure && r.Arrival == other.Arrival
}
