package domain

import rdomain "github.com/nielsbergsma/blimpco/internal/reservation/domain"

// Airfield and Flight share the exact same shape and invariants on the
// Scheduling side as on the Reservation side (Reservation only ever reads
// them via events), so Scheduling reuses those types directly rather than
// duplicating identical validation logic.
type Airfield = rdomain.Airfield
type AirfieldId = rdomain.AirfieldId
type Flight = rdomain.Flight
type FlightId = rdomain.FlightId
type FlightRoute = rdomain.FlightRoute
type GeoHash = rdomain.GeoHash
type NumberOfSeats = rdomain.NumberOfSeats
type AirshipId = rdomain.AirshipId

var NewAirfieldId = rdomain.NewAirfieldId
var NewGeoHash = rdomain.NewGeoHash
var NewFlightRoute = rdomain.NewFlightRoute
var NewFlight = rdomain.NewFlight
var NewFlightId = rdomain.NewFlightId
var NewAirfield = rdomain.NewAirfield
