// Package events defines the wire taxonomy shared by the Scheduling and
// Reservation contexts' event bus.
package events

import (
	"time"

	"github.com/nielsbergsma/blimpco/internal/reservation/domain"
)

// Envelope is the tagged wire form of an event:
// {"event_name": ..., "payload": ..., "published_at": ...}. Name identifies
// which payload type Payload holds.
type Envelope struct {
	Name      string      `json:"event_name"`
	Payload   interface{} `json:"payload"`
	PublishedAt time.Time `json:"published_at"`
}

type AirfieldRegisteredV1 struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Location domain.GeoHash `json:"location"`
}

type AirshipRef struct {
	ID             string `json:"id"`
	NumberOfSeats  int    `json:"number_of_seats"`
}

type FlightEndpoint struct {
	Airfield string    `json:"airfield"`
	Time     time.Time `json:"time"`
}

type FlightScheduledV1 struct {
	ID       string         `json:"id"`
	Departure FlightEndpoint `json:"departure"`
	Arrival   FlightEndpoint `json:"arrival"`
	Airship   AirshipRef     `json:"airship"`
}

type JourneyPublishedV1 struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Segments []string `json:"segments"`
}

type FlightAvailabilityChangedV1 struct {
	Flight         string    `json:"flight"`
	Departure      string    `json:"departure"`
	Arrival        string    `json:"arrival"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	SeatsAvailable int       `json:"seats_available"`
}

type ReservationConfirmedV1 struct {
	ID         string `json:"id"`
	Journey    string `json:"journey"`
	Passengers int    `json:"passengers"`
}

type ReservationRevisedV1 struct {
	ID         string `json:"id"`
	Journey    string `json:"journey"`
	Passengers int    `json:"passengers"`
}

type ReservationCancelledV1 struct {
	ID      string `json:"id"`
	Journey string `json:"journey"`
}

// VersionedReservation carries the version that produced a saga request so
// handlers can re-apply outcomes to the correct revision slot.
type VersionedReservation struct {
	ID      string `json:"id"`
	Version int    `json:"version"`
}

type FlightReservationRequestedV1 struct {
	Reservation VersionedReservation `json:"reservation"`
	Flight      string               `json:"flight"`
	Seats       int                  `json:"seats"`
}

type FlightReservedV1 struct {
	Reservation VersionedReservation `json:"reservation"`
	Flight      string               `json:"flight"`
	Seats       int                  `json:"seats"`
}

type FlightReservationFailedV1 struct {
	Reservation VersionedReservation `json:"reservation"`
	Flight      string               `json:"flight"`
	Reason      string               `json:"reason"`
}

const (
	NameAirfieldRegisteredV1        = "AirfieldRegisteredV1"
	NameFlightScheduledV1           = "FlightScheduledV1"
	NameJourneyPublishedV1          = "JourneyPublishedV1"
	NameFlightAvailabilityChangedV1 = "FlightAvailabilityChangedV1"
	NameReservationConfirmedV1      = "ReservationConfirmedV1"
	NameReservationRevisedV1        = "ReservationRevisedV1"
	NameReservationCancelledV1      = "ReservationCancelledV1"
	NameFlightReservationRequestedV1 = "FlightReservationRequestedV1"
	NameFlightReservedV1            = "FlightReservedV1"
	NameFlightReservationFailedV1   = "FlightReservationFailedV1"
)
