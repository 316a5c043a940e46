// Package usecase implements Scheduling's thin command surface: register
// airfields and airships, schedule flights, emitting the events Reservation
// consumes as its upstream source of supply.
package usecase

import (
	"context"
	"time"

	"github.com/nielsbergsma/blimpco/internal/events"
	"github.com/nielsbergsma/blimpco/internal/platform/apierrors"
	"github.com/nielsbergsma/blimpco/internal/reservation/repository"
	"github.com/nielsbergsma/blimpco/internal/scheduling/domain"
)

type AirfieldRepository = repository.Repository[domain.Airfield]
type AirshipRepository = repository.Repository[domain.Airship]
type FlightRepository = repository.Repository[domain.Flight]

// EventPublisher mirrors reservation/usecase.EventPublisher to avoid a
// cross-context import; both are satisfied by the same eventbus adapter.
type EventPublisher interface {
	Send(ctx context.Context, event PublishableEvent) error
}

type PublishableEvent struct {
	Name    string
	Payload interface{}
}

var ErrIdConflict     = apierrors.NewConflictError("id_conflict", "an aggregate with this id already exists", nil)
var ErrUnknownAirship  = apierrors.NewNotFoundError("unknown_airship", "airship not found", nil)

type UseCases struct {
	Airfields AirfieldRepository
	Airships  AirshipRepository
	Flights   FlightRepository
	Publisher EventPublisher
}

func New(airfields AirfieldRepository, airships AirshipRepository, flights FlightRepository, publisher EventPublisher) *UseCases {
	return &UseCases{Airfields: airfields, Airships: airships, Flights: flights, Publisher: publisher}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if err == repository.ErrVersionConflict {
		return apierrors.NewConflictError("version_conflict", "the aggregate was modified concurrently, retry", err)
	}
	return apierrors.NewValidationError("invalid_request", err.Error(), err)
}

// RegisterAirfield stores a new airfield and publishes AirfieldRegisteredV1.
func (u *UseCases) RegisterAirfield(ctx context.Context, airfield domain.Airfield) error {
	tx, err := u.Airfields.SetBegin(ctx, string(airfield.ID))
	if err != nil {
		return mapError(err)
	}
	if tx.Value != nil {
		return ErrIdConflict
	}
	if err := u.Airfields.SetCommit(ctx, tx.WithValue(airfield)); err != nil {
		return mapError(err)
	}
	return u.Publisher.Send(ctx, PublishableEvent{
		Name: events.NameAirfieldRegisteredV1,
		Payload: events.AirfieldRegisteredV1{ID: string(airfield.ID), Name: airfield.Name, Location: airfield.Location},
	})
}

// RegisterAirship stores a new airship. No event is published; airships
// appear in FlightScheduledV1 only as a reference (id and seat count).
func (u *UseCases) RegisterAirship(ctx context.Context, airship domain.Airship) error {
	tx, err := u.Airships.SetBegin(ctx, string(airship.ID))
	if err != nil {
		return mapError(err)
	}
	if tx.Value != nil {
		return ErrIdConflict
	}
	return mapError(u.Airships.SetCommit(ctx, tx.WithValue(airship)))
}

// ScheduleFlight stores a new flight and publishes FlightScheduledV1,
// resolving the airship's seat count by id.
func (u *UseCases) ScheduleFlight(ctx context.Context, id domain.FlightId, route domain.FlightRoute, departure, arrival time.Time, airshipID domain.AirshipId) error {
	airship, err := u.Airships.Get(ctx, string(airshipID))
	if err != nil {
		return mapError(err)
	}
	if airship == nil {
		return ErrUnknownAirship
	}

	tx, err := u.Flights.SetBegin(ctx, id.String())
	if err != nil {
		return mapError(err)
	}
	if tx.Value != nil {
		return ErrIdConflict
	}

	flight, err := domain.NewFlight(id, route, departure, arrival, airship.NumberOfSeats)
	if err != nil {
		return mapError(err)
	}

	if err := u.Flights.SetCommit(ctx, tx.WithValue(flight)); err != nil {
		return mapError(err)
	}

	return u.Publisher.Send(ctx, PublishableEvent{
		Name: events.NameFlightScheduledV1,
		Payload: events.FlightScheduledV1{
			ID:        id.String(),
			Departure: events.FlightEndpoint{Airfield: string(route.Departure), Time: departure},
			Arrival:   events.FlightEndpoint{Airfield: string(route.Arrival), Time: arrival},
			Airship:   events.AirshipRef{ID: string(airshipID), NumberOfSeats: int(airship.NumberOfSeats)},
		},
	})
}
