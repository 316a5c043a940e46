// Package usecase implements the application layer of the Reservation
// context: command handlers that load aggregates through the repository
// contract, apply a domain operation, commit, and publish resulting events.
package usecase

import (
	"context"
	"time"

	"github.com/nielsbergsma/blimpco/internal/events"
	"github.com/nielsbergsma/blimpco/internal/platform/apierrors"
	"github.com/nielsbergsma/blimpco/internal/reservation/domain"
	"github.com/nielsbergsma/blimpco/internal/reservation/repository"
)

// EventPublisher is the contract used to emit domain events; satisfied by
// eventbus.UseCasePublisher.
type EventPublisher interface {
	Send(ctx context.Context, event PublishableEvent) error
}

// PublishableEvent mirrors eventbus.Event without importing the platform
// package, keeping the domain/usecase layer decoupled from transport.
type PublishableEvent struct {
	Name    string
	Payload interface{}
}

// JourneyRepository, FlightAvailabilityRepository and ReservationRepository
// are the three aggregate-specific repository contracts this layer depends
// on, each backed by repository.Repository[V] keyed by the aggregate's
// base62 id string.
type JourneyRepository = repository.Repository[domain.Journey]
type FlightAvailabilityRepository = repository.Repository[domain.FlightAvailability]
type ReservationRepository = repository.Repository[domain.Reservation]

// UseCases bundles every Reservation-context command and query handler.
type UseCases struct {
	Journeys      JourneyRepository
	Availability  FlightAvailabilityRepository
	Reservations  ReservationRepository
	Publisher     EventPublisher
	Policy        func(isAgent bool) domain.ReservationPolicy
	Clock         func() time.Time
}

func New(journeys JourneyRepository, availability FlightAvailabilityRepository, reservations ReservationRepository, publisher EventPublisher) *UseCases {
	return &UseCases{
		Journeys:     journeys,
		Availability: availability,
		Reservations: reservations,
		Publisher:    publisher,
		Policy: func(isAgent bool) domain.ReservationPolicy {
			if isAgent {
				return domain.AgentPolicy()
			}
			return domain.PassengerPolicy()
		},
		Clock: time.Now,
	}
}

func (u *UseCases) policy(isAgent bool) domain.ReservationPolicy {
	return u.Policy(isAgent)
}

var (
	ErrIdConflict       = apierrors.NewConflictError("id_conflict", "an aggregate with this id already exists", nil)
	ErrUnknownJourney   = apierrors.NewNotFoundError("unknown_journey", "journey not found", nil)
	ErrUnknownFlight    = apierrors.NewNotFoundError("unknown_flight", "flight availability not found", nil)
	ErrUnknownReservation = apierrors.NewNotFoundError("unknown_reservation", "reservation not found", nil)
	ErrUnknownAccommodation = apierrors.NewNotFoundError("unknown_accommodation", "accommodation not found", nil)
)

func mapDomainError(err error) error {
	if err == nil {
		return nil
	}
	switch err {
	case repository.ErrVersionConflict:
		return apierrors.NewConflictError("version_conflict", "the aggregate was modified concurrently, retry", err)
	case domain.ErrNotAllowedToConfirmShortlyBeforeDeparture,
		domain.ErrNotAllowedToReviseAnymore,
		domain.ErrNotAllowedToCancelAnymore,
		domain.ErrReservationIsAlreadyCancelled:
		return apierrors.NewBusinessRuleError("policy_violation", err.Error(), err)
	default:
		return apierrors.NewValidationError("invalid_request", err.Error(), err)
	}
}

// driveSaga inspects the given reservation state and, if a next action is
// pending, publishes the single FlightReservationRequestedV1 it implies.
func (u *UseCases) driveSaga(ctx context.Context, r domain.Reservation) error {
	request, ok := domain.NextRequest(r)
	if !ok {
		return nil
	}
	return u.Publisher.Send(ctx, PublishableEvent{
		Name: events.NameFlightReservationRequestedV1,
		Payload: events.FlightReservationRequestedV1{
			Reservation: events.VersionedReservation{ID: request.Reservation.String(), Version: request.Version},
			Flight:      request.Flight.String(),
			Seats:       request.Seats,
		},
	})
}
