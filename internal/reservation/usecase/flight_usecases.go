package usecase

import (
	"context"

	"github.com/nielsbergsma/blimpco/internal/events"
	"github.com/nielsbergsma/blimpco/internal/reservation/domain"
)

// MakeFlightAvailable publishes a newly scheduled flight into Reservation's
// availability inventory. Fails with ErrIdConflict if availability already
// exists for this flight id.
func (u *UseCases) MakeFlightAvailable(ctx context.Context, flight domain.Flight) error {
	tx, err := u.Availability.SetBegin(ctx, flight.ID.String())
	if err != nil {
		return mapDomainError(err)
	}
	if tx.Value != nil {
		return ErrIdConflict
	}

	availability := domain.NewFlightAvailability(flight)
	if err := u.Availability.SetCommit(ctx, tx.WithValue(availability)); err != nil {
		return mapDomainError(err)
	}

	return u.publishAvailabilityChanged(ctx, availability)
}

func (u *UseCases) publishAvailabilityChanged(ctx context.Context, availability domain.FlightAvailability) error {
	return u.Publisher.Send(ctx, PublishableEvent{
		Name: events.NameFlightAvailabilityChangedV1,
		Payload: events.FlightAvailabilityChangedV1{
			Flight:         availability.Flight.ID.String(),
			Departure:      string(availability.Flight.Route.Departure),
			Arrival:        string(availability.Flight.Route.Arrival),
			DepartureTime:  availability.Flight.Departure,
			ArrivalTime:    availability.Flight.Arrival,
			SeatsAvailable: availability.SeatsAvailable(),
		},
	})
}

// ReserveFlight attempts to hold `seats` seats on `flight` for `reservation`.
// On success it commits the new availability and publishes both
// FlightAvailabilityChangedV1 and FlightReservedV1; on insufficient seats it
// leaves availability untouched and publishes FlightReservationFailedV1.
func (u *UseCases) ReserveFlight(ctx context.Context, reservation domain.ReservationId, reservationVersion int, flight domain.FlightId, seats int) error {
	tx, err := u.Availability.SetBegin(ctx, flight.String())
	if err != nil {
		return mapDomainError(err)
	}
	if tx.Value == nil {
		return ErrUnknownFlight
	}

	updated, reserveErr := tx.Value.Reserve(reservation, seats)
	if reserveErr != nil {
		return u.Publisher.Send(ctx, PublishableEvent{
			Name: events.NameFlightReservationFailedV1,
			Payload: events.FlightReservationFailedV1{
				Reservation: events.VersionedReservation{ID: reservation.String(), Version: reservationVersion},
				Flight:      flight.String(),
				Reason:      reserveErr.Error(),
			},
		})
	}

	if err := u.Availability.SetCommit(ctx, tx.WithValue(updated)); err != nil {
		return mapDomainError(err)
	}

	if err := u.publishAvailabilityChanged(ctx, updated); err != nil {
		return err
	}

	return u.Publisher.Send(ctx, PublishableEvent{
		Name: events.NameFlightReservedV1,
		Payload: events.FlightReservedV1{
			Reservation: events.VersionedReservation{ID: reservation.String(), Version: reservationVersion},
			Flight:      flight.String(),
			Seats:       seats,
		},
	})
}
