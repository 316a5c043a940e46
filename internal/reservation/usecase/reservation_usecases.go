package usecase

import (
	"context"

	"github.com/nielsbergsma/blimpco/internal/events"
	"github.com/nielsbergsma/blimpco/internal/reservation/domain"
)

// ConfirmItineraryStageInput is one leg submitted by the caller: a flight id
// and an optional accommodation id, resolved against the journey's
// availability/segment graph before the itinerary is parsed.
type ConfirmItineraryStageInput struct {
	Flight        domain.FlightId
	Accommodation *domain.AccommodationId
}

// ConfirmReservation resolves the submitted stages against the journey and
// flight availability, parses an itinerary, and creates a new Confirmed
// reservation.
func (u *UseCases) ConfirmReservation(ctx context.Context, id domain.ReservationId, isAgent bool, journeyID domain.JourneyId, contact domain.Contact, passengers domain.Passengers, stageInputs []ConfirmItineraryStageInput) (domain.Reservation, error) {
	journey, err := u.Journeys.Get(ctx, journeyID.String())
	if err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}
	if journey == nil {
		return domain.Reservation{}, ErrUnknownJourney
	}

	stages := make([]domain.StageInput, 0, len(stageInputs))
	for _, in := range stageInputs {
		availability, err := u.Availability.Get(ctx, in.Flight.String())
		if err != nil {
			return domain.Reservation{}, mapDomainError(err)
		}
		if availability == nil {
			return domain.Reservation{}, ErrUnknownFlight
		}

		stage := domain.StageInput{Flight: availability.Flight}
		if in.Accommodation != nil {
			acc, ok := journey.FindAccommodation(availability.Flight.Route.Arrival, *in.Accommodation)
			if !ok {
				return domain.Reservation{}, ErrUnknownAccommodation
			}
			stage.Accommodation = &acc
		}
		stages = append(stages, stage)
	}

	itinerary, err := journey.ParseItinerary(stages)
	if err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}

	tx, err := u.Reservations.SetBegin(ctx, id.String())
	if err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}
	if tx.Value != nil {
		return domain.Reservation{}, ErrIdConflict
	}

	reservation, err := domain.NewConfirmedReservation(u.policy(isAgent), id, journeyID, contact, passengers, itinerary)
	if err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}

	if err := u.Reservations.SetCommit(ctx, tx.WithValue(reservation)); err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}

	if err := u.Publisher.Send(ctx, PublishableEvent{
		Name: events.NameReservationConfirmedV1,
		Payload: events.ReservationConfirmedV1{
			ID:         id.String(),
			Journey:    journeyID.String(),
			Passengers: passengers.Count(),
		},
	}); err != nil {
		return domain.Reservation{}, err
	}

	if err := u.driveSaga(ctx, reservation); err != nil {
		return domain.Reservation{}, err
	}

	return reservation, nil
}

func (u *UseCases) loadReservation(ctx context.Context, id domain.ReservationId) (domain.Reservation, error) {
	tx, err := u.Reservations.SetBegin(ctx, id.String())
	if err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}
	if tx.Value == nil {
		return domain.Reservation{}, ErrUnknownReservation
	}
	return *tx.Value, nil
}

// RevisePassengers applies a passenger-count/list change to an existing
// reservation.
func (u *UseCases) RevisePassengers(ctx context.Context, id domain.ReservationId, isAgent bool, passengers domain.Passengers) (domain.Reservation, error) {
	tx, err := u.Reservations.SetBegin(ctx, id.String())
	if err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}
	if tx.Value == nil {
		return domain.Reservation{}, ErrUnknownReservation
	}

	next, err := tx.Value.RevisePassengers(u.policy(isAgent), passengers)
	if err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}
	if next.Version() == tx.Value.Version() {
		return next, nil
	}

	if err := u.Reservations.SetCommit(ctx, tx.WithValue(next)); err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}

	if err := u.Publisher.Send(ctx, PublishableEvent{
		Name: events.NameReservationRevisedV1,
		Payload: events.ReservationRevisedV1{ID: id.String(), Journey: next.Journey.String(), Passengers: next.Passengers.Count()},
	}); err != nil {
		return domain.Reservation{}, err
	}

	if err := u.driveSaga(ctx, next); err != nil {
		return domain.Reservation{}, err
	}

	return next, nil
}

// ReviseItinerary applies an itinerary change to an existing reservation.
func (u *UseCases) ReviseItinerary(ctx context.Context, id domain.ReservationId, isAgent bool, journey domain.Journey, stageInputs []ConfirmItineraryStageInput) (domain.Reservation, error) {
	tx, err := u.Reservations.SetBegin(ctx, id.String())
	if err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}
	if tx.Value == nil {
		return domain.Reservation{}, ErrUnknownReservation
	}

	stages := make([]domain.StageInput, 0, len(stageInputs))
	for _, in := range stageInputs {
		availability, err := u.Availability.Get(ctx, in.Flight.String())
		if err != nil {
			return domain.Reservation{}, mapDomainError(err)
		}
		if availability == nil {
			return domain.Reservation{}, ErrUnknownFlight
		}
		stage := domain.StageInput{Flight: availability.Flight}
		if in.Accommodation != nil {
			acc, ok := journey.FindAccommodation(availability.Flight.Route.Arrival, *in.Accommodation)
			if !ok {
				return domain.Reservation{}, ErrUnknownAccommodation
			}
			stage.Accommodation = &acc
		}
		stages = append(stages, stage)
	}

	itinerary, err := journey.ParseItinerary(stages)
	if err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}

	next, err := tx.Value.ReviseItinerary(u.policy(isAgent), itinerary)
	if err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}
	if next.Version() == tx.Value.Version() {
		return next, nil
	}

	if err := u.Reservations.SetCommit(ctx, tx.WithValue(next)); err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}

	if err := u.Publisher.Send(ctx, PublishableEvent{
		Name: events.NameReservationRevisedV1,
		Payload: events.ReservationRevisedV1{ID: id.String(), Journey: next.Journey.String(), Passengers: next.Passengers.Count()},
	}); err != nil {
		return domain.Reservation{}, err
	}

	if err := u.driveSaga(ctx, next); err != nil {
		return domain.Reservation{}, err
	}

	return next, nil
}

// CancelReservation cancels an existing reservation.
func (u *UseCases) CancelReservation(ctx context.Context, id domain.ReservationId, isAgent bool) (domain.Reservation, error) {
	tx, err := u.Reservations.SetBegin(ctx, id.String())
	if err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}
	if tx.Value == nil {
		return domain.Reservation{}, ErrUnknownReservation
	}

	next, err := tx.Value.Cancel(u.policy(isAgent), u.Clock())
	if err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}

	if err := u.Reservations.SetCommit(ctx, tx.WithValue(next)); err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}

	if err := u.Publisher.Send(ctx, PublishableEvent{
		Name: events.NameReservationCancelledV1,
		Payload: events.ReservationCancelledV1{ID: id.String(), Journey: next.Journey.String()},
	}); err != nil {
		return domain.Reservation{}, err
	}

	if err := u.driveSaga(ctx, next); err != nil {
		return domain.Reservation{}, err
	}

	return next, nil
}

// GetReservation reads a reservation by id.
func (u *UseCases) GetReservation(ctx context.Context, id domain.ReservationId) (domain.Reservation, error) {
	r, err := u.Reservations.Get(ctx, id.String())
	if err != nil {
		return domain.Reservation{}, mapDomainError(err)
	}
	if r == nil {
		return domain.Reservation{}, ErrUnknownReservation
	}
	return *r, nil
}

// Price computes the pricing preview for a reservation's current state.
func (u *UseCases) Price(ctx context.Context, id domain.ReservationId) (domain.Money, error) {
	r, err := u.GetReservation(ctx, id)
	if err != nil {
		return domain.Money{}, err
	}
	if r.Cancelled {
		return domain.CancellationCharge(r), nil
	}
	return domain.Price(r), nil
}

// HandleFlightReserved folds a successful seat reservation back onto the
// reservation aggregate and drives the saga one step further.
func (u *UseCases) HandleFlightReserved(ctx context.Context, event events.FlightReservedV1) error {
	id, err := domain.ParseReservationId(event.Reservation.ID)
	if err != nil {
		return mapDomainError(err)
	}
	flightID, err := domain.ParseFlightId(event.Flight)
	if err != nil {
		return mapDomainError(err)
	}

	tx, err := u.Reservations.SetBegin(ctx, id.String())
	if err != nil {
		return mapDomainError(err)
	}
	if tx.Value == nil {
		return ErrUnknownReservation
	}

	var next domain.Reservation
	if event.Seats == 0 {
		next = tx.Value.MarkFlightAsAnnulled(flightID, event.Reservation.Version)
	} else {
		next = tx.Value.MarkFlightAsReserved(flightID, event.Reservation.Version)
	}

	if err := u.Reservations.SetCommit(ctx, tx.WithValue(next)); err != nil {
		return mapDomainError(err)
	}

	return u.driveSaga(ctx, next)
}

// HandleFlightReservationFailed folds a failed seat reservation onto the
// reservation aggregate and drives the saga one step further.
func (u *UseCases) HandleFlightReservationFailed(ctx context.Context, event events.FlightReservationFailedV1) error {
	id, err := domain.ParseReservationId(event.Reservation.ID)
	if err != nil {
		return mapDomainError(err)
	}
	flightID, err := domain.ParseFlightId(event.Flight)
	if err != nil {
		return mapDomainError(err)
	}

	tx, err := u.Reservations.SetBegin(ctx, id.String())
	if err != nil {
		return mapDomainError(err)
	}
	if tx.Value == nil {
		return ErrUnknownReservation
	}

	next := tx.Value.MarkFlightAsReservedFailed(flightID, event.Reservation.Version, event.Reason)

	if err := u.Reservations.SetCommit(ctx, tx.WithValue(next)); err != nil {
		return mapDomainError(err)
	}

	return u.driveSaga(ctx, next)
}

// PublishJourney validates and stores a new journey.
func (u *UseCases) PublishJourney(ctx context.Context, id domain.JourneyId, name domain.JourneyName, segments []domain.Segment) (domain.Journey, error) {
	tx, err := u.Journeys.SetBegin(ctx, id.String())
	if err != nil {
		return domain.Journey{}, mapDomainError(err)
	}
	if tx.Value != nil {
		return domain.Journey{}, ErrIdConflict
	}

	journey, err := domain.NewJourney(id, name, segments)
	if err != nil {
		return domain.Journey{}, mapDomainError(err)
	}

	if err := u.Journeys.SetCommit(ctx, tx.WithValue(journey)); err != nil {
		return domain.Journey{}, mapDomainError(err)
	}

	segmentIDs := make([]string, len(segments))
	for i, s := range segments {
		segmentIDs[i] = string(s.Flight.Departure) + "-" + string(s.Flight.Arrival)
	}

	if err := u.Publisher.Send(ctx, PublishableEvent{
		Name:    events.NameJourneyPublishedV1,
		Payload: events.JourneyPublishedV1{ID: id.String(), Name: string(name), Segments: segmentIDs},
	}); err != nil {
		return domain.Journey{}, err
	}

	return journey, nil
}
