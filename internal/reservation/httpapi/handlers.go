// Package httpapi wires the Reservation context's use cases onto gin
// routes per the module's HTTP surface.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nielsbergsma/blimpco/internal/platform/httpserver"
	"github.com/nielsbergsma/blimpco/internal/reservation/domain"
	"github.com/nielsbergsma/blimpco/internal/reservation/usecase"
)

type Handlers struct {
	UseCases *usecase.UseCases
}

func New(useCases *usecase.UseCases) *Handlers {
	return &Handlers{UseCases: useCases}
}

// RegisterJourneys mounts the operator-only journey-publishing route,
// expected to sit behind API-key middleware.
func (h *Handlers) RegisterJourneys(router gin.IRouter) {
	router.POST("/journeys", h.publishJourney)
}

// RegisterReservations mounts the passenger/agent reservation routes,
// expected to sit behind bearer-token middleware.
func (h *Handlers) RegisterReservations(router gin.IRouter) {
	router.POST("/reservations", h.confirmReservation)
	router.PUT("/reservations/:id/passengers", h.revisePassengers)
	router.PUT("/reservations/:id/itinerary", h.reviseItinerary)
	router.DELETE("/reservations/:id", h.cancelReservation)
	router.GET("/reservations/:id", h.getReservation)
	router.GET("/reservations/:id/price", h.getPrice)
}

type stageRequest struct {
	FlightID      string  `json:"flight_id"`
	AccommodationID *string `json:"accommodation_id,omitempty"`
}

type publishJourneyRequest struct {
	Name     string `json:"name"`
	Segments []struct {
		Departure string `json:"departure"`
		Arrival   string `json:"arrival"`
	} `json:"segments"`
}

func (h *Handlers) publishJourney(c *gin.Context) {
	var req publishJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpserver.WriteError(c, err)
		return
	}

	name, err := domain.NewJourneyName(req.Name)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}

	segments := make([]domain.Segment, 0, len(req.Segments))
	for _, s := range req.Segments {
		departure, err := domain.NewAirfieldId(s.Departure)
		if err != nil {
			httpserver.WriteError(c, err)
			return
		}
		arrival, err := domain.NewAirfieldId(s.Arrival)
		if err != nil {
			httpserver.WriteError(c, err)
			return
		}
		route, err := domain.NewFlightRoute(departure, arrival)
		if err != nil {
			httpserver.WriteError(c, err)
			return
		}
		segment, err := domain.NewSegment(route, domain.SortedSet[domain.Accommodation]{})
		if err != nil {
			httpserver.WriteError(c, err)
			return
		}
		segments = append(segments, segment)
	}

	journey, err := h.UseCases.PublishJourney(c.Request.Context(), domain.NewJourneyId(), name, segments)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": journey.ID.String()})
}

type confirmReservationRequest struct {
	JourneyID  string         `json:"journey_id"`
	ContactName string        `json:"contact_name"`
	ContactEmail string       `json:"contact_email"`
	Adults     uint8          `json:"adults"`
	Children   uint8          `json:"children"`
	Itinerary  []stageRequest `json:"itinerary"`
}

func (h *Handlers) confirmReservation(c *gin.Context) {
	var req confirmReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpserver.WriteError(c, err)
		return
	}

	journeyID, err := domain.ParseJourneyId(req.JourneyID)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	name, err := domain.NewPersonFullName(req.ContactName)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	email, err := domain.NewEmailAddress(req.ContactEmail)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	arrangement, err := domain.NewPassengerArrangement(req.Adults, req.Children)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}

	stages, err := toStageInputs(req.Itinerary)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}

	contact := domain.NewContact(name, email)
	passengers := domain.NewPassengers(arrangement)
	id := domain.NewReservationId()

	reservation, err := h.UseCases.ConfirmReservation(c.Request.Context(), id, httpserver.IsAgent(c), journeyID, contact, passengers, stages)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservationResponse(reservation))
}

func toStageInputs(stages []stageRequest) ([]usecase.ConfirmItineraryStageInput, error) {
	out := make([]usecase.ConfirmItineraryStageInput, 0, len(stages))
	for _, s := range stages {
		flightID, err := domain.ParseFlightId(s.FlightID)
		if err != nil {
			return nil, err
		}
		input := usecase.ConfirmItineraryStageInput{Flight: flightID}
		if s.AccommodationID != nil {
			accID, err := domain.ParseAccommodationId(*s.AccommodationID)
			if err != nil {
				return nil, err
			}
			input.Accommodation = &accID
		}
		out = append(out, input)
	}
	return out, nil
}

type revisePassengersRequest struct {
	Adults   uint8 `json:"adults"`
	Children uint8 `json:"children"`
}

func (h *Handlers) revisePassengers(c *gin.Context) {
	id, err := domain.ParseReservationId(c.Param("id"))
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	var req revisePassengersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpserver.WriteError(c, err)
		return
	}
	arrangement, err := domain.NewPassengerArrangement(req.Adults, req.Children)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}

	reservation, err := h.UseCases.RevisePassengers(c.Request.Context(), id, httpserver.IsAgent(c), domain.NewPassengers(arrangement))
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservationResponse(reservation))
}

type reviseItineraryRequest struct {
	Itinerary []stageRequest `json:"itinerary"`
}

func (h *Handlers) reviseItinerary(c *gin.Context) {
	id, err := domain.ParseReservationId(c.Param("id"))
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	var req reviseItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpserver.WriteError(c, err)
		return
	}
	stages, err := toStageInputs(req.Itinerary)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}

	current, err := h.UseCases.GetReservation(c.Request.Context(), id)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	journey, err := h.UseCases.Journeys.Get(c.Request.Context(), current.Journey.String())
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	if journey == nil {
		httpserver.WriteError(c, usecase.ErrUnknownJourney)
		return
	}

	reservation, err := h.UseCases.ReviseItinerary(c.Request.Context(), id, httpserver.IsAgent(c), *journey, stages)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservationResponse(reservation))
}

func (h *Handlers) cancelReservation(c *gin.Context) {
	id, err := domain.ParseReservationId(c.Param("id"))
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	reservation, err := h.UseCases.CancelReservation(c.Request.Context(), id, httpserver.IsAgent(c))
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservationResponse(reservation))
}

func (h *Handlers) getReservation(c *gin.Context) {
	id, err := domain.ParseReservationId(c.Param("id"))
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	reservation, err := h.UseCases.GetReservation(c.Request.Context(), id)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservationResponse(reservation))
}

func (h *Handlers) getPrice(c *gin.Context) {
	id, err := domain.ParseReservationId(c.Param("id"))
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	price, err := h.UseCases.Price(c.Request.Context(), id)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": price.Amount.String(), "currency": price.Currency})
}

func reservationResponse(r domain.Reservation) gin.H {
	stages := make([]gin.H, len(r.Itinerary.Stages))
	for i, s := range r.Itinerary.Stages {
		stages[i] = gin.H{
			"flight_id": s.Flight.ID.String(),
			"state":     s.State,
		}
	}
	return gin.H{
		"id":         r.ID.String(),
		"journey_id": r.Journey.String(),
		"cancelled":  r.Cancelled,
		"version":    r.Version(),
		"passengers": r.Passengers.Count(),
		"itinerary":  stages,
	}
}
