// Package httpapi wires Scheduling's command use cases onto gin routes.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nielsbergsma/blimpco/internal/platform/httpserver"
	"github.com/nielsbergsma/blimpco/internal/scheduling/domain"
	"github.com/nielsbergsma/blimpco/internal/scheduling/usecase"
)

type Handlers struct {
	UseCases *usecase.UseCases
}

func New(useCases *usecase.UseCases) *Handlers {
	return &Handlers{UseCases: useCases}
}

func (h *Handlers) Register(router gin.IRouter) {
	router.POST("/airfields", h.registerAirfield)
	router.POST("/airships", h.registerAirship)
	router.POST("/flights", h.scheduleFlight)
}

type registerAirfieldRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (h *Handlers) registerAirfield(c *gin.Context) {
	var req registerAirfieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpserver.WriteError(c, err)
		return
	}
	id, err := domain.NewAirfieldId(req.ID)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	location, err := domain.NewGeoHash(req.Location)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	airfield := domain.NewAirfield(id, req.Name, location)
	if err := h.UseCases.RegisterAirfield(c.Request.Context(), airfield); err != nil {
		httpserver.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": string(id)})
}

type registerAirshipRequest struct {
	ID    string `json:"id"`
	Seats uint8  `json:"number_of_seats"`
}

func (h *Handlers) registerAirship(c *gin.Context) {
	var req registerAirshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpserver.WriteError(c, err)
		return
	}
	airship := domain.NewAirship(domain.AirshipId(req.ID), domain.NumberOfSeats(req.Seats))
	if err := h.UseCases.RegisterAirship(c.Request.Context(), airship); err != nil {
		httpserver.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": req.ID})
}

type scheduleFlightRequest struct {
	Departure     string    `json:"departure"`
	Arrival       string    `json:"arrival"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	AirshipID     string    `json:"airship_id"`
}

func (h *Handlers) scheduleFlight(c *gin.Context) {
	var req scheduleFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpserver.WriteError(c, err)
		return
	}
	departure, err := domain.NewAirfieldId(req.Departure)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	arrival, err := domain.NewAirfieldId(req.Arrival)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}
	route, err := domain.NewFlightRoute(departure, arrival)
	if err != nil {
		httpserver.WriteError(c, err)
		return
	}

	id := domain.NewFlightId()
	if err := h.UseCases.ScheduleFlight(c.Request.Context(), id, route, req.DepartureTime, req.ArrivalTime, domain.AirshipId(req.AirshipID)); err != nil {
		httpserver.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}
