package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/avelora/airdesk/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	FlightNumber   string `json:"flight_number"`
	Airline        string `json:"airline"`
	DepartureCode  string `json:"departure_code"`
	ArrivalCode    string `json:"arrival_code"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	Date           string `json:"date"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
	PriceCents     int64  `json:"price_cents"`
	Status         string `json:"status"`
}

type flightResponse struct {
	ID             int64  `json:"id"`
	FlightNumber   string `json:"flight_number"`
	Airline        string `json:"airline"`
	DepartureCode  string `json:"departure_code"`
	ArrivalCode    string `json:"arrival_code"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	Date           string `json:"date"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
	PriceCents     int64  `json:"price_cents"`
	Status         string `json:"status"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

// Register wires the public search routes; RegisterAdmin wires the
// inventory mutations behind the admin-authenticated group.
func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.search)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *FlightHandler) search(c *gin.Context) {
	filter := domain.FlightFilter{
		DepartureCode: c.Query("origin"),
		ArrivalCode:   c.Query("destination"),
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		filter.Date = date
	}

	list, err := h.service.FindAvailable(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]flightResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toFlightResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) create(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flight, err := fromFlightRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Create(c.Request.Context(), identity, flight); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(flight))
}

func (h *FlightHandler) update(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flight, err := fromFlightRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flight.ID = id

	if err := h.service.Update(c.Request.Context(), identity, flight); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) delete(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), identity, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "flight deleted"})
}

func fromFlightRequest(req flightRequest) (*domain.Flight, error) {
	departure, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		return nil, err
	}
	arrival, err := time.Parse(time.RFC3339, req.ArrivalTime)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}
	return &domain.Flight{
		FlightNumber:   req.FlightNumber,
		Airline:        req.Airline,
		DepartureCode:  req.DepartureCode,
		ArrivalCode:    req.ArrivalCode,
		DepartureTime:  departure,
		ArrivalTime:    arrival,
		Date:           date,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.AvailableSeats,
		PriceCents:     req.PriceCents,
		Status:         domain.FlightStatus(req.Status),
	}, nil
}

func toFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:             f.ID,
		FlightNumber:   f.FlightNumber,
		Airline:        f.Airline,
		DepartureCode:  f.DepartureCode,
		ArrivalCode:    f.ArrivalCode,
		DepartureTime:  f.DepartureTime.Format(time.RFC3339),
		ArrivalTime:    f.ArrivalTime.Format(time.RFC3339),
		Date:           f.Date.Format("2006-01-02"),
		TotalSeats:     f.TotalSeats,
		AvailableSeats: f.AvailableSeats,
		PriceCents:     f.PriceCents,
		Status:         string(f.Status),
	}
}
