package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/avelora/airdesk/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID   int64              `json:"flight_id"`
	Seats      int                `json:"seats"`
	Passengers []passengerPayload `json:"passengers"`
}

type passengerPayload struct {
	Name           string `json:"name"`
	Age            int    `json:"age"`
	PassportNumber string `json:"passport_number"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status"`
}

type bookingResponse struct {
	ID            int64              `json:"id"`
	BookingRef    string             `json:"booking_ref"`
	FlightID      int64              `json:"flight_id"`
	FlightNumber  string             `json:"flight_number"`
	DepartureCode string             `json:"departure_code"`
	ArrivalCode   string             `json:"arrival_code"`
	Date          string             `json:"date"`
	Passengers    []passengerPayload `json:"passengers"`
	SeatsBooked   int                `json:"seats_booked"`
	AmountCents   int64              `json:"amount_cents"`
	Status        string             `json:"status"`
	PaymentRef    string             `json:"payment_ref,omitempty"`
	CreatedAt     string             `json:"created_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.PATCH("/:id/status", h.updateStatus)
}

func (h *BookingHandler) create(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	passengers := make([]domain.BookedPassenger, 0, len(req.Passengers))
	for _, p := range req.Passengers {
		passengers = append(passengers, domain.BookedPassenger{Name: p.Name, Age: p.Age, PassportNumber: p.PassportNumber})
	}

	created, err := h.service.Create(c.Request.Context(), identity, booking.CreateBookingInput{
		FlightID:   req.FlightID,
		Seats:      req.Seats,
		Passengers: passengers,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) list(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	bookings, err := h.service.List(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) get(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	found, err := h.service.Get(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	cancelled, err := h.service.Cancel(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(cancelled))
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), identity, id, domain.BookingStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	passengers := make([]passengerPayload, 0, len(b.Passengers))
	for _, p := range b.Passengers {
		passengers = append(passengers, passengerPayload{Name: p.Name, Age: p.Age, PassportNumber: p.PassportNumber})
	}
	return bookingResponse{
		ID:            b.ID,
		BookingRef:    b.BookingRef,
		FlightID:      b.FlightID,
		FlightNumber:  b.FlightDetails.FlightNumber,
		DepartureCode: b.FlightDetails.DepartureCode,
		ArrivalCode:   b.FlightDetails.ArrivalCode,
		Date:          b.FlightDetails.Date.Format("2006-01-02"),
		Passengers:    passengers,
		SeatsBooked:   b.SeatsBooked,
		AmountCents:   b.AmountCents,
		Status:        string(b.Status),
		PaymentRef:    b.PaymentRef,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
}
