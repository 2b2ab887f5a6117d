package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/avelora/airdesk/internal/service/passengers"
	"github.com/gin-gonic/gin"
)

type PassengerHandler struct {
	service passengers.PassengerUseCase
}

type passengerRequest struct {
	Firstname      string `json:"firstname"`
	Lastname       string `json:"lastname"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"date_of_birth"`
	Age            int    `json:"age"`
	PassportNumber string `json:"passport_number"`
	Gender         string `json:"gender"`
}

type passengerResponse struct {
	ID             int64  `json:"id"`
	Firstname      string `json:"firstname"`
	Lastname       string `json:"lastname"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"date_of_birth"`
	Age            int    `json:"age"`
	PassportNumber string `json:"passport_number"`
	Gender         string `json:"gender"`
}

func NewPassengerHandler(service passengers.PassengerUseCase) *PassengerHandler {
	return &PassengerHandler{service: service}
}

func (h *PassengerHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *PassengerHandler) create(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	input, ok := bindPassenger(c)
	if !ok {
		return
	}

	created, err := h.service.Create(c.Request.Context(), identity, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPassengerResponse(created))
}

func (h *PassengerHandler) list(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	list, err := h.service.List(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]passengerResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toPassengerResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PassengerHandler) get(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, ok := passengerID(c)
	if !ok {
		return
	}
	found, err := h.service.Get(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPassengerResponse(found))
}

func (h *PassengerHandler) update(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, ok := passengerID(c)
	if !ok {
		return
	}
	input, ok := bindPassenger(c)
	if !ok {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), identity, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPassengerResponse(updated))
}

func (h *PassengerHandler) delete(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, ok := passengerID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), identity, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "passenger deleted"})
}

func passengerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func bindPassenger(c *gin.Context) (passengers.PassengerInput, bool) {
	var req passengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return passengers.PassengerInput{}, false
	}

	var dob time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_of_birth, expected YYYY-MM-DD"})
			return passengers.PassengerInput{}, false
		}
		dob = parsed
	}

	return passengers.PassengerInput{
		Firstname:      req.Firstname,
		Lastname:       req.Lastname,
		Email:          req.Email,
		Phone:          req.Phone,
		DateOfBirth:    dob,
		Age:            req.Age,
		PassportNumber: req.PassportNumber,
		Gender:         domain.Gender(req.Gender),
	}, true
}

func toPassengerResponse(p *domain.Passenger) passengerResponse {
	return passengerResponse{
		ID:             p.ID,
		Firstname:      p.Firstname,
		Lastname:       p.Lastname,
		Email:          p.Email,
		Phone:          p.Phone,
		DateOfBirth:    p.DateOfBirth.Format("2006-01-02"),
		Age:            p.Age,
		PassportNumber: p.PassportNumber,
		Gender:         string(p.Gender),
	}
}
