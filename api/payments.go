package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/avelora/airdesk/internal/service/payment"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service payment.PaymentUseCase
}

type requestHoldRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

type holdResponse struct {
	IntentRef    string `json:"intent_ref"`
	ClientSecret string `json:"client_secret"`
}

type confirmPaymentRequest struct {
	BookingID   int64  `json:"booking_id"`
	IntentRef   string `json:"intent_ref"`
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"`
}

type paymentResponse struct {
	ID          int64  `json:"id"`
	IntentRef   string `json:"intent_ref"`
	BookingRef  string `json:"booking_ref"`
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

func NewPaymentHandler(service payment.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("/hold", h.requestHold)
	router.POST("/confirm", h.confirm)
}

func (h *PaymentHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

func (h *PaymentHandler) requestHold(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	var req requestHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hold, err := h.service.RequestHold(c.Request.Context(), identity, req.AmountCents, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, holdResponse{IntentRef: hold.IntentRef, ClientSecret: hold.ClientSecret})
}

func (h *PaymentHandler) confirm(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	confirmed, err := h.service.Confirm(c.Request.Context(), identity, payment.ConfirmInput{
		BookingID:   req.BookingID,
		IntentRef:   req.IntentRef,
		AmountCents: req.AmountCents,
		Method:      domain.PaymentMethod(req.Method),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(confirmed))
}

func (h *PaymentHandler) list(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	payments, err := h.service.List(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]paymentResponse, 0, len(payments))
	for i := range payments {
		resp = append(resp, toPaymentResponse(&payments[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) get(c *gin.Context) {
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
	c.JSON(http.StatusOK, toPaymentResponse(found))
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:          p.ID,
		IntentRef:   p.IntentRef,
		BookingRef:  p.BookingRef,
		AmountCents: p.AmountCents,
		Method:      string(p.Method),
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
