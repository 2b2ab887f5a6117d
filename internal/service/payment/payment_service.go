package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/avelora/airdesk/internal/gateway"
	"github.com/avelora/airdesk/internal/kafka"
	"github.com/avelora/airdesk/internal/repository"
)

type PaymentUseCase interface {
	RequestHold(ctx context.Context, identity domain.Identity, amountCents int64, currency string) (*gateway.Hold, error)
	Confirm(ctx context.Context, identity domain.Identity, input ConfirmInput) (*domain.Payment, error)
	Get(ctx context.Context, identity domain.Identity, id int64) (*domain.Payment, error)
	List(ctx context.Context, identity domain.Identity) ([]domain.Payment, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type PaymentService struct {
	payments    repository.PaymentRepository
	bookings    repository.BookingRepository
	gateway     gateway.PaymentGateway
	producer    Producer
	eventsTopic string
}

type ConfirmInput struct {
	BookingID   int64                `json:"booking_id"`
	IntentRef   string               `json:"intent_ref"`
	AmountCents int64                `json:"amount_cents"`
	Method      domain.PaymentMethod `json:"method"`
}

func NewPaymentService(
	payments repository.PaymentRepository,
	bookings repository.BookingRepository,
	gw gateway.PaymentGateway,
	producer Producer,
	eventsTopic string,
) *PaymentService {
	return &PaymentService{
		payments:    payments,
		bookings:    bookings,
		gateway:     gw,
		producer:    producer,
		eventsTopic: eventsTopic,
	}
}

// RequestHold asks the processor for a charge authorization. Gateway
// failures surface as ErrGateway and are not retried; whether to try
// again is the caller's call.
func (s *PaymentService) RequestHold(ctx context.Context, identity domain.Identity, amountCents int64, currency string) (*gateway.Hold, error) {
	if !identity.IsCustomer() {
		return nil, fmt.Errorf("%w: only customers can request payment holds", domain.ErrForbidden)
	}
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", domain.ErrInvalidInput)
	}

	return s.gateway.CreateHold(ctx, amountCents, currency, map[string]string{"subject": identity.SubjectID})
}

// Confirm ties a verified gateway charge to exactly one booking. The
// processor's reported status and amount are authoritative; the caller's
// claimed amount is only cross-checked, never trusted on its own.
// Re-confirming an already confirmed booking with the same intent ref is
// a no-op returning the stored payment.
func (s *PaymentService) Confirm(ctx context.Context, identity domain.Identity, input ConfirmInput) (*domain.Payment, error) {
	if !input.Method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrInvalidInput, input.Method)
	}
	if input.IntentRef == "" {
		return nil, fmt.Errorf("%w: intent ref is required", domain.ErrInvalidInput)
	}

	booking, err := s.bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && booking.OwnerSubject != identity.SubjectID {
		return nil, domain.ErrForbidden
	}
	if booking.Status == domain.BookingStatusConfirmed && booking.PaymentRef == input.IntentRef {
		return s.payments.GetByBookingRef(ctx, booking.BookingRef)
	}
	if booking.Status != domain.BookingStatusPreparing {
		return nil, domain.ErrInvalidTransition
	}

	intent, err := s.gateway.GetIntentStatus(ctx, input.IntentRef)
	if err != nil {
		return nil, err
	}
	if intent.Status != gateway.IntentStatusSucceeded {
		return nil, fmt.Errorf("%w: gateway reports %q", domain.ErrPaymentNotCompleted, intent.Status)
	}
	if intent.AmountCents != input.AmountCents || intent.AmountCents != booking.AmountCents {
		return nil, fmt.Errorf("%w: charged %d, claimed %d, booked %d", domain.ErrAmountMismatch, intent.AmountCents, input.AmountCents, booking.AmountCents)
	}

	payment := &domain.Payment{
		IntentRef:   input.IntentRef,
		BookingRef:  booking.BookingRef,
		AmountCents: intent.AmountCents,
		Method:      input.Method,
	}
	if err := s.payments.ConfirmBooking(ctx, booking.ID, payment); err != nil {
		// A concurrent confirmation may have won the booking CAS between
		// our read and the write. If it recorded the same intent, hand
		// back its payment instead of failing.
		if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrConflict) {
			if settled, lookupErr := s.settledPayment(ctx, booking.BookingRef, input.IntentRef); lookupErr == nil {
				return settled, nil
			}
		}
		return nil, err
	}

	s.publish(ctx, booking, payment)
	return payment, nil
}

func (s *PaymentService) Get(ctx context.Context, identity domain.Identity, id int64) (*domain.Payment, error) {
	if !identity.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can view payments", domain.ErrForbidden)
	}
	return s.payments.GetByID(ctx, id)
}

func (s *PaymentService) List(ctx context.Context, identity domain.Identity) ([]domain.Payment, error) {
	if !identity.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can view payments", domain.ErrForbidden)
	}
	return s.payments.List(ctx)
}

func (s *PaymentService) settledPayment(ctx context.Context, bookingRef, intentRef string) (*domain.Payment, error) {
	existing, err := s.payments.GetByBookingRef(ctx, bookingRef)
	if err != nil {
		return nil, err
	}
	if existing.IntentRef != intentRef {
		return nil, domain.ErrInvalidTransition
	}
	return existing, nil
}

func (s *PaymentService) publish(ctx context.Context, booking *domain.Booking, payment *domain.Payment) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        kafka.EventPaymentCompleted,
		BookingRef:  booking.BookingRef,
		FlightID:    booking.FlightID,
		SeatsBooked: booking.SeatsBooked,
		AmountCents: payment.AmountCents,
		Email:       booking.OwnerEmail,
		Status:      string(domain.BookingStatusConfirmed),
		OccurredAt:  time.Now(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.BookingRef, event); err != nil {
		log.Printf("publish payment event for booking %s: %v", booking.BookingRef, err)
	}
}

var _ PaymentUseCase = (*PaymentService)(nil)
