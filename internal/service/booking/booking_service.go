package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/avelora/airdesk/internal/kafka"
	"github.com/avelora/airdesk/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	Create(ctx context.Context, identity domain.Identity, input CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, identity domain.Identity, id int64) (*domain.Booking, error)
	List(ctx context.Context, identity domain.Identity) ([]domain.Booking, error)
	Cancel(ctx context.Context, identity domain.Identity, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, identity domain.Identity, id int64, target domain.BookingStatus) (*domain.Booking, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings    repository.BookingRepository
	flights     repository.FlightRepository
	cache       Cache
	producer    Producer
	eventsTopic string
}

type CreateBookingInput struct {
	FlightID   int64                    `json:"flight_id"`
	Seats      int                      `json:"seats"`
	Passengers []domain.BookedPassenger `json:"passengers"`
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	eventsTopic string,
) *BookingService {
	return &BookingService{
		bookings:    bookings,
		flights:     flights,
		cache:       cache,
		producer:    producer,
		eventsTopic: eventsTopic,
	}
}

// Create validates the request, snapshots the flight's terms and the
// passenger list into the booking, and persists it together with the seat
// decrement. If the seats cannot be reserved no booking is written.
func (s *BookingService) Create(ctx context.Context, identity domain.Identity, input CreateBookingInput) (*domain.Booking, error) {
	if !identity.IsCustomer() {
		return nil, fmt.Errorf("%w: only customers can book flights", domain.ErrForbidden)
	}
	if input.Seats < 1 {
		return nil, fmt.Errorf("%w: seats must be at least 1", domain.ErrInvalidInput)
	}
	if len(input.Passengers) != input.Seats {
		return nil, fmt.Errorf("%w: expected %d passengers, got %d", domain.ErrInvalidInput, input.Seats, len(input.Passengers))
	}
	for _, p := range input.Passengers {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: passenger name is required", domain.ErrInvalidInput)
		}
		if p.Age < 0 {
			return nil, fmt.Errorf("%w: passenger age must not be negative", domain.ErrInvalidInput)
		}
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if flight.Status != domain.FlightStatusScheduled {
		return nil, fmt.Errorf("%w: flight %s is not open for booking", domain.ErrInvalidInput, flight.FlightNumber)
	}

	booking := &domain.Booking{
		BookingRef:   uuid.NewString(),
		OwnerSubject: identity.SubjectID,
		OwnerEmail:   identity.Email,
		FlightID:     flight.ID,
		FlightDetails: domain.FlightDetails{
			FlightNumber:      flight.FlightNumber,
			DepartureCode:     flight.DepartureCode,
			ArrivalCode:       flight.ArrivalCode,
			Date:              flight.Date,
			PricePerSeatCents: flight.PriceCents,
		},
		Passengers:  input.Passengers,
		SeatsBooked: input.Seats,
		AmountCents: flight.PriceCents * int64(input.Seats),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.invalidateFlights(ctx)
	s.publish(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, identity domain.Identity, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && booking.OwnerSubject != identity.SubjectID {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

// List scopes by the stored owner subject, never by a client-supplied
// filter: a customer sees their own bookings, an admin sees everything.
func (s *BookingService) List(ctx context.Context, identity domain.Identity) ([]domain.Booking, error) {
	if identity.IsAdmin() {
		return s.bookings.List(ctx)
	}
	return s.bookings.ListByOwner(ctx, identity.SubjectID)
}

func (s *BookingService) Cancel(ctx context.Context, identity domain.Identity, id int64) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && current.OwnerSubject != identity.SubjectID {
		return nil, domain.ErrForbidden
	}
	if current.Status.IsTerminal() {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.bookings.Close(ctx, id, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}

	s.invalidateFlights(ctx)
	s.publish(ctx, kafka.EventBookingCancelled, updated)
	return updated, nil
}

// UpdateStatus is the administrative transition. Moving to cancelled or
// declined releases the seats; confirming here records no payment ref and
// exists for manual reconciliation.
func (s *BookingService) UpdateStatus(ctx context.Context, identity domain.Identity, id int64, target domain.BookingStatus) (*domain.Booking, error) {
	if !identity.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can update booking status", domain.ErrForbidden)
	}

	var updated *domain.Booking
	var err error
	var event string
	switch target {
	case domain.BookingStatusConfirmed:
		updated, err = s.bookings.ConfirmWithoutPayment(ctx, id)
		event = kafka.EventBookingConfirmed
	case domain.BookingStatusCancelled:
		updated, err = s.bookings.Close(ctx, id, target)
		event = kafka.EventBookingCancelled
	case domain.BookingStatusDeclined:
		updated, err = s.bookings.Close(ctx, id, target)
		event = kafka.EventBookingDeclined
	default:
		return nil, fmt.Errorf("%w: unsupported target status %q", domain.ErrInvalidInput, target)
	}
	if err != nil {
		return nil, err
	}

	if target != domain.BookingStatusConfirmed {
		s.invalidateFlights(ctx)
	}
	s.publish(ctx, event, updated)
	return updated, nil
}

func (s *BookingService) invalidateFlights(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("invalidate flights cache: %v", err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingRef:  booking.BookingRef,
		FlightID:    booking.FlightID,
		SeatsBooked: booking.SeatsBooked,
		AmountCents: booking.AmountCents,
		Email:       booking.OwnerEmail,
		Status:      string(booking.Status),
		OccurredAt:  time.Now(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.BookingRef, event); err != nil {
		log.Printf("publish %s event for booking %s: %v", eventType, booking.BookingRef, err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
