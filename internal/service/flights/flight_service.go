package flights

import (
	"context"
	"fmt"
	"log"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/avelora/airdesk/internal/repository"
)

type FlightUseCase interface {
	FindAvailable(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, identity domain.Identity, flight *domain.Flight) error
	Update(ctx context.Context, identity domain.Identity, flight *domain.Flight) error
	Delete(ctx context.Context, identity domain.Identity, id int64) error
}

type Cache interface {
	GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	SetFlights(ctx context.Context, filter domain.FlightFilter, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

// FindAvailable returns scheduled flights with seats left, matching
// whatever filter fields are set. The redis cache is best effort on both
// read and write.
func (s *FlightService) FindAvailable(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx, filter); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.FindAvailable(ctx, filter)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, filter, flights); err != nil {
			log.Printf("cache flights: %v", err)
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, identity domain.Identity, flight *domain.Flight) error {
	if !identity.IsAdmin() {
		return fmt.Errorf("%w: only admins can create flights", domain.ErrForbidden)
	}
	if flight.Status == "" {
		flight.Status = domain.FlightStatusScheduled
	}
	if err := validate(flight); err != nil {
		return err
	}
	if flight.AvailableSeats < 0 || flight.AvailableSeats > flight.TotalSeats {
		return fmt.Errorf("%w: available seats must be between 0 and total seats", domain.ErrInvalidInput)
	}

	if err := s.repo.Create(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Update rewrites route, schedule, price and status. The seat counter is
// owned by the booking engine and is not touched here.
func (s *FlightService) Update(ctx context.Context, identity domain.Identity, flight *domain.Flight) error {
	if !identity.IsAdmin() {
		return fmt.Errorf("%w: only admins can update flights", domain.ErrForbidden)
	}
	if err := validate(flight); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	if !identity.IsAdmin() {
		return fmt.Errorf("%w: only admins can delete flights", domain.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func validate(flight *domain.Flight) error {
	switch {
	case flight.FlightNumber == "":
		return fmt.Errorf("%w: flight number is required", domain.ErrInvalidInput)
	case flight.DepartureCode == "" || flight.ArrivalCode == "":
		return fmt.Errorf("%w: departure and arrival codes are required", domain.ErrInvalidInput)
	case flight.Date.IsZero() || flight.DepartureTime.IsZero() || flight.ArrivalTime.IsZero():
		return fmt.Errorf("%w: flight schedule is required", domain.ErrInvalidInput)
	case flight.TotalSeats <= 0:
		return fmt.Errorf("%w: total seats must be positive", domain.ErrInvalidInput)
	case flight.PriceCents <= 0:
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}
	switch flight.Status {
	case domain.FlightStatusScheduled, domain.FlightStatusCancelled, domain.FlightStatusDelayed:
	default:
		return fmt.Errorf("%w: unknown flight status %q", domain.ErrInvalidInput, flight.Status)
	}
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("invalidate flights cache: %v", err)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
