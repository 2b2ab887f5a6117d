package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

// memStore is an in-memory stand-in for the Postgres repositories with the
// same compare-and-set semantics: the seat decrement happens atomically with
// the booking insert, and a close releases seats exactly once.
type memStore struct {
	mu       sync.Mutex
	flight   domain.Flight
	nextID   int64
	bookings map[int64]*domain.Booking
}

func newMemStore(flight domain.Flight) *memStore {
	return &memStore{flight: flight, bookings: map[int64]*domain.Booking{}}
}

func (s *memStore) Create(ctx context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flight.ID != booking.FlightID {
		return domain.ErrNotFound
	}
	if s.flight.AvailableSeats < booking.SeatsBooked {
		return domain.ErrSeatsUnavailable
	}
	s.flight.AvailableSeats -= booking.SeatsBooked
	s.nextID++
	booking.ID = s.nextID
	booking.Status = domain.BookingStatusPreparing
	stored := *booking
	s.bookings[booking.ID] = &stored
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *b
	return &out, nil
}

func (s *memStore) List(ctx context.Context) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (s *memStore) ListByOwner(ctx context.Context, ownerSubject string) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.OwnerSubject == ownerSubject {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *memStore) Close(ctx context.Context, id int64, target domain.BookingStatus) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if b.Status.IsTerminal() {
		return nil, domain.ErrInvalidTransition
	}
	b.Status = target
	s.flight.AvailableSeats += b.SeatsBooked
	if s.flight.AvailableSeats > s.flight.TotalSeats {
		s.flight.AvailableSeats = s.flight.TotalSeats
	}
	out := *b
	return &out, nil
}

func (s *memStore) ConfirmWithoutPayment(ctx context.Context, id int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if b.Status != domain.BookingStatusPreparing {
		return nil, domain.ErrInvalidTransition
	}
	b.Status = domain.BookingStatusConfirmed
	out := *b
	return &out, nil
}

type memFlightRepo struct {
	store *memStore
}

func (r *memFlightRepo) FindAvailable(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.flight.AvailableSeats > 0 {
		return []domain.Flight{r.store.flight}, nil
	}
	return nil, nil
}

func (r *memFlightRepo) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.flight.ID != id {
		return nil, domain.ErrNotFound
	}
	out := r.store.flight
	return &out, nil
}

func (r *memFlightRepo) Create(ctx context.Context, flight *domain.Flight) error { return nil }
func (r *memFlightRepo) Update(ctx context.Context, flight *domain.Flight) error { return nil }
func (r *memFlightRepo) Delete(ctx context.Context, id int64) error              { return nil }

func TestBookingService_Create_NoOversellUnderContention(t *testing.T) {
	store := newMemStore(domain.Flight{
		ID:             1,
		FlightNumber:   "AV900",
		DepartureCode:  "JFK",
		ArrivalCode:    "SFO",
		Date:           time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		TotalSeats:     10,
		AvailableSeats: 5,
		PriceCents:     15000,
		Status:         domain.FlightStatusScheduled,
	})
	service := NewBookingService(store, &memFlightRepo{store: store}, nil, nil, "")

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			caller := domain.Identity{
				SubjectID: fmt.Sprintf("cust-%d", i),
				Email:     fmt.Sprintf("cust-%d@example.com", i),
				Role:      domain.RoleCustomer,
			}
			_, errs[i] = service.Create(context.Background(), caller, CreateBookingInput{
				FlightID:   1,
				Seats:      1,
				Passengers: []domain.BookedPassenger{{Name: "Passenger", Age: 30}},
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrSeatsUnavailable)
		}
	}
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 0, store.flight.AvailableSeats)
	assert.Len(t, store.bookings, 5)
}

func TestBookingService_Create_SnapshotSurvivesPriceChange(t *testing.T) {
	store := newMemStore(domain.Flight{
		ID:             1,
		FlightNumber:   "AV900",
		DepartureCode:  "JFK",
		ArrivalCode:    "SFO",
		Date:           time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		TotalSeats:     10,
		AvailableSeats: 10,
		PriceCents:     15000,
		Status:         domain.FlightStatusScheduled,
	})
	service := NewBookingService(store, &memFlightRepo{store: store}, nil, nil, "")

	caller := domain.Identity{SubjectID: "cust-1", Email: "cust@example.com", Role: domain.RoleCustomer}
	created, err := service.Create(context.Background(), caller, CreateBookingInput{
		FlightID:   1,
		Seats:      2,
		Passengers: []domain.BookedPassenger{{Name: "Ada Byron", Age: 36}, {Name: "Alan Turing", Age: 41}},
	})
	assert.NoError(t, err)

	store.mu.Lock()
	store.flight.PriceCents = 99000
	store.mu.Unlock()

	stored, err := store.GetByID(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(30000), stored.AmountCents)
	assert.Equal(t, int64(15000), stored.FlightDetails.PricePerSeatCents)
}

func TestBookingService_Cancel_ReleasesSeatsExactlyOnce(t *testing.T) {
	store := newMemStore(domain.Flight{
		ID:             1,
		FlightNumber:   "AV900",
		DepartureCode:  "JFK",
		ArrivalCode:    "SFO",
		Date:           time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		TotalSeats:     10,
		AvailableSeats: 10,
		PriceCents:     15000,
		Status:         domain.FlightStatusScheduled,
	})
	service := NewBookingService(store, &memFlightRepo{store: store}, nil, nil, "")

	caller := domain.Identity{SubjectID: "cust-1", Email: "cust@example.com", Role: domain.RoleCustomer}
	created, err := service.Create(context.Background(), caller, CreateBookingInput{
		FlightID: 1,
		Seats:    2,
		Passengers: []domain.BookedPassenger{
			{Name: "Ada Byron", Age: 36},
			{Name: "Alan Turing", Age: 41},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 8, store.flight.AvailableSeats)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Cancel(context.Background(), caller, created.ID)
		}(i)
	}
	wg.Wait()

	// one cancel wins, the other hits the terminal state
	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			failures++
		}
	}
	assert.Equal(t, 1, failures)
	assert.Equal(t, 10, store.flight.AvailableSeats)
}
