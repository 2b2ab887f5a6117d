package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	// Create reserves seats and persists the booking as one transaction.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerSubject string) ([]domain.Booking, error)
	// Close moves a non-terminal booking to cancelled/declined and returns
	// the released seats to the flight in the same transaction.
	Close(ctx context.Context, id int64, target domain.BookingStatus) (*domain.Booking, error)
	// ConfirmWithoutPayment is the administrative preparing -> confirmed
	// transition; payment-driven confirmation lives in PaymentRepository.
	ConfirmWithoutPayment(ctx context.Context, id int64) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, booking_ref, owner_subject, owner_email, flight_id, flight_details, passengers, seats_booked, amount_cents, status, COALESCE(payment_ref, ''), created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var details, passengers []byte
	if err := row.Scan(&b.ID, &b.BookingRef, &b.OwnerSubject, &b.OwnerEmail, &b.FlightID, &details, &passengers, &b.SeatsBooked, &b.AmountCents, &b.Status, &b.PaymentRef, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(details, &b.FlightDetails); err != nil {
		return nil, fmt.Errorf("decode flight details: %w", err)
	}
	if err := json.Unmarshal(passengers, &b.Passengers); err != nil {
		return nil, fmt.Errorf("decode passengers: %w", err)
	}
	return &b, nil
}

// Create decrements the flight's seat counter and inserts the booking row
// inside a single transaction. The conditional UPDATE makes the decrement
// a compare-and-swap: if another transaction takes the last seats first,
// zero rows are affected and nothing is persisted.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	details, err := json.Marshal(booking.FlightDetails)
	if err != nil {
		return fmt.Errorf("encode flight details: %w", err)
	}
	passengers, err := json.Marshal(booking.Passengers)
	if err != nil {
		return fmt.Errorf("encode passengers: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - $2, updated_at = now() WHERE id=$1 AND available_seats >= $2`, booking.FlightID, booking.SeatsBooked)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id=$1)`, booking.FlightID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrSeatsUnavailable
	}

	booking.Status = domain.BookingStatusPreparing
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (booking_ref, owner_subject, owner_email, flight_id, flight_details, passengers, seats_booked, amount_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		booking.BookingRef, booking.OwnerSubject, booking.OwnerEmail, booking.FlightID, details, passengers, booking.SeatsBooked, booking.AmountCents, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return mapError(err)
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
}

func (r *PGBookingRepository) ListByOwner(ctx context.Context, ownerSubject string) ([]domain.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE owner_subject=$1 ORDER BY created_at DESC`, ownerSubject)
}

func (r *PGBookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// Close performs the terminal transition and the seat release as one
// transaction. The status guard in the UPDATE is what makes the release
// happen exactly once: only the transaction that actually moved the row
// out of the non-terminal set increments the counter.
func (r *PGBookingRepository) Close(ctx context.Context, id int64, target domain.BookingStatus) (*domain.Booking, error) {
	if !target.IsTerminal() {
		return nil, domain.ErrInvalidTransition
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	b, err := scanBooking(tx.QueryRow(ctx, `UPDATE bookings SET status=$2, updated_at=now()
		WHERE id=$1 AND status IN ('preparing', 'confirmed')
		RETURNING `+bookingColumns, id, target))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMiss(ctx, id)
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = LEAST(total_seats, available_seats + $2), updated_at = now() WHERE id=$1`, b.FlightID, b.SeatsBooked); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) ConfirmWithoutPayment(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET status='confirmed', updated_at=now()
		WHERE id=$1 AND status='preparing'
		RETURNING `+bookingColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMiss(ctx, id)
		}
		return nil, err
	}
	return b, nil
}

// classifyMiss distinguishes a guarded UPDATE that matched nothing: either
// the booking does not exist or its current status rejects the transition.
func (r *PGBookingRepository) classifyMiss(ctx context.Context, id int64) error {
	var status domain.BookingStatus
	if err := r.db.QueryRow(ctx, `SELECT status FROM bookings WHERE id=$1`, id).Scan(&status); err != nil {
		return mapError(err)
	}
	return domain.ErrInvalidTransition
}

var _ BookingRepository = (*PGBookingRepository)(nil)
