package repository

import (
	"context"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository interface {
	// ConfirmBooking records the payment and flips its booking from
	// preparing to confirmed as one atomic unit.
	ConfirmBooking(ctx context.Context, bookingID int64, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByBookingRef(ctx context.Context, bookingRef string) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
}

type PGPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

const paymentColumns = `id, intent_ref, booking_ref, amount_cents, method, status, created_at, updated_at`

// ConfirmBooking pairs the booking's preparing -> confirmed CAS with the
// payment insert inside one transaction. Two concurrent confirmations for
// the same booking cannot both commit: the second either loses the CAS or
// trips the unique constraint on payments.booking_ref.
func (r *PGPaymentRepository) ConfirmBooking(ctx context.Context, bookingID int64, payment *domain.Payment) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE bookings SET status='confirmed', payment_ref=$2, updated_at=now() WHERE id=$1 AND status='preparing'`, bookingID, payment.IntentRef)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id=$1)`, bookingID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInvalidTransition
	}

	payment.Status = domain.PaymentStatusCompleted
	if err := tx.QueryRow(ctx, `INSERT INTO payments (intent_ref, booking_ref, amount_cents, method, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		payment.IntentRef, payment.BookingRef, payment.AmountCents, payment.Method, payment.Status).
		Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt); err != nil {
		return mapError(err)
	}

	return tx.Commit(ctx)
}

func (r *PGPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id)
	return scanPayment(row)
}

func (r *PGPaymentRepository) GetByBookingRef(ctx context.Context, bookingRef string) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE booking_ref=$1`, bookingRef)
	return scanPayment(row)
}

func (r *PGPaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	if err := row.Scan(&p.ID, &p.IntentRef, &p.BookingRef, &p.AmountCents, &p.Method, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
