package repository

import (
	"context"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PassengerRepository interface {
	Create(ctx context.Context, passenger *domain.Passenger) error
	GetForOwner(ctx context.Context, id int64, ownerSubject string) (*domain.Passenger, error)
	ListByOwner(ctx context.Context, ownerSubject string) ([]domain.Passenger, error)
	Update(ctx context.Context, passenger *domain.Passenger) error
	Delete(ctx context.Context, id int64, ownerSubject string) error
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

const passengerColumns = `id, owner_subject, firstname, lastname, email, phone, date_of_birth, age, passport_number, gender, created_at, updated_at`

func scanPassenger(row pgx.Row) (*domain.Passenger, error) {
	var p domain.Passenger
	if err := row.Scan(&p.ID, &p.OwnerSubject, &p.Firstname, &p.Lastname, &p.Email, &p.Phone, &p.DateOfBirth, &p.Age, &p.PassportNumber, &p.Gender, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *PGPassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	err := r.db.QueryRow(ctx, `INSERT INTO passengers (owner_subject, firstname, lastname, email, phone, date_of_birth, age, passport_number, gender)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		passenger.OwnerSubject, passenger.Firstname, passenger.Lastname, passenger.Email, passenger.Phone, passenger.DateOfBirth, passenger.Age, passenger.PassportNumber, passenger.Gender).
		Scan(&passenger.ID, &passenger.CreatedAt, &passenger.UpdatedAt)
	return mapError(err)
}

// Ownership is enforced in the WHERE clause: a row belonging to another
// customer is indistinguishable from a missing one.
func (r *PGPassengerRepository) GetForOwner(ctx context.Context, id int64, ownerSubject string) (*domain.Passenger, error) {
	return scanPassenger(r.db.QueryRow(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE id=$1 AND owner_subject=$2`, id, ownerSubject))
}

func (r *PGPassengerRepository) ListByOwner(ctx context.Context, ownerSubject string) ([]domain.Passenger, error) {
	rows, err := r.db.Query(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE owner_subject=$1 ORDER BY created_at DESC`, ownerSubject)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		p, err := scanPassenger(rows)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, *p)
	}
	return passengers, rows.Err()
}

func (r *PGPassengerRepository) Update(ctx context.Context, passenger *domain.Passenger) error {
	err := r.db.QueryRow(ctx, `UPDATE passengers SET firstname=$3, lastname=$4, email=$5, phone=$6, date_of_birth=$7, age=$8, passport_number=$9, gender=$10, updated_at=now()
		WHERE id=$1 AND owner_subject=$2
		RETURNING updated_at`,
		passenger.ID, passenger.OwnerSubject, passenger.Firstname, passenger.Lastname, passenger.Email, passenger.Phone, passenger.DateOfBirth, passenger.Age, passenger.PassportNumber, passenger.Gender).
		Scan(&passenger.UpdatedAt)
	return mapError(err)
}

func (r *PGPassengerRepository) Delete(ctx context.Context, id int64, ownerSubject string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM passengers WHERE id=$1 AND owner_subject=$2`, id, ownerSubject)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
