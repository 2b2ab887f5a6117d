package repository

import (
	"context"
	"strconv"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	FindAvailable(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, airline, departure_code, arrival_code, departure_time, arrival_time, date, total_seats, available_seats, price_cents, status, created_at, updated_at`

func (r *PGFlightRepository) FindAvailable(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE status = 'scheduled' AND available_seats > 0`
	args := []interface{}{}
	if filter.DepartureCode != "" {
		args = append(args, filter.DepartureCode)
		query += ` AND departure_code = $` + strconv.Itoa(len(args))
	}
	if filter.ArrivalCode != "" {
		args = append(args, filter.ArrivalCode)
		query += ` AND arrival_code = $` + strconv.Itoa(len(args))
	}
	if !filter.Date.IsZero() {
		args = append(args, filter.Date)
		query += ` AND date = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY date, departure_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.FlightNumber, &f.Airline, &f.DepartureCode, &f.ArrivalCode, &f.DepartureTime, &f.ArrivalTime, &f.Date, &f.TotalSeats, &f.AvailableSeats, &f.PriceCents, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Airline, &f.DepartureCode, &f.ArrivalCode, &f.DepartureTime, &f.ArrivalTime, &f.Date, &f.TotalSeats, &f.AvailableSeats, &f.PriceCents, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, airline, departure_code, arrival_code, departure_time, arrival_time, date, total_seats, available_seats, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.Airline, flight.DepartureCode, flight.ArrivalCode, flight.DepartureTime, flight.ArrivalTime, flight.Date, flight.TotalSeats, flight.AvailableSeats, flight.PriceCents, flight.Status).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
	return mapError(err)
}

// Update rewrites a flight's descriptive fields. available_seats is owned
// by the booking engine and deliberately absent from the column list.
func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `UPDATE flights SET flight_number=$2, airline=$3, departure_code=$4, arrival_code=$5, departure_time=$6, arrival_time=$7, date=$8, total_seats=$9, price_cents=$10, status=$11, updated_at=now()
		WHERE id=$1
		RETURNING available_seats, updated_at`,
		flight.ID, flight.FlightNumber, flight.Airline, flight.DepartureCode, flight.ArrivalCode, flight.DepartureTime, flight.ArrivalTime, flight.Date, flight.TotalSeats, flight.PriceCents, flight.Status).
		Scan(&flight.AvailableSeats, &flight.UpdatedAt)
	return mapError(err)
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
