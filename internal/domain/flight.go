package domain

import "time"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "scheduled"
	FlightStatusCancelled FlightStatus = "cancelled"
	FlightStatusDelayed   FlightStatus = "delayed"
)

type Flight struct {
	ID             int64
	FlightNumber   string
	Airline        string
	DepartureCode  string
	ArrivalCode    string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	Date           time.Time
	TotalSeats     int
	AvailableSeats int
	PriceCents     int64
	Status         FlightStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FlightFilter narrows FindAvailable results. Zero-valued fields are
// ignored rather than matched against.
type FlightFilter struct {
	DepartureCode string
	ArrivalCode   string
	Date          time.Time
}
