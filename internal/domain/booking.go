package domain

import "time"

type BookingStatus string

const (
	BookingStatusPreparing BookingStatus = "preparing"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusDeclined  BookingStatus = "declined"
)

// IsTerminal reports whether the status admits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusDeclined
}

// CanTransitionTo is the single source of truth for the booking state
// machine: preparing -> confirmed | cancelled | declined, and a confirmed
// booking may still be cancelled or declined.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch target {
	case BookingStatusConfirmed:
		return s == BookingStatusPreparing
	case BookingStatusCancelled, BookingStatusDeclined:
		return true
	default:
		return false
	}
}

// FlightDetails is the snapshot of flight terms copied into a booking at
// creation time. Later edits to the flight never alter it.
type FlightDetails struct {
	FlightNumber      string    `json:"flight_number"`
	DepartureCode     string    `json:"departure_code"`
	ArrivalCode       string    `json:"arrival_code"`
	Date              time.Time `json:"date"`
	PricePerSeatCents int64     `json:"price_per_seat_cents"`
}

// BookedPassenger is a by-value copy of a manifest entry. A booking owns
// its passenger list outright; it is never linked back to the manifest.
type BookedPassenger struct {
	Name           string `json:"name"`
	Age            int    `json:"age"`
	PassportNumber string `json:"passport_number"`
}

type Booking struct {
	ID            int64
	BookingRef    string
	OwnerSubject  string
	OwnerEmail    string
	FlightID      int64
	FlightDetails FlightDetails
	Passengers    []BookedPassenger
	SeatsBooked   int
	AmountCents   int64
	Status        BookingStatus
	PaymentRef    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
