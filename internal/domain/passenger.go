package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// Passenger is a saved manifest entry owned by the customer who created
// it. Bookings copy the fields they need; they never reference the live row.
type Passenger struct {
	ID             int64
	OwnerSubject   string
	Firstname      string
	Lastname       string
	Email          string
	Phone          string
	DateOfBirth    time.Time
	Age            int
	PassportNumber string
	Gender         Gender
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AgeOn derives the passenger's age at the given date from the date of
// birth, used when the client omits an explicit age.
func (p Passenger) AgeOn(at time.Time) int {
	age := at.Year() - p.DateOfBirth.Year()
	if at.YearDay() < p.DateOfBirth.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
