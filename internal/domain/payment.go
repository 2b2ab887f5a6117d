package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodCredit PaymentMethod = "credit"
	PaymentMethodDebit  PaymentMethod = "debit"
	PaymentMethodPaypal PaymentMethod = "paypal"
	PaymentMethodUPI    PaymentMethod = "upi"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCredit, PaymentMethodDebit, PaymentMethodPaypal, PaymentMethodUPI:
		return true
	}
	return false
}

// Payment records a verified gateway charge. At most one payment may
// reference a booking; the unique constraint on booking_ref enforces it.
type Payment struct {
	ID          int64
	IntentRef   string
	BookingRef  string
	AmountCents int64
	Method      PaymentMethod
	Status      PaymentStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
