package domain

import "errors"

// Sentinel errors shared by services and repositories. Handlers translate
// them into HTTP statuses; anything that does not match is reported as an
// internal error without leaking the cause.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidInput        = errors.New("invalid input")
	ErrSeatsUnavailable    = errors.New("not enough available seats")
	ErrInvalidTransition   = errors.New("invalid booking status transition")
	ErrAmountMismatch      = errors.New("payment amount mismatch")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrGateway             = errors.New("payment gateway unavailable")
	ErrConflict            = errors.New("conflict")
)
