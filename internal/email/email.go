package email

import (
	"context"
	"fmt"

	"github.com/avelora/airdesk/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send email to %s about %s for booking %s (%d seats, %d cents)\n",
		event.Email, event.Type, event.BookingRef, event.SeatsBooked, event.AmountCents)
	return nil
}
