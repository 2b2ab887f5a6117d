package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEvent(t *testing.T) {
	payload, err := json.Marshal(BookingEvent{
		Type:        EventBookingCreated,
		BookingRef:  "ref-7",
		FlightID:    4,
		SeatsBooked: 2,
		AmountCents: 40000,
		Email:       "cust@example.com",
		Status:      "preparing",
		OccurredAt:  time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)

	event, err := decodeEvent(payload)

	assert.NoError(t, err)
	assert.Equal(t, EventBookingCreated, event.Type)
	assert.Equal(t, "ref-7", event.BookingRef)
	assert.Equal(t, 2, event.SeatsBooked)
	assert.Equal(t, "cust@example.com", event.Email)
}

func TestDecodeEvent_Malformed(t *testing.T) {
	_, err := decodeEvent([]byte("not json"))
	assert.Error(t, err)

	// valid json but not an event
	_, err = decodeEvent([]byte(`{"seats_booked": 2}`))
	assert.Error(t, err)
}
