package cache

import (
	"testing"
	"time"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSearchKey(t *testing.T) {
	assert.Equal(t, "cache:flights:::", searchKey(domain.FlightFilter{}))
	assert.Equal(t, "cache:flights:JFK:LAX:", searchKey(domain.FlightFilter{DepartureCode: "JFK", ArrivalCode: "LAX"}))
	assert.Equal(t,
		"cache:flights:JFK:LAX:2026-09-10",
		searchKey(domain.FlightFilter{
			DepartureCode: "JFK",
			ArrivalCode:   "LAX",
			Date:          time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		}),
	)

	// distinct filters never share a cache entry
	assert.NotEqual(t,
		searchKey(domain.FlightFilter{DepartureCode: "JFK"}),
		searchKey(domain.FlightFilter{ArrivalCode: "JFK"}),
	)
}
