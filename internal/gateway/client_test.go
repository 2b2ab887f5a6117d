package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClient_CreateHold(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/holds", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req createHoldRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(40000), req.AmountCents)
		assert.Equal(t, "usd", req.Currency)
		assert.Equal(t, "cust-1", req.Metadata["subject"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Hold{IntentRef: "pi_123", ClientSecret: "secret"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	hold, err := client.CreateHold(context.Background(), 40000, "usd", map[string]string{"subject": "cust-1"})

	assert.NoError(t, err)
	assert.Equal(t, "pi_123", hold.IntentRef)
	assert.Equal(t, "secret", hold.ClientSecret)
}

func TestClient_GetIntentStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/intents/pi_123", r.URL.Path)
		json.NewEncoder(w).Encode(IntentStatus{Status: IntentStatusSucceeded, AmountCents: 40000, Currency: "usd"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	status, err := client.GetIntentStatus(context.Background(), "pi_123")

	assert.NoError(t, err)
	assert.Equal(t, IntentStatusSucceeded, status.Status)
	assert.Equal(t, int64(40000), status.AmountCents)
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such intent", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	status, err := client.GetIntentStatus(context.Background(), "pi_missing")

	assert.ErrorIs(t, err, domain.ErrGateway)
	assert.Nil(t, status)
}

func TestClient_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	_, err := client.GetIntentStatus(context.Background(), "pi_123")

	assert.ErrorIs(t, err, domain.ErrGateway)
}
