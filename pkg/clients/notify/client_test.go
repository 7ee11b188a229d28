package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herdtrack/herdtrack/internal/config"
)

func TestSendAlertSummary(t *testing.T) {
	var received AlertSummaryRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(config.NotifyConfig{WebhookURL: srv.URL})
	err := client.SendAlertSummary(context.Background(), AlertSummaryRequest{
		FarmName:     "Smart Dairy Farm",
		Date:         "2024-06-15",
		HealthAlerts: 1,
		Cows: []CowAlert{
			{CowID: "COW002", Name: "Parvathi", Alerts: []string{"High fever detected"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Smart Dairy Farm", received.FarmName)
	require.Len(t, received.Cows, 1)
	assert.Equal(t, "COW002", received.Cows[0].CowID)
}

func TestSendAlertSummaryServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(config.NotifyConfig{WebhookURL: srv.URL})
	err := client.SendAlertSummary(context.Background(), AlertSummaryRequest{})
	assert.Error(t, err)
}
