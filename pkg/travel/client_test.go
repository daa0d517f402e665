package travel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDistanceMatrixClient_ParsesDuration(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [{"status": "OK", "duration": {"value": 5460}}]}]
		}`))
	}))
	defer server.Close()

	client := NewDistanceMatrixClient(server.URL, "test-key", zap.NewNop())

	seconds, err := client.TravelSeconds(context.Background(), peffermill, titwood)
	require.NoError(t, err)

	assert.Equal(t, 5460, seconds)
	assert.Contains(t, gotQuery, "origins=55.929%2C-3.151")
	assert.Contains(t, gotQuery, "destinations=55.829%2C-4.295")
	assert.Contains(t, gotQuery, "key=test-key")
}

func TestDistanceMatrixClient_NonOKHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewDistanceMatrixClient(server.URL, "test-key", zap.NewNop())

	_, err := client.TravelSeconds(context.Background(), peffermill, titwood)
	assert.ErrorContains(t, err, "status 429")
}

func TestDistanceMatrixClient_NonOKBodyStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "REQUEST_DENIED", "rows": []}`))
	}))
	defer server.Close()

	client := NewDistanceMatrixClient(server.URL, "test-key", zap.NewNop())

	_, err := client.TravelSeconds(context.Background(), peffermill, titwood)
	assert.ErrorContains(t, err, "REQUEST_DENIED")
}

func TestDistanceMatrixClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewDistanceMatrixClient(server.URL, "test-key", zap.NewNop())

	_, err := client.TravelSeconds(context.Background(), peffermill, titwood)
	assert.ErrorContains(t, err, "decode")
}

func TestDistanceMatrixClient_EmptyRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OK", "rows": []}`))
	}))
	defer server.Close()

	client := NewDistanceMatrixClient(server.URL, "test-key", zap.NewNop())

	_, err := client.TravelSeconds(context.Background(), peffermill, titwood)
	assert.ErrorContains(t, err, "no elements")
}
