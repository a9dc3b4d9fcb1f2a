package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions/cs_123", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_123","status":"complete"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test")
	payload, err := client.GetSession(context.Background(), "cs_123")
	require.NoError(t, err)

	var session map[string]string
	require.NoError(t, json.Unmarshal(payload, &session))
	assert.Equal(t, "complete", session["status"])
}

func TestGetSessionEmptyID(t *testing.T) {
	client := NewClient("http://unused", "sk_test")
	_, err := client.GetSession(context.Background(), "")
	assert.Error(t, err)
}

func TestGetSessionUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no such session"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test")
	_, err := client.GetSession(context.Background(), "cs_missing")
	assert.Error(t, err)
}

func TestCreateSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var req SessionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ada@example.com", req.CustomerEmail)
		require.Len(t, req.Items, 1)
		assert.Equal(t, "Yirgacheffe", req.Items[0].Name)
		w.Write([]byte(`{"id":"cs_new","url":"https://pay.example.com/cs_new"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test")
	payload, err := client.CreateSession(context.Background(), SessionRequest{
		CustomerEmail: "ada@example.com",
		Items:         []SessionItem{{Name: "Yirgacheffe", Quantity: 2, Price: 14.5}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(payload), "cs_new")
}
