package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchIdentity(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer provider-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sub":"1234","email":"abcdef@gmail.com","name":"Some One","picture":"https://example.com/p.jpg"}`))
	}))
	t.Cleanup(server.Close)

	verifier := NewGoogleVerifier(server.URL)
	identity, err := verifier.FetchIdentity(context.Background(), "provider-token")
	require.NoError(t, err)
	require.Equal(t, "abcdef@gmail.com", identity.Email)
	require.Equal(t, "Some One", identity.Name)
	require.Equal(t, "https://example.com/p.jpg", identity.Picture)
}

func TestFetchIdentityRejectsProviderError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	verifier := NewGoogleVerifier(server.URL)
	_, err := verifier.FetchIdentity(context.Background(), "bad-token")
	require.Error(t, err)
}
