//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"assessment-genie/internal/config"
	"assessment-genie/internal/handler"
	"assessment-genie/internal/middleware"
	"assessment-genie/internal/model"
	"assessment-genie/internal/oauth"
	"assessment-genie/internal/router"
	"assessment-genie/internal/service"
)

type memoryUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: map[string]model.User{}}
}

func (s *memoryUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *memoryUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *memoryUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[email]
	return ok, nil
}

func (s *memoryUserStore) Create(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Email] = u
	return nil
}

type memoryBlueprintStore struct {
	mu         sync.Mutex
	blueprints []model.Blueprint
}

func (s *memoryBlueprintStore) Create(_ context.Context, b model.Blueprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blueprints = append(s.blueprints, b)
	return nil
}

func (s *memoryBlueprintStore) ListByOwner(_ context.Context, ownerID string) ([]model.Blueprint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Blueprint, 0)
	for _, b := range s.blueprints {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}

type memoryTopicStore struct {
	mu       sync.Mutex
	requests map[string]model.TopicRequest
}

func newMemoryTopicStore() *memoryTopicStore {
	return &memoryTopicStore{requests: map[string]model.TopicRequest{}}
}

func (s *memoryTopicStore) Create(_ context.Context, req model.TopicRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[req.ID] = req
	return nil
}

func (s *memoryTopicStore) List(_ context.Context) ([]model.TopicRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TopicRequest, 0, len(s.requests))
	for _, req := range s.requests {
		out = append(out, req)
	}
	return out, nil
}

func (s *memoryTopicStore) UpdateStatus(_ context.Context, id string, status string, updatedAt time.Time) (model.TopicRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return model.TopicRequest{}, model.ErrTopicRequestNotFound
	}
	req.Status = status
	req.UpdatedAt = updatedAt
	s.requests[id] = req
	return req, nil
}

// newTestServer wires the full router against in-memory stores and a
// stubbed Google userinfo endpoint serving the given profile JSON.
func newTestServer(t *testing.T, googleProfile string) *httptest.Server {
	t.Helper()

	userinfo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(googleProfile))
	}))
	t.Cleanup(userinfo.Close)

	cfg := &config.Config{
		ServerPort:       "5002",
		RequestTimeout:   30 * time.Second,
		JWTSecret:        "test-secret",
		TokenTTL:         24 * time.Hour,
		AdminEmailDomain: "@techcurators.in",
		RateLimitRPM:     10000,
		AuthRateLimitRPM: 10000,
	}

	authService := service.NewAuthService(cfg.JWTSecret, cfg.TokenTTL, cfg.AdminEmailDomain, newMemoryUserStore())
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService, oauth.NewGoogleVerifier(userinfo.URL))

	blueprintHandler := handler.NewBlueprintHandler(service.NewBlueprintService(&memoryBlueprintStore{}))
	topicHandler := handler.NewTopicHandler(service.NewTopicService(newMemoryTopicStore()))

	server := httptest.NewServer(router.New(cfg, authMiddleware, router.Handlers{
		Auth:      authHandler,
		Blueprint: blueprintHandler,
		Topic:     topicHandler,
	}))
	t.Cleanup(server.Close)

	return server
}

func postJSON(t *testing.T, url string, payload any, token string) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func putJSON(t *testing.T, url string, payload any, token string) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, url string, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *model.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", string(raw))
	return env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// signupAndLogin creates an account and returns the issued session.
func signupAndLogin(t *testing.T, serverURL string, email string, password string) model.Session {
	t.Helper()

	signupResp := postJSON(t, serverURL+"/api/v1/auth/signup", map[string]string{"email": email, "password": password}, "")
	require.Equal(t, http.StatusCreated, signupResp.StatusCode)
	_ = signupResp.Body.Close()

	loginResp := postJSON(t, serverURL+"/api/v1/auth/login", map[string]string{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)

	var session model.Session
	decodeData(t, decodeEnvelope(t, loginResp), &session)
	require.NotEmpty(t, session.Token)
	return session
}
