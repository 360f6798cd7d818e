package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"assessment-genie/internal/model"
	"assessment-genie/pkg/apierror"
)

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

func TestSubmitTopicRequest(t *testing.T) {
	t.Parallel()

	svc := NewTopicService(newMemoryTopicStore())

	req, err := svc.Submit(context.Background(), "user-1", model.CreateTopicRequest{
		Topic:       "Machine Learning",
		Description: "Need questions about ML fundamentals",
	})
	require.NoError(t, err)
	require.Equal(t, model.TopicStatusPending, req.Status)
	require.Equal(t, "user-1", req.RequesterID)
	require.NotEmpty(t, req.ID)

	_, err = svc.Submit(context.Background(), "user-1", model.CreateTopicRequest{Topic: "   "})
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "BAD_REQUEST", apiErr.Code)
}

func TestUpdateTopicStatus(t *testing.T) {
	t.Parallel()

	store := newMemoryTopicStore()
	svc := NewTopicService(store)

	created, err := svc.Submit(context.Background(), "user-1", model.CreateTopicRequest{Topic: "Databases"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), created.ID, "Approved")
	require.NoError(t, err)
	require.Equal(t, model.TopicStatusApproved, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), created.ID, "archived")
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "BAD_REQUEST", apiErr.Code)

	_, err = svc.UpdateStatus(context.Background(), "missing-id", "approved")
	require.ErrorIs(t, err, model.ErrTopicRequestNotFound)
}
