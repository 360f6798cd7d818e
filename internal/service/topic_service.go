package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"assessment-genie/internal/model"
	"assessment-genie/pkg/apierror"
)

type TopicRequestStore interface {
	Create(ctx context.Context, req model.TopicRequest) error
	List(ctx context.Context) ([]model.TopicRequest, error)
	UpdateStatus(ctx context.Context, id string, status string, updatedAt time.Time) (model.TopicRequest, error)
}

// TopicService manages the sample-question topic request queue shown in
// the admin panel.
type TopicService struct {
	store TopicRequestStore
}

func NewTopicService(store TopicRequestStore) *TopicService {
	return &TopicService{store: store}
}

func (s *TopicService) Submit(ctx context.Context, requesterID string, req model.CreateTopicRequest) (model.TopicRequest, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return model.TopicRequest{}, apierror.New("BAD_REQUEST", "topic is required", "topic", http.StatusBadRequest)
	}

	now := time.Now().UTC()
	request := model.TopicRequest{
		ID:          uuid.NewString(),
		RequesterID: requesterID,
		Topic:       topic,
		Description: strings.TrimSpace(req.Description),
		Status:      model.TopicStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(ctx, request); err != nil {
		return model.TopicRequest{}, err
	}

	return request, nil
}

func (s *TopicService) List(ctx context.Context) ([]model.TopicRequest, error) {
	return s.store.List(ctx)
}

func (s *TopicService) UpdateStatus(ctx context.Context, id string, status string) (model.TopicRequest, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case model.TopicStatusPending, model.TopicStatusApproved, model.TopicStatusRejected:
	default:
		return model.TopicRequest{}, apierror.New("BAD_REQUEST", "invalid status", status, http.StatusBadRequest)
	}

	return s.store.UpdateStatus(ctx, id, status, time.Now().UTC())
}
