package model

import "time"

const (
	TopicStatusPending  = "pending"
	TopicStatusApproved = "approved"
	TopicStatusRejected = "rejected"
)

type TopicRequest struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requester_id"`
	Topic       string    `json:"topic"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
