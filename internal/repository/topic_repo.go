package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"assessment-genie/internal/model"
)

type TopicRequestRepository struct {
	pool *pgxpool.Pool
}

func NewTopicRequestRepository(pool *pgxpool.Pool) *TopicRequestRepository {
	return &TopicRequestRepository{pool: pool}
}

func (r *TopicRequestRepository) Create(ctx context.Context, req model.TopicRequest) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO topic_requests (id, requester_id, topic, description, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		req.ID, req.RequesterID, req.Topic, req.Description, req.Status, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create topic request: %w", err)
	}
	return nil
}

func (r *TopicRequestRepository) List(ctx context.Context) ([]model.TopicRequest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, requester_id, topic, description, status, created_at, updated_at
		 FROM topic_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list topic requests: %w", err)
	}
	defer rows.Close()

	requests := make([]model.TopicRequest, 0)
	for rows.Next() {
		var req model.TopicRequest
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.Topic, &req.Description,
			&req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan topic request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *TopicRequestRepository) UpdateStatus(ctx context.Context, id string, status string, updatedAt time.Time) (model.TopicRequest, error) {
	var req model.TopicRequest
	err := r.pool.QueryRow(ctx,
		`UPDATE topic_requests SET status = $2, updated_at = $3 WHERE id = $1
		 RETURNING id, requester_id, topic, description, status, created_at, updated_at`,
		id, status, updatedAt).
		Scan(&req.ID, &req.RequesterID, &req.Topic, &req.Description,
			&req.Status, &req.CreatedAt, &req.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.TopicRequest{}, model.ErrTopicRequestNotFound
	}
	if err != nil {
		return model.TopicRequest{}, fmt.Errorf("update topic request status: %w", err)
	}
	return req, nil
}
