package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"assessment-genie/internal/model"
)

type BlueprintRepository struct {
	pool *pgxpool.Pool
}

func NewBlueprintRepository(pool *pgxpool.Pool) *BlueprintRepository {
	return &BlueprintRepository{pool: pool}
}

func (r *BlueprintRepository) Create(ctx context.Context, b model.Blueprint) error {
	counts := countsByDifficulty(b.QuestionDistribution)
	_, err := r.pool.Exec(ctx,
		`INSERT INTO blueprints (id, owner_id, topic_name, question_count, experience_level,
		                         easy_pct, medium_pct, hard_pct, easy_count, medium_count, hard_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.ID, b.OwnerID, b.TopicName, b.QuestionCount, b.ExperienceLevel,
		b.DifficultyBreakdown.Easy, b.DifficultyBreakdown.Medium, b.DifficultyBreakdown.Hard,
		counts[model.DifficultyEasy], counts[model.DifficultyMedium], counts[model.DifficultyHard],
		b.CreatedAt)
	if err != nil {
		return fmt.Errorf("create blueprint: %w", err)
	}
	return nil
}

func (r *BlueprintRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Blueprint, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, owner_id, topic_name, question_count, experience_level,
		        easy_pct, medium_pct, hard_pct, easy_count, medium_count, hard_count, created_at
		 FROM blueprints WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list blueprints: %w", err)
	}
	defer rows.Close()

	blueprints := make([]model.Blueprint, 0)
	for rows.Next() {
		var b model.Blueprint
		var easyCount, mediumCount, hardCount int
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.TopicName, &b.QuestionCount, &b.ExperienceLevel,
			&b.DifficultyBreakdown.Easy, &b.DifficultyBreakdown.Medium, &b.DifficultyBreakdown.Hard,
			&easyCount, &mediumCount, &hardCount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan blueprint: %w", err)
		}
		b.QuestionDistribution = []model.DifficultyCount{
			{Difficulty: model.DifficultyEasy, Count: easyCount},
			{Difficulty: model.DifficultyMedium, Count: mediumCount},
			{Difficulty: model.DifficultyHard, Count: hardCount},
		}
		blueprints = append(blueprints, b)
	}
	return blueprints, rows.Err()
}

func countsByDifficulty(distribution []model.DifficultyCount) map[string]int {
	counts := map[string]int{}
	for _, entry := range distribution {
		counts[entry.Difficulty] = entry.Count
	}
	return counts
}
