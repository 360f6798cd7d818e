package service

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"assessment-genie/internal/model"
	"assessment-genie/pkg/apierror"
)

var experienceLevels = map[string]struct{}{
	"beginner":     {},
	"intermediate": {},
	"advanced":     {},
	"expert":       {},
}

type BlueprintStore interface {
	Create(ctx context.Context, b model.Blueprint) error
	ListByOwner(ctx context.Context, ownerID string) ([]model.Blueprint, error)
}

type BlueprintService struct {
	store BlueprintStore
}

func NewBlueprintService(store BlueprintStore) *BlueprintService {
	return &BlueprintService{store: store}
}

// Allocate splits total across the three difficulty levels. Each bucket
// rounds independently (half away from zero); a rounding deficit is
// absorbed entirely by Easy, while a surplus is left alone, so the sum
// can exceed total.
//
// The function accepts any numeric triple; the caller owns the
// sums-to-100 invariant, and violating it just yields a meaningless
// but well-formed allocation.
func Allocate(total int, spec model.DifficultySpec) []model.DifficultyCount {
	easy := int(math.Round(spec.Easy / 100 * float64(total)))
	medium := int(math.Round(spec.Medium / 100 * float64(total)))
	hard := int(math.Round(spec.Hard / 100 * float64(total)))

	if drift := total - (easy + medium + hard); drift > 0 {
		easy += drift
	}

	return []model.DifficultyCount{
		{Difficulty: model.DifficultyEasy, Count: easy},
		{Difficulty: model.DifficultyMedium, Count: medium},
		{Difficulty: model.DifficultyHard, Count: hard},
	}
}

// Generate validates the request, runs the allocation, and persists the
// resulting blueprint for its owner.
func (s *BlueprintService) Generate(ctx context.Context, ownerID string, req model.CreateBlueprintRequest) (model.Blueprint, error) {
	topicName := strings.TrimSpace(req.TopicName)
	if topicName == "" {
		return model.Blueprint{}, apierror.New("BAD_REQUEST", "topic name is required", "topic_name", http.StatusBadRequest)
	}

	if req.QuestionCount < 1 || req.QuestionCount > 100 {
		return model.Blueprint{}, apierror.New("BAD_REQUEST", "question count must be between 1 and 100", "question_count", http.StatusBadRequest)
	}

	if req.DifficultyDistribution.Total() != 100 {
		return model.Blueprint{}, apierror.New("BAD_REQUEST", "difficulty levels must add up to 100%", "difficulty_distribution", http.StatusBadRequest)
	}

	level := strings.ToLower(strings.TrimSpace(req.ExperienceLevel))
	if level == "" {
		level = "intermediate"
	}
	if _, ok := experienceLevels[level]; !ok {
		return model.Blueprint{}, apierror.New("BAD_REQUEST", "invalid experience level", level, http.StatusBadRequest)
	}

	blueprint := model.Blueprint{
		ID:                   uuid.NewString(),
		OwnerID:              ownerID,
		TopicName:            topicName,
		QuestionCount:        req.QuestionCount,
		ExperienceLevel:      level,
		DifficultyBreakdown:  req.DifficultyDistribution,
		QuestionDistribution: Allocate(req.QuestionCount, req.DifficultyDistribution),
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.store.Create(ctx, blueprint); err != nil {
		return model.Blueprint{}, err
	}

	return blueprint, nil
}

func (s *BlueprintService) ListForOwner(ctx context.Context, ownerID string) ([]model.Blueprint, error) {
	return s.store.ListByOwner(ctx, ownerID)
}
