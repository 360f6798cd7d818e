package model

import "time"

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// DifficultySpec is a three-way percentage split. The caller owns the
// invariant that the three values total 100 before generating a blueprint.
type DifficultySpec struct {
	Easy   float64 `json:"easy"`
	Medium float64 `json:"medium"`
	Hard   float64 `json:"hard"`
}

func (s DifficultySpec) Total() float64 {
	return s.Easy + s.Medium + s.Hard
}

type DifficultyCount struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

type Blueprint struct {
	ID                   string            `json:"id"`
	OwnerID              string            `json:"owner_id"`
	TopicName            string            `json:"topic_name"`
	QuestionCount        int               `json:"question_count"`
	ExperienceLevel      string            `json:"experience_level"`
	DifficultyBreakdown  DifficultySpec    `json:"difficulty_breakdown"`
	QuestionDistribution []DifficultyCount `json:"question_distribution"`
	CreatedAt            time.Time         `json:"created_at"`
}
