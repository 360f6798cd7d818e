package model

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleAuthRequest carries the provider access token obtained by the
// frontend. The token is exchanged for a profile before it reaches the
// auth service.
type GoogleAuthRequest struct {
	Token string `json:"token"`
}

type CreateBlueprintRequest struct {
	TopicName              string         `json:"topic_name"`
	QuestionCount          int            `json:"question_count"`
	ExperienceLevel        string         `json:"experience_level"`
	DifficultyDistribution DifficultySpec `json:"difficulty_distribution"`
}

type CreateTopicRequest struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

type UpdateTopicStatusRequest struct {
	Status string `json:"status"`
}
