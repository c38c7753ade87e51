package entity

import (
	"time"

	"github.com/google/uuid"
)

// QuizProgressDetails is the jsonb detail blob of an answer record.
type QuizProgressDetails struct {
	IsFast     bool   `json:"is_fast"`
	IsRepeated bool   `json:"is_repeated"`
	UsageType  string `json:"usage_type,omitempty"`
	NewStatus  string `json:"new_status,omitempty"`
}

type QuizProgress struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	QuestionId      uuid.UUID
	CourseId        uuid.UUID
	ChunkId         *uuid.UUID
	SessionNumber   int
	IsCorrect       bool
	IsBlank         bool
	DurationSeconds int
	ScoreChange     int
	Details         *QuizProgressDetails
	CreatedAt       time.Time
}
