package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserQuestionStatus struct {
	Id                  uuid.UUID
	UserId              uuid.UUID
	QuestionId          uuid.UUID
	CourseId            uuid.UUID
	Status              string
	ConsecutiveSuccess  float64
	ConsecutiveFails    int
	NextReviewSession   *int
	LastAnsweredSession int
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}
