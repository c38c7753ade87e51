package model

import (
	"time"

	"github.com/google/uuid"
)

// UserQuestionStatus is the per-user shelf state of a question. At most one
// of ConsecutiveSuccess / ConsecutiveFails is ever non-zero.
type UserQuestionStatus struct {
	Id                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_question,priority:1"`
	QuestionId          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_question,priority:2"`
	CourseId            uuid.UUID `gorm:"type:uuid;not null;index"`
	Status              string    `gorm:"type:varchar(20);not null;default:'active';index"`
	ConsecutiveSuccess  float64   `gorm:"not null;default:0"`
	ConsecutiveFails    int       `gorm:"not null;default:0"`
	NextReviewSession   *int      `gorm:"index"`
	LastAnsweredSession int       `gorm:"not null;default:0"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (UserQuestionStatus) TableName() string {
	return "user_question_statuses"
}
