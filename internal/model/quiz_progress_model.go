package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizProgress is the append-only answer log.
type QuizProgress struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID      `gorm:"type:uuid;not null;index:idx_progress_user_session,priority:1"`
	QuestionId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	CourseId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	ChunkId         *uuid.UUID     `gorm:"type:uuid;index"`
	SessionNumber   int            `gorm:"not null;index:idx_progress_user_session,priority:2"`
	IsCorrect       bool           `gorm:"not null"`
	IsBlank         bool           `gorm:"not null;default:false"`
	DurationSeconds int            `gorm:"not null;default:0"`
	ScoreChange     int            `gorm:"not null;default:0"`
	Details         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
}

func (QuizProgress) TableName() string {
	return "quiz_progress"
}
