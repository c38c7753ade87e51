package model

import (
	"time"

	"github.com/google/uuid"
)

// ChunkMastery tracks a user's progress on one chunk. UpdatedAt doubles as
// the frontier signal: the most recently touched row is the frontier chunk.
type ChunkMastery struct {
	Id                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_chunk,priority:1"`
	ChunkId             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_chunk,priority:2"`
	CourseId            uuid.UUID `gorm:"type:uuid;not null;index"`
	MasteryScore        float64   `gorm:"not null;default:0"`
	LastReviewedSession int       `gorm:"not null;default:0"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime;index"`
}

func (ChunkMastery) TableName() string {
	return "chunk_masteries"
}
