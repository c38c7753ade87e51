package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChunkMastery struct {
	Id                  uuid.UUID
	UserId              uuid.UUID
	ChunkId             uuid.UUID
	CourseId            uuid.UUID
	MasteryScore        float64
	LastReviewedSession int
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}
