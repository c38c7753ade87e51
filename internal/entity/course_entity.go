package entity

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Name           string
	CurrentSession int
	LastSessionAt  *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
