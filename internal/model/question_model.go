package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question payload (stem, options, answer index, explanation, evidence,
// insight, image flag) lives in a jsonb column; the columns pulled out of it
// are the ones the queue builder filters on.
type Question struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	ChunkId          *uuid.UUID     `gorm:"type:uuid;index"`
	ParentQuestionId *uuid.UUID     `gorm:"type:uuid;index"`
	UsageType        string         `gorm:"type:varchar(20);not null;index"`
	ConceptTitle     string         `gorm:"type:varchar(255);not null"`
	BloomLevel       string         `gorm:"type:varchar(20);not null"`
	IsFallback       bool           `gorm:"default:false"`
	Payload          datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Question) TableName() string {
	return "questions"
}
