package entity

import (
	"time"

	"github.com/google/uuid"
)

// QuestionPayload is the renderable content of a question.
type QuestionPayload struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
	Evidence    string   `json:"evidence,omitempty"`
	Insight     string   `json:"insight,omitempty"`
	Image       bool     `json:"image,omitempty"`
}

type Question struct {
	Id               uuid.UUID
	CourseId         uuid.UUID
	ChunkId          *uuid.UUID
	ParentQuestionId *uuid.UUID
	UsageType        string
	ConceptTitle     string
	BloomLevel       string
	IsFallback       bool
	Payload          QuestionPayload
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}
