package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConceptMapItem is one testable concept extracted from a chunk.
type ConceptMapItem struct {
	Title  string `json:"title"`
	Focus  string `json:"focus"`
	Level  string `json:"level"`
	Visual bool   `json:"visual"`
}

// ChunkMetadata is the jsonb sidecar of a chunk. ConceptMap and Quotas are
// written once by the generation pipeline and reused on later runs.
type ChunkMetadata struct {
	ConceptMap []ConceptMapItem `json:"concept_map,omitempty"`
	Quotas     map[string]int   `json:"quotas,omitempty"`
}

type Chunk struct {
	Id        uuid.UUID
	CourseId  uuid.UUID
	Title     string
	Content   string
	Status    string
	Metadata  *ChunkMetadata
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
