// FILE: internal/dto/generation_dto.go
package dto

import (
	"github.com/google/uuid"
)

// PublishGenerationMessage is the watermill payload of one generation job.
type PublishGenerationMessage struct {
	ChunkId uuid.UUID `json:"chunk_id"`
	UserId  uuid.UUID `json:"user_id"`
}

type GenerateChunkResponse struct {
	ChunkId uuid.UUID `json:"chunk_id"`
	Status  string    `json:"status"`
}

type GenerationProgressMessage struct {
	ChunkId uuid.UUID `json:"chunk_id"`
	UserId  uuid.UUID `json:"user_id"`
	Stage   string    `json:"stage"`
	Message string    `json:"message"`
	Current int       `json:"current,omitempty"`
	Total   int       `json:"total,omitempty"`
	Error   string    `json:"error,omitempty"`
}
