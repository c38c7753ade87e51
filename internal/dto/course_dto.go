// FILE: internal/dto/course_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCourseRequest struct {
	Name string `json:"name" validate:"required,min=3"`
}

type CourseResponse struct {
	Id             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	CurrentSession int       `json:"current_session"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateChunkRequest struct {
	Title   string `json:"title" validate:"required,min=3"`
	Content string `json:"content" validate:"required,min=50"`
}

type ChunkResponse struct {
	Id        uuid.UUID `json:"id"`
	CourseId  uuid.UUID `json:"course_id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type StartSessionResponse struct {
	CourseId      uuid.UUID `json:"course_id"`
	CourseName    string    `json:"course_name"`
	SessionNumber int       `json:"session_number"`
	IsNewSession  bool      `json:"is_new_session"`
}
