package contract

import (
	"context"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/repository/specification"

	"github.com/google/uuid"
)

// SessionCounter is the result of the per-course session boundary check.
type SessionCounter struct {
	CurrentSession int
	IsNewSession   bool
}

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	Update(ctx context.Context, course *entity.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error)

	// IncrementSession advances the session counter exactly once per study
	// day. The check-and-increment is a single conditional UPDATE, so
	// concurrent callers cannot double-increment.
	IncrementSession(ctx context.Context, userId, courseId uuid.UUID) (*SessionCounter, error)
}
