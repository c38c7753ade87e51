package contract

import (
	"context"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/repository/specification"

	"github.com/google/uuid"
)

type QuestionStatusRepository interface {
	// Upsert writes the full shelf state for a (user, question) pair,
	// inserting on first answer.
	Upsert(ctx context.Context, status *entity.UserQuestionStatus) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserQuestionStatus, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserQuestionStatus, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindDueByStatus returns statuses on the given shelf whose scheduled
	// review session has arrived, oldest schedule first.
	FindDueByStatus(ctx context.Context, userId, courseId uuid.UUID, status string, sessionNumber, limit int, exclude []uuid.UUID) ([]*entity.UserQuestionStatus, error)
}
