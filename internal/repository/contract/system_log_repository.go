package contract

import (
	"context"

	"auditpath-quiz-be/internal/entity"
)

type SystemLogRepository interface {
	Create(ctx context.Context, record *entity.SystemLog) error
}
