// FILE: internal/service/audit_service.go
package service

import (
	"context"
	"strings"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/repository/contract"
	"auditpath-quiz-be/pkg/events"
)

const auditModule = "quiz_events"

type IAuditService interface {
	// Record persists one bus event into the system_logs audit trail.
	Record(ctx context.Context, event events.Event) error
}

type auditService struct {
	systemLogRepository contract.SystemLogRepository
}

func NewAuditService(systemLogRepository contract.SystemLogRepository) IAuditService {
	return &auditService{
		systemLogRepository: systemLogRepository,
	}
}

func (as *auditService) Record(ctx context.Context, event events.Event) error {
	module := auditModule
	return as.systemLogRepository.Create(ctx, &entity.SystemLog{
		Level:     levelForEvent(event.EventType()),
		Module:    &module,
		Message:   event.EventType(),
		Details:   event.Payload(),
		CreatedAt: event.Timestamp(),
	})
}

// levelForEvent maps failure event codes to the error level so the audit
// trail can be filtered the same way as application logs.
func levelForEvent(eventType string) string {
	if strings.HasSuffix(eventType, "_FAILED") {
		return "error"
	}
	return "info"
}
