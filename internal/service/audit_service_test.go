// FILE: internal/service/audit_service_test.go
package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"auditpath-quiz-be/internal/constant"
	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSystemLogRepo struct {
	mu      sync.Mutex
	created []*entity.SystemLog
}

func (f *fakeSystemLogRepo) Create(ctx context.Context, record *entity.SystemLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, record)
	return nil
}

func TestAuditRecordPersistsEvent(t *testing.T) {
	repo := &fakeSystemLogRepo{}
	svc := NewAuditService(repo)

	occurred := time.Now()
	err := svc.Record(context.Background(), events.BaseEvent{
		Type:       constant.EventAnswerRecorded,
		Data:       map[string]interface{}{"question_id": "q-1", "is_correct": true},
		OccurredAt: occurred,
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	entry := repo.created[0]
	assert.Equal(t, "info", entry.Level)
	assert.Equal(t, constant.EventAnswerRecorded, entry.Message)
	require.NotNil(t, entry.Module)
	assert.Equal(t, "quiz_events", *entry.Module)
	assert.Equal(t, true, entry.Details["is_correct"])
	assert.Equal(t, occurred, entry.CreatedAt)
}

func TestAuditRecordFailureEventsUseErrorLevel(t *testing.T) {
	repo := &fakeSystemLogRepo{}
	svc := NewAuditService(repo)

	err := svc.Record(context.Background(), events.BaseEvent{
		Type:       constant.EventGenerationFailed,
		Data:       map[string]interface{}{"chunk_id": "c-1"},
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "error", repo.created[0].Level)
}
