package mapper

import (
	"encoding/json"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/model"
)

type SystemLogMapper struct{}

func NewSystemLogMapper() *SystemLogMapper {
	return &SystemLogMapper{}
}

func (m *SystemLogMapper) ToEntity(l *model.SystemLog) *entity.SystemLog {
	if l == nil {
		return nil
	}

	var details map[string]interface{}
	if l.Details != nil && *l.Details != "" {
		parsed := map[string]interface{}{}
		if err := json.Unmarshal([]byte(*l.Details), &parsed); err == nil {
			details = parsed
		}
	}

	return &entity.SystemLog{
		Id:        l.Id,
		Level:     l.Level,
		Module:    l.Module,
		Message:   l.Message,
		Details:   details,
		CreatedAt: l.CreatedAt,
	}
}

func (m *SystemLogMapper) ToModel(l *entity.SystemLog) *model.SystemLog {
	if l == nil {
		return nil
	}

	var details *string
	if l.Details != nil {
		if raw, err := json.Marshal(l.Details); err == nil {
			encoded := string(raw)
			details = &encoded
		}
	}

	return &model.SystemLog{
		Id:        l.Id,
		Level:     l.Level,
		Module:    l.Module,
		Message:   l.Message,
		Details:   details,
		CreatedAt: l.CreatedAt,
	}
}
