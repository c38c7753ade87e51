package unitofwork

import (
	"context"

	"auditpath-quiz-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CourseRepository() contract.CourseRepository
	ChunkRepository() contract.ChunkRepository
	QuestionRepository() contract.QuestionRepository
	QuestionStatusRepository() contract.QuestionStatusRepository
	ChunkMasteryRepository() contract.ChunkMasteryRepository
	QuizProgressRepository() contract.QuizProgressRepository
}
