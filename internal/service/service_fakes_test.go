// FILE: internal/service/service_fakes_test.go
package service

import (
	"context"
	"sync"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/pkg/logger"
	"auditpath-quiz-be/internal/repository/contract"
	"auditpath-quiz-be/internal/repository/specification"
	"auditpath-quiz-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repository fakes. Only the methods the services under test
// actually reach are given real behavior; the rest return zero values.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }
func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }
func (f *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return f.users[byId.ID], nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error {
	return nil
}

type fakeCourseRepo struct {
	course  *entity.Course
	counter *contract.SessionCounter
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *entity.Course) error { return nil }
func (f *fakeCourseRepo) Update(ctx context.Context, course *entity.Course) error { return nil }
func (f *fakeCourseRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }
func (f *fakeCourseRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error) {
	return f.course, nil
}
func (f *fakeCourseRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error) {
	if f.course == nil {
		return nil, nil
	}
	return []*entity.Course{f.course}, nil
}
func (f *fakeCourseRepo) IncrementSession(ctx context.Context, userId, courseId uuid.UUID) (*contract.SessionCounter, error) {
	return f.counter, nil
}

type fakeChunkRepo struct {
	mu            sync.Mutex
	chunks        map[uuid.UUID]*entity.Chunk
	claimResult   bool
	statusUpdates []string
	metadataSaves int
}

func (f *fakeChunkRepo) Create(ctx context.Context, chunk *entity.Chunk) error { return nil }
func (f *fakeChunkRepo) Update(ctx context.Context, chunk *entity.Chunk) error { return nil }
func (f *fakeChunkRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return f.chunks[byId.ID], nil
		}
	}
	return nil, nil
}
func (f *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error) {
	return nil, nil
}
func (f *fakeChunkRepo) ClaimForProcessing(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.claimResult, nil
}
func (f *fakeChunkRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}
func (f *fakeChunkRepo) UpdateMetadata(ctx context.Context, id uuid.UUID, metadata *entity.ChunkMetadata) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metadataSaves++
	if chunk, ok := f.chunks[id]; ok {
		chunk.Metadata = metadata
	}
	return nil
}

type fakeQuestionRepo struct {
	mu         sync.Mutex
	byId       map[uuid.UUID]*entity.Question
	followups  []*entity.Question
	byChunk    map[uuid.UUID][]*entity.Question
	byCourse   []*entity.Question
	cached     map[string]*entity.Question
	created    []*entity.Question
	chunkCount int64
}

func questionKey(chunkId uuid.UUID, usageType, conceptTitle string) string {
	return chunkId.String() + "|" + usageType + "|" + conceptTitle
}

func (f *fakeQuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, question)
	return nil
}
func (f *fakeQuestionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Question, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return f.byId[byId.ID], nil
		}
	}
	return nil, nil
}
func (f *fakeQuestionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error) {
	for _, spec := range specs {
		if byIds, ok := spec.(specification.ByIDs); ok {
			var out []*entity.Question
			for _, id := range byIds.IDs {
				if q, ok := f.byId[id]; ok {
					out = append(out, q)
				}
			}
			return out, nil
		}
	}
	return nil, nil
}
func (f *fakeQuestionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return f.chunkCount, nil
}
func (f *fakeQuestionRepo) FindCached(ctx context.Context, chunkId uuid.UUID, usageType, conceptTitle string) (*entity.Question, error) {
	return f.cached[questionKey(chunkId, usageType, conceptTitle)], nil
}
func (f *fakeQuestionRepo) FindUnseenFollowups(ctx context.Context, userId, courseId uuid.UUID, limit int, exclude []uuid.UUID) ([]*entity.Question, error) {
	return takeQuestions(f.followups, limit, exclude), nil
}
func (f *fakeQuestionRepo) FindUnseenByChunk(ctx context.Context, userId, chunkId uuid.UUID, limit int, exclude []uuid.UUID) ([]*entity.Question, error) {
	return takeQuestions(f.byChunk[chunkId], limit, exclude), nil
}
func (f *fakeQuestionRepo) FindUnseenByCourse(ctx context.Context, userId, courseId uuid.UUID, limit int, exclude []uuid.UUID) ([]*entity.Question, error) {
	return takeQuestions(f.byCourse, limit, exclude), nil
}

func takeQuestions(pool []*entity.Question, limit int, exclude []uuid.UUID) []*entity.Question {
	excluded := make(map[uuid.UUID]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}
	var out []*entity.Question
	for _, q := range pool {
		if excluded[q.Id] {
			continue
		}
		out = append(out, q)
		if len(out) == limit {
			break
		}
	}
	return out
}

type fakeStatusRepo struct {
	mu      sync.Mutex
	due     map[string][]*entity.UserQuestionStatus
	prior   *entity.UserQuestionStatus
	upserts []*entity.UserQuestionStatus
}

func (f *fakeStatusRepo) Upsert(ctx context.Context, status *entity.UserQuestionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, status)
	return nil
}
func (f *fakeStatusRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserQuestionStatus, error) {
	return f.prior, nil
}
func (f *fakeStatusRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserQuestionStatus, error) {
	return nil, nil
}
func (f *fakeStatusRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (f *fakeStatusRepo) FindDueByStatus(ctx context.Context, userId, courseId uuid.UUID, status string, sessionNumber, limit int, exclude []uuid.UUID) ([]*entity.UserQuestionStatus, error) {
	excluded := make(map[uuid.UUID]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}
	var out []*entity.UserQuestionStatus
	for _, st := range f.due[status] {
		if excluded[st.QuestionId] {
			continue
		}
		out = append(out, st)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeMasteryRepo struct {
	mu       sync.Mutex
	frontier *entity.ChunkMastery
	mastery  *entity.ChunkMastery
	upserts  []*entity.ChunkMastery
}

func (f *fakeMasteryRepo) Upsert(ctx context.Context, mastery *entity.ChunkMastery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, mastery)
	return nil
}
func (f *fakeMasteryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChunkMastery, error) {
	return f.mastery, nil
}
func (f *fakeMasteryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChunkMastery, error) {
	return nil, nil
}
func (f *fakeMasteryRepo) FindFrontier(ctx context.Context, userId, courseId uuid.UUID) (*entity.ChunkMastery, error) {
	return f.frontier, nil
}

type fakeProgressRepo struct {
	mu       sync.Mutex
	created  []*entity.QuizProgress
	distinct int64
}

func (f *fakeProgressRepo) Create(ctx context.Context, record *entity.QuizProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, record)
	return nil
}
func (f *fakeProgressRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizProgress, error) {
	return nil, nil
}
func (f *fakeProgressRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (f *fakeProgressRepo) CountDistinctSolved(ctx context.Context, userId, chunkId uuid.UUID) (int64, error) {
	return f.distinct, nil
}

// fakeUow wires the fakes behind the unit-of-work interface. Transactions
// are no-ops.
type fakeUow struct {
	users     *fakeUserRepo
	courses   *fakeCourseRepo
	chunks    *fakeChunkRepo
	questions *fakeQuestionRepo
	statuses  *fakeStatusRepo
	mastery   *fakeMasteryRepo
	progress  *fakeProgressRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		users:     &fakeUserRepo{users: map[uuid.UUID]*entity.User{}},
		courses:   &fakeCourseRepo{},
		chunks:    &fakeChunkRepo{chunks: map[uuid.UUID]*entity.Chunk{}, claimResult: true},
		questions: &fakeQuestionRepo{byId: map[uuid.UUID]*entity.Question{}, byChunk: map[uuid.UUID][]*entity.Question{}, cached: map[string]*entity.Question{}},
		statuses:  &fakeStatusRepo{due: map[string][]*entity.UserQuestionStatus{}},
		mastery:   &fakeMasteryRepo{},
		progress:  &fakeProgressRepo{},
	}
}

func (f *fakeUow) Begin(ctx context.Context) error { return nil }
func (f *fakeUow) Commit() error                   { return nil }
func (f *fakeUow) Rollback() error                 { return nil }

func (f *fakeUow) UserRepository() contract.UserRepository                     { return f.users }
func (f *fakeUow) CourseRepository() contract.CourseRepository                 { return f.courses }
func (f *fakeUow) ChunkRepository() contract.ChunkRepository                   { return f.chunks }
func (f *fakeUow) QuestionRepository() contract.QuestionRepository             { return f.questions }
func (f *fakeUow) QuestionStatusRepository() contract.QuestionStatusRepository { return f.statuses }
func (f *fakeUow) ChunkMasteryRepository() contract.ChunkMasteryRepository     { return f.mastery }
func (f *fakeUow) QuizProgressRepository() contract.QuizProgressRepository     { return f.progress }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

var _ unitofwork.RepositoryFactory = (*fakeFactory)(nil)

// nopLogger satisfies logger.ILogger for tests.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }
