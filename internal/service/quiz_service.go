// FILE: internal/service/quiz_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"auditpath-quiz-be/internal/constant"
	"auditpath-quiz-be/internal/dto"
	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/pkg/logger"
	"auditpath-quiz-be/internal/repository/specification"
	"auditpath-quiz-be/internal/repository/unitofwork"
	"auditpath-quiz-be/pkg/events"
	pktNats "auditpath-quiz-be/pkg/nats"
	"auditpath-quiz-be/pkg/srs"

	"github.com/google/uuid"
)

type IQuizService interface {
	StartSession(ctx context.Context, userId, courseId uuid.UUID) (*dto.StartSessionResponse, error)
	GetReviewQueue(ctx context.Context, userId uuid.UUID, req *dto.ReviewQueueRequest) (*dto.ReviewQueueResponse, error)
	SubmitAnswer(ctx context.Context, userId uuid.UUID, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
	TestResults(req *dto.TestResultsRequest) *dto.TestResultsResponse
}

type quizService struct {
	uowFactory     unitofwork.RepositoryFactory
	policy         srs.Policy
	defaultLimit   int
	logger         logger.ILogger
	eventPublisher *pktNats.Publisher
}

func NewQuizService(
	uowFactory unitofwork.RepositoryFactory,
	policy srs.Policy,
	defaultLimit int,
	sysLogger logger.ILogger,
	eventPublisher *pktNats.Publisher,
) IQuizService {
	return &quizService{
		uowFactory:     uowFactory,
		policy:         policy,
		defaultLimit:   defaultLimit,
		logger:         sysLogger,
		eventPublisher: eventPublisher,
	}
}

func (s *quizService) StartSession(ctx context.Context, userId, courseId uuid.UUID) (*dto.StartSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx,
		specification.ByID{ID: courseId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, errors.New("course not found")
	}

	counter, err := uow.CourseRepository().IncrementSession(ctx, userId, courseId)
	if err != nil {
		return nil, err
	}

	if counter.IsNewSession && s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: constant.EventSessionAdvanced,
			Data: map[string]interface{}{
				"user_id":        userId,
				"course_id":      courseId,
				"session_number": counter.CurrentSession,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("quiz", "failed to publish session event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.StartSessionResponse{
		CourseId:      courseId,
		CourseName:    course.Name,
		SessionNumber: counter.CurrentSession,
		IsNewSession:  counter.IsNewSession,
	}, nil
}

// GetReviewQueue assembles the session queue from three pools in strict
// priority order: due and fresh follow-ups, unseen training questions of the
// effective chunk, then due archive refreshers. Every pool deduplicates
// against what earlier pools already queued.
func (s *quizService) GetReviewQueue(ctx context.Context, userId uuid.UUID, req *dto.ReviewQueueRequest) (*dto.ReviewQueueResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx,
		specification.ByID{ID: req.CourseId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, errors.New("course not found")
	}
	sessionNumber := course.CurrentSession

	limit := req.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	followupQuota := int(math.Ceil(float64(limit) * 0.2))
	trainingQuota := int(math.Ceil(float64(limit) * 0.7))
	archiveQuota := int(math.Ceil(float64(limit) * 0.1))
	if req.TargetChunkId != nil {
		// An explicit chunk request returns every matching candidate; the
		// ceilings only bound the fetches.
		followupQuota = 100
		trainingQuota = 1000
		archiveQuota = 100
	}

	queue := make([]*entity.Question, 0, limit)
	used := make(map[uuid.UUID]bool)
	usedIds := func() []uuid.UUID {
		ids := make([]uuid.UUID, 0, len(used))
		for id := range used {
			ids = append(ids, id)
		}
		return ids
	}
	push := func(questions []*entity.Question) {
		for _, q := range questions {
			if q == nil || used[q.Id] {
				continue
			}
			used[q.Id] = true
			queue = append(queue, q)
		}
	}

	// Pool 1: follow-ups. Due ones first, then never-scheduled remediation
	// questions fill the quota.
	due, err := uow.QuestionStatusRepository().FindDueByStatus(
		ctx, userId, req.CourseId, constant.QuestionStatusPendingFollowup, sessionNumber, followupQuota, usedIds())
	if err != nil {
		return nil, err
	}
	dueQuestions, err := s.resolveQuestions(ctx, uow, due)
	if err != nil {
		return nil, err
	}
	push(dueQuestions)

	remaining := followupQuota - len(queue)
	if req.TargetChunkId != nil {
		remaining = 50
	}
	if remaining > 0 {
		fresh, err := uow.QuestionRepository().FindUnseenFollowups(ctx, userId, req.CourseId, remaining, usedIds())
		if err != nil {
			return nil, err
		}
		push(fresh)
	}

	// Pool 2: training questions from the effective chunk. An explicit target
	// chunk wins; otherwise the frontier chunk (most recently touched mastery
	// row) keeps the user on the material they were last working through.
	effectiveChunk := req.TargetChunkId
	if effectiveChunk == nil {
		frontier, err := uow.ChunkMasteryRepository().FindFrontier(ctx, userId, req.CourseId)
		if err != nil {
			return nil, err
		}
		if frontier != nil {
			effectiveChunk = &frontier.ChunkId
		}
	}

	if effectiveChunk != nil {
		chunked, err := uow.QuestionRepository().FindUnseenByChunk(ctx, userId, *effectiveChunk, trainingQuota, usedIds())
		if err != nil {
			return nil, err
		}
		push(chunked)
	}

	if fill := followupQuota + trainingQuota - len(queue); fill > 0 {
		generic, err := uow.QuestionRepository().FindUnseenByCourse(ctx, userId, req.CourseId, fill, usedIds())
		if err != nil {
			return nil, err
		}
		push(generic)
	}

	// Pool 3: archive refresh. The mixed queue only tops up to the session
	// limit; a target chunk request pulls everything due.
	archiveCount := archiveQuota
	if req.TargetChunkId == nil {
		if rem := limit - len(queue); rem < archiveCount {
			archiveCount = rem
		}
	}
	if archiveCount > 0 {
		dueArchived, err := uow.QuestionStatusRepository().FindDueByStatus(
			ctx, userId, req.CourseId, constant.QuestionStatusArchived, sessionNumber, archiveCount, usedIds())
		if err != nil {
			return nil, err
		}
		archivedQuestions, err := s.resolveQuestions(ctx, uow, dueArchived)
		if err != nil {
			return nil, err
		}
		push(archivedQuestions)
	}

	// A target chunk request means "everything for this chunk": the cap only
	// applies to the default mixed queue.
	if req.TargetChunkId == nil && len(queue) > limit {
		queue = queue[:limit]
	}

	items := make([]dto.QueueQuestionResponse, 0, len(queue))
	for _, q := range queue {
		items = append(items, toQueueQuestion(q))
	}

	return &dto.ReviewQueueResponse{
		SessionNumber: sessionNumber,
		Questions:     items,
	}, nil
}

func (s *quizService) resolveQuestions(ctx context.Context, uow unitofwork.UnitOfWork, statuses []*entity.UserQuestionStatus) ([]*entity.Question, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(statuses))
	for _, st := range statuses {
		ids = append(ids, st.QuestionId)
	}

	questions, err := uow.QuestionRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}

	// Preserve the due ordering from the status query.
	byId := make(map[uuid.UUID]*entity.Question, len(questions))
	for _, q := range questions {
		byId[q.Id] = q
	}
	ordered := make([]*entity.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byId[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

func toQueueQuestion(q *entity.Question) dto.QueueQuestionResponse {
	image := ""
	if q.Payload.Image {
		image = "required"
	}
	return dto.QueueQuestionResponse{
		Id:           q.Id,
		ChunkId:      q.ChunkId,
		UsageType:    q.UsageType,
		ConceptTitle: q.ConceptTitle,
		BloomLevel:   q.BloomLevel,
		Question:     q.Payload.Question,
		Options:      q.Payload.Options,
		AnswerIndex:  q.Payload.AnswerIndex,
		Explanation:  q.Payload.Explanation,
		Evidence:     q.Payload.Evidence,
		Insight:      q.Payload.Insight,
		Image:        image,
	}
}

// SubmitAnswer loads everything the evaluator needs with concurrent reads,
// runs the pure shelf/mastery computation, then fans the writes out. Writes
// are deliberately not transactional; a partial failure surfaces to the
// caller and the append-only progress log keeps the ground truth.
func (s *quizService) SubmitAnswer(ctx context.Context, userId uuid.UUID, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var (
		question *entity.Question
		prior    *entity.UserQuestionStatus
		qErr     error
		stErr    error
		wg       sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		question, qErr = uow.QuestionRepository().FindOne(ctx, specification.ByID{ID: req.QuestionId})
	}()
	go func() {
		defer wg.Done()
		prior, stErr = uow.QuestionStatusRepository().FindOne(ctx,
			specification.OwnedBy{UserID: userId},
			specification.ByQuestion{QuestionID: req.QuestionId},
		)
	}()
	wg.Wait()

	if qErr != nil {
		return nil, qErr
	}
	if stErr != nil {
		return nil, stErr
	}
	if question == nil {
		return nil, errors.New("question not found")
	}
	if question.CourseId != req.CourseId {
		return nil, errors.New("question does not belong to course")
	}

	var chunkCtx *srs.ChunkContext
	var mastery *entity.ChunkMastery
	if question.ChunkId != nil {
		chunkCtx, mastery, qErr = s.loadChunkContext(ctx, uow, userId, *question.ChunkId)
		if qErr != nil {
			return nil, qErr
		}
	}

	var priorState *srs.PriorStatus
	if prior != nil {
		priorState = &srs.PriorStatus{
			ConsecutiveSuccess: prior.ConsecutiveSuccess,
			ConsecutiveFails:   prior.ConsecutiveFails,
		}
	}

	outcome := s.policy.EvaluateAnswer(srs.AnswerInput{
		Response:      srs.ResponseType(req.Response),
		TimeSpentMs:   req.TimeSpentMs,
		SessionNumber: req.SessionNumber,
		UsageType:     srs.UsageType(question.UsageType),
		BloomLevel:    question.BloomLevel,
		Prior:         priorState,
		Chunk:         chunkCtx,
	})

	// Exam answers measure readiness only; nothing is persisted.
	if outcome.Exempt {
		return s.toSubmitResponse(outcome, chunkCtx), nil
	}

	now := time.Now()
	statusRow := &entity.UserQuestionStatus{
		UserId:              userId,
		QuestionId:          question.Id,
		CourseId:            question.CourseId,
		Status:              string(outcome.NewStatus),
		ConsecutiveSuccess:  outcome.NewSuccessCount,
		ConsecutiveFails:    outcome.NewFailsCount,
		NextReviewSession:   outcome.NextReviewSession,
		LastAnsweredSession: req.SessionNumber,
	}
	if prior != nil {
		statusRow.Id = prior.Id
		statusRow.CreatedAt = prior.CreatedAt
	}

	progress := &entity.QuizProgress{
		Id:              uuid.New(),
		UserId:          userId,
		QuestionId:      question.Id,
		CourseId:        question.CourseId,
		ChunkId:         question.ChunkId,
		SessionNumber:   req.SessionNumber,
		IsCorrect:       outcome.IsCorrect,
		IsBlank:         req.Response == string(srs.ResponseBlank),
		DurationSeconds: int(req.TimeSpentMs / 1000),
		ScoreChange:     int(math.Round(outcome.ScoreDelta)),
		Details: &entity.QuizProgressDetails{
			IsFast:     outcome.IsFast,
			IsRepeated: outcome.IsRepeated,
			UsageType:  question.UsageType,
			NewStatus:  string(outcome.NewStatus),
		},
		CreatedAt: now,
	}

	writeErrs := make([]error, 3)
	wg.Add(2)
	go func() {
		defer wg.Done()
		writeErrs[0] = uow.QuestionStatusRepository().Upsert(ctx, statusRow)
	}()
	go func() {
		defer wg.Done()
		writeErrs[1] = uow.QuizProgressRepository().Create(ctx, progress)
	}()

	if question.ChunkId != nil {
		masteryRow := &entity.ChunkMastery{
			UserId:              userId,
			ChunkId:             *question.ChunkId,
			CourseId:            question.CourseId,
			MasteryScore:        outcome.NewMastery,
			LastReviewedSession: req.SessionNumber,
		}
		if mastery != nil {
			masteryRow.Id = mastery.Id
			masteryRow.CreatedAt = mastery.CreatedAt
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			writeErrs[2] = uow.ChunkMasteryRepository().Upsert(ctx, masteryRow)
		}()
	}
	wg.Wait()

	for _, werr := range writeErrs {
		if werr != nil {
			return nil, fmt.Errorf("failed to record answer: %w", werr)
		}
	}

	s.publishAnswerEvent(ctx, userId, question, outcome, req.SessionNumber)

	return s.toSubmitResponse(outcome, chunkCtx), nil
}

// loadChunkContext fans out the four chunk-scoped reads the evaluator needs.
func (s *quizService) loadChunkContext(ctx context.Context, uow unitofwork.UnitOfWork, userId, chunkId uuid.UUID) (*srs.ChunkContext, *entity.ChunkMastery, error) {
	var (
		chunk        *entity.Chunk
		mastery      *entity.ChunkMastery
		uniqueSolved int64
		totalCount   int64
		errs         = make([]error, 4)
		wg           sync.WaitGroup
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		chunk, errs[0] = uow.ChunkRepository().FindOne(ctx, specification.ByID{ID: chunkId})
	}()
	go func() {
		defer wg.Done()
		mastery, errs[1] = uow.ChunkMasteryRepository().FindOne(ctx,
			specification.OwnedBy{UserID: userId},
			specification.ByChunk{ChunkID: chunkId},
		)
	}()
	go func() {
		defer wg.Done()
		uniqueSolved, errs[2] = uow.QuizProgressRepository().CountDistinctSolved(ctx, userId, chunkId)
	}()
	go func() {
		defer wg.Done()
		totalCount, errs[3] = uow.QuestionRepository().Count(ctx, specification.ByChunk{ChunkID: chunkId})
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}
	if chunk == nil {
		return nil, mastery, nil
	}

	conceptCount := 0
	if chunk.Metadata != nil {
		conceptCount = len(chunk.Metadata.ConceptMap)
	}
	masteryScore := 0.0
	if mastery != nil {
		masteryScore = mastery.MasteryScore
	}

	return &srs.ChunkContext{
		ContentLength:  len(chunk.Content),
		ConceptCount:   conceptCount,
		MasteryScore:   masteryScore,
		UniqueSolved:   int(uniqueSolved),
		TotalQuestions: int(totalCount),
	}, mastery, nil
}

func (s *quizService) toSubmitResponse(outcome srs.AnswerOutcome, chunkCtx *srs.ChunkContext) *dto.SubmitAnswerResponse {
	resp := &dto.SubmitAnswerResponse{
		IsCorrect:         outcome.IsCorrect,
		IsFast:            outcome.IsFast,
		IsRepeated:        outcome.IsRepeated,
		NewStatus:         string(outcome.NewStatus),
		NextReviewSession: outcome.NextReviewSession,
		ScoreDelta:        int(math.Round(outcome.ScoreDelta)),
		TopicRefreshed:    outcome.TopicRefreshed,
		FollowUpSuggested: outcome.NeedsFollowUp,
	}
	if chunkCtx != nil {
		m := int(math.Round(outcome.NewMastery))
		resp.ChunkMastery = &m
	}
	return resp
}

func (s *quizService) publishAnswerEvent(ctx context.Context, userId uuid.UUID, question *entity.Question, outcome srs.AnswerOutcome, sessionNumber int) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type: constant.EventAnswerRecorded,
		Data: map[string]interface{}{
			"user_id":        userId,
			"question_id":    question.Id,
			"course_id":      question.CourseId,
			"session_number": sessionNumber,
			"is_correct":     outcome.IsCorrect,
			"new_status":     string(outcome.NewStatus),
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("quiz", "failed to publish answer event", map[string]interface{}{"error": err.Error()})
	}
}

// TestResults is the pure exam summary endpoint; nothing is stored.
func (s *quizService) TestResults(req *dto.TestResultsRequest) *dto.TestResultsResponse {
	summary := srs.TestResults(req.Correct, req.Incorrect, req.Blank, req.ElapsedMs)
	return &dto.TestResultsResponse{
		Percentage:     summary.Percentage,
		Mastery:        summary.MasteryScore,
		PendingReview:  summary.PendingReview,
		ElapsedDisplay: summary.TotalTimeFormatted,
	}
}
