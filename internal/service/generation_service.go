// FILE: internal/service/generation_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"auditpath-quiz-be/internal/constant"
	"auditpath-quiz-be/internal/dto"
	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/pkg/logger"
	"auditpath-quiz-be/internal/repository/memory"
	"auditpath-quiz-be/internal/repository/specification"
	"auditpath-quiz-be/internal/repository/unitofwork"
	"auditpath-quiz-be/pkg/events"
	pktNats "auditpath-quiz-be/pkg/nats"
	"auditpath-quiz-be/pkg/quizgen"
	"auditpath-quiz-be/pkg/srs"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	draftAttempts     = 2
	draftRetryBackoff = 5 * time.Second
	generationLockTTL = 10 * time.Minute
)

type IGenerationService interface {
	// Enqueue publishes a generation job; the consumer picks it up.
	Enqueue(ctx context.Context, userId, chunkId uuid.UUID) (*dto.GenerateChunkResponse, error)

	// GenerateForChunk runs the full pipeline for one chunk.
	GenerateForChunk(ctx context.Context, userId, chunkId uuid.UUID) error

	// GenerateFollowUp produces one remediation question linked to a parent.
	GenerateFollowUp(ctx context.Context, userId, parentQuestionId uuid.UUID) (*entity.Question, error)

	// GenerateArchiveRefresh tops up the archive pool of a chunk.
	GenerateArchiveRefresh(ctx context.Context, userId, chunkId uuid.UUID) error
}

type generationService struct {
	uowFactory     unitofwork.RepositoryFactory
	generator      *quizgen.Generator
	questionCache  *memory.QuestionCache
	jobPublisher   IPublisherService
	progressPubSub *gochannel.GoChannel
	redisClient    *redis.Client
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	generator *quizgen.Generator,
	questionCache *memory.QuestionCache,
	jobPublisher IPublisherService,
	progressPubSub *gochannel.GoChannel,
	redisClient *redis.Client,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IGenerationService {
	return &generationService{
		uowFactory:     uowFactory,
		generator:      generator,
		questionCache:  questionCache,
		jobPublisher:   jobPublisher,
		progressPubSub: progressPubSub,
		redisClient:    redisClient,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
	}
}

func (s *generationService) Enqueue(ctx context.Context, userId, chunkId uuid.UUID) (*dto.GenerateChunkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chunk, err := uow.ChunkRepository().FindOne(ctx, specification.ByID{ID: chunkId})
	if err != nil {
		return nil, err
	}
	if chunk == nil {
		return nil, errors.New("chunk not found")
	}

	course, err := uow.CourseRepository().FindOne(ctx,
		specification.ByID{ID: chunk.CourseId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, errors.New("chunk not found")
	}

	if chunk.Status == constant.ChunkStatusProcessing {
		return nil, errors.New("generation already in progress for this chunk")
	}

	payload, err := json.Marshal(dto.PublishGenerationMessage{ChunkId: chunkId, UserId: userId})
	if err != nil {
		return nil, err
	}
	if err := s.jobPublisher.Publish(ctx, payload); err != nil {
		return nil, err
	}

	return &dto.GenerateChunkResponse{ChunkId: chunkId, Status: "queued"}, nil
}

// GenerateForChunk is the full pipeline: lock, claim, concept map, quotas,
// then draft/validate/revise/save per usage type and concept. A mapping
// failure is fatal to the run; everything downstream degrades per question.
func (s *generationService) GenerateForChunk(ctx context.Context, userId, chunkId uuid.UUID) error {
	if !s.acquireLock(ctx, chunkId) {
		s.logger.Info("generation", "chunk locked by another run, skipping", map[string]interface{}{"chunk_id": chunkId})
		return nil
	}
	defer s.releaseLock(ctx, chunkId)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	claimed, err := uow.ChunkRepository().ClaimForProcessing(ctx, chunkId)
	if err != nil {
		return err
	}
	if !claimed {
		s.logger.Info("generation", "chunk already processing, skipping", map[string]interface{}{"chunk_id": chunkId})
		return nil
	}

	s.emit(userId, quizgen.ProgressEvent{ChunkId: chunkId, Stage: constant.StageInit, Message: "generation started"})

	chunk, err := uow.ChunkRepository().FindOne(ctx, specification.ByID{ID: chunkId})
	if err != nil || chunk == nil {
		if err == nil {
			err = errors.New("chunk not found")
		}
		s.fail(ctx, uow, userId, chunkId, err)
		return err
	}

	concepts, err := s.resolveConceptMap(ctx, uow, chunk, userId)
	if err != nil {
		s.fail(ctx, uow, userId, chunkId, err)
		return err
	}

	quotas := srs.Quotas(len(concepts))
	if chunk.Metadata == nil {
		chunk.Metadata = &entity.ChunkMetadata{}
	}
	chunk.Metadata.Quotas = quotas.ToMap()
	if err := uow.ChunkRepository().UpdateMetadata(ctx, chunkId, chunk.Metadata); err != nil {
		s.logger.Warn("generation", "failed to persist quotas", map[string]interface{}{"chunk_id": chunkId, "error": err.Error()})
	}

	total := quotas.Total()
	s.emit(userId, quizgen.ProgressEvent{
		ChunkId: chunkId,
		Stage:   constant.StageMapping,
		Message: fmt.Sprintf("%d concepts mapped", len(concepts)),
		Total:   total,
	})

	generated := 0
	for _, usage := range []srs.UsageType{srs.UsageTraining, srs.UsageExam, srs.UsageArchive} {
		n, err := s.generateForUsage(ctx, uow, chunk, concepts, usage, quotas.ForUsage(usage), userId, generated, total)
		if err != nil {
			s.fail(ctx, uow, userId, chunkId, err)
			return err
		}
		generated = n
	}

	if err := uow.ChunkRepository().UpdateStatus(ctx, chunkId, constant.ChunkStatusCompleted); err != nil {
		return err
	}

	s.emit(userId, quizgen.ProgressEvent{
		ChunkId: chunkId,
		Stage:   constant.StageCompleted,
		Message: fmt.Sprintf("%d questions ready", generated),
		Current: generated,
		Total:   total,
	})
	s.publishEvent(ctx, constant.EventGenerationCompleted, map[string]interface{}{
		"chunk_id":  chunkId,
		"user_id":   userId,
		"generated": generated,
	})

	return nil
}

// resolveConceptMap prefers the cached map in chunk metadata; a fresh map is
// written back so later runs never re-extract.
func (s *generationService) resolveConceptMap(ctx context.Context, uow unitofwork.UnitOfWork, chunk *entity.Chunk, userId uuid.UUID) ([]entity.ConceptMapItem, error) {
	if chunk.Metadata != nil && len(chunk.Metadata.ConceptMap) > 0 {
		return chunk.Metadata.ConceptMap, nil
	}

	s.emit(userId, quizgen.ProgressEvent{ChunkId: chunk.Id, Stage: constant.StageMapping, Message: "extracting concepts"})

	concepts, err := s.generator.ConceptMap(ctx, chunk.Content)
	if err != nil {
		return nil, fmt.Errorf("concept mapping failed: %w", err)
	}

	if chunk.Metadata == nil {
		chunk.Metadata = &entity.ChunkMetadata{}
	}
	chunk.Metadata.ConceptMap = concepts
	if err := uow.ChunkRepository().UpdateMetadata(ctx, chunk.Id, chunk.Metadata); err != nil {
		s.logger.Warn("generation", "failed to cache concept map", map[string]interface{}{"chunk_id": chunk.Id, "error": err.Error()})
	}

	return concepts, nil
}

func (s *generationService) generateForUsage(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	chunk *entity.Chunk,
	concepts []entity.ConceptMapItem,
	usage srs.UsageType,
	quota int,
	userId uuid.UUID,
	generated int,
	total int,
) (int, error) {

	for i := 0; i < quota; i++ {
		if err := ctx.Err(); err != nil {
			return generated, err
		}
		concept := concepts[i%len(concepts)]

		// Idempotency probe: in-process cache first, then the database. A
		// hit counts toward the target without touching the model.
		if _, hit := s.questionCache.Get(chunk.Id, string(usage), concept.Title); hit {
			generated++
			continue
		}
		cached, err := uow.QuestionRepository().FindCached(ctx, chunk.Id, string(usage), concept.Title)
		if err != nil {
			return generated, err
		}
		if cached != nil {
			s.questionCache.Save(cached)
			generated++
			continue
		}

		s.emit(userId, quizgen.ProgressEvent{
			ChunkId: chunk.Id,
			Stage:   constant.StageGenerating,
			Message: concept.Title,
			Current: generated + 1,
			Total:   total,
		})

		draft := s.draftWithRetry(ctx, chunk.Content, concept, string(usage))
		if draft == nil {
			// Draft failure skips the concept; the run keeps going.
			s.logger.Warn("generation", "draft failed, skipping concept", map[string]interface{}{
				"chunk_id": chunk.Id,
				"concept":  concept.Title,
				"usage":    usage,
			})
			continue
		}

		final, isFallback := s.validateAndRevise(ctx, chunk.Content, concept, draft, userId, chunk.Id)

		question := &entity.Question{
			Id:           uuid.New(),
			CourseId:     chunk.CourseId,
			ChunkId:      &chunk.Id,
			UsageType:    string(usage),
			ConceptTitle: concept.Title,
			BloomLevel:   concept.Level,
			IsFallback:   isFallback,
			Payload: entity.QuestionPayload{
				Question:    final.Question,
				Options:     final.Options,
				AnswerIndex: final.AnswerIndex,
				Explanation: final.Explanation,
				Evidence:    final.Evidence,
				Insight:     final.Insight,
				Image:       concept.Visual,
			},
			CreatedAt: time.Now(),
		}

		s.emit(userId, quizgen.ProgressEvent{
			ChunkId: chunk.Id,
			Stage:   constant.StageSaving,
			Message: concept.Title,
			Current: generated + 1,
			Total:   total,
		})

		if err := uow.QuestionRepository().Create(ctx, question); err != nil {
			// Save errors never abort the run; the next pass regenerates.
			s.logger.Error("generation", "failed to save question", map[string]interface{}{
				"chunk_id": chunk.Id,
				"concept":  concept.Title,
				"error":    err.Error(),
			})
			continue
		}

		s.questionCache.Save(question)
		generated++
		s.publishEvent(ctx, constant.EventQuestionSaved, map[string]interface{}{
			"chunk_id":    chunk.Id,
			"question_id": question.Id,
			"usage_type":  question.UsageType,
		})
	}

	return generated, nil
}

func (s *generationService) draftWithRetry(ctx context.Context, content string, concept entity.ConceptMapItem, usage string) *quizgen.DraftQuestion {
	for attempt := 0; attempt < draftAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(draftRetryBackoff):
			}
		}
		draft, err := s.generator.Draft(ctx, content, concept, usage)
		if err == nil {
			return draft
		}
	}
	return nil
}

// validateAndRevise runs at most two validation rounds with one revision in
// between. An unusable revision degrades to the deterministic fallback; a
// reviewer outage degrades to accepting the draft as-is.
func (s *generationService) validateAndRevise(ctx context.Context, content string, concept entity.ConceptMapItem, draft *quizgen.DraftQuestion, userId, chunkId uuid.UUID) (*quizgen.DraftQuestion, bool) {
	s.emit(userId, quizgen.ProgressEvent{ChunkId: chunkId, Stage: constant.StageValidating, Message: concept.Title})

	verdict, err := s.generator.Validate(ctx, content, draft)
	if err != nil {
		s.logger.Warn("generation", "validation unavailable, accepting draft", map[string]interface{}{
			"chunk_id": chunkId,
			"concept":  concept.Title,
		})
		return draft, false
	}
	if verdict.Approved() {
		return draft, false
	}

	s.emit(userId, quizgen.ProgressEvent{ChunkId: chunkId, Stage: constant.StageRevision, Message: concept.Title})

	revised, err := s.generator.Revise(ctx, content, draft, verdict)
	if err != nil {
		return quizgen.FallbackQuestion(concept), true
	}

	reVerdict, err := s.generator.Validate(ctx, content, revised)
	if err != nil || reVerdict.Approved() {
		return revised, false
	}

	return quizgen.FallbackQuestion(concept), true
}

func (s *generationService) GenerateFollowUp(ctx context.Context, userId, parentQuestionId uuid.UUID) (*entity.Question, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	parent, err := uow.QuestionRepository().FindOne(ctx, specification.ByID{ID: parentQuestionId})
	if err != nil {
		return nil, err
	}
	if parent == nil || parent.ChunkId == nil {
		return nil, errors.New("parent question not found")
	}

	chunk, err := uow.ChunkRepository().FindOne(ctx, specification.ByID{ID: *parent.ChunkId})
	if err != nil {
		return nil, err
	}
	if chunk == nil {
		return nil, errors.New("chunk not found")
	}

	concept := entity.ConceptMapItem{
		Title: parent.ConceptTitle,
		Focus: parent.Payload.Explanation,
		Level: parent.BloomLevel,
	}

	draft := s.draftWithRetry(ctx, chunk.Content, concept, constant.UsageTypeTraining)
	if draft == nil {
		return nil, errors.New("follow-up generation failed")
	}

	final, isFallback := s.validateAndRevise(ctx, chunk.Content, concept, draft, userId, chunk.Id)

	question := &entity.Question{
		Id:               uuid.New(),
		CourseId:         parent.CourseId,
		ChunkId:          parent.ChunkId,
		ParentQuestionId: &parent.Id,
		UsageType:        constant.UsageTypeTraining,
		ConceptTitle:     parent.ConceptTitle,
		BloomLevel:       parent.BloomLevel,
		IsFallback:       isFallback,
		Payload: entity.QuestionPayload{
			Question:    final.Question,
			Options:     final.Options,
			AnswerIndex: final.AnswerIndex,
			Explanation: final.Explanation,
			Evidence:    final.Evidence,
			Insight:     final.Insight,
			Image:       parent.Payload.Image,
		},
		CreatedAt: time.Now(),
	}

	if err := uow.QuestionRepository().Create(ctx, question); err != nil {
		return nil, err
	}

	return question, nil
}

func (s *generationService) GenerateArchiveRefresh(ctx context.Context, userId, chunkId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chunk, err := uow.ChunkRepository().FindOne(ctx, specification.ByID{ID: chunkId})
	if err != nil {
		return err
	}
	if chunk == nil {
		return errors.New("chunk not found")
	}
	if chunk.Metadata == nil || len(chunk.Metadata.ConceptMap) == 0 {
		return errors.New("chunk has no concept map yet")
	}

	concepts := chunk.Metadata.ConceptMap
	quotas := srs.QuotaSetFromMap(chunk.Metadata.Quotas)
	if quotas.Archive == 0 {
		quotas = srs.Quotas(len(concepts))
	}

	_, err = s.generateForUsage(ctx, uow, chunk, concepts, srs.UsageArchive, quotas.Archive, userId, 0, quotas.Archive)
	return err
}

func (s *generationService) fail(ctx context.Context, uow unitofwork.UnitOfWork, userId, chunkId uuid.UUID, cause error) {
	if err := uow.ChunkRepository().UpdateStatus(ctx, chunkId, constant.ChunkStatusFailed); err != nil {
		s.logger.Error("generation", "failed to mark chunk failed", map[string]interface{}{"chunk_id": chunkId, "error": err.Error()})
	}
	s.emit(userId, quizgen.ProgressEvent{
		ChunkId: chunkId,
		Stage:   constant.StageError,
		Message: "generation failed",
		Error:   cause.Error(),
	})
	s.publishEvent(ctx, constant.EventGenerationFailed, map[string]interface{}{
		"chunk_id": chunkId,
		"user_id":  userId,
		"error":    cause.Error(),
	})
}

func (s *generationService) acquireLock(ctx context.Context, chunkId uuid.UUID) bool {
	if s.redisClient == nil {
		return true
	}
	ok, err := s.redisClient.SetNX(ctx, "genlock:"+chunkId.String(), "1", generationLockTTL).Result()
	if err != nil {
		// A degraded lock is acceptable: the database claim still prevents
		// concurrent runs on the same chunk.
		s.logger.Warn("generation", "redis lock unavailable", map[string]interface{}{"error": err.Error()})
		return true
	}
	return ok
}

func (s *generationService) releaseLock(ctx context.Context, chunkId uuid.UUID) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, "genlock:"+chunkId.String()).Err(); err != nil {
		s.logger.Warn("generation", "failed to release lock", map[string]interface{}{"error": err.Error()})
	}
}

// emit publishes one progress event on the in-process bus; the notification
// handler bridges it to websockets. Failures are logged and dropped.
func (s *generationService) emit(userId uuid.UUID, event quizgen.ProgressEvent) {
	msg := dto.GenerationProgressMessage{
		ChunkId: event.ChunkId,
		UserId:  userId,
		Stage:   event.Stage,
		Message: event.Message,
		Current: event.Current,
		Total:   event.Total,
		Error:   event.Error,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.progressPubSub.Publish(constant.TopicGenerationProgress, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.logger.Warn("generation", "failed to publish progress", map[string]interface{}{"error": err.Error()})
	}
}

func (s *generationService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("generation", "failed to publish event", map[string]interface{}{"type": eventType, "error": err.Error()})
	}
}
