// FILE: internal/service/generation_service_test.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"auditpath-quiz-be/internal/constant"
	"auditpath-quiz-be/internal/dto"
	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/repository/memory"
	"auditpath-quiz-be/pkg/llm"
	"auditpath-quiz-be/pkg/quizgen"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider answers by system prompt so the pipeline can run end to
// end without a model. Validation scores are consumed in call order; once the
// script runs out every later call approves.
type scriptedProvider struct {
	mu               sync.Mutex
	chatCalls        int
	validationCalls  int
	validationScores []int
	validationDown   bool
}

const (
	scriptedDraftText   = "What drives osmosis?"
	scriptedRevisedText = "Which gradient moves water during osmosis?"
)

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chatCalls++

	switch history[0].Content {
	case constant.ConceptMapSystemPromptV1:
		return `[
			{"title":"osmosis","focus":"water moves toward solute","level":"application","visual":false},
			{"title":"diffusion","focus":"particles spread down a gradient","level":"knowledge","visual":false}
		]`, nil
	case constant.DraftSystemPromptV1:
		return fmt.Sprintf(`{"question":%q,"options":["pressure","water potential difference","heat","light","sound"],"answer_index":1,"explanation":"Water moves toward the higher solute concentration."}`, scriptedDraftText), nil
	case constant.ValidationSystemPromptV1:
		if p.validationDown {
			return "", errors.New("provider unavailable")
		}
		score := 90
		if p.validationCalls < len(p.validationScores) {
			score = p.validationScores[p.validationCalls]
		}
		p.validationCalls++
		return fmt.Sprintf(`{"total_score":%d}`, score), nil
	case constant.RevisionSystemPromptV1:
		return fmt.Sprintf(`{"question":%q,"options":["solute concentration","temperature","charge","volume","none of these"],"answer_index":0,"explanation":"Water follows the solute gradient."}`, scriptedRevisedText), nil
	}
	return "", errors.New("unexpected system prompt")
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return "", errors.New("not used in tests")
}

func (p *scriptedProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chatCalls
}

type capturingPublisher struct {
	payloads [][]byte
}

func (c *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	c.payloads = append(c.payloads, payload)
	return nil
}

func newGenerationServiceForTest(provider llm.LLMProvider) (*fakeUow, *capturingPublisher, IGenerationService) {
	uow := newFakeUow()
	jobPublisher := &capturingPublisher{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	svc := NewGenerationService(
		&fakeFactory{uow: uow},
		quizgen.NewGenerator(provider, nopLogger{}),
		memory.NewQuestionCache(),
		jobPublisher,
		pubSub,
		nil,
		nil,
		nopLogger{},
	)
	return uow, jobPublisher, svc
}

func seedChunk(uow *fakeUow, metadata *entity.ChunkMetadata) *entity.Chunk {
	chunk := &entity.Chunk{
		Id:       uuid.New(),
		CourseId: uuid.New(),
		Title:    "Transport across membranes",
		Content:  "Osmosis moves water across a semipermeable membrane toward the higher solute concentration. Diffusion spreads particles down their gradient.",
		Status:   constant.ChunkStatusIdle,
		Metadata: metadata,
	}
	uow.chunks.chunks[chunk.Id] = chunk
	return chunk
}

func TestGenerateForChunkFullPipeline(t *testing.T) {
	provider := &scriptedProvider{}
	uow, _, svc := newGenerationServiceForTest(provider)
	chunk := seedChunk(uow, nil)
	userId := uuid.New()

	err := svc.GenerateForChunk(context.Background(), userId, chunk.Id)
	require.NoError(t, err)

	require.Equal(t, []string{constant.ChunkStatusCompleted}, uow.chunks.statusUpdates)

	// Two concepts: the concept map and the quotas are both written back.
	assert.Equal(t, 2, uow.chunks.metadataSaves)
	require.NotNil(t, chunk.Metadata)
	assert.Len(t, chunk.Metadata.ConceptMap, 2)
	assert.Equal(t, 5, chunk.Metadata.Quotas[constant.UsageTypeTraining])

	// Quota is 5/1/2 but each (usage, concept) key is generated once; repeat
	// iterations are cache hits.
	byUsage := map[string]int{}
	for _, q := range uow.questions.created {
		byUsage[q.UsageType]++
		require.NotNil(t, q.ChunkId)
		assert.Equal(t, chunk.Id, *q.ChunkId)
		assert.False(t, q.IsFallback)
		assert.Equal(t, scriptedDraftText, q.Payload.Question)
	}
	assert.Equal(t, 2, byUsage[constant.UsageTypeTraining])
	assert.Equal(t, 1, byUsage[constant.UsageTypeExam])
	assert.Equal(t, 2, byUsage[constant.UsageTypeArchive])

	// One mapping call plus draft and validation per generated question.
	assert.Equal(t, 11, provider.calls())
}

func TestGenerateForChunkSkipsWhenAlreadyClaimed(t *testing.T) {
	provider := &scriptedProvider{}
	uow, _, svc := newGenerationServiceForTest(provider)
	chunk := seedChunk(uow, nil)
	uow.chunks.claimResult = false

	err := svc.GenerateForChunk(context.Background(), uuid.New(), chunk.Id)
	require.NoError(t, err)

	assert.Zero(t, provider.calls())
	assert.Empty(t, uow.chunks.statusUpdates)
	assert.Empty(t, uow.questions.created)
}

func archiveMetadata() *entity.ChunkMetadata {
	return &entity.ChunkMetadata{
		ConceptMap: []entity.ConceptMapItem{
			{Title: "osmosis", Focus: "water moves toward solute", Level: constant.BloomLevelApplication},
		},
		Quotas: map[string]int{
			constant.UsageTypeTraining: 5,
			constant.UsageTypeExam:     1,
			constant.UsageTypeArchive:  1,
		},
	}
}

func TestArchiveRefreshRevisionApproved(t *testing.T) {
	provider := &scriptedProvider{validationScores: []int{40}}
	uow, _, svc := newGenerationServiceForTest(provider)
	chunk := seedChunk(uow, archiveMetadata())

	err := svc.GenerateArchiveRefresh(context.Background(), uuid.New(), chunk.Id)
	require.NoError(t, err)

	require.Len(t, uow.questions.created, 1)
	question := uow.questions.created[0]
	assert.Equal(t, scriptedRevisedText, question.Payload.Question)
	assert.False(t, question.IsFallback)
	assert.Equal(t, constant.UsageTypeArchive, question.UsageType)

	// Draft, failed validation, revision, passing re-validation.
	assert.Equal(t, 4, provider.calls())
}

func TestArchiveRefreshFallsBackWhenRevisionRejected(t *testing.T) {
	provider := &scriptedProvider{validationScores: []int{40, 40}}
	uow, _, svc := newGenerationServiceForTest(provider)
	chunk := seedChunk(uow, archiveMetadata())

	err := svc.GenerateArchiveRefresh(context.Background(), uuid.New(), chunk.Id)
	require.NoError(t, err)

	require.Len(t, uow.questions.created, 1)
	question := uow.questions.created[0]
	assert.True(t, question.IsFallback)
	assert.Contains(t, question.Payload.Question, "osmosis")
	assert.NotEqual(t, scriptedDraftText, question.Payload.Question)
}

func TestArchiveRefreshAcceptsDraftWhenValidatorDown(t *testing.T) {
	provider := &scriptedProvider{validationDown: true}
	uow, _, svc := newGenerationServiceForTest(provider)
	chunk := seedChunk(uow, archiveMetadata())

	err := svc.GenerateArchiveRefresh(context.Background(), uuid.New(), chunk.Id)
	require.NoError(t, err)

	require.Len(t, uow.questions.created, 1)
	question := uow.questions.created[0]
	assert.Equal(t, scriptedDraftText, question.Payload.Question)
	assert.False(t, question.IsFallback)
}

func TestArchiveRefreshCachedQuestionSkipsProvider(t *testing.T) {
	provider := &scriptedProvider{}
	uow, _, svc := newGenerationServiceForTest(provider)
	chunk := seedChunk(uow, archiveMetadata())

	existing := trainingQuestion(chunk.CourseId, &chunk.Id)
	existing.UsageType = constant.UsageTypeArchive
	existing.ConceptTitle = "osmosis"
	uow.questions.cached[questionKey(chunk.Id, constant.UsageTypeArchive, "osmosis")] = existing

	err := svc.GenerateArchiveRefresh(context.Background(), uuid.New(), chunk.Id)
	require.NoError(t, err)

	assert.Zero(t, provider.calls())
	assert.Empty(t, uow.questions.created)
}

func TestGenerateFollowUp(t *testing.T) {
	provider := &scriptedProvider{}
	uow, _, svc := newGenerationServiceForTest(provider)
	chunk := seedChunk(uow, nil)

	parent := trainingQuestion(chunk.CourseId, &chunk.Id)
	uow.questions.byId[parent.Id] = parent

	question, err := svc.GenerateFollowUp(context.Background(), uuid.New(), parent.Id)
	require.NoError(t, err)

	require.NotNil(t, question.ParentQuestionId)
	assert.Equal(t, parent.Id, *question.ParentQuestionId)
	assert.Equal(t, constant.UsageTypeTraining, question.UsageType)
	assert.Equal(t, parent.ConceptTitle, question.ConceptTitle)
	require.Len(t, uow.questions.created, 1)
}

func TestEnqueue(t *testing.T) {
	provider := &scriptedProvider{}
	uow, jobPublisher, svc := newGenerationServiceForTest(provider)
	userId := uuid.New()
	chunk := seedChunk(uow, nil)
	uow.courses.course = &entity.Course{Id: chunk.CourseId, UserId: userId}

	resp, err := svc.Enqueue(context.Background(), userId, chunk.Id)
	require.NoError(t, err)
	assert.Equal(t, "queued", resp.Status)

	require.Len(t, jobPublisher.payloads, 1)
	var job dto.PublishGenerationMessage
	require.NoError(t, json.Unmarshal(jobPublisher.payloads[0], &job))
	assert.Equal(t, chunk.Id, job.ChunkId)
	assert.Equal(t, userId, job.UserId)
}

func TestEnqueueRejectsProcessingChunk(t *testing.T) {
	provider := &scriptedProvider{}
	uow, jobPublisher, svc := newGenerationServiceForTest(provider)
	userId := uuid.New()
	chunk := seedChunk(uow, nil)
	chunk.Status = constant.ChunkStatusProcessing
	uow.courses.course = &entity.Course{Id: chunk.CourseId, UserId: userId}

	_, err := svc.Enqueue(context.Background(), userId, chunk.Id)
	require.Error(t, err)
	assert.Empty(t, jobPublisher.payloads)
}
