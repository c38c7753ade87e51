// FILE: internal/service/quiz_service_test.go
package service

import (
	"context"
	"testing"

	"auditpath-quiz-be/internal/constant"
	"auditpath-quiz-be/internal/dto"
	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/repository/contract"
	"auditpath-quiz-be/pkg/srs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizServiceForTest(defaultLimit int) (*fakeUow, IQuizService) {
	uow := newFakeUow()
	svc := NewQuizService(&fakeFactory{uow: uow}, srs.DefaultPolicy(), defaultLimit, nopLogger{}, nil)
	return uow, svc
}

func trainingQuestion(courseId uuid.UUID, chunkId *uuid.UUID) *entity.Question {
	return &entity.Question{
		Id:           uuid.New(),
		CourseId:     courseId,
		ChunkId:      chunkId,
		UsageType:    constant.UsageTypeTraining,
		ConceptTitle: "osmosis",
		BloomLevel:   "understanding",
		Payload: entity.QuestionPayload{
			Question:    "What drives osmosis?",
			Options:     []string{"a", "b", "c", "d", "e"},
			AnswerIndex: 1,
			Explanation: "concentration gradient",
		},
	}
}

func TestStartSession(t *testing.T) {
	uow, svc := newQuizServiceForTest(10)
	userId := uuid.New()
	courseId := uuid.New()
	uow.courses.course = &entity.Course{Id: courseId, UserId: userId, Name: "Biology"}
	uow.courses.counter = &contract.SessionCounter{CurrentSession: 3, IsNewSession: true}

	resp, err := svc.StartSession(context.Background(), userId, courseId)
	require.NoError(t, err)
	assert.Equal(t, courseId, resp.CourseId)
	assert.Equal(t, "Biology", resp.CourseName)
	assert.Equal(t, 3, resp.SessionNumber)
	assert.True(t, resp.IsNewSession)
}

func TestStartSessionCourseNotFound(t *testing.T) {
	_, svc := newQuizServiceForTest(10)
	_, err := svc.StartSession(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
}

func TestGetReviewQueuePoolPriority(t *testing.T) {
	uow, svc := newQuizServiceForTest(10)
	userId := uuid.New()
	courseId := uuid.New()
	chunkId := uuid.New()
	uow.courses.course = &entity.Course{Id: courseId, UserId: userId, CurrentSession: 5}

	// Pool 1: one due follow-up plus one fresh follow-up.
	dueFollowup := trainingQuestion(courseId, nil)
	freshFollowup := trainingQuestion(courseId, nil)
	uow.questions.byId[dueFollowup.Id] = dueFollowup
	uow.questions.byId[freshFollowup.Id] = freshFollowup
	uow.statuses.due[constant.QuestionStatusPendingFollowup] = []*entity.UserQuestionStatus{
		{UserId: userId, QuestionId: dueFollowup.Id, CourseId: courseId},
	}
	// The fresh pool also lists the due question; it must not enter twice.
	uow.questions.followups = []*entity.Question{dueFollowup, freshFollowup}

	// Pool 2: seven training questions on the frontier chunk.
	uow.mastery.frontier = &entity.ChunkMastery{UserId: userId, ChunkId: chunkId, CourseId: courseId}
	training := make([]*entity.Question, 0, 7)
	chunkPool := []*entity.Question{freshFollowup}
	for i := 0; i < 7; i++ {
		q := trainingQuestion(courseId, &chunkId)
		uow.questions.byId[q.Id] = q
		training = append(training, q)
		chunkPool = append(chunkPool, q)
	}
	uow.questions.byChunk[chunkId] = chunkPool

	// Pool 3: one due archived question.
	archived := trainingQuestion(courseId, &chunkId)
	archived.UsageType = constant.UsageTypeArchive
	uow.questions.byId[archived.Id] = archived
	uow.statuses.due[constant.QuestionStatusArchived] = []*entity.UserQuestionStatus{
		{UserId: userId, QuestionId: archived.Id, CourseId: courseId},
	}

	// Limit 0 falls back to the configured default of 10.
	resp, err := svc.GetReviewQueue(context.Background(), userId, &dto.ReviewQueueRequest{CourseId: courseId})
	require.NoError(t, err)

	require.Len(t, resp.Questions, 10)
	assert.Equal(t, 5, resp.SessionNumber)
	assert.Equal(t, dueFollowup.Id, resp.Questions[0].Id)
	assert.Equal(t, freshFollowup.Id, resp.Questions[1].Id)
	for i, q := range training {
		assert.Equal(t, q.Id, resp.Questions[2+i].Id)
	}
	assert.Equal(t, archived.Id, resp.Questions[9].Id)

	seen := make(map[uuid.UUID]bool)
	for _, q := range resp.Questions {
		assert.False(t, seen[q.Id], "question %s queued twice", q.Id)
		seen[q.Id] = true
	}
}

func TestGetReviewQueueTargetChunkUncapped(t *testing.T) {
	uow, svc := newQuizServiceForTest(10)
	userId := uuid.New()
	courseId := uuid.New()
	chunkId := uuid.New()
	uow.courses.course = &entity.Course{Id: courseId, UserId: userId, CurrentSession: 2}

	dueFollowup := trainingQuestion(courseId, nil)
	uow.questions.byId[dueFollowup.Id] = dueFollowup
	uow.statuses.due[constant.QuestionStatusPendingFollowup] = []*entity.UserQuestionStatus{
		{UserId: userId, QuestionId: dueFollowup.Id, CourseId: courseId},
	}

	for i := 0; i < 3; i++ {
		q := trainingQuestion(courseId, &chunkId)
		uow.questions.byId[q.Id] = q
		uow.questions.byChunk[chunkId] = append(uow.questions.byChunk[chunkId], q)
	}

	// A target chunk request keeps every candidate even past the limit.
	resp, err := svc.GetReviewQueue(context.Background(), userId, &dto.ReviewQueueRequest{
		CourseId:      courseId,
		Limit:         3,
		TargetChunkId: &chunkId,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Questions, 4)

	// The default mixed queue is capped at the limit.
	uow.mastery.frontier = &entity.ChunkMastery{UserId: userId, ChunkId: chunkId, CourseId: courseId}
	resp, err = svc.GetReviewQueue(context.Background(), userId, &dto.ReviewQueueRequest{
		CourseId: courseId,
		Limit:    3,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Questions, 3)
}

func TestGetReviewQueueTargetChunkReturnsAllCandidates(t *testing.T) {
	uow, svc := newQuizServiceForTest(10)
	userId := uuid.New()
	courseId := uuid.New()
	chunkId := uuid.New()
	uow.courses.course = &entity.Course{Id: courseId, UserId: userId, CurrentSession: 1}

	// Far more questions on the chunk than the session limit allows.
	for i := 0; i < 20; i++ {
		q := trainingQuestion(courseId, &chunkId)
		uow.questions.byId[q.Id] = q
		uow.questions.byChunk[chunkId] = append(uow.questions.byChunk[chunkId], q)
	}

	resp, err := svc.GetReviewQueue(context.Background(), userId, &dto.ReviewQueueRequest{
		CourseId:      courseId,
		Limit:         10,
		TargetChunkId: &chunkId,
	})
	require.NoError(t, err)
	require.Len(t, resp.Questions, 20)
}

func TestGetReviewQueueCourseFallback(t *testing.T) {
	uow, svc := newQuizServiceForTest(10)
	userId := uuid.New()
	courseId := uuid.New()
	uow.courses.course = &entity.Course{Id: courseId, UserId: userId, CurrentSession: 1}

	// No frontier and no target chunk: training comes from the course-wide
	// pool instead.
	for i := 0; i < 4; i++ {
		q := trainingQuestion(courseId, nil)
		uow.questions.byId[q.Id] = q
		uow.questions.byCourse = append(uow.questions.byCourse, q)
	}

	resp, err := svc.GetReviewQueue(context.Background(), userId, &dto.ReviewQueueRequest{CourseId: courseId, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Questions, 4)
}

func TestSubmitAnswerExamIsExempt(t *testing.T) {
	uow, svc := newQuizServiceForTest(10)
	userId := uuid.New()
	courseId := uuid.New()
	question := trainingQuestion(courseId, nil)
	question.UsageType = constant.UsageTypeExam
	uow.questions.byId[question.Id] = question

	resp, err := svc.SubmitAnswer(context.Background(), userId, &dto.SubmitAnswerRequest{
		CourseId:      courseId,
		QuestionId:    question.Id,
		Response:      "correct",
		TimeSpentMs:   4000,
		SessionNumber: 2,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsCorrect)
	assert.Equal(t, constant.QuestionStatusActive, resp.NewStatus)
	assert.Zero(t, resp.ScoreDelta)
	assert.Nil(t, resp.NextReviewSession)
	assert.Empty(t, uow.statuses.upserts)
	assert.Empty(t, uow.progress.created)
	assert.Empty(t, uow.mastery.upserts)
}

func TestSubmitAnswerFirstCorrect(t *testing.T) {
	uow, svc := newQuizServiceForTest(10)
	userId := uuid.New()
	courseId := uuid.New()
	question := trainingQuestion(courseId, nil)
	uow.questions.byId[question.Id] = question

	resp, err := svc.SubmitAnswer(context.Background(), userId, &dto.SubmitAnswerRequest{
		CourseId:      courseId,
		QuestionId:    question.Id,
		Response:      "correct",
		TimeSpentMs:   2000,
		SessionNumber: 4,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsCorrect)
	assert.True(t, resp.IsFast)
	assert.False(t, resp.IsRepeated)
	assert.Equal(t, constant.QuestionStatusPendingFollowup, resp.NewStatus)
	require.NotNil(t, resp.NextReviewSession)
	assert.Equal(t, 5, *resp.NextReviewSession)
	assert.Equal(t, 10, resp.ScoreDelta)
	assert.Nil(t, resp.ChunkMastery)

	require.Len(t, uow.statuses.upserts, 1)
	status := uow.statuses.upserts[0]
	assert.Equal(t, constant.QuestionStatusPendingFollowup, status.Status)
	assert.Equal(t, 1.0, status.ConsecutiveSuccess)
	assert.Zero(t, status.ConsecutiveFails)
	assert.Equal(t, 4, status.LastAnsweredSession)

	require.Len(t, uow.progress.created, 1)
	record := uow.progress.created[0]
	assert.True(t, record.IsCorrect)
	assert.Equal(t, 10, record.ScoreChange)
	assert.Equal(t, 2, record.DurationSeconds)

	// No chunk, no mastery row.
	assert.Empty(t, uow.mastery.upserts)
}

func TestSubmitAnswerStreakArchives(t *testing.T) {
	uow, svc := newQuizServiceForTest(10)
	userId := uuid.New()
	courseId := uuid.New()
	question := trainingQuestion(courseId, nil)
	uow.questions.byId[question.Id] = question
	uow.statuses.prior = &entity.UserQuestionStatus{
		Id:                 uuid.New(),
		UserId:             userId,
		QuestionId:         question.Id,
		CourseId:           courseId,
		Status:             constant.QuestionStatusPendingFollowup,
		ConsecutiveSuccess: 2,
	}

	resp, err := svc.SubmitAnswer(context.Background(), userId, &dto.SubmitAnswerRequest{
		CourseId:      courseId,
		QuestionId:    question.Id,
		Response:      "correct",
		TimeSpentMs:   1000,
		SessionNumber: 6,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsRepeated)
	assert.Equal(t, constant.QuestionStatusArchived, resp.NewStatus)
	require.NotNil(t, resp.NextReviewSession)
	assert.Equal(t, 13, *resp.NextReviewSession) // success count 3 earns a 7 session gap

	require.Len(t, uow.statuses.upserts, 1)
	assert.Equal(t, uow.statuses.prior.Id, uow.statuses.upserts[0].Id)
	assert.Equal(t, 3.0, uow.statuses.upserts[0].ConsecutiveSuccess)
}

func TestSubmitAnswerIncorrectUpdatesMastery(t *testing.T) {
	uow, svc := newQuizServiceForTest(10)
	userId := uuid.New()
	courseId := uuid.New()
	chunkId := uuid.New()
	question := trainingQuestion(courseId, &chunkId)
	uow.questions.byId[question.Id] = question
	uow.questions.chunkCount = 10
	uow.progress.distinct = 8
	uow.chunks.chunks[chunkId] = &entity.Chunk{
		Id:       chunkId,
		CourseId: courseId,
		Content:  "Osmosis moves water across a membrane toward the higher solute concentration.",
		Metadata: &entity.ChunkMetadata{ConceptMap: []entity.ConceptMapItem{{Title: "osmosis"}}},
	}
	uow.mastery.mastery = &entity.ChunkMastery{Id: uuid.New(), UserId: userId, ChunkId: chunkId, CourseId: courseId, MasteryScore: 40}
	uow.statuses.prior = &entity.UserQuestionStatus{
		Id:                 uuid.New(),
		UserId:             userId,
		QuestionId:         question.Id,
		CourseId:           courseId,
		ConsecutiveSuccess: 2,
	}

	resp, err := svc.SubmitAnswer(context.Background(), userId, &dto.SubmitAnswerRequest{
		CourseId:      courseId,
		QuestionId:    question.Id,
		Response:      "incorrect",
		TimeSpentMs:   5000,
		SessionNumber: 3,
	})
	require.NoError(t, err)

	assert.False(t, resp.IsCorrect)
	assert.Equal(t, constant.QuestionStatusPendingFollowup, resp.NewStatus)
	assert.Equal(t, -10, resp.ScoreDelta) // repeated miss costs the full penalty
	require.NotNil(t, resp.ChunkMastery)
	assert.Equal(t, 30, *resp.ChunkMastery)
	assert.True(t, resp.TopicRefreshed) // 8 of 10 distinct questions solved

	require.Len(t, uow.statuses.upserts, 1)
	assert.Zero(t, uow.statuses.upserts[0].ConsecutiveSuccess)
	assert.Equal(t, 1, uow.statuses.upserts[0].ConsecutiveFails)

	require.Len(t, uow.mastery.upserts, 1)
	mastery := uow.mastery.upserts[0]
	assert.Equal(t, uow.mastery.mastery.Id, mastery.Id)
	assert.Equal(t, 30.0, mastery.MasteryScore)
	assert.Equal(t, 3, mastery.LastReviewedSession)
}

func TestSubmitAnswerRejectsForeignCourse(t *testing.T) {
	uow, svc := newQuizServiceForTest(10)
	question := trainingQuestion(uuid.New(), nil)
	uow.questions.byId[question.Id] = question

	_, err := svc.SubmitAnswer(context.Background(), uuid.New(), &dto.SubmitAnswerRequest{
		CourseId:      uuid.New(),
		QuestionId:    question.Id,
		Response:      "correct",
		SessionNumber: 1,
	})
	require.Error(t, err)
}

func TestTestResultsSummary(t *testing.T) {
	_, svc := newQuizServiceForTest(10)

	resp := svc.TestResults(&dto.TestResultsRequest{
		Correct:   7,
		Incorrect: 2,
		Blank:     1,
		ElapsedMs: 3723000,
	})

	assert.Equal(t, 70, resp.Percentage)
	assert.Equal(t, 74, resp.Mastery) // incorrect answers carry 20% credit
	assert.Equal(t, 3, resp.PendingReview)
	assert.Equal(t, "01:02:03", resp.ElapsedDisplay)
}
