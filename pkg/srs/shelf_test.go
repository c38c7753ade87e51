package srs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextShelfState(t *testing.T) {
	p := DefaultPolicy()

	t.Run("incorrect resets and flags followup", func(t *testing.T) {
		res := p.NextShelfState(2.5, false, true)
		assert.Equal(t, StatusPendingFollowup, res.NewStatus)
		assert.Equal(t, 0.0, res.NewSuccessCount)
	})

	t.Run("fast correct earns full credit", func(t *testing.T) {
		res := p.NextShelfState(0, true, true)
		assert.Equal(t, StatusPendingFollowup, res.NewStatus)
		assert.Equal(t, 1.0, res.NewSuccessCount)
	})

	t.Run("slow correct earns half credit", func(t *testing.T) {
		res := p.NextShelfState(0, true, false)
		assert.Equal(t, StatusPendingFollowup, res.NewStatus)
		assert.Equal(t, 0.5, res.NewSuccessCount)
	})

	t.Run("reaching mastery streak archives", func(t *testing.T) {
		res := p.NextShelfState(2, true, true)
		assert.Equal(t, StatusArchived, res.NewStatus)
		assert.Equal(t, 3.0, res.NewSuccessCount)
	})

	t.Run("slow answers archive eventually", func(t *testing.T) {
		res := p.NextShelfState(2.5, true, false)
		assert.Equal(t, StatusArchived, res.NewStatus)
		assert.Equal(t, 3.0, res.NewSuccessCount)
	})
}

func TestNextReviewSession(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name         string
		session      int
		successCount float64
		want         int
	}{
		{"failed question returns next session", 10, 0, 11},
		{"half success still shortest gap", 10, 0.5, 11},
		{"one success", 10, 1, 11},
		{"two successes", 10, 2, 13},
		{"mastered gets week gap", 10, 3, 17},
		{"beyond table clamps to longest", 10, 42, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.NextReviewSession(tt.session, tt.successCount))
		})
	}

	t.Run("refresh interval caps the gap", func(t *testing.T) {
		capped := DefaultPolicy()
		capped.RefreshIntervalSessions = 14
		assert.Equal(t, 24, capped.NextReviewSession(10, 42))
	})
}

func TestEvaluateAnswerStreaks(t *testing.T) {
	p := DefaultPolicy()

	t.Run("correct answer clears fail run", func(t *testing.T) {
		out := p.EvaluateAnswer(AnswerInput{
			Response:      ResponseCorrect,
			SessionNumber: 5,
			UsageType:     UsageTraining,
			Prior:         &PriorStatus{ConsecutiveFails: 2},
		})
		assert.Equal(t, 0, out.NewFailsCount)
		assert.True(t, out.NewSuccessCount > 0)
	})

	t.Run("incorrect answer clears success run", func(t *testing.T) {
		out := p.EvaluateAnswer(AnswerInput{
			Response:      ResponseIncorrect,
			SessionNumber: 5,
			UsageType:     UsageTraining,
			Prior:         &PriorStatus{ConsecutiveSuccess: 2},
		})
		assert.Equal(t, 0.0, out.NewSuccessCount)
		assert.Equal(t, 1, out.NewFailsCount)
		assert.Equal(t, StatusPendingFollowup, out.NewStatus)
	})

	t.Run("fail run keeps growing", func(t *testing.T) {
		out := p.EvaluateAnswer(AnswerInput{
			Response:      ResponseIncorrect,
			SessionNumber: 5,
			UsageType:     UsageTraining,
			Prior:         &PriorStatus{ConsecutiveFails: 2},
		})
		assert.Equal(t, 3, out.NewFailsCount)
		assert.True(t, out.NeedsFollowUp)
	})

	t.Run("short fail run does not suggest a followup", func(t *testing.T) {
		out := p.EvaluateAnswer(AnswerInput{
			Response:      ResponseIncorrect,
			SessionNumber: 5,
			UsageType:     UsageTraining,
			Prior:         &PriorStatus{ConsecutiveFails: 1},
		})
		assert.Equal(t, 2, out.NewFailsCount)
		assert.False(t, out.NeedsFollowUp)
	})

	t.Run("blank behaves like a miss for streaks", func(t *testing.T) {
		out := p.EvaluateAnswer(AnswerInput{
			Response:      ResponseBlank,
			SessionNumber: 5,
			UsageType:     UsageTraining,
			Prior:         &PriorStatus{ConsecutiveSuccess: 1},
		})
		assert.False(t, out.IsCorrect)
		assert.Equal(t, 0.0, out.NewSuccessCount)
		assert.Equal(t, 1, out.NewFailsCount)
	})
}

func TestEvaluateAnswerScheduling(t *testing.T) {
	p := DefaultPolicy()

	t.Run("followup gets a review session", func(t *testing.T) {
		out := p.EvaluateAnswer(AnswerInput{
			Response:      ResponseIncorrect,
			SessionNumber: 7,
			UsageType:     UsageTraining,
		})
		require.NotNil(t, out.NextReviewSession)
		assert.Equal(t, 8, *out.NextReviewSession)
	})

	t.Run("archival schedules the earned gap", func(t *testing.T) {
		out := p.EvaluateAnswer(AnswerInput{
			Response:      ResponseCorrect,
			TimeSpentMs:   1000,
			SessionNumber: 7,
			UsageType:     UsageTraining,
			Prior:         &PriorStatus{ConsecutiveSuccess: 2},
		})
		assert.Equal(t, StatusArchived, out.NewStatus)
		require.NotNil(t, out.NextReviewSession)
		assert.Equal(t, 14, *out.NextReviewSession)
	})
}

func TestEvaluateAnswerExamExemption(t *testing.T) {
	p := DefaultPolicy()

	out := p.EvaluateAnswer(AnswerInput{
		Response:      ResponseIncorrect,
		SessionNumber: 4,
		UsageType:     UsageExam,
		Prior:         &PriorStatus{ConsecutiveSuccess: 2},
		Chunk:         &ChunkContext{MasteryScore: 55},
	})

	assert.True(t, out.Exempt)
	assert.Equal(t, 2.0, out.NewSuccessCount)
	assert.Equal(t, 0.0, out.ScoreDelta)
	assert.Equal(t, 55.0, out.NewMastery)
	assert.Nil(t, out.NextReviewSession)
}

func TestEvaluateAnswerTiming(t *testing.T) {
	p := DefaultPolicy()

	// 780 chars, 5 concepts, knowledge level allows 95s.
	chunk := &ChunkContext{ContentLength: 780, ConceptCount: 5}

	fast := p.EvaluateAnswer(AnswerInput{
		Response:      ResponseCorrect,
		TimeSpentMs:   90000,
		SessionNumber: 1,
		UsageType:     UsageTraining,
		BloomLevel:    "knowledge",
		Chunk:         chunk,
	})
	assert.True(t, fast.IsFast)
	assert.Equal(t, 1.0, fast.NewSuccessCount)

	slow := p.EvaluateAnswer(AnswerInput{
		Response:      ResponseCorrect,
		TimeSpentMs:   120000,
		SessionNumber: 1,
		UsageType:     UsageTraining,
		BloomLevel:    "knowledge",
		Chunk:         chunk,
	})
	assert.False(t, slow.IsFast)
	assert.Equal(t, 0.5, slow.NewSuccessCount)
}

func TestEvaluateAnswerMastery(t *testing.T) {
	p := DefaultPolicy()

	out := p.EvaluateAnswer(AnswerInput{
		Response:      ResponseCorrect,
		TimeSpentMs:   1000,
		SessionNumber: 1,
		UsageType:     UsageTraining,
		Chunk:         &ChunkContext{MasteryScore: 42, UniqueSolved: 9, TotalQuestions: 10},
	})

	assert.Equal(t, 52.0, out.NewMastery)
	assert.Equal(t, 10.0, out.ScoreDelta)
	assert.True(t, out.TopicRefreshed)
}
