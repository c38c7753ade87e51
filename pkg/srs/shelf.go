package srs

import "math"

// defaultFastThresholdMs applies when no chunk timing context is available.
const defaultFastThresholdMs = 30000

// ShelfResult is the outcome of one shelf transition.
type ShelfResult struct {
	NewStatus       Status
	NewSuccessCount float64
}

// NextShelfState runs the per-question state machine for a single answer.
// An incorrect answer always lands the question on the follow-up shelf and
// resets the success run. A correct answer earns full credit when fast,
// partial credit when slow; reaching the mastery streak archives the question.
func (p Policy) NextShelfState(consecutiveSuccess float64, isCorrect, isFast bool) ShelfResult {
	if !isCorrect {
		return ShelfResult{NewStatus: StatusPendingFollowup, NewSuccessCount: 0}
	}

	increment := 1.0
	if !isFast {
		increment = p.SlowSuccessIncrement
	}
	newCount := consecutiveSuccess + increment

	if newCount >= p.MasteryStreak {
		return ShelfResult{NewStatus: StatusArchived, NewSuccessCount: newCount}
	}
	if newCount >= p.SlowSuccessIncrement {
		return ShelfResult{NewStatus: StatusPendingFollowup, NewSuccessCount: newCount}
	}
	return ShelfResult{NewStatus: StatusActive, NewSuccessCount: newCount}
}

// NextReviewSession schedules the next appearance of a question. The success
// count indexes into the gap table; anything below one full success still
// earns the shortest gap, anything beyond the table earns the longest.
func (p Policy) NextReviewSession(currentSession int, successCount float64) int {
	adjusted := math.Max(1, successCount)
	gapIndex := int(math.Floor(adjusted)) - 1
	if gapIndex < 0 {
		gapIndex = 0
	}
	if gapIndex > len(p.SessionGaps)-1 {
		gapIndex = len(p.SessionGaps) - 1
	}
	gap := p.SessionGaps[gapIndex]
	if p.RefreshIntervalSessions > 0 && gap > p.RefreshIntervalSessions {
		gap = p.RefreshIntervalSessions
	}
	return currentSession + gap
}

// PriorStatus is the stored counter pair for a (user, question), nil-able at
// the call site for never-answered questions.
type PriorStatus struct {
	ConsecutiveSuccess float64
	ConsecutiveFails   int
}

// ChunkContext carries the timing and mastery inputs resolved from the
// question's chunk. Absent (nil) when the question is not chunk-linked.
type ChunkContext struct {
	ContentLength  int
	ConceptCount   int
	MasteryScore   float64
	UniqueSolved   int
	TotalQuestions int
}

// AnswerInput is everything EvaluateAnswer needs, pre-fetched by the caller.
type AnswerInput struct {
	Response      ResponseType
	TimeSpentMs   int64
	SessionNumber int
	UsageType     UsageType
	BloomLevel    string
	Prior         *PriorStatus
	Chunk         *ChunkContext
}

// AnswerOutcome is the full pure result of one submission. Exempt outcomes
// (exam questions) change nothing and must not be persisted as state.
type AnswerOutcome struct {
	IsCorrect         bool
	Exempt            bool
	IsFast            bool
	IsRepeated        bool
	NewStatus         Status
	NewSuccessCount   float64
	NewFailsCount     int
	NextReviewSession *int
	ScoreDelta        float64
	NewMastery        float64
	TopicRefreshed    bool
	// NeedsFollowUp is set when the fail run reaches the failure streak; the
	// caller may generate a remediation question for the concept.
	NeedsFollowUp bool
}

// EvaluateAnswer combines the shelf transition, review scheduling and the
// running mastery update into one side-effect-free computation.
func (p Policy) EvaluateAnswer(in AnswerInput) AnswerOutcome {
	isCorrect := in.Response == ResponseCorrect

	priorSuccess := 0.0
	priorFails := 0
	if in.Prior != nil {
		priorSuccess = in.Prior.ConsecutiveSuccess
		priorFails = in.Prior.ConsecutiveFails
	}

	currentMastery := 0.0
	if in.Chunk != nil {
		currentMastery = in.Chunk.MasteryScore
	}

	// Exam questions measure readiness; they never touch the shelf state or
	// the mastery score.
	if in.UsageType == UsageExam {
		return AnswerOutcome{
			IsCorrect:       isCorrect,
			Exempt:          true,
			NewStatus:       StatusActive,
			NewSuccessCount: priorSuccess,
			NewFailsCount:   priorFails,
			NewMastery:      currentMastery,
		}
	}

	isRepeated := priorSuccess > 0 || priorFails > 0

	isFast := in.TimeSpentMs < defaultFastThresholdMs
	if in.Chunk != nil {
		conceptCount := in.Chunk.ConceptCount
		if conceptCount == 0 {
			conceptCount = 5
		}
		tMax := TMaxMs(in.Chunk.ContentLength, conceptCount, in.BloomLevel)
		isFast = in.TimeSpentMs <= tMax
	}

	shelf := p.NextShelfState(priorSuccess, isCorrect, isFast)

	var nextReview *int
	if shelf.NewStatus == StatusPendingFollowup || shelf.NewStatus == StatusArchived {
		n := p.NextReviewSession(in.SessionNumber, shelf.NewSuccessCount)
		nextReview = &n
	}

	change := ScoreChange(in.Response, currentMastery, isRepeated)

	newFails := priorFails + 1
	if isCorrect {
		newFails = 0
	}

	topicRefreshed := false
	if in.Chunk != nil && in.Chunk.TotalQuestions > 0 {
		topicRefreshed = float64(in.Chunk.UniqueSolved)/float64(in.Chunk.TotalQuestions) >= 0.8
	}

	return AnswerOutcome{
		IsCorrect:         isCorrect,
		IsFast:            isFast,
		IsRepeated:        isRepeated,
		NewStatus:         shelf.NewStatus,
		NewSuccessCount:   shelf.NewSuccessCount,
		NewFailsCount:     newFails,
		NextReviewSession: nextReview,
		ScoreDelta:        change.NewScore - currentMastery,
		NewMastery:        change.NewScore,
		TopicRefreshed:    topicRefreshed,
		NeedsFollowUp:     p.FailureStreak > 0 && newFails >= p.FailureStreak,
	}
}
