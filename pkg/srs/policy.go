// Package srs implements the session-number based spaced repetition rules
// ("shelf system"): per-question state transitions, review scheduling,
// running mastery scores and generation quotas. Everything here is pure;
// persistence and transport live elsewhere.
package srs

// Status is the shelf a question sits on for one user.
type Status string

const (
	StatusActive          Status = "active"
	StatusPendingFollowup Status = "pending_followup"
	StatusArchived        Status = "archived"
)

// ResponseType classifies a single answer.
type ResponseType string

const (
	ResponseCorrect   ResponseType = "correct"
	ResponseIncorrect ResponseType = "incorrect"
	ResponseBlank     ResponseType = "blank"
)

// UsageType classifies what a question is generated and scheduled for.
type UsageType string

const (
	UsageTraining UsageType = "training"
	UsageExam     UsageType = "exam"
	UsageArchive  UsageType = "archive"
)

// Policy carries the tunable scheduling constants. The defaults mirror the
// production values; deployments override them through configuration.
type Policy struct {
	// MasteryStreak is the consecutive-success total that archives a question.
	MasteryStreak float64
	// FailureStreak is the consecutive-fail run that flags a concept for a
	// remediation follow-up.
	FailureStreak int
	// SlowSuccessIncrement is the partial credit for a correct but slow answer.
	SlowSuccessIncrement float64
	// SessionGaps maps the success count (floored, 1-based) to the number of
	// sessions until the next review.
	SessionGaps []int
	// RefreshIntervalSessions caps how long an archived question may go
	// without resurfacing, regardless of its earned gap.
	RefreshIntervalSessions int
}

func DefaultPolicy() Policy {
	return Policy{
		MasteryStreak:           3,
		FailureStreak:           3,
		SlowSuccessIncrement:    0.5,
		SessionGaps:             []int{1, 3, 7, 14, 30},
		RefreshIntervalSessions: 30,
	}
}
