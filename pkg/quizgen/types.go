// Package quizgen is the structured-generation layer of the question
// pipeline: typed prompts in, typed objects out. It owns JSON extraction,
// retry-on-parse-failure and validation decision normalization; persistence
// and loop orchestration stay with the caller.
package quizgen

import "auditpath-quiz-be/internal/constant"

// DraftQuestion is the LLM-facing shape of a generated question.
type DraftQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
	Evidence    string   `json:"evidence,omitempty"`
	Insight     string   `json:"insight,omitempty"`
}

// CriteriaBreakdown mirrors the fixed review rubric. The weights sum to 100.
type CriteriaBreakdown struct {
	Groundedness int `json:"groundedness"`
	Distractors  int `json:"distractors"`
	Pedagogy     int `json:"pedagogy"`
	Clarity      int `json:"clarity"`
	Explanation  int `json:"explanation"`
}

// ValidationResult is the reviewer verdict for one drafted question.
type ValidationResult struct {
	TotalScore            int               `json:"total_score"`
	CriteriaBreakdown     CriteriaBreakdown `json:"criteria_breakdown"`
	CriticalFaults        []string          `json:"critical_faults"`
	ImprovementSuggestion string            `json:"improvement_suggestion"`
	Decision              string            `json:"decision"`
}

// Approved reports the normalized verdict.
func (v *ValidationResult) Approved() bool {
	return v != nil && v.Decision == constant.DecisionApproved
}
