package quizgen

import (
	"fmt"
	"strings"

	"auditpath-quiz-be/internal/constant"
)

// approvalThreshold is the score at which the numeric verdict overrides
// whatever decision string the model emitted.
const approvalThreshold = 70

// ExtractJSON pulls the JSON document out of a raw model response. Fenced
// blocks win; otherwise the outermost object or array is taken as-is.
func ExtractJSON(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("empty response")
	}

	if idx := strings.Index(trimmed, "```"); idx >= 0 {
		rest := trimmed[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end >= 0 {
			trimmed = strings.TrimSpace(rest[:end])
		}
	}

	objStart := strings.IndexAny(trimmed, "{[")
	if objStart < 0 {
		return "", fmt.Errorf("no JSON found in response")
	}

	closer := "}"
	if trimmed[objStart] == '[' {
		closer = "]"
	}
	objEnd := strings.LastIndex(trimmed, closer)
	if objEnd <= objStart {
		return "", fmt.Errorf("unterminated JSON in response")
	}

	return trimmed[objStart : objEnd+1], nil
}

// NormalizeValidation enforces score/decision consistency: the numeric score
// is authoritative, the decision string is advisory. Models regularly emit a
// passing score with a REJECTED label (and vice versa); the caller must never
// see that disagreement.
func NormalizeValidation(v *ValidationResult) {
	if v == nil {
		return
	}

	if v.TotalScore < 0 {
		v.TotalScore = 0
	}
	if v.TotalScore > 100 {
		v.TotalScore = 100
	}

	if v.TotalScore >= approvalThreshold {
		v.Decision = constant.DecisionApproved
	} else {
		v.Decision = constant.DecisionRejected
	}
}
