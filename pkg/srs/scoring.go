package srs

import (
	"fmt"
	"math"
)

// Point values for the running chunk mastery score.
const (
	PointsCorrect         = 10.0
	PenaltyIncorrectFirst = 5.0
	PenaltyBlankFirst     = 2.0
	PenaltyRepeated       = 10.0
)

// Chunk mastery blend: coverage contributes up to 60 points, demonstrated
// quality up to 40.
const (
	masteryWeightCoverage = 0.6
	masteryWeightScore    = 0.4
)

// Results is a correct/incorrect/blank tally for one sitting.
type Results struct {
	Correct   int
	Incorrect int
	Blank     int
}

// Mastery is the plain percentage of correct answers, 0 for an empty set.
func Mastery(results Results, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(results.Correct) / float64(total) * 100))
}

// ExcellenceAchieved reports whether the sitting clears the excellence bar.
func ExcellenceAchieved(results Results, total int) bool {
	return Mastery(results, total) >= 80
}

// TestResultSummary is the display summary of a finished test run.
type TestResultSummary struct {
	Percentage         int
	MasteryScore       int
	PendingReview      int
	TotalTimeFormatted string
}

// TestResults computes the partial-credit summary: incorrect answers earn
// 20% value, blanks earn nothing.
func TestResults(correct, incorrect, blank int, timeSpentMs int64) TestResultSummary {
	total := correct + incorrect + blank

	percentage := 0
	masteryScore := 0
	if total > 0 {
		percentage = int(math.Round(float64(correct) / float64(total) * 100))
		masteryScore = int(math.Round((float64(correct)*1.0 + float64(incorrect)*0.2) / float64(total) * 100))
	}

	return TestResultSummary{
		Percentage:         percentage,
		MasteryScore:       masteryScore,
		PendingReview:      incorrect + blank,
		TotalTimeFormatted: FormatElapsed(timeSpentMs),
	}
}

// FormatElapsed renders milliseconds as HH:MM:SS. Hours run past 24 rather
// than rolling over into days.
func FormatElapsed(timeSpentMs int64) string {
	seconds := timeSpentMs / 1000
	minutes := seconds / 60
	return fmt.Sprintf("%02d:%02d:%02d", minutes/60, minutes%60, seconds%60)
}

// ChunkMastery blends coverage and quality into a 0-100 score. The coverage
// ratio is clamped at 1 so a chunk shrinking after answers were recorded
// cannot push the score past 100.
func ChunkMastery(totalQuestions, uniqueSolved int, averageScore float64) int {
	if totalQuestions == 0 {
		return 0
	}
	coverageRatio := math.Min(1, float64(uniqueSolved)/float64(totalQuestions))
	coverageScore := coverageRatio * (masteryWeightCoverage * 100)
	scoreComponent := averageScore * masteryWeightScore
	return int(math.Round(coverageScore + scoreComponent))
}

// ScoreChangeResult is the delta applied to a running mastery score.
type ScoreChangeResult struct {
	Delta    float64
	NewScore float64
}

// ScoreChange updates the running score for one answer. First misses are
// punished lightly; missing a question already seen costs the full penalty.
func ScoreChange(response ResponseType, currentScore float64, isRepeated bool) ScoreChangeResult {
	delta := 0.0
	switch {
	case response == ResponseCorrect:
		delta = PointsCorrect
	case isRepeated:
		delta = -PenaltyRepeated
	case response == ResponseIncorrect:
		delta = -PenaltyIncorrectFirst
	case response == ResponseBlank:
		delta = -PenaltyBlankFirst
	}

	newScore := math.Max(0, math.Min(100, currentScore+delta))
	return ScoreChangeResult{Delta: delta, NewScore: newScore}
}
