package srs

import (
	"testing"
)

func TestMastery(t *testing.T) {
	tests := []struct {
		name    string
		results Results
		total   int
		want    int
	}{
		{"empty set", Results{}, 0, 0},
		{"all correct", Results{Correct: 10}, 10, 100},
		{"half correct", Results{Correct: 5, Incorrect: 5}, 10, 50},
		{"rounding up", Results{Correct: 2, Incorrect: 1}, 3, 67},
		{"none correct", Results{Incorrect: 4}, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mastery(tt.results, tt.total); got != tt.want {
				t.Errorf("Mastery() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExcellenceAchievedBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		total   int
		want    bool
	}{
		{"79 percent", 79, 100, false},
		{"80 percent", 80, 100, true},
		{"81 percent", 81, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExcellenceAchieved(Results{Correct: tt.correct, Incorrect: tt.total - tt.correct}, tt.total)
			if got != tt.want {
				t.Errorf("ExcellenceAchieved() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChunkMastery(t *testing.T) {
	tests := []struct {
		name           string
		totalQuestions int
		uniqueSolved   int
		averageScore   float64
		want           int
	}{
		{"empty chunk", 0, 5, 100, 0},
		{"full coverage full score", 10, 10, 100, 100},
		{"half coverage no score", 10, 5, 0, 30},
		{"coverage clamped", 10, 20, 0, 60},
		{"score only", 10, 0, 50, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChunkMastery(tt.totalQuestions, tt.uniqueSolved, tt.averageScore); got != tt.want {
				t.Errorf("ChunkMastery() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTestResults(t *testing.T) {
	summary := TestResults(8, 2, 0, 60000)

	if summary.Percentage != 80 {
		t.Errorf("Percentage = %d, want 80", summary.Percentage)
	}
	if summary.MasteryScore != 84 {
		t.Errorf("MasteryScore = %d, want 84", summary.MasteryScore)
	}
	if summary.PendingReview != 2 {
		t.Errorf("PendingReview = %d, want 2", summary.PendingReview)
	}
	if summary.TotalTimeFormatted != "00:01:00" {
		t.Errorf("TotalTimeFormatted = %q, want 00:01:00", summary.TotalTimeFormatted)
	}

	empty := TestResults(0, 0, 0, 0)
	if empty.Percentage != 0 || empty.MasteryScore != 0 {
		t.Errorf("empty run should score zero, got %+v", empty)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00:00"},
		{3661000, "01:01:01"},
		{90045000, "25:00:45"}, // hours past 24, no day rollover
		{59999, "00:00:59"},
	}

	for _, tt := range tests {
		if got := FormatElapsed(tt.ms); got != tt.want {
			t.Errorf("FormatElapsed(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestScoreChange(t *testing.T) {
	tests := []struct {
		name       string
		response   ResponseType
		current    float64
		isRepeated bool
		wantDelta  float64
		wantScore  float64
	}{
		{"correct", ResponseCorrect, 50, false, 10, 60},
		{"first incorrect", ResponseIncorrect, 50, false, -5, 45},
		{"first blank", ResponseBlank, 50, false, -2, 48},
		{"repeated miss", ResponseIncorrect, 50, true, -10, 40},
		{"repeated blank miss", ResponseBlank, 50, true, -10, 40},
		{"clamped at 100", ResponseCorrect, 95, false, 10, 100},
		{"clamped at 0", ResponseIncorrect, 3, true, -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreChange(tt.response, tt.current, tt.isRepeated)
			if got.Delta != tt.wantDelta {
				t.Errorf("Delta = %v, want %v", got.Delta, tt.wantDelta)
			}
			if got.NewScore != tt.wantScore {
				t.Errorf("NewScore = %v, want %v", got.NewScore, tt.wantScore)
			}
		})
	}
}

func TestQuotas(t *testing.T) {
	tests := []struct {
		name         string
		conceptCount int
		want         QuotaSet
	}{
		{"thin chunk floors at five", 2, QuotaSet{Training: 5, Archive: 2, Exam: 1}},
		{"ten concepts", 10, QuotaSet{Training: 10, Archive: 3, Exam: 2}},
		{"seven concepts", 7, QuotaSet{Training: 7, Archive: 3, Exam: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quotas(tt.conceptCount); got != tt.want {
				t.Errorf("Quotas(%d) = %+v, want %+v", tt.conceptCount, got, tt.want)
			}
		})
	}
}

func TestTMaxMs(t *testing.T) {
	// 780 chars reads in exactly one minute; 5 concepts at knowledge level
	// add 25s of thinking plus the 10s buffer.
	got := TMaxMs(780, 5, "knowledge")
	if got != 95000 {
		t.Errorf("TMaxMs = %d, want 95000", got)
	}

	analysis := TMaxMs(780, 5, "analysis")
	if analysis != int64(60000+25*1.5*1000+10000) {
		t.Errorf("TMaxMs analysis = %d", analysis)
	}

	unknown := TMaxMs(0, 0, "whatever")
	if unknown != 25000 {
		t.Errorf("TMaxMs unknown level = %d, want 25000", unknown)
	}
}
