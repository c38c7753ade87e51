package quizgen

import (
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "fenced block with json tag",
			raw:  "Here you go:\n```json\n{\"a\": 1}\n```\nHope that helps!",
			want: `{"a": 1}`,
		},
		{
			name: "fenced block without tag",
			raw:  "```\n[1, 2, 3]\n```",
			want: `[1, 2, 3]`,
		},
		{
			name: "bare object with surrounding prose",
			raw:  `Sure thing. {"question": "x"} Let me know.`,
			want: `{"question": "x"}`,
		},
		{
			name: "bare array",
			raw:  `[{"title": "a"}, {"title": "b"}]`,
			want: `[{"title": "a"}, {"title": "b"}]`,
		},
		{
			name:    "no json at all",
			raw:     "I cannot answer that.",
			wantErr: true,
		},
		{
			name:    "empty response",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "unterminated object",
			raw:     `{"a": 1`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeValidation(t *testing.T) {
	tests := []struct {
		name         string
		score        int
		decision     string
		wantScore    int
		wantDecision string
	}{
		{"passing score overrides rejected label", 75, "REJECTED", 75, "APPROVED"},
		{"failing score overrides approved label", 50, "APPROVED", 50, "REJECTED"},
		{"exact threshold approves", 70, "REJECTED", 70, "APPROVED"},
		{"just below threshold rejects", 69, "APPROVED", 69, "REJECTED"},
		{"negative score clamps to zero", -10, "APPROVED", 0, "REJECTED"},
		{"overflow clamps to hundred", 130, "REJECTED", 100, "APPROVED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &ValidationResult{TotalScore: tt.score, Decision: tt.decision}
			NormalizeValidation(v)
			if v.TotalScore != tt.wantScore {
				t.Errorf("score: got %d, want %d", v.TotalScore, tt.wantScore)
			}
			if v.Decision != tt.wantDecision {
				t.Errorf("decision: got %q, want %q", v.Decision, tt.wantDecision)
			}
			if got := v.Approved(); got != (tt.wantDecision == "APPROVED") {
				t.Errorf("Approved() = %v with decision %q", got, v.Decision)
			}
		})
	}

	t.Run("nil is a no-op", func(t *testing.T) {
		NormalizeValidation(nil)
		var v *ValidationResult
		if v.Approved() {
			t.Error("nil result must not be approved")
		}
	})
}
