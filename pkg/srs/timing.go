package srs

import "math"

// Reading speed baseline: 780 characters per minute.
const readingCharsPerMinute = 780.0

// tMaxBufferSeconds absorbs UI latency and first-read hesitation.
const tMaxBufferSeconds = 10.0

var difficultyMultipliers = map[string]float64{
	"knowledge":   1.0,
	"application": 1.2,
	"analysis":    1.5,
}

// TMaxMs is the per-question time allowance in milliseconds: reading time for
// the source chunk plus a complexity term scaled by cognitive level.
func TMaxMs(charCount, conceptCount int, bloomLevel string) int64 {
	multiplier, ok := difficultyMultipliers[bloomLevel]
	if !ok {
		multiplier = 1.0
	}

	readingSeconds := float64(charCount) / readingCharsPerMinute * 60
	complexitySeconds := (15 + float64(conceptCount)*2) * multiplier
	total := readingSeconds + complexitySeconds + tMaxBufferSeconds

	return int64(math.Round(total * 1000))
}
