package srs

import "math"

// QuotaSet is the target question count per usage type for one chunk.
type QuotaSet struct {
	Training int
	Exam     int
	Archive  int
}

// Quotas derives generation targets from the concept count. Training gets at
// least five questions even for thin chunks; archive and exam scale off the
// training base.
func Quotas(conceptCount int) QuotaSet {
	trainingBase := conceptCount
	if trainingBase < 5 {
		trainingBase = 5
	}
	return QuotaSet{
		Training: trainingBase,
		Archive:  int(math.Ceil(float64(trainingBase) * 0.3)),
		Exam:     int(math.Ceil(float64(trainingBase) * 0.2)),
	}
}

// Total is the overall generation target for one chunk.
func (q QuotaSet) Total() int {
	return q.Training + q.Exam + q.Archive
}

// ForUsage returns the quota for one usage type, 0 for unknown types.
func (q QuotaSet) ForUsage(usage UsageType) int {
	switch usage {
	case UsageTraining:
		return q.Training
	case UsageExam:
		return q.Exam
	case UsageArchive:
		return q.Archive
	}
	return 0
}

// ToMap flattens the quota set for jsonb storage on the chunk.
func (q QuotaSet) ToMap() map[string]int {
	return map[string]int{
		string(UsageTraining): q.Training,
		string(UsageExam):     q.Exam,
		string(UsageArchive):  q.Archive,
	}
}

// QuotaSetFromMap restores a stored quota map, tolerating missing keys.
func QuotaSetFromMap(m map[string]int) QuotaSet {
	return QuotaSet{
		Training: m[string(UsageTraining)],
		Exam:     m[string(UsageExam)],
		Archive:  m[string(UsageArchive)],
	}
}
