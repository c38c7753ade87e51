package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByCourse struct {
	CourseID uuid.UUID
}

func (s ByCourse) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("course_id = ?", s.CourseID)
}

type ByChunk struct {
	ChunkID uuid.UUID
}

func (s ByChunk) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chunk_id = ?", s.ChunkID)
}

type ByQuestion struct {
	QuestionID uuid.UUID
}

func (s ByQuestion) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("question_id = ?", s.QuestionID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByUsageType struct {
	UsageType string
}

func (s ByUsageType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("usage_type = ?", s.UsageType)
}

type ByConceptTitle struct {
	Title string
}

func (s ByConceptTitle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("concept_title = ?", s.Title)
}

// DueForReview selects rows whose scheduled review session has arrived.
type DueForReview struct {
	SessionNumber int
}

func (s DueForReview) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("next_review_session IS NOT NULL AND next_review_session <= ?", s.SessionNumber)
}

// ExcludeQuestions keeps already-queued questions out of a pool fetch. A
// no-op when the exclusion set is empty.
type ExcludeQuestions struct {
	IDs []uuid.UUID
}

func (s ExcludeQuestions) Apply(db *gorm.DB) *gorm.DB {
	if len(s.IDs) == 0 {
		return db
	}
	return db.Where("question_id NOT IN ?", s.IDs)
}

// ExcludeIDs is the primary-key variant of ExcludeQuestions.
type ExcludeIDs struct {
	IDs []uuid.UUID
}

func (s ExcludeIDs) Apply(db *gorm.DB) *gorm.DB {
	if len(s.IDs) == 0 {
		return db
	}
	return db.Where("id NOT IN ?", s.IDs)
}

// FollowupsOnly selects remediation questions linked to a parent question.
type FollowupsOnly struct{}

func (s FollowupsOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("parent_question_id IS NOT NULL")
}
