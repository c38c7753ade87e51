// FILE: internal/dto/quiz_dto.go
package dto

import (
	"github.com/google/uuid"
)

type ReviewQueueRequest struct {
	CourseId      uuid.UUID  `json:"course_id" validate:"required"`
	Limit         int        `json:"limit" validate:"omitempty,min=1,max=100"`
	TargetChunkId *uuid.UUID `json:"target_chunk_id"`
}

type QueueQuestionResponse struct {
	Id           uuid.UUID  `json:"id"`
	ChunkId      *uuid.UUID `json:"chunk_id,omitempty"`
	UsageType    string     `json:"usage_type"`
	ConceptTitle string     `json:"concept_title"`
	BloomLevel   string     `json:"bloom_level"`
	Question     string     `json:"question"`
	Options      []string   `json:"options"`
	AnswerIndex  int        `json:"answer_index"`
	Explanation  string     `json:"explanation"`
	Evidence     string     `json:"evidence,omitempty"`
	Insight      string     `json:"insight,omitempty"`
	Image        string     `json:"image,omitempty"`
}

type ReviewQueueResponse struct {
	SessionNumber int                     `json:"session_number"`
	Questions     []QueueQuestionResponse `json:"questions"`
}

type SubmitAnswerRequest struct {
	CourseId      uuid.UUID `json:"course_id" validate:"required"`
	QuestionId    uuid.UUID `json:"question_id" validate:"required"`
	Response      string    `json:"response" validate:"required,oneof=correct incorrect blank"`
	TimeSpentMs   int64     `json:"time_spent_ms" validate:"min=0"`
	SessionNumber int       `json:"session_number" validate:"required,min=1"`
	UsageType     string    `json:"usage_type" validate:"omitempty,oneof=training exam archive"`
}

type SubmitAnswerResponse struct {
	IsCorrect         bool   `json:"is_correct"`
	IsFast            bool   `json:"is_fast"`
	IsRepeated        bool   `json:"is_repeated"`
	NewStatus         string `json:"new_status"`
	NextReviewSession *int   `json:"next_review_session,omitempty"`
	ScoreDelta        int    `json:"score_delta"`
	ChunkMastery      *int   `json:"chunk_mastery,omitempty"`
	TopicRefreshed    bool   `json:"topic_refreshed"`
	FollowUpSuggested bool   `json:"follow_up_suggested"`
}

type TestResultsRequest struct {
	Correct   int   `json:"correct" validate:"min=0"`
	Incorrect int   `json:"incorrect" validate:"min=0"`
	Blank     int   `json:"blank" validate:"min=0"`
	ElapsedMs int64 `json:"elapsed_ms" validate:"min=0"`
}

type TestResultsResponse struct {
	Percentage     int    `json:"percentage"`
	Mastery        int    `json:"mastery"`
	PendingReview  int    `json:"pending_review"`
	ElapsedDisplay string `json:"elapsed_display"`
}
