package constant

const (
	// Question lifecycle statuses (shelf system)
	QuestionStatusActive          = "active"
	QuestionStatusPendingFollowup = "pending_followup"
	QuestionStatusArchived        = "archived"

	// Question usage types
	UsageTypeTraining = "training"
	UsageTypeExam     = "exam"
	UsageTypeArchive  = "archive"

	// Chunk generation statuses
	ChunkStatusIdle       = "idle"
	ChunkStatusProcessing = "processing"
	ChunkStatusCompleted  = "completed"
	ChunkStatusFailed     = "failed"

	// Validation decisions
	DecisionApproved = "APPROVED"
	DecisionRejected = "REJECTED"

	// Bloom levels used by the concept mapper
	BloomLevelKnowledge   = "knowledge"
	BloomLevelApplication = "application"
	BloomLevelAnalysis    = "analysis"
)

// Generation progress stages. The stream a client observes is a closed set:
// INIT -> MAPPING -> (GENERATING|VALIDATING|REVISION|SAVING)* -> COMPLETED,
// with ERROR possible at any point.
const (
	StageInit       = "INIT"
	StageMapping    = "MAPPING"
	StageGenerating = "GENERATING"
	StageValidating = "VALIDATING"
	StageRevision   = "REVISION"
	StageSaving     = "SAVING"
	StageCompleted  = "COMPLETED"
	StageError      = "ERROR"
)

// Watermill topics and NATS subjects. The event bus publishes every quiz
// event under "events.<TYPE>", so the audit consumer subscribes to the
// wildcard.
const (
	TopicGenerationRequested = "generation.requested"
	TopicGenerationProgress  = "generation.progress"
	SubjectQuizEvents        = "events.>"
)

// Event type codes published on the quiz event bus.
const (
	EventAnswerRecorded      = "QUIZ_ANSWER_RECORDED"
	EventSessionAdvanced     = "QUIZ_SESSION_ADVANCED"
	EventQuestionSaved       = "QUIZ_QUESTION_SAVED"
	EventGenerationCompleted = "QUIZ_GENERATION_COMPLETED"
	EventGenerationFailed    = "QUIZ_GENERATION_FAILED"
)
