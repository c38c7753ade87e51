package quizgen

import "github.com/google/uuid"

// ProgressEvent is one entry of the generation progress stream. Stage is
// restricted to the constant.Stage* set; consumers switch on it exhaustively
// and treat anything else as a protocol error.
type ProgressEvent struct {
	ChunkId uuid.UUID `json:"chunk_id"`
	Stage   string    `json:"stage"`
	Message string    `json:"message"`
	// Current and Total describe per-question progress inside GENERATING,
	// VALIDATING and SAVING; both are zero for the other stages.
	Current int    `json:"current,omitempty"`
	Total   int    `json:"total,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ProgressSink receives the ordered progress stream of one pipeline run.
// Emission is fire-and-forget: a sink must never block the pipeline and its
// errors are not propagated back.
type ProgressSink interface {
	Emit(event ProgressEvent)
}

// ProgressSinkFunc adapts a function to ProgressSink.
type ProgressSinkFunc func(event ProgressEvent)

func (f ProgressSinkFunc) Emit(event ProgressEvent) {
	f(event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Emit(ProgressEvent) {}
