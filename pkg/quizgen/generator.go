package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"auditpath-quiz-be/internal/constant"
	"auditpath-quiz-be/internal/pkg/logger"
	"auditpath-quiz-be/pkg/llm"
)

// ErrNoResult signals a recoverable generation failure: the model never
// produced a parseable document within the allowed retries. Callers decide per
// stage whether that skips, degrades or aborts.
var ErrNoResult = errors.New("quizgen: no usable result from provider")

const defaultMaxRetries = 2

// Generator turns chat completions into typed values. One instance is safe
// for concurrent use; it holds no per-call state.
type Generator struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, log logger.ILogger) *Generator {
	return &Generator{
		provider: provider,
		logger:   log,
	}
}

// GenerateOptions tags one structured call.
type GenerateOptions struct {
	// UsageType is forwarded for cost attribution in logs only; it never
	// changes the request.
	UsageType  string
	MaxRetries int
}

// Generate sends the message history and unmarshals the response into out.
// A parse failure appends the retry prompt and tries again; provider errors
// and exhausted retries both collapse into ErrNoResult.
func (g *Generator) Generate(ctx context.Context, messages []llm.Message, out interface{}, opts GenerateOptions) error {
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	history := make([]llm.Message, len(messages))
	copy(history, messages)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		raw, err := g.provider.Chat(ctx, history)
		if err != nil {
			g.logger.Warn("quizgen", "provider call failed", map[string]interface{}{
				"attempt":    attempt,
				"usage_type": opts.UsageType,
				"error":      err.Error(),
			})
			lastErr = err
			continue
		}

		doc, err := ExtractJSON(raw)
		if err == nil {
			if err = json.Unmarshal([]byte(doc), out); err == nil {
				return nil
			}
		}

		g.logger.Warn("quizgen", "unparseable response, retrying", map[string]interface{}{
			"attempt":    attempt,
			"usage_type": opts.UsageType,
			"error":      err.Error(),
		})
		lastErr = err
		history = append(history, llm.Message{
			Role:    constant.GenerationRoleUser,
			Content: constant.StructuredRetryPromptV1,
		})
	}

	return fmt.Errorf("%w: %v", ErrNoResult, lastErr)
}
