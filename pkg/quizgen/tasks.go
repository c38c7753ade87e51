package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"auditpath-quiz-be/internal/constant"
	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/pkg/llm"
)

// ConceptMap extracts the testable concepts of a chunk. Unknown cognitive
// levels coming back from the model are normalized to "knowledge" so the
// rest of the pipeline never branches on a level it does not know.
func (g *Generator) ConceptMap(ctx context.Context, content string) ([]entity.ConceptMapItem, error) {
	messages := []llm.Message{
		{Role: constant.GenerationRoleSystem, Content: constant.ConceptMapSystemPromptV1},
		{Role: constant.GenerationRoleUser, Content: fmt.Sprintf("MATERIAL:\n%s", content)},
	}

	var items []entity.ConceptMapItem
	if err := g.Generate(ctx, messages, &items, GenerateOptions{UsageType: "concept_map"}); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoResult
	}

	for i := range items {
		items[i].Title = strings.TrimSpace(items[i].Title)
		switch items[i].Level {
		case constant.BloomLevelKnowledge, constant.BloomLevelApplication, constant.BloomLevelAnalysis:
		default:
			items[i].Level = constant.BloomLevelKnowledge
		}
	}
	return items, nil
}

// Draft writes one multiple-choice question for a concept. usageType only
// shades the instruction: exam items ask for transfer, archive items for
// quick recall.
func (g *Generator) Draft(ctx context.Context, content string, concept entity.ConceptMapItem, usageType string) (*DraftQuestion, error) {
	var hint string
	switch usageType {
	case constant.UsageTypeExam:
		hint = "This item is for a mock exam: favor transfer over recall."
	case constant.UsageTypeArchive:
		hint = "This item is for quick refresh of mastered material: keep it short and direct."
	}

	user := fmt.Sprintf("MATERIAL:\n%s\n\nCONCEPT: %s\nFOCUS: %s\nCOGNITIVE LEVEL: %s\n%s",
		content, concept.Title, concept.Focus, concept.Level, hint)

	messages := []llm.Message{
		{Role: constant.GenerationRoleSystem, Content: constant.DraftSystemPromptV1},
		{Role: constant.GenerationRoleUser, Content: user},
	}

	var draft DraftQuestion
	if err := g.Generate(ctx, messages, &draft, GenerateOptions{UsageType: usageType}); err != nil {
		return nil, err
	}
	if draft.Question == "" || len(draft.Options) == 0 {
		return nil, ErrNoResult
	}
	if draft.AnswerIndex < 0 || draft.AnswerIndex >= len(draft.Options) {
		return nil, ErrNoResult
	}
	return &draft, nil
}

// Validate scores a draft against the rubric. The returned result is already
// normalized: the decision always agrees with the numeric score.
func (g *Generator) Validate(ctx context.Context, content string, draft *DraftQuestion) (*ValidationResult, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}

	messages := []llm.Message{
		{Role: constant.GenerationRoleSystem, Content: constant.ValidationSystemPromptV1},
		{Role: constant.GenerationRoleUser, Content: fmt.Sprintf("MATERIAL:\n%s\n\nQUESTION:\n%s", content, payload)},
	}

	var result ValidationResult
	if err := g.Generate(ctx, messages, &result, GenerateOptions{UsageType: "validation"}); err != nil {
		return nil, err
	}
	NormalizeValidation(&result)
	return &result, nil
}

// Revise rewrites a rejected draft once, feeding the reviewer verdict back to
// the model. The caller is responsible for carrying concept, cognitive level
// and image flags over from the original draft.
func (g *Generator) Revise(ctx context.Context, content string, draft *DraftQuestion, verdict *ValidationResult) (*DraftQuestion, error) {
	draftJSON, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	verdictJSON, err := json.Marshal(verdict)
	if err != nil {
		return nil, err
	}

	messages := []llm.Message{
		{Role: constant.GenerationRoleSystem, Content: constant.RevisionSystemPromptV1},
		{Role: constant.GenerationRoleUser, Content: fmt.Sprintf(
			"MATERIAL:\n%s\n\nREJECTED QUESTION:\n%s\n\nREVIEW:\n%s", content, draftJSON, verdictJSON)},
	}

	var revised DraftQuestion
	if err := g.Generate(ctx, messages, &revised, GenerateOptions{UsageType: "revision"}); err != nil {
		return nil, err
	}
	if revised.Question == "" || revised.AnswerIndex < 0 || revised.AnswerIndex >= len(revised.Options) {
		return nil, ErrNoResult
	}
	return &revised, nil
}

// FallbackQuestion is the deterministic last resort when every draft and
// revision for a concept failed. It is honest about being a placeholder and
// is flagged so the question can be regenerated later.
func FallbackQuestion(concept entity.ConceptMapItem) *DraftQuestion {
	return &DraftQuestion{
		Question: fmt.Sprintf("Which statement best describes the concept \"%s\"?", concept.Title),
		Options: []string{
			fmt.Sprintf("It relates to: %s", concept.Focus),
			"It is not covered in this material",
			"It contradicts the main argument of the material",
			"It is only mentioned as a historical aside",
			"None of the above",
		},
		AnswerIndex: 0,
		Explanation: fmt.Sprintf("The material introduces %s with the focus: %s.", concept.Title, concept.Focus),
		Evidence:    concept.Focus,
		Insight:     "This question was generated as a fallback and may be replaced on the next generation run.",
	}
}
