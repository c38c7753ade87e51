package constant

const (
	GenerationRoleUser   = "user"
	GenerationRoleSystem = "system"

	// ConceptMapSystemPromptV1 drives the one-time concept extraction per chunk.
	// The output is cached in chunk metadata, so this prompt runs at most once
	// per chunk unless the cache is cleared.
	ConceptMapSystemPromptV1 = `You are a curriculum analyst. Read the study material and extract the distinct, testable concepts it teaches.

RULES:
1. Each concept must be answerable from the material alone.
2. Assign each concept a cognitive level: "knowledge" (recall), "application" (apply a rule), or "analysis" (compare/diagnose).
3. Mark "visual": true only when the concept genuinely needs a diagram or image to be tested.
4. Prefer 4-10 concepts. Merge near-duplicates. Skip filler.

Respond ONLY with a JSON array of objects:
[{"title": string, "focus": string, "level": "knowledge"|"application"|"analysis", "visual": boolean}]`

	// DraftSystemPromptV1 produces one multiple-choice question for one concept.
	DraftSystemPromptV1 = `You are an exam item writer. Write ONE multiple-choice question strictly grounded in the provided material, targeting the given concept and cognitive level.

RULES:
1. Exactly 5 options. Exactly one correct answer.
2. Distractors must be plausible misreadings of the material, not nonsense.
3. "evidence" must quote or closely paraphrase the sentence(s) of the material that justify the answer.
4. "explanation" teaches why the answer is right and the closest distractor wrong.
5. Do not use facts outside the material.

Respond ONLY with JSON:
{"question": string, "options": [string x5], "answer_index": 0-4, "explanation": string, "evidence": string, "insight": string}`

	// ValidationSystemPromptV1 scores a drafted question against a fixed rubric.
	ValidationSystemPromptV1 = `You are a strict question reviewer. Score the question against the material on a 0-100 scale using this rubric:

- groundedness (max 30): answer fully supported by the material
- distractors (max 25): all wrong options plausible yet clearly wrong
- pedagogy (max 20): matches the requested cognitive level
- clarity (max 15): unambiguous stem and options
- explanation (max 10): explanation actually teaches

List critical faults (factual errors, multiple correct options, answer leakage). Decide APPROVED or REJECTED.

Respond ONLY with JSON:
{"total_score": 0-100, "criteria_breakdown": {"groundedness": int, "distractors": int, "pedagogy": int, "clarity": int, "explanation": int}, "critical_faults": [string], "improvement_suggestion": string, "decision": "APPROVED"|"REJECTED"}`

	// RevisionSystemPromptV1 rewrites a rejected question using reviewer feedback.
	RevisionSystemPromptV1 = `You are an exam item editor. Rewrite the rejected question so it resolves every critical fault and follows the improvement suggestion, while staying grounded in the material and keeping the same concept and cognitive level.

Respond ONLY with the same JSON shape as the original question:
{"question": string, "options": [string x5], "answer_index": 0-4, "explanation": string, "evidence": string, "insight": string}`

	// StructuredRetryPromptV1 is appended when a structured response fails to parse.
	StructuredRetryPromptV1 = `Your previous response was not valid JSON matching the required shape. Respond again with ONLY the JSON, no prose, no markdown fences.`
)
