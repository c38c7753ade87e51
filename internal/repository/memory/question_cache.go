package memory

import (
	"fmt"
	"time"

	"auditpath-quiz-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// QuestionCache is the in-process side of the generation idempotency key
// (chunk, usage type, concept title). It fronts the database probe so a
// pipeline retry inside the same process never re-reads, let alone
// re-generates, a concept it already produced.
type QuestionCache struct {
	cache *cache.Cache
}

func NewQuestionCache() *QuestionCache {
	// Generated questions are immutable; the TTL only bounds memory.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &QuestionCache{
		cache: c,
	}
}

func cacheKey(chunkId uuid.UUID, usageType, conceptTitle string) string {
	return fmt.Sprintf("%s|%s|%s", chunkId, usageType, conceptTitle)
}

func (r *QuestionCache) Save(question *entity.Question) {
	if question == nil || question.ChunkId == nil {
		return
	}
	key := cacheKey(*question.ChunkId, question.UsageType, question.ConceptTitle)
	r.cache.Set(key, question, cache.DefaultExpiration)
}

func (r *QuestionCache) Get(chunkId uuid.UUID, usageType, conceptTitle string) (*entity.Question, bool) {
	if x, found := r.cache.Get(cacheKey(chunkId, usageType, conceptTitle)); found {
		return x.(*entity.Question), true
	}
	return nil, false
}

func (r *QuestionCache) Delete(chunkId uuid.UUID, usageType, conceptTitle string) {
	r.cache.Delete(cacheKey(chunkId, usageType, conceptTitle))
}
