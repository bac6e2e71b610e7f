// Package redis provides a Redis-backed generation cache so multiple service
// instances can share memoized model output.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math/rand"
	"time"

	"training-hub-service/internal/app"
	"training-hub-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// GenerationCache stores JSON-encoded gateway results under
// gen:test:{sha} / gen:assignment:{sha} keys with a jittered TTL and falls
// back to the inner generator on cache miss.
type GenerationCache struct {
	client *redis.Client
	inner  app.Generator
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewGenerationCache(client *redis.Client, inner app.Generator, ttl time.Duration) *GenerationCache {
	return &GenerationCache{
		client: client,
		inner:  inner,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *GenerationCache) GenerateTest(ctx context.Context, content string) ([]domain.AssessmentQuestion, error) {
	key := c.testKey(content)

	var cached []domain.AssessmentQuestion
	if ok := c.get(ctx, key, &cached); ok {
		return cached, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		var cached []domain.AssessmentQuestion
		if ok := c.get(ctx, key, &cached); ok {
			return cached, nil
		}

		questions, err := c.inner.GenerateTest(ctx, content)
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, questions)
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.AssessmentQuestion), nil
}

func (c *GenerationCache) GenerateAssignment(ctx context.Context, content string) (domain.GeneratedAssignment, error) {
	key := c.assignmentKey(content)

	var cached domain.GeneratedAssignment
	if ok := c.get(ctx, key, &cached); ok {
		return cached, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		var cached domain.GeneratedAssignment
		if ok := c.get(ctx, key, &cached); ok {
			return cached, nil
		}

		assignment, err := c.inner.GenerateAssignment(ctx, content)
		if err != nil {
			return domain.GeneratedAssignment{}, err
		}
		c.set(ctx, key, assignment)
		return assignment, nil
	})
	if err != nil {
		return domain.GeneratedAssignment{}, err
	}
	return result.(domain.GeneratedAssignment), nil
}

func (c *GenerationCache) get(ctx context.Context, key string, out any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// set is best-effort; a cache write failure never fails the generation.
func (c *GenerationCache) set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
}

func (c *GenerationCache) testKey(content string) string {
	return "gen:test:" + contentKey(content)
}

func (c *GenerationCache) assignmentKey(content string) string {
	return "gen:assignment:" + contentKey(content)
}

func contentKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func (c *GenerationCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
