package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"sync"
	"time"

	"training-hub-service/internal/app"
	"training-hub-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// GenerationCache memoizes gateway results keyed by material content so
// identical content never triggers a second paid model call within the TTL.
// Domain reads stay compute-on-read; only the external call is cached.
type GenerationCache struct {
	inner app.Generator
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group
	rnd   *rand.Rand

	mu          sync.RWMutex
	tests       map[string]cachedTest
	assignments map[string]cachedAssignment
}

type cachedTest struct {
	questions []domain.AssessmentQuestion
	expiresAt time.Time
}

type cachedAssignment struct {
	assignment domain.GeneratedAssignment
	expiresAt  time.Time
}

func NewGenerationCache(inner app.Generator, ttl time.Duration) *GenerationCache {
	return &GenerationCache{
		inner:       inner,
		ttl:         ttl,
		clock:       time.Now,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
		tests:       make(map[string]cachedTest),
		assignments: make(map[string]cachedAssignment),
	}
}

func (c *GenerationCache) GenerateTest(ctx context.Context, content string) ([]domain.AssessmentQuestion, error) {
	key := contentKey(content)
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.tests[key]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.questions, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("test:"+key, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.tests[key]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.questions, nil
		}
		c.mu.RUnlock()

		questions, err := c.inner.GenerateTest(ctx, content)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.tests[key] = cachedTest{questions: questions, expiresAt: now.Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.AssessmentQuestion), nil
}

func (c *GenerationCache) GenerateAssignment(ctx context.Context, content string) (domain.GeneratedAssignment, error) {
	key := contentKey(content)
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.assignments[key]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.assignment, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("assignment:"+key, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.assignments[key]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.assignment, nil
		}
		c.mu.RUnlock()

		assignment, err := c.inner.GenerateAssignment(ctx, content)
		if err != nil {
			return domain.GeneratedAssignment{}, err
		}

		c.mu.Lock()
		c.assignments[key] = cachedAssignment{assignment: assignment, expiresAt: now.Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return assignment, nil
	})
	if err != nil {
		return domain.GeneratedAssignment{}, err
	}
	return result.(domain.GeneratedAssignment), nil
}

func contentKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func (c *GenerationCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
