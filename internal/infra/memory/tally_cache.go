package memory

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"animal-quiz-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// TallySource computes the result tally from the result log.
type TallySource interface {
	LoadTally(ctx context.Context) (domain.ResultTally, error)
}

// TallyCache caches the result tally with TTL to avoid aggregating the log on every read.
type TallyCache struct {
	source TallySource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    domain.ResultTally
	expiresAt time.Time
	rndMu     sync.Mutex
}

const tallyFlightKey = "tally"

func NewTallyCache(source TallySource, ttl time.Duration) *TallyCache {
	return &TallyCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

func (c *TallyCache) GetTally(ctx context.Context) (domain.ResultTally, error) {
	if tally, ok := c.fresh(c.clock()); ok {
		return tally, nil
	}

	result, err, _ := c.sf.Do(tallyFlightKey, func() (interface{}, error) {
		now := c.clock()
		if tally, ok := c.fresh(now); ok {
			return tally, nil
		}

		tally, err := c.source.LoadTally(ctx)
		if err != nil {
			return domain.ResultTally{}, err
		}

		c.mu.Lock()
		c.cached = tally
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return tally, nil
	})
	if err != nil {
		return domain.ResultTally{}, err
	}
	return result.(domain.ResultTally), nil
}

func (c *TallyCache) fresh(now time.Time) (domain.ResultTally, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.expiresAt.After(now) {
		return c.cached, true
	}
	return domain.ResultTally{}, false
}

func (c *TallyCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int64N(jitterMax+1))
}
