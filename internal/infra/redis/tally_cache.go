package redis

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"animal-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// TallySource computes the result tally from the result log (e.g., Postgres).
type TallySource interface {
	LoadTally(ctx context.Context) (domain.ResultTally, error)
}

// TallyCache caches the result tally in Redis and falls back to the source on cache miss.
// The tally is stored as: HSET quiz:results:tally {category} {count} ... total {n} updated {unix}
type TallyCache struct {
	client *redis.Client
	source TallySource
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

const (
	tallyKey      = "quiz:results:tally"
	totalField    = "total"
	updatedField  = "updated"
	tallyFlightID = "tally"
)

func NewTallyCache(client *redis.Client, source TallySource, ttl time.Duration) *TallyCache {
	return &TallyCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

func (c *TallyCache) GetTally(ctx context.Context) (domain.ResultTally, error) {
	if tally, ok := c.cached(ctx); ok {
		return tally, nil
	}

	result, err, _ := c.sf.Do(tallyFlightID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if tally, ok := c.cached(ctx); ok {
			return tally, nil
		}

		tally, err := c.source.LoadTally(ctx)
		if err != nil {
			return domain.ResultTally{}, err
		}

		ttl := c.ttlWithJitter()
		if ttl <= 0 {
			return tally, nil
		}
		fields := make(map[string]interface{}, 7)
		for _, cat := range domain.Categories() {
			fields[cat.String()] = tally.Counts.Get(cat)
		}
		fields[totalField] = tally.Total
		fields[updatedField] = tally.UpdatedAt.Unix()

		pipe := c.client.TxPipeline()
		pipe.Del(ctx, tallyKey)
		pipe.HSet(ctx, tallyKey, fields)
		pipe.Expire(ctx, tallyKey, ttl)
		_, _ = pipe.Exec(ctx)

		return tally, nil
	})
	if err != nil {
		return domain.ResultTally{}, err
	}
	return result.(domain.ResultTally), nil
}

func (c *TallyCache) cached(ctx context.Context) (domain.ResultTally, bool) {
	fields, err := c.client.HGetAll(ctx, tallyKey).Result()
	if err != nil || len(fields) == 0 {
		return domain.ResultTally{}, false
	}
	return buildTallyFromCache(fields)
}

func buildTallyFromCache(fields map[string]string) (domain.ResultTally, bool) {
	var tally domain.ResultTally
	total, err := strconv.Atoi(fields[totalField])
	if err != nil {
		return tally, false
	}
	tally.Total = total
	for _, cat := range domain.Categories() {
		n, err := strconv.Atoi(fields[cat.String()])
		if err != nil || n < 0 {
			return domain.ResultTally{}, false
		}
		tally.Counts[cat] = n
	}
	if unix, err := strconv.ParseInt(fields[updatedField], 10, 64); err == nil {
		tally.UpdatedAt = time.Unix(unix, 0).UTC()
	}
	return tally, true
}

func (c *TallyCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int64N(jitterMax+1))
}
