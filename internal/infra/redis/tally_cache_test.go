package redis

import (
	"context"
	"testing"
	"time"

	"animal-quiz-service/internal/domain"
	"animal-quiz-service/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTallyCacheCachesInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	results := memory.NewResultStore()
	require.NoError(t, results.Record(ctx, domain.ResultRecord{SessionID: "a", Category: domain.Fox}))
	require.NoError(t, results.Record(ctx, domain.ResultRecord{SessionID: "b", Category: domain.Fox}))
	require.NoError(t, results.Record(ctx, domain.ResultRecord{SessionID: "c", Category: domain.Horse}))

	source := &countingSource{TallySource: results}
	cache := NewTallyCache(newClient(mr), source, time.Minute)

	tally, err := cache.GetTally(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, tally.Total)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, "2", mr.HGet(tallyKey, "fox"))

	// Second call should hit cache, source not consulted.
	cached, err := cache.GetTally(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, tally.Counts, cached.Counts)
	assert.Equal(t, 3, cached.Total)

	mr.FastForward(2 * time.Minute)
	_, err = cache.GetTally(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

type countingSource struct {
	TallySource
	calls int
}

func (s *countingSource) LoadTally(ctx context.Context) (domain.ResultTally, error) {
	s.calls++
	return s.TallySource.LoadTally(ctx)
}
