package memory

import (
	"context"
	"testing"
	"time"

	"animal-quiz-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTallyCacheCaches(t *testing.T) {
	ctx := context.Background()
	results := NewResultStore()
	require.NoError(t, results.Record(ctx, domain.ResultRecord{SessionID: "a", Category: domain.Dog}))

	source := &countingSource{TallySource: results}
	cache := NewTallyCache(source, time.Minute)

	tally, err := cache.GetTally(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, tally.Total)
	assert.Equal(t, 1, tally.Counts.Get(domain.Dog))
	assert.Equal(t, 1, source.calls)

	require.NoError(t, results.Record(ctx, domain.ResultRecord{SessionID: "b", Category: domain.Cat}))
	tally, err = cache.GetTally(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, tally.Total, "expected cached tally")
	assert.Equal(t, 1, source.calls)
}

func TestTallyCacheExpires(t *testing.T) {
	ctx := context.Background()
	source := &countingSource{TallySource: NewResultStore()}
	cache := NewTallyCache(source, time.Minute)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.clock = func() time.Time { return now }

	_, err := cache.GetTally(ctx)
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
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
