package memory

import (
	"context"
	"sync"
	"time"

	"animal-quiz-service/internal/domain"
)

// ResultStore keeps the result log in process memory. It is lost on restart.
type ResultStore struct {
	mu      sync.RWMutex
	records []domain.ResultRecord
	clock   func() time.Time
}

func NewResultStore() *ResultStore {
	return &ResultStore{clock: time.Now}
}

func (s *ResultStore) Record(_ context.Context, record domain.ResultRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// LoadTally aggregates the log into per-category counts.
func (s *ResultStore) LoadTally(_ context.Context) (domain.ResultTally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tally := domain.ResultTally{UpdatedAt: s.clock()}
	for _, rec := range s.records {
		tally.Counts.Add(rec.Category)
	}
	tally.Total = len(s.records)
	return tally, nil
}

// Records returns a copy of the log.
func (s *ResultStore) Records() []domain.ResultRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ResultRecord, len(s.records))
	copy(out, s.records)
	return out
}
