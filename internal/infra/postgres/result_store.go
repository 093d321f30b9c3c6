package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"animal-quiz-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ResultStore appends finished quizzes to the quiz_results table and aggregates them.
type ResultStore struct {
	pool  *pgxpool.Pool
	clock func() time.Time
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool, clock: time.Now}
}

func (s *ResultStore) Record(ctx context.Context, record domain.ResultRecord) error {
	scores, err := json.Marshal(record.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	completedAt := record.CompletedAt
	if completedAt.IsZero() {
		completedAt = s.clock()
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO quiz_results (id, session_id, category, scores, completed_at) VALUES ($1, $2, $3, $4::jsonb, $5)`,
		uuid.NewString(), record.SessionID, record.Category.String(), string(scores), completedAt)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// LoadTally counts finished quizzes per winning category.
func (s *ResultStore) LoadTally(ctx context.Context) (domain.ResultTally, error) {
	rows, err := s.pool.Query(ctx, `SELECT category, count(*) FROM quiz_results GROUP BY category`)
	if err != nil {
		return domain.ResultTally{}, fmt.Errorf("load tally: %w", err)
	}
	defer rows.Close()

	tally := domain.ResultTally{UpdatedAt: s.clock()}
	for rows.Next() {
		var (
			token string
			count int64
		)
		if err := rows.Scan(&token, &count); err != nil {
			return domain.ResultTally{}, fmt.Errorf("scan tally: %w", err)
		}
		c, err := domain.ParseCategory(token)
		if err != nil {
			return domain.ResultTally{}, fmt.Errorf("scan tally: %w", err)
		}
		tally.Counts[c] = int(count)
		tally.Total += int(count)
	}
	if err := rows.Err(); err != nil {
		return domain.ResultTally{}, fmt.Errorf("load tally: %w", err)
	}
	return tally, nil
}
