package http

import (
	"math/rand/v2"
	"testing"
	"time"

	"animal-quiz-service/internal/app"
	"animal-quiz-service/internal/infra/memory"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*app.QuizService, *memory.SessionStore) {
	t.Helper()
	store := memory.NewSessionStore()
	results := memory.NewResultStore()
	service := app.NewQuizService(store, results, memory.NewTallyCache(results, time.Millisecond), app.Options{
		ShareURL: "https://quiz.test",
		Rand:     rand.New(rand.NewPCG(1, 2)),
		Logger:   zap.NewNop(),
	})
	return service, store
}
