package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"animal-quiz-service/internal/app"
	"animal-quiz-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRESTQuizFlow(t *testing.T) {
	service, _ := newTestService(t)
	router := NewRouter(service, zap.NewNop(), []string{"*"})

	var started app.Progress
	rec := do(t, router, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))
	require.NotEmpty(t, started.SessionID)
	require.NotNil(t, started.Question)

	base := "/api/sessions/" + started.SessionID
	var progress app.Progress
	for _, c := range []string{"fox", "dog", "hamster", "cat", "horse"} {
		rec = do(t, router, http.MethodPost, base+"/answers", `{"category":"`+c+`"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	}
	require.True(t, progress.Finished)
	assert.Equal(t, domain.Cat, progress.Result.Category)
	assert.Equal(t, domain.ScoreBoard{1, 1, 1, 1, 1}, progress.Result.Scores)

	rec = do(t, router, http.MethodPost, base+"/answers", `{"category":"cat"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tally domain.ResultTally
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tally))
	assert.Equal(t, 1, tally.Total)
	assert.Equal(t, 1, tally.Counts.Get(domain.Cat))

	rec = do(t, router, http.MethodPost, base+"/retake", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	assert.False(t, progress.Finished)
	assert.Equal(t, 1, progress.Question.Number)

	rec = do(t, router, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, router, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRESTAnswerErrors(t *testing.T) {
	service, _ := newTestService(t)
	router := NewRouter(service, zap.NewNop(), []string{"*"})

	var started app.Progress
	rec := do(t, router, http.MethodPost, "/api/sessions", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))
	base := "/api/sessions/" + started.SessionID

	cases := []struct {
		name string
		body string
		code int
	}{
		{"malformed", `{"category":`, http.StatusBadRequest},
		{"missing category", `{}`, http.StatusBadRequest},
		{"unknown category", `{"category":"unicorn"}`, http.StatusUnprocessableEntity},
		{"not offered", `{"category":"hamster"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, base+"/answers", tc.body)
			assert.Equal(t, tc.code, rec.Code, rec.Body.String())
		})
	}

	rec = do(t, router, http.MethodPost, "/api/sessions/missing/answers", `{"category":"cat"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	service, _ := newTestService(t)
	rec := do(t, NewRouter(service, zap.NewNop(), []string{"*"}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
