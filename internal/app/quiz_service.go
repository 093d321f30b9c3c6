package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"animal-quiz-service/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionRepository abstracts where quiz session snapshots live (in-memory, Redis, etc).
type SessionRepository interface {
	Save(ctx context.Context, sessionID string, state domain.QuizState) error
	// Load returns domain.ErrSessionNotFound for unknown or expired sessions.
	Load(ctx context.Context, sessionID string) (domain.QuizState, error)
	Delete(ctx context.Context, sessionID string) error
}

// ResultRecorder appends finished quizzes to the result log.
type ResultRecorder interface {
	Record(ctx context.Context, record domain.ResultRecord) error
}

// TallyRepository serves the per-category count of finished quizzes.
type TallyRepository interface {
	GetTally(ctx context.Context) (domain.ResultTally, error)
}

// Progress is the view a shell renders after any call: a question or the result.
type Progress struct {
	SessionID string               `json:"sessionId"`
	Finished  bool                 `json:"finished"`
	Question  *domain.QuestionView `json:"question,omitempty"`
	Result    *domain.ResultView   `json:"result,omitempty"`
}

// Options tunes a QuizService.
type Options struct {
	ShareURL string
	Rand     Shuffler
	Now      func() time.Time
	NewID    func() string
	Logger   *zap.Logger
}

// QuizService contains the quiz use cases. Each session id owns one independent quiz.
type QuizService struct {
	sessions  SessionRepository
	results   ResultRecorder
	tally     TallyRepository
	questions []domain.Question
	shareURL  string
	now       func() time.Time
	newID     func() string
	logger    *zap.Logger

	rndMu sync.Mutex
	rnd   Shuffler
}

func NewQuizService(store SessionRepository, results ResultRecorder, tally TallyRepository, opts Options) *QuizService {
	s := &QuizService{
		sessions:  store,
		results:   results,
		tally:     tally,
		questions: domain.Questions(),
		shareURL:  opts.ShareURL,
		now:       opts.Now,
		newID:     opts.NewID,
		logger:    opts.Logger,
		rnd:       opts.Rand,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	return s
}

// Start opens a new session at the first question.
func (s *QuizService) Start(ctx context.Context) (Progress, error) {
	id := s.newID()
	engine := NewEngine(s.questions)
	if err := s.sessions.Save(ctx, id, engine.State()); err != nil {
		return Progress{}, err
	}
	s.logger.Debug("quiz session started", zap.String("session", id))
	return s.progress(id, engine)
}

// Current returns the session's current question or its result.
func (s *QuizService) Current(ctx context.Context, sessionID string) (Progress, error) {
	engine, err := s.load(ctx, sessionID)
	if err != nil {
		return Progress{}, err
	}
	return s.progress(sessionID, engine)
}

// Answer submits the chosen category for the current question.
func (s *QuizService) Answer(ctx context.Context, sessionID string, c domain.Category) (Progress, error) {
	engine, err := s.load(ctx, sessionID)
	if err != nil {
		return Progress{}, err
	}
	if err := engine.SubmitAnswer(c); err != nil {
		return Progress{}, err
	}
	if err := s.sessions.Save(ctx, sessionID, engine.State()); err != nil {
		return Progress{}, err
	}
	if result, ok := engine.Result(); ok {
		s.record(ctx, sessionID, result, engine.Scores())
	}
	return s.progress(sessionID, engine)
}

// Retake resets the session and returns the first question.
func (s *QuizService) Retake(ctx context.Context, sessionID string) (Progress, error) {
	engine, err := s.load(ctx, sessionID)
	if err != nil {
		return Progress{}, err
	}
	engine.Reset()
	if err := s.sessions.Save(ctx, sessionID, engine.State()); err != nil {
		return Progress{}, err
	}
	s.logger.Debug("quiz session reset", zap.String("session", sessionID))
	return s.progress(sessionID, engine)
}

// End drops the session.
func (s *QuizService) End(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// Stats returns how many finished quizzes ended in each category.
func (s *QuizService) Stats(ctx context.Context) (domain.ResultTally, error) {
	return s.tally.GetTally(ctx)
}

func (s *QuizService) load(ctx context.Context, sessionID string) (*Engine, error) {
	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return RestoreEngine(s.questions, state)
}

// record is best effort: a result log outage must not fail the answer that finished the quiz.
func (s *QuizService) record(ctx context.Context, sessionID string, result domain.Category, scores domain.ScoreBoard) {
	err := s.results.Record(ctx, domain.ResultRecord{
		SessionID:   sessionID,
		Category:    result,
		Scores:      scores,
		CompletedAt: s.now(),
	})
	if err != nil {
		s.logger.Warn("record quiz result failed", zap.String("session", sessionID), zap.Error(err))
		return
	}
	s.logger.Info("quiz finished", zap.String("session", sessionID), zap.Stringer("result", result))
}

func (s *QuizService) progress(sessionID string, engine *Engine) (Progress, error) {
	if result, ok := engine.Result(); ok {
		view := domain.NewResultView(result, engine.Scores(), s.shareURL)
		return Progress{SessionID: sessionID, Finished: true, Result: &view}, nil
	}

	s.rndMu.Lock()
	view, err := engine.PresentQuestion(s.rnd)
	s.rndMu.Unlock()
	if err != nil {
		return Progress{}, err
	}
	return Progress{SessionID: sessionID, Question: &view}, nil
}

// IsClientError reports whether err is caused by the caller rather than the service.
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidCategory) ||
		errors.Is(err, domain.ErrInvalidTransition) ||
		errors.Is(err, domain.ErrSessionNotFound)
}
