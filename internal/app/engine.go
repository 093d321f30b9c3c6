package app

import (
	"fmt"

	"animal-quiz-service/internal/domain"
)

// Shuffler is the random source used to order options. *rand.Rand from math/rand/v2
// satisfies it; tests pass a seeded generator.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Engine sequences a fixed question list and tallies answers per category.
// It is not safe for concurrent use; each quiz session owns its engine.
type Engine struct {
	questions []domain.Question
	index     int
	scores    domain.ScoreBoard
	result    *domain.Category
}

// NewEngine starts a quiz over questions at the first question. questions must not be
// empty.
func NewEngine(questions []domain.Question) *Engine {
	return &Engine{questions: questions}
}

// RestoreEngine rebuilds an engine from a snapshot, rejecting snapshots that break the
// quiz invariants.
func RestoreEngine(questions []domain.Question, state domain.QuizState) (*Engine, error) {
	if err := validateState(len(questions), state); err != nil {
		return nil, err
	}
	e := &Engine{questions: questions, index: state.Index, scores: state.Scores}
	if state.Result != nil {
		r := *state.Result
		e.result = &r
	}
	return e, nil
}

func validateState(total int, state domain.QuizState) error {
	for _, v := range state.Scores {
		if v < 0 {
			return fmt.Errorf("%w: negative score", domain.ErrCorruptState)
		}
	}
	if state.Index < 0 || state.Index >= total {
		return fmt.Errorf("%w: index %d out of range", domain.ErrCorruptState, state.Index)
	}
	answered := state.Index
	if state.Result != nil {
		if !state.Result.Valid() || state.Index != total-1 {
			return fmt.Errorf("%w: result set before the last question", domain.ErrCorruptState)
		}
		answered = total
	}
	if state.Scores.Total() != answered {
		return fmt.Errorf("%w: %d answers tallied, expected %d", domain.ErrCorruptState, state.Scores.Total(), answered)
	}
	return nil
}

// Len is the number of questions.
func (e *Engine) Len() int { return len(e.questions) }

// Index is the zero-based position of the current question.
func (e *Engine) Index() int { return e.index }

// Scores returns a copy of the running tally.
func (e *Engine) Scores() domain.ScoreBoard { return e.scores }

// Finished reports whether the result has been computed.
func (e *Engine) Finished() bool { return e.result != nil }

// Result returns the winning category once the quiz is finished.
func (e *Engine) Result() (domain.Category, bool) {
	if e.result == nil {
		return 0, false
	}
	return *e.result, true
}

// State snapshots the engine.
func (e *Engine) State() domain.QuizState {
	state := domain.QuizState{Index: e.index, Scores: e.scores}
	if e.result != nil {
		r := *e.result
		state.Result = &r
	}
	return state
}

// PresentQuestion returns the current question with its options in a fresh random order.
// The engine's own question data is never reordered.
func (e *Engine) PresentQuestion(rnd Shuffler) (domain.QuestionView, error) {
	if e.result != nil {
		return domain.QuestionView{}, fmt.Errorf("%w: quiz already finished", domain.ErrInvalidTransition)
	}
	q := e.questions[e.index]
	opts := make([]domain.Option, len(q.Options))
	copy(opts, q.Options)
	rnd.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })

	return domain.QuestionView{
		Number:  e.index + 1,
		Total:   len(e.questions),
		Prompt:  q.Prompt,
		Options: opts,
	}, nil
}

// SubmitAnswer records an answer for the current question. Answering the last question
// computes the result; otherwise the engine advances. A rejected answer leaves the state
// untouched.
func (e *Engine) SubmitAnswer(c domain.Category) error {
	if e.result != nil {
		return fmt.Errorf("%w: quiz already finished", domain.ErrInvalidTransition)
	}
	if !c.Valid() || !e.questions[e.index].Offers(c) {
		return fmt.Errorf("%w: %s not offered by question %d", domain.ErrInvalidCategory, c, e.index+1)
	}

	e.scores.Add(c)
	if e.index+1 < len(e.questions) {
		e.index++
		return nil
	}
	winner := e.scores.Leader()
	e.result = &winner
	return nil
}

// Reset restarts the quiz from the first question with an empty score board.
func (e *Engine) Reset() {
	e.index = 0
	e.scores = domain.ScoreBoard{}
	e.result = nil
}
