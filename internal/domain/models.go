package domain

import (
	"fmt"
	"time"
)

// Option is a selectable answer tagged with the category it scores for.
type Option struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// Question is a prompt with its options in authoring order.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// Offers reports whether one of the question's options scores for c.
func (q Question) Offers(c Category) bool {
	for _, opt := range q.Options {
		if opt.Category == c {
			return true
		}
	}
	return false
}

// QuizState is a plain snapshot of one quiz session.
type QuizState struct {
	Index  int        `json:"index"`
	Scores ScoreBoard `json:"scores"`
	Result *Category  `json:"result,omitempty"`
}

// Finished reports whether a result has been computed.
func (s QuizState) Finished() bool {
	return s.Result != nil
}

// QuestionView is what a shell renders while the quiz is in progress.
type QuestionView struct {
	Number  int      `json:"number"` // 1-based
	Total   int      `json:"total"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// ResultView is what a shell renders once the quiz is finished.
type ResultView struct {
	Category  Category   `json:"category"`
	Name      string     `json:"name"`
	ImagePath string     `json:"imagePath"`
	ShareText string     `json:"shareText"`
	Scores    ScoreBoard `json:"scores"`
}

// NewResultView builds the result screen for c. shareURL is the canonical application URL.
func NewResultView(c Category, scores ScoreBoard, shareURL string) ResultView {
	return ResultView{
		Category:  c,
		Name:      c.Name(),
		ImagePath: c.ImagePath(),
		ShareText: ShareText(c.Name(), shareURL),
		Scores:    scores,
	}
}

// ShareText is the single shareable string for a finished quiz.
func ShareText(name, url string) string {
	if url == "" {
		return fmt.Sprintf("I am a %s!", name)
	}
	return fmt.Sprintf("I am a %s! %s", name, url)
}

// ResultRecord is one completed quiz in the result log.
type ResultRecord struct {
	SessionID   string     `json:"sessionId"`
	Category    Category   `json:"category"`
	Scores      ScoreBoard `json:"scores"`
	CompletedAt time.Time  `json:"completedAt"`
}

// ResultTally counts completed quizzes per winning category.
type ResultTally struct {
	Counts    ScoreBoard `json:"counts"`
	Total     int        `json:"total"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
