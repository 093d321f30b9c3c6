// Package tui is a terminal shell for the quiz: one local session driven by the keyboard.
package tui

import (
	"fmt"
	"strings"

	"animal-quiz-service/internal/app"
	"animal-quiz-service/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	optionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	resultStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder())
)

// Model is the bubbletea model for a single quiz session.
type Model struct {
	engine   *app.Engine
	rnd      app.Shuffler
	shareURL string

	question domain.QuestionView
	cursor   int
	err      error
}

// NewModel starts a quiz over questions. rnd orders the options of each question.
func NewModel(questions []domain.Question, rnd app.Shuffler, shareURL string) Model {
	m := Model{
		engine:   app.NewEngine(questions),
		rnd:      rnd,
		shareURL: shareURL,
	}
	m.present()
	return m
}

func (m *Model) present() {
	m.cursor = 0
	view, err := m.engine.PresentQuestion(m.rnd)
	if err != nil {
		m.err = err
		return
	}
	m.question = view
}

// Init returns nil.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation, answering and retakes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	}

	if m.engine.Finished() {
		if kmsg.String() == "r" {
			m.engine.Reset()
			m.err = nil
			m.present()
		}
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.question.Options)-1 {
			m.cursor++
		}
	case "enter", " ":
		choice := m.question.Options[m.cursor]
		if err := m.engine.SubmitAnswer(choice.Category); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		if !m.engine.Finished() {
			m.present()
		}
	}
	return m, nil
}

// View renders the current question or the result screen.
func (m Model) View() string {
	var b strings.Builder
	if result, ok := m.engine.Result(); ok {
		view := domain.NewResultView(result, m.engine.Scores(), m.shareURL)
		b.WriteString(resultStyle.Render(fmt.Sprintf("You are most like a %s!", view.Name)))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("image: "+view.ImagePath) + "\n")
		b.WriteString("share: " + view.ShareText + "\n\n")
		b.WriteString(dimStyle.Render("r retake • q quit"))
		return b.String()
	}

	b.WriteString(promptStyle.Render(m.question.Prompt))
	b.WriteString("\n\n")
	for i, opt := range m.question.Options {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("▸ "+opt.Text) + "\n")
		} else {
			b.WriteString(optionStyle.Render("  "+opt.Text) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Question %d of %d", m.question.Number, m.question.Total)))
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()))
	}
	return b.String()
}

// Result returns the finished category, if any.
func (m Model) Result() (domain.Category, bool) {
	return m.engine.Result()
}
