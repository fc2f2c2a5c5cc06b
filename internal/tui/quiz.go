package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qepting91/dex-ai/internal/view"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type feedback int

const (
	feedbackNone feedback = iota
	feedbackCorrect
	feedbackWrong
)

// advanceMsg fires when the reveal delay ends. seq guards against a tick
// from an earlier reveal.
type advanceMsg struct{ seq int }

// QuizModel is the Bubble Tea model for "Who's that Pokémon?".
type QuizModel struct {
	quiz     *view.Quiz
	input    textinput.Model
	delay    time.Duration
	feedback feedback
	seq      int
	score    int
	skipped  int
}

func NewQuizModel(q *view.Quiz, delay time.Duration) QuizModel {
	ti := textinput.New()
	ti.Placeholder = "Type the Pokémon's name"
	ti.CharLimit = 40
	ti.Focus()
	return QuizModel{quiz: q, input: ti, delay: delay}
}

func (m QuizModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m QuizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		if msg.seq == m.seq && m.quiz.Advance() {
			m.feedback = feedbackNone
			m.input.SetValue("")
			m.input.Focus()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyTab:
			if m.quiz.Skip() {
				m.skipped++
				m.feedback = feedbackNone
				m.input.SetValue("")
			}
			return m, nil
		}
	}

	if m.quiz.State() == view.ShowingCorrect {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m QuizModel) submit() (tea.Model, tea.Cmd) {
	switch m.quiz.Submit(m.input.Value()) {
	case view.Correct:
		m.feedback = feedbackCorrect
		m.score++
		m.seq++
		m.input.Blur()
		seq := m.seq
		return m, tea.Tick(m.delay, func(time.Time) tea.Msg { return advanceMsg{seq: seq} })
	case view.Incorrect:
		m.feedback = feedbackWrong
	}
	return m, nil
}

func (m QuizModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Who's that Pokémon?"))
	b.WriteString("\n\n")

	cur, ok := m.quiz.Current()
	if !ok {
		b.WriteString("No Pokémon to guess.\n")
		return b.String()
	}

	if m.quiz.State() == view.ShowingCorrect {
		fmt.Fprintf(&b, "It's %s!\n", capitalize(cur.Name))
		if cur.Sprite != "" {
			b.WriteString(hintStyle.Render(cur.Sprite) + "\n")
		}
	} else {
		fmt.Fprintf(&b, "%s  (%d letters)\n", silhouette(cur.Name), len([]rune(cur.Name)))
		if len(cur.Types) > 0 {
			b.WriteString(hintStyle.Render("Type: "+strings.Join(cur.Types, " / ")) + "\n")
		}
	}
	b.WriteString("\n" + m.input.View() + "\n\n")

	switch m.feedback {
	case feedbackCorrect:
		b.WriteString(successStyle.Render("Congratulations! You got it!") + "\n")
	case feedbackWrong:
		b.WriteString(failureStyle.Render("Try again!") + "\n")
	}

	fmt.Fprintf(&b, "\n%s\n", hintStyle.Render(fmt.Sprintf(
		"%d/%d · score %d · skipped %d · enter: answer · tab: skip · esc: quit",
		m.quiz.Cursor()+1, m.quiz.Len(), m.score, m.skipped)))
	return b.String()
}

func silhouette(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 {
			b.WriteByte(' ')
		}
		if r == '-' {
			b.WriteRune('-')
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
