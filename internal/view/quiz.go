package view

import (
	"math/rand/v2"
	"strings"
)

type QuizState int

const (
	AwaitingAnswer QuizState = iota
	ShowingCorrect
)

func (s QuizState) String() string {
	switch s {
	case AwaitingAnswer:
		return "awaiting-answer"
	case ShowingCorrect:
		return "showing-correct"
	default:
		return "unknown"
	}
}

type Outcome int

const (
	Correct Outcome = iota
	Incorrect
	// Ignored: answers are not accepted while the reveal is showing.
	Ignored
)

type QuizItem struct {
	Name   string
	Sprite string
	Types  []string
}

// Quiz walks a shuffled, fixed sequence of items cyclically.
type Quiz struct {
	items  []QuizItem
	cursor int
	state  QuizState
}

// NewQuiz shuffles a copy of items with rng. A nil rng keeps input order.
func NewQuiz(items []QuizItem, rng *rand.Rand) *Quiz {
	seq := make([]QuizItem, len(items))
	copy(seq, items)
	if rng != nil {
		rng.Shuffle(len(seq), func(i, j int) { seq[i], seq[j] = seq[j], seq[i] })
	}
	return &Quiz{items: seq}
}

func (q *Quiz) Len() int          { return len(q.items) }
func (q *Quiz) Cursor() int       { return q.cursor }
func (q *Quiz) State() QuizState  { return q.state }
func (q *Quiz) Items() []QuizItem { return q.items }

func (q *Quiz) Current() (QuizItem, bool) {
	if len(q.items) == 0 {
		return QuizItem{}, false
	}
	return q.items[q.cursor], true
}

// Submit compares the trimmed answer with the current name, ignoring case.
func (q *Quiz) Submit(answer string) Outcome {
	cur, ok := q.Current()
	if !ok || q.state != AwaitingAnswer {
		return Ignored
	}
	if strings.EqualFold(strings.TrimSpace(answer), cur.Name) {
		q.state = ShowingCorrect
		return Correct
	}
	return Incorrect
}

// Advance is the timeout edge out of ShowingCorrect. It returns false in
// any other state.
func (q *Quiz) Advance() bool {
	if q.state != ShowingCorrect {
		return false
	}
	q.next()
	q.state = AwaitingAnswer
	return true
}

// Skip moves to the next item without an answer.
func (q *Quiz) Skip() bool {
	if q.state != AwaitingAnswer || len(q.items) == 0 {
		return false
	}
	q.next()
	return true
}

func (q *Quiz) next() {
	q.cursor = (q.cursor + 1) % len(q.items)
}
