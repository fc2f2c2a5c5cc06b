package view

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/qepting91/dex-ai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refs(pairs ...any) []domain.Reference {
	var out []domain.Reference
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, domain.Reference{
			Name: pairs[i].(string),
			URL:  fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", pairs[i+1].(int)),
		})
	}
	return out
}

func names(rs []domain.Reference) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestVisibleReferences_Cursor(t *testing.T) {
	all := refs("bulbasaur", 1, "ivysaur", 2, "venusaur", 3)
	assert.Equal(t, []string{"bulbasaur", "ivysaur"}, names(VisibleReferences(all, "", 2)))
	assert.Len(t, VisibleReferences(all, "  ", 50), 3)
	assert.Empty(t, VisibleReferences(all, "", 0))
}

func TestVisibleReferences_Term(t *testing.T) {
	all := refs("squirtle", 7, "porygon2", 233, "wartortle", 8, "poliwag", 60, "magikarp", 129, "dewgong", 87)

	assert.Equal(t, []string{"squirtle", "wartortle"}, names(VisibleReferences(all, "RTLE", 1)),
		"search ignores the cursor")
	assert.Equal(t, []string{"squirtle"}, names(VisibleReferences(all, "7", 50)),
		"id match is exact, not a substring of 87")
	assert.Equal(t, []string{"porygon2"}, names(VisibleReferences(all, "2", 50)))
}

func TestCursorHelpers(t *testing.T) {
	assert.Equal(t, 100, NextCursor(50, 50, 300))
	assert.Equal(t, 120, NextCursor(100, 50, 120))
	assert.True(t, HasMore("", 50, 120))
	assert.False(t, HasMore("pika", 50, 120))
	assert.False(t, HasMore("", 120, 120))
	assert.Equal(t, []string{"https://pokeapi.co/api/v2/pokemon/1/"}, URLs(refs("bulbasaur", 1)))
}

func rec(id int, name string, attack int) domain.Record {
	return domain.Record{ID: id, Name: name, Stats: map[string]int{domain.StatAttack: attack}}
}

func TestTopN_StableTies(t *testing.T) {
	records := []domain.Record{rec(1, "a", 10), rec(2, "b", 30), rec(3, "c", 20), rec(4, "d", 30)}

	want := []Entry{
		{Rank: 1, ID: 2, Name: "b", Value: 30},
		{Rank: 2, ID: 4, Name: "d", Value: 30},
		{Rank: 3, ID: 3, Name: "c", Value: 20},
	}
	if diff := cmp.Diff(want, TopN(records, domain.StatAttack, 3)); diff != "" {
		t.Errorf("TopN mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, TopN(records, domain.StatAttack, 2), 2)
	assert.Len(t, TopN(records, domain.StatAttack, 10), 4)
	assert.Equal(t, 10, records[0].Stat(domain.StatAttack), "input must not be reordered")
	assert.Equal(t, "a", records[0].Name)
}

func TestLeaderboard(t *testing.T) {
	records := []domain.Record{
		{ID: 1, Name: "a", Stats: map[string]int{"hp": 5, "speed": 90}},
		{ID: 2, Name: "b", Stats: map[string]int{"hp": 80, "speed": 10}},
	}
	boards := Leaderboard(records, []string{"hp", "speed"}, 1)
	require.Len(t, boards, 2)
	assert.Equal(t, "HP", boards[0].Label)
	assert.Equal(t, "b", boards[0].Entries[0].Name)
	assert.Equal(t, "Speed", boards[1].Label)
	assert.Equal(t, "a", boards[1].Entries[0].Name)
}

func quizItems(names ...string) []QuizItem {
	out := make([]QuizItem, len(names))
	for i, n := range names {
		out[i] = QuizItem{Name: n}
	}
	return out
}

func TestQuiz_CorrectAnswerThenAdvance(t *testing.T) {
	q := NewQuiz(quizItems("Charmander", "Bulbasaur", "Squirtle"), nil)
	require.Equal(t, AwaitingAnswer, q.State())

	assert.Equal(t, Correct, q.Submit("  charmander "))
	assert.Equal(t, ShowingCorrect, q.State())
	assert.Equal(t, Ignored, q.Submit("bulbasaur"), "input is locked during the reveal")
	assert.False(t, q.Skip())

	assert.True(t, q.Advance())
	assert.Equal(t, AwaitingAnswer, q.State())
	assert.Equal(t, 1, q.Cursor())
}

func TestQuiz_IncorrectStays(t *testing.T) {
	q := NewQuiz(quizItems("Charmander", "Bulbasaur"), nil)
	assert.Equal(t, Incorrect, q.Submit("charmeleon"))
	assert.Equal(t, Incorrect, q.Submit("char"))
	assert.Equal(t, AwaitingAnswer, q.State())
	assert.Equal(t, 0, q.Cursor())
	assert.False(t, q.Advance())
}

func TestQuiz_Cyclic(t *testing.T) {
	q := NewQuiz(quizItems("a", "b", "c"), nil)
	for i := 0; i < 3; i++ {
		cur, _ := q.Current()
		require.Equal(t, Correct, q.Submit(cur.Name))
		require.True(t, q.Advance())
	}
	assert.Equal(t, 0, q.Cursor())

	assert.True(t, q.Skip())
	assert.Equal(t, 1, q.Cursor())
}

func TestQuiz_ShuffleIsFixedAndComplete(t *testing.T) {
	items := quizItems("a", "b", "c", "d", "e", "f")
	q := NewQuiz(items, rand.New(rand.NewPCG(1, 2)))
	again := NewQuiz(items, rand.New(rand.NewPCG(1, 2)))

	assert.Equal(t, q.Items(), again.Items())
	assert.ElementsMatch(t, items, q.Items())
	assert.Equal(t, "a", items[0].Name, "input slice is not shuffled in place")
}

func TestQuiz_Empty(t *testing.T) {
	q := NewQuiz(nil, nil)
	_, ok := q.Current()
	assert.False(t, ok)
	assert.Equal(t, Ignored, q.Submit("x"))
	assert.False(t, q.Skip())
	assert.Equal(t, "awaiting-answer", q.State().String())
}
