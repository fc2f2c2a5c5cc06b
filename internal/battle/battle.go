package battle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/qepting91/dex-ai/internal/domain"
	"golang.org/x/sync/errgroup"
)

var ErrMissingName = errors.New("both creature names are required")

// Narrator produces the battle story for a prompt.
type Narrator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Combatant struct {
	Name  string
	Types []string
	Stats map[string]int
}

func fromRecord(r domain.Record) Combatant {
	return Combatant{Name: r.Name, Types: r.Types, Stats: r.Stats}
}

var promptTmpl = template.Must(template.New("battle").Funcs(template.FuncMap{
	"join": strings.Join,
	"inc":  func(i int) int { return i + 1 },
}).Parse(`You are a Pokémon battle narrator. Tell the fight between two Pokémon as a short story told in turns.

RULES:
- Introduce each Pokémon very briefly before the fight (1 to 2 sentences each).
- Narrate the fight in **turns** (Turn 1, Turn 2, ...).
- Each turn describes what each Pokémon does, short but exciting.
- Do not quote stat numbers or HP percentages.
- Use a narrative style, not a list of technical moves.
- In the last turn, say who won and why, briefly and clearly.
- When conditions are even, pick the winner most consistent with types, abilities and lore.

COHERENCE RULES (MANDATORY)
- Respect type advantages, resistances and immunities.
- Consider lore roles and overall power: divine or cosmic entities (e.g. Arceus) do not lose under standard conditions.
- If an unlikely result happens, explain the canonical or strategic reason clearly.
- Mega evolutions: ENABLED by default (when needed).

MATCHUP DATA
{{range $i, $c := .}}
Pokémon {{inc $i}}: {{$c.Name}}
Types: {{join $c.Types ", "}}
Stats: HP {{index $c.Stats "hp"}}, Attack {{index $c.Stats "attack"}}, Defense {{index $c.Stats "defense"}}, Special Attack {{index $c.Stats "special-attack"}}, Special Defense {{index $c.Stats "special-defense"}}, Speed {{index $c.Stats "speed"}}
{{end}}
EXPECTED OUTPUT (Markdown):
- Brief introduction of both Pokémon.
- **Turn 1**: both actions.
- **Turn 2**: both actions.
- ...
- Last turn: conclusion and winner.
`))

// BuildPrompt renders the narrator prompt for the two combatants.
func BuildPrompt(a, b Combatant) (string, error) {
	var sb strings.Builder
	if err := promptTmpl.Execute(&sb, []Combatant{a, b}); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Simulator fetches both combatants and asks the narrator for the story.
type Simulator struct {
	src      domain.Source
	narrator Narrator
}

func NewSimulator(src domain.Source, narrator Narrator) *Simulator {
	return &Simulator{src: src, narrator: narrator}
}

// Simulate returns the Markdown narration of a fight between first and second.
func (s *Simulator) Simulate(ctx context.Context, first, second string) (string, error) {
	first, second = strings.TrimSpace(first), strings.TrimSpace(second)
	if first == "" || second == "" {
		return "", ErrMissingName
	}

	var a, b domain.Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		a, err = s.fetch(gctx, first)
		return err
	})
	g.Go(func() (err error) {
		b, err = s.fetch(gctx, second)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	prompt, err := BuildPrompt(fromRecord(a), fromRecord(b))
	if err != nil {
		return "", fmt.Errorf("build prompt: %w", err)
	}
	text, err := s.narrator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("narrate: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "No response from the narrator.", nil
	}
	return text, nil
}

func (s *Simulator) fetch(ctx context.Context, name string) (domain.Record, error) {
	rec, err := s.src.FetchRecord(ctx, s.src.RecordURL(name))
	if err != nil {
		return domain.Record{}, fmt.Errorf("pokémon %s not found: %w", name, err)
	}
	return rec, nil
}
