package console

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// CommandDef describes one console verb.
type CommandDef struct {
	Canonical string
	Aliases   []string
	MinArgs   int
	MaxArgs   int
	Usage     string
	Summary   string
}

type Registry struct {
	commands map[string]CommandDef
	aliases  map[string]string
	order    []string
}

type commandCandidate struct {
	Canonical string
	Alias     string
	Score     float64
	Source    string
}

func NewRegistry() *Registry {
	return &Registry{
		commands: map[string]CommandDef{},
		aliases:  map[string]string{},
	}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if _, ok := r.commands[c.Canonical]; !ok {
		r.order = append(r.order, c.Canonical)
	}
	r.commands[c.Canonical] = c
	r.aliases[c.Canonical] = c.Canonical
	for _, a := range c.Aliases {
		r.aliases[normaliseInput(a)] = c.Canonical
	}
}

// Lookup returns the definition for a canonical verb.
func (r *Registry) Lookup(canonical string) (CommandDef, bool) {
	c, ok := r.commands[canonical]
	return c, ok
}

// Commands lists definitions in registration order.
func (r *Registry) Commands() []CommandDef {
	out := make([]CommandDef, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.commands[name])
	}
	return out
}

// matchCommand ranks the verbs that verb could mean. Exact names and
// aliases win outright, then unique prefixes, then near misses.
func (r *Registry) matchCommand(verb string) (commandCandidate, []commandCandidate) {
	if verb == "" {
		return commandCandidate{}, nil
	}
	if canonical, ok := r.aliases[verb]; ok {
		source := "alias"
		if canonical == verb {
			source = "exact"
		}
		return commandCandidate{Canonical: canonical, Alias: verb, Score: 1, Source: source}, nil
	}

	best := map[string]commandCandidate{}
	keep := func(c commandCandidate) {
		if cur, ok := best[c.Canonical]; !ok || c.Score > cur.Score {
			best[c.Canonical] = c
		}
	}
	for alias, canonical := range r.aliases {
		if len(verb) >= 2 && strings.HasPrefix(alias, verb) {
			keep(commandCandidate{Canonical: canonical, Alias: alias, Score: 0.9, Source: "prefix"})
			continue
		}
		if len(verb) < 3 {
			continue
		}
		dist := levenshtein.ComputeDistance(verb, alias)
		if dist > levenshteinLimit(len(alias)) {
			continue
		}
		score := 0.72 - (0.08 * float64(dist))
		if alias == canonical {
			score += 0.03
		}
		keep(commandCandidate{Canonical: canonical, Alias: alias, Score: score, Source: "lev"})
	}

	cands := make([]commandCandidate, 0, len(best))
	for _, c := range best {
		cands = append(cands, c)
	}
	if len(cands) == 0 {
		return commandCandidate{}, nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score == cands[j].Score {
			return cands[i].Canonical < cands[j].Canonical
		}
		return cands[i].Score > cands[j].Score
	})
	return cands[0], cands[1:]
}

func levenshteinLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}

// DefaultRegistry holds the verbs the in-game console understands.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterCommand(CommandDef{Canonical: "help", Aliases: []string{"commands"}, MaxArgs: 1, Usage: "help [command]", Summary: "list commands"})
	r.RegisterCommand(CommandDef{Canonical: "pause", Aliases: []string{"menu"}, Usage: "pause", Summary: "pause the game"})
	r.RegisterCommand(CommandDef{Canonical: "resume", Aliases: []string{"unpause", "continue"}, Usage: "resume", Summary: "resume the game"})
	r.RegisterCommand(CommandDef{Canonical: "open", Aliases: []string{"show"}, MinArgs: 1, MaxArgs: 1, Usage: "open <menu>", Summary: "open a menu"})
	r.RegisterCommand(CommandDef{Canonical: "close", Usage: "close", Summary: "close the current menu"})
	r.RegisterCommand(CommandDef{Canonical: "back", Aliases: []string{"previous", "prev"}, Usage: "back", Summary: "go back in menu history"})
	r.RegisterCommand(CommandDef{Canonical: "forward", Aliases: []string{"next"}, Usage: "forward", Summary: "go forward in menu history"})
	r.RegisterCommand(CommandDef{Canonical: "set", MinArgs: 2, MaxArgs: 2, Usage: "set <volume|sensitivity> <value>", Summary: "change a setting"})
	r.RegisterCommand(CommandDef{Canonical: "settings", Aliases: []string{"prefs"}, Usage: "settings", Summary: "show settings"})
	r.RegisterCommand(CommandDef{Canonical: "goto", Aliases: []string{"load", "travel"}, MinArgs: 1, MaxArgs: 1, Usage: "goto <scene>", Summary: "load a scene"})
	r.RegisterCommand(CommandDef{Canonical: "scenes", Aliases: []string{"levels"}, Usage: "scenes", Summary: "list scenes"})
	r.RegisterCommand(CommandDef{Canonical: "quit", Aliases: []string{"exit"}, Usage: "quit", Summary: "quit to desktop"})
	return r
}
