package menu

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrUnknownMenu is wrapped by every failed Lookup.
var ErrUnknownMenu = errors.New("unknown menu")

// UnknownMenuError names the missing panel and the closest registered one.
type UnknownMenuError struct {
	Name       string
	Suggestion string
}

func (e *UnknownMenuError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown menu %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown menu %q", e.Name)
}

func (e *UnknownMenuError) Unwrap() error {
	return ErrUnknownMenu
}

// Registry holds panels by name.
type Registry struct {
	panels map[string]*Panel
}

func NewRegistry(panels ...*Panel) *Registry {
	r := &Registry{panels: make(map[string]*Panel, len(panels))}
	for _, p := range panels {
		r.Register(p)
	}
	return r
}

// Register adds or replaces a panel.
func (r *Registry) Register(p *Panel) {
	r.panels[strings.ToLower(p.Name())] = p
}

// Names returns the registered panel names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.panels))
	for name := range r.panels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a panel by case-insensitive name.
func (r *Registry) Lookup(name string) (*Panel, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if p, ok := r.panels[key]; ok {
		return p, nil
	}
	return nil, &UnknownMenuError{Name: name, Suggestion: r.suggest(key)}
}

func (r *Registry) suggest(key string) string {
	if key == "" {
		return ""
	}
	best, bestDist := "", len(key)/2+1
	for _, name := range r.Names() {
		d := levenshtein.ComputeDistance(key, name)
		if d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}
