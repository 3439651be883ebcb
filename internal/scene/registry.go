package scene

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrUnknownScene is wrapped by UnknownSceneError.
var ErrUnknownScene = errors.New("unknown scene")

// UnknownSceneError names the missing scene and the closest registered one.
type UnknownSceneError struct {
	Name       string
	Suggestion string
}

func (e *UnknownSceneError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown scene %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown scene %q", e.Name)
}

func (e *UnknownSceneError) Unwrap() error {
	return ErrUnknownScene
}

// Progress receives load progress from a Loader, in [0, 1].
type Progress func(fraction float64)

// Loader prepares a scene off the main goroutine. The returned Activate runs
// on the main goroutine once the host lets the scene become active.
type Loader func(ctx context.Context, progress Progress) (Activate, error)

// Activate swaps the prepared scene in.
type Activate func()

// Registry maps scene names to loaders.
type Registry struct {
	loaders map[string]Loader
}

func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]Loader)}
}

// Register adds or replaces a scene.
func (r *Registry) Register(name string, loader Loader) {
	name = normaliseName(name)
	if name == "" || loader == nil {
		return
	}
	r.loaders[name] = loader
}

// Names returns the registered scene names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.loaders))
	for name := range r.loaders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the loader for name or an *UnknownSceneError.
func (r *Registry) Lookup(name string) (Loader, error) {
	key := normaliseName(name)
	if loader, ok := r.loaders[key]; ok {
		return loader, nil
	}
	return nil, &UnknownSceneError{Name: name, Suggestion: closestName(key, r.Names())}
}

func normaliseName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// closestName returns the candidate within edit distance of name, or "".
func closestName(name string, candidates []string) string {
	if name == "" {
		return ""
	}
	best := ""
	bestDist := suggestLimit(len(name)) + 1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(name, cand)
		if dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	return best
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
