package prefs

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/appengine-ltd/walkabout/internal/logging"
	"github.com/appengine-ltd/walkabout/internal/signal"
)

// Setting keys accepted by Store.Value, Store.Adjust and Store.SetValue.
const (
	KeyVolume      = "volume"
	KeySensitivity = "sensitivity"
)

const (
	MinVolume      float32 = 0
	MaxVolume      float32 = 1
	MinSensitivity float32 = 0.05
	MaxSensitivity float32 = 2
)

// Store holds the live preferences and notifies subscribers on change.
type Store struct {
	mu   sync.Mutex
	path string
	cur  Prefs
	log  *slog.Logger

	// OnChange fires with the new preferences after every effective change.
	OnChange signal.Signal[Prefs]
}

// NewStore wraps already-loaded preferences. path may be empty, in which
// case Save is a no-op.
func NewStore(path string, p Prefs, logger *slog.Logger) *Store {
	return &Store{path: path, cur: Clamp(p), log: logging.OrDiscard(logger)}
}

// Open loads the preferences at path into a new Store. A corrupt file is
// logged and replaced by defaults in memory.
func Open(ctx context.Context, path string, logger *slog.Logger) *Store {
	log := logging.OrDiscard(logger)
	p, err := Load(ctx, path)
	if err != nil {
		log.Warn("Preferences file corrupted. Resetting to defaults.", "path", path, "error", err)
	}
	return NewStore(path, p, log)
}

// Clamp bounds every field to its valid range.
func Clamp(p Prefs) Prefs {
	if p.Version <= 0 {
		p.Version = FormatVersion
	}
	p.Volume = clamp(p.Volume, MinVolume, MaxVolume)
	p.Sensitivity = clamp(p.Sensitivity, MinSensitivity, MaxSensitivity)
	return p
}

// Get returns the current preferences.
func (s *Store) Get() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Set replaces the preferences, clamped, and notifies subscribers.
func (s *Store) Set(p Prefs) {
	p = Clamp(p)
	s.mu.Lock()
	changed := p != s.cur
	s.cur = p
	s.mu.Unlock()

	if changed {
		s.OnChange.Emit(p)
	}
}

// Value returns the named setting.
func (s *Store) Value(key string) (float32, error) {
	p := s.Get()
	switch normaliseKey(key) {
	case KeyVolume:
		return p.Volume, nil
	case KeySensitivity:
		return p.Sensitivity, nil
	}
	return 0, fmt.Errorf("unknown setting %q", key)
}

// SetValue sets the named setting.
func (s *Store) SetValue(key string, v float32) error {
	p := s.Get()
	switch normaliseKey(key) {
	case KeyVolume:
		p.Volume = v
	case KeySensitivity:
		p.Sensitivity = v
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	s.Set(p)
	return nil
}

// Adjust adds delta to the named setting.
func (s *Store) Adjust(key string, delta float32) error {
	v, err := s.Value(key)
	if err != nil {
		return err
	}
	return s.SetValue(key, v+delta)
}

// Reset restores the defaults.
func (s *Store) Reset() {
	s.Set(Default())
}

// Save persists the current preferences.
func (s *Store) Save(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	p := s.Get()
	if err := Save(ctx, s.path, p); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	s.log.Info("Saved preferences", "path", s.path, "volume", p.Volume, "sensitivity", p.Sensitivity)
	return nil
}

func normaliseKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func clamp(v, lo, hi float32) float32 {
	if math.IsNaN(float64(v)) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
