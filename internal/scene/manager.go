// Package scene owns game-wide state: pause and resume, quitting, the scene
// registry and asynchronous scene loads.
package scene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.uber.org/atomic"

	"github.com/appengine-ltd/walkabout/internal/logging"
	"github.com/appengine-ltd/walkabout/internal/signal"
)

// ErrLoadInProgress is returned by GoToScene while another load is pending.
var ErrLoadInProgress = errors.New("scene load already in progress")

// Manager is created once by the composition root and handed to every
// component that needs to pause, resume, quit or change scene.
type Manager struct {
	log      *slog.Logger
	registry *Registry

	paused    bool
	timeScale float64
	quit      atomic.Bool

	mu      sync.Mutex
	pending *Load
	current string

	// OnPause fires before time stops.
	OnPause signal.Signal[struct{}]
	// OnResume fires after time restarts.
	OnResume signal.Signal[struct{}]
	// OnSceneLoaded fires on the main goroutine after a scene is activated.
	OnSceneLoaded signal.Signal[string]
}

func NewManager(logger *slog.Logger, registry *Registry) *Manager {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Manager{
		log:       logging.OrDiscard(logger),
		registry:  registry,
		timeScale: 1,
	}
}

// Registry returns the scene registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Pause notifies subscribers and stops game time. Pausing twice is a no-op.
func (m *Manager) Pause() {
	if m.paused {
		return
	}
	m.paused = true
	m.OnPause.Emit(struct{}{})
	m.timeScale = 0
	m.log.Debug("game paused")
}

// Resume restarts game time and notifies subscribers.
func (m *Manager) Resume() {
	if !m.paused {
		return
	}
	m.paused = false
	m.timeScale = 1
	m.OnResume.Emit(struct{}{})
	m.log.Debug("game resumed")
}

// TogglePause pauses a running game and resumes a paused one.
func (m *Manager) TogglePause() {
	if m.paused {
		m.Resume()
		return
	}
	m.Pause()
}

func (m *Manager) Paused() bool {
	return m.paused
}

// TimeScale is 0 while paused and 1 otherwise.
func (m *Manager) TimeScale() float64 {
	return m.timeScale
}

// PauseSignals exposes OnPause and OnResume to components that only know
// the manager through an interface.
func (m *Manager) PauseSignals() (onPause, onResume *signal.Signal[struct{}]) {
	return &m.OnPause, &m.OnResume
}

// Quit asks the host loop to exit.
func (m *Manager) Quit() {
	if m.quit.CompareAndSwap(false, true) {
		m.log.Info("exit requested")
	}
}

func (m *Manager) QuitRequested() bool {
	return m.quit.Load()
}

// CurrentScene is the name of the last activated scene.
func (m *Manager) CurrentScene() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Pending returns the in-flight load, or nil.
func (m *Manager) Pending() *Load {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// GoToScene starts loading name in the background. The scene becomes active
// on a later Update call once the loader has finished.
func (m *Manager) GoToScene(ctx context.Context, name string) (*Load, error) {
	loader, err := m.registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.pending != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("go to scene %q: %w", name, ErrLoadInProgress)
	}
	load := newLoad(normaliseName(name))
	m.pending = load
	m.mu.Unlock()

	go m.run(ctx, load, loader)
	return load, nil
}

func (m *Manager) run(ctx context.Context, load *Load, loader Loader) {
	defer close(load.done)

	activate, err := loader(ctx, func(raw float64) {
		p := load.report(raw)
		m.log.Debug("Loading progress", "scene", load.name, "percent", p*100)
	})
	if err != nil {
		load.err = fmt.Errorf("load scene %q: %w", load.name, err)
		return
	}
	load.report(1)
	load.activate = activate
}

// Update runs on the main goroutine once per frame. It activates a finished
// load and reports failed ones. It returns true when a scene was activated.
func (m *Manager) Update() bool {
	m.mu.Lock()
	load := m.pending
	m.mu.Unlock()
	if load == nil {
		return false
	}

	select {
	case <-load.done:
	default:
		return false
	}

	m.mu.Lock()
	m.pending = nil
	m.mu.Unlock()

	if load.err != nil {
		m.log.Error("scene load failed", "scene", load.name, "error", load.err)
		return false
	}

	if load.activate != nil {
		load.activate()
	}
	load.applied.Store(true)

	m.mu.Lock()
	m.current = load.name
	m.mu.Unlock()

	m.log.Info("Scene loaded.", "scene", load.name)
	m.OnSceneLoaded.Emit(load.name)
	return true
}

// Close drops every subscriber. Call it after the components that subscribed
// have been disabled.
func (m *Manager) Close() {
	m.OnPause.Reset()
	m.OnResume.Reset()
	m.OnSceneLoaded.Reset()
}
