package menu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/appengine-ltd/walkabout/internal/logging"
	"github.com/appengine-ltd/walkabout/internal/nav"
	"github.com/appengine-ltd/walkabout/internal/prefs"
	"github.com/appengine-ltd/walkabout/internal/signal"
)

// Game is the slice of the game manager the menu drives.
type Game interface {
	Pause()
	Resume()
	Quit()
	PauseSignals() (onPause, onResume *signal.Signal[struct{}])
}

// CursorLock captures the pointer for mouse look and releases it for menus.
type CursorLock interface {
	LockCursor()
	UnlockCursor()
}

// Settings are the adjustable values behind ItemSetting rows.
type Settings interface {
	Value(key string) (float32, error)
	Adjust(key string, delta float32) error
}

// AdjustStep is how far one Adjust call moves a setting.
const AdjustStep float32 = 0.05

// ErrNoSelection is returned when the visible panel has nothing to act on.
var ErrNoSelection = errors.New("menu: nothing selected")

// Options wire an InGame menu. Game, Stack and Panels are required.
type Options struct {
	Game     Game
	Stack    *nav.Stack
	Panels   *Registry
	Cursor   CursorLock
	Settings Settings
	Logger   *slog.Logger
}

// InGame shows the pause menu while the game is paused and routes menu
// commands to the navigation stack.
type InGame struct {
	game     Game
	stack    *nav.Stack
	panels   *Registry
	overlay  *Panel
	main     *Panel
	cursor   CursorLock
	settings Settings
	log      *slog.Logger

	paused bool
	subs   []*signal.Subscription
}

func NewInGame(opts Options) (*InGame, error) {
	if opts.Game == nil || opts.Stack == nil || opts.Panels == nil {
		return nil, errors.New("menu: game, stack and panels are required")
	}
	overlay, err := opts.Panels.Lookup(PanelOverlay)
	if err != nil {
		return nil, err
	}
	main, err := opts.Panels.Lookup(PanelMain)
	if err != nil {
		return nil, err
	}
	return &InGame{
		game:     opts.Game,
		stack:    opts.Stack,
		panels:   opts.Panels,
		overlay:  overlay,
		main:     main,
		cursor:   opts.Cursor,
		settings: opts.Settings,
		log:      logging.OrDiscard(opts.Logger),
	}, nil
}

// Enable subscribes to the game's pause and resume signals.
func (m *InGame) Enable() {
	if m.subs != nil {
		return
	}
	onPause, onResume := m.game.PauseSignals()
	m.subs = []*signal.Subscription{
		onPause.Subscribe(func(struct{}) { m.handlePaused() }),
		onResume.Subscribe(func(struct{}) { m.handleResumed() }),
	}
}

// Disable unsubscribes and hides every menu screen.
func (m *InGame) Disable() {
	for _, sub := range m.subs {
		sub.Unsubscribe()
	}
	m.subs = nil
	m.stack.EndInteraction()
	m.overlay.Hide()
}

func (m *InGame) handlePaused() {
	m.paused = true
	m.overlay.Show()
	if err := m.stack.StartNewInteraction(m.main); err != nil {
		m.log.Error("could not open pause menu", "error", err)
	}
	if m.cursor != nil {
		m.cursor.UnlockCursor()
	}
}

func (m *InGame) handleResumed() {
	m.paused = false
	m.overlay.Hide()
	m.stack.EndInteraction()
	if m.cursor != nil {
		m.cursor.LockCursor()
	}
}

func (m *InGame) Paused() bool { return m.paused }

// TogglePause pauses or resumes the game. The menu follows through the
// game's signals.
func (m *InGame) TogglePause() {
	if !m.paused {
		m.game.Pause()
		return
	}
	m.game.Resume()
}

// Menu finds a panel that can be opened. The overlay backdrop belongs to
// the pause itself and is never one.
func (m *InGame) Menu(name string) (*Panel, error) {
	p, err := m.panels.Lookup(name)
	if err != nil {
		return nil, err
	}
	if p == m.overlay {
		return nil, &UnknownMenuError{Name: name}
	}
	return p, nil
}

// OpenMenu pushes the named panel.
func (m *InGame) OpenMenu(name string) error {
	p, err := m.Menu(name)
	if err != nil {
		return err
	}
	return m.stack.OpenNewMenu(p)
}

// CloseCurrentMenu pops the visible panel. Closing the last one resumes.
func (m *InGame) CloseCurrentMenu() error {
	_, err := m.stack.CloseCurrentMenu()
	if nav.IsExhausted(err) {
		m.game.Resume()
		return nil
	}
	return err
}

// Back and Forward walk the history without changing it. Running out of
// history is reported as nav.ErrHistoryExhausted.
func (m *InGame) Back() error    { return m.stack.GoBack() }
func (m *InGame) Forward() error { return m.stack.GoForward() }

// Exit asks the game to quit.
func (m *InGame) Exit() {
	m.game.Quit()
}

// Overlay is the backdrop shown for the whole pause.
func (m *InGame) Overlay() *Panel { return m.overlay }

// Current returns the visible panel, or nil while not paused.
func (m *InGame) Current() *Panel {
	p, _ := m.stack.Current().(*Panel)
	return p
}

// History returns the interaction depth and cursor position.
func (m *InGame) History() (depth, cursor int) {
	return m.stack.Len(), m.stack.Cursor()
}

// MoveCursor moves the selection on the visible panel.
func (m *InGame) MoveCursor(delta int) {
	if p := m.Current(); p != nil {
		p.MoveCursor(delta)
	}
}

// Activate performs the selected item.
func (m *InGame) Activate() error {
	item, err := m.selected()
	if err != nil {
		return err
	}
	switch item.Kind {
	case ItemResume:
		m.game.Resume()
	case ItemOpen:
		return m.OpenMenu(item.Target)
	case ItemBack:
		return m.CloseCurrentMenu()
	case ItemQuit:
		m.Exit()
	case ItemSetting:
		// Settings change with Adjust.
	default:
		return ErrNoSelection
	}
	return nil
}

// Adjust nudges the selected setting by steps * AdjustStep.
func (m *InGame) Adjust(steps int) error {
	item, err := m.selected()
	if err != nil {
		return err
	}
	if item.Kind != ItemSetting || m.settings == nil {
		return nil
	}
	if err := m.settings.Adjust(item.Setting, float32(steps)*AdjustStep); err != nil {
		return fmt.Errorf("adjust %s: %w", item.Setting, err)
	}
	return nil
}

// SettingValue reads the value shown next to a setting row.
func (m *InGame) SettingValue(key string) (float32, bool) {
	if m.settings == nil {
		return 0, false
	}
	v, err := m.settings.Value(key)
	return v, err == nil
}

func (m *InGame) selected() (Item, error) {
	p := m.Current()
	if p == nil {
		return Item{}, ErrNoSelection
	}
	item, ok := p.Selected()
	if !ok {
		return Item{}, ErrNoSelection
	}
	return item, nil
}

// DisplayValue formats the value of a setting row: volume as a percentage,
// anything else with two decimals. Other rows have no value.
func (m *InGame) DisplayValue(item Item) string {
	if item.Kind != ItemSetting {
		return ""
	}
	v, ok := m.SettingValue(item.Setting)
	if !ok {
		return ""
	}
	if item.Setting == prefs.KeyVolume {
		return fmt.Sprintf("%d%%", int(v*100+0.5))
	}
	return fmt.Sprintf("%.2f", v)
}
