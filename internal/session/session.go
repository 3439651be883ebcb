// Package session assembles the long-lived game services from configuration:
// logging, preferences, localisation, the scene manager and the built-in
// levels. Both hosts start from a Session.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/appengine-ltd/walkabout/internal/config"
	"github.com/appengine-ltd/walkabout/internal/i18n"
	"github.com/appengine-ltd/walkabout/internal/level"
	"github.com/appengine-ltd/walkabout/internal/logging"
	"github.com/appengine-ltd/walkabout/internal/menu"
	"github.com/appengine-ltd/walkabout/internal/nav"
	"github.com/appengine-ltd/walkabout/internal/prefs"
	"github.com/appengine-ltd/walkabout/internal/scene"
)

// Options override parts of the configuration file.
type Options struct {
	ConfigPath string
	LogLevel   string    // overrides [log].level when set
	LogOut     io.Writer // console log writer, defaults to stdout
	PrefsPath  string    // overrides [game].prefs_path when set
}

type Session struct {
	Config    config.Config
	Log       *slog.Logger
	Prefs     *prefs.Store
	Localizer *i18n.Localizer
	Manager   *scene.Manager
	Levels    *level.Current
}

// registerLevels is swapped in tests.
var registerLevels = level.Register

// New loads configuration and builds every service. Only an unreadable or
// invalid config file and a broken level catalogue are fatal.
func New(ctx context.Context, opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.PrefsPath != "" {
		cfg.Game.PrefsPath = opts.PrefsPath
	}

	log := logging.Setup(logging.Options{Path: cfg.Log.Path, Level: cfg.Log.Level, Out: opts.LogOut})

	prefsPath, err := ResolvePrefsPath(cfg.Game.PrefsPath)
	if err != nil {
		log.Warn("no preferences location, settings will not persist", "error", err)
	}
	store := prefs.Open(ctx, prefsPath, log)

	loc, err := i18n.New(cfg.Game.Language)
	if err != nil {
		log.Warn("unsupported language, using English", "language", cfg.Game.Language, "error", err)
		loc = i18n.English()
	}

	levels := &level.Current{}
	reg := scene.NewRegistry()
	if err := registerLevels(reg, levels); err != nil {
		logging.Close()
		return nil, fmt.Errorf("register levels: %w", err)
	}

	s := &Session{
		Config:    cfg,
		Log:       log,
		Prefs:     store,
		Localizer: loc,
		Manager:   scene.NewManager(log, reg),
		Levels:    levels,
	}
	log.Info("session ready",
		"scene", cfg.Game.StartScene,
		"language", loc.Language(),
		"prefs", prefsPath,
		"log", logging.FilePath(),
	)
	return s, nil
}

// ResolvePrefsPath returns path, or the per-user default when it is empty.
func ResolvePrefsPath(path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		return path, nil
	}
	return prefs.DefaultPath()
}

// Start begins loading the configured start scene.
func (s *Session) Start(ctx context.Context) (*scene.Load, error) {
	return s.Manager.GoToScene(ctx, s.Config.Game.StartScene)
}

// NewMenu builds and enables the pause menu on a fresh navigation stack.
// cursor may be nil when the host has no pointer to capture.
func (s *Session) NewMenu(cursor menu.CursorLock) (*menu.InGame, error) {
	m, err := menu.NewInGame(menu.Options{
		Game:     s.Manager,
		Stack:    nav.NewStack(s.Log),
		Panels:   menu.DefaultPanels(),
		Cursor:   cursor,
		Settings: s.Prefs,
		Logger:   s.Log,
	})
	if err != nil {
		return nil, err
	}
	m.Enable()
	return m, nil
}

// Sensitivity is the configured base look sensitivity scaled by the
// player's preference, clamped to the controller's range.
func (s *Session) Sensitivity() float32 {
	v := s.Config.Player.Sensitivity * s.Prefs.Get().Sensitivity
	if v < 0 {
		return 0
	}
	if v > 2 {
		return 2
	}
	return v
}

// Close persists preferences and drops signal subscribers. Hosts disable
// their components before calling it.
func (s *Session) Close(ctx context.Context) error {
	err := s.Prefs.Save(ctx)
	s.Prefs.OnChange.Reset()
	s.Manager.Close()
	return err
}
