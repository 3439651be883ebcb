package session

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/walkabout/internal/level"
	"github.com/appengine-ltd/walkabout/internal/logging"
	"github.com/appengine-ltd/walkabout/internal/menu"
	"github.com/appengine-ltd/walkabout/internal/prefs"
	"github.com/appengine-ltd/walkabout/internal/scene"
)

func newSession(t *testing.T, configTOML string) *Session {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "walkabout.toml")
	if configTOML != "" {
		require.NoError(t, os.WriteFile(cfgPath, []byte(configTOML), 0o644))
	}
	s, err := New(context.Background(), Options{
		ConfigPath: cfgPath,
		LogOut:     io.Discard,
		PrefsPath:  filepath.Join(dir, "playerprefs.dat"),
	})
	require.NoError(t, err)
	return s
}

func TestNewWithDefaults(t *testing.T) {
	s := newSession(t, "")

	assert.Equal(t, "hideout", s.Config.Game.StartScene)
	assert.Equal(t, "en", s.Localizer.Language())
	assert.Equal(t, prefs.Default(), s.Prefs.Get())
	assert.Equal(t, []string{"courtyard", "hideout"}, s.Manager.Registry().Names())
}

func TestNewRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "walkabout.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nwidht = 3\n"), 0o644))

	_, err := New(context.Background(), Options{ConfigPath: path, LogOut: io.Discard})
	assert.ErrorContains(t, err, "unknown keys")
}

func TestFailedLevelsCloseTheLogFile(t *testing.T) {
	orig := registerLevels
	registerLevels = func(*scene.Registry, *level.Current) error { return errors.New("bad layout") }
	t.Cleanup(func() { registerLevels = orig })

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "walkabout.toml")
	logPath := filepath.Join(dir, "logs", "walkabout.log")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[log]\npath = \""+filepath.ToSlash(logPath)+"\"\n"), 0o644))

	_, err := New(context.Background(), Options{
		ConfigPath: cfgPath,
		LogOut:     io.Discard,
		PrefsPath:  filepath.Join(dir, "playerprefs.dat"),
	})

	assert.ErrorContains(t, err, "register levels")
	assert.FileExists(t, logPath)
	assert.Empty(t, logging.FilePath())
}

func TestUnsupportedLanguageFallsBack(t *testing.T) {
	s := newSession(t, "[game]\nlanguage = \"not a tag!\"\n")
	assert.Equal(t, "en", s.Localizer.Language())
}

func TestStartLoadsConfiguredScene(t *testing.T) {
	s := newSession(t, "[game]\nstart_scene = \"Courtyard\"\n")

	load, err := s.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, load.Wait(context.Background()))
	require.True(t, s.Manager.Update())

	require.NotNil(t, s.Levels.Layout())
	assert.Equal(t, "courtyard", s.Levels.Layout().Name)
}

func TestMenuAdjustsPreferencesAndCloseSaves(t *testing.T) {
	s := newSession(t, "")
	m, err := s.NewMenu(nil)
	require.NoError(t, err)

	require.NoError(t, m.Do(menu.CmdTogglePause))
	require.NoError(t, m.OpenMenu(menu.PanelSettings))
	m.MoveCursor(1)
	require.NoError(t, m.Adjust(2))
	assert.InDelta(t, 0.8, s.Prefs.Get().Sensitivity, 1e-4)
	assert.InDelta(t, 0.8, s.Sensitivity(), 1e-4)

	m.Disable()
	require.NoError(t, s.Close(context.Background()))

	loaded, err := prefs.Load(context.Background(), s.Prefs.Path())
	require.NoError(t, err)
	assert.InDelta(t, 0.8, loaded.Sensitivity, 1e-4)
}

func TestSensitivityScalesConfigBase(t *testing.T) {
	s := newSession(t, "[player]\nsensitivity = 2.0\n")
	s.Prefs.Set(prefs.Prefs{Version: prefs.FormatVersion, Volume: 1, Sensitivity: 1.5})

	assert.Equal(t, float32(2), s.Sensitivity())
}
