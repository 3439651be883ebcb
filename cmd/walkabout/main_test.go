package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/walkabout/internal/prefs"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func prefsArgs(t *testing.T) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "playerprefs.dat")
	return path, []string{"--config", filepath.Join(dir, "none.toml"), "--prefs", path}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "walkabout dev (none) unknown\n", out)
}

func TestPrefsShowDefaults(t *testing.T) {
	_, args := prefsArgs(t)

	out, err := run(t, append([]string{"prefs", "show", "--format", "json"}, args...)...)
	require.NoError(t, err)

	var got prefs.Prefs
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, prefs.Default(), got)
}

func TestPrefsSetClampsAndPersists(t *testing.T) {
	path, args := prefsArgs(t)

	_, err := run(t, append([]string{"prefs", "set", "--volume", "0.25", "--sensitivity", "9"}, args...)...)
	require.NoError(t, err)

	saved, err := prefs.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, float32(0.25), saved.Volume)
	assert.Equal(t, prefs.MaxSensitivity, saved.Sensitivity)

	out, err := run(t, append([]string{"prefs", "show"}, args...)...)
	require.NoError(t, err)
	var shown prefs.Prefs
	require.NoError(t, yaml.Unmarshal([]byte(out), &shown))
	assert.Equal(t, saved, shown)
}

func TestPrefsSetNeedsAFlag(t *testing.T) {
	_, args := prefsArgs(t)
	_, err := run(t, append([]string{"prefs", "set"}, args...)...)
	assert.ErrorContains(t, err, "nothing to set")
}

func TestPrefsResetAfterCorruption(t *testing.T) {
	path, args := prefsArgs(t)
	require.NoError(t, os.WriteFile(path, []byte{1, 2}, 0o600))

	out, err := run(t, append([]string{"prefs", "show"}, args...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "corrupted")

	_, err = run(t, append([]string{"prefs", "reset"}, args...)...)
	require.NoError(t, err)
	saved, err := prefs.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, prefs.Default(), saved)
}

func TestPrefsShowRejectsUnknownFormat(t *testing.T) {
	_, args := prefsArgs(t)
	_, err := run(t, append([]string{"prefs", "show", "--format", "xml"}, args...)...)
	assert.ErrorContains(t, err, "unknown format")
}

func TestAssetsWritesDecodablePNG(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "assets", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "panel_9slice.png")

	f, err := os.Open(filepath.Join(dir, "panel_9slice.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 48, img.Bounds().Dx())
}
