package prefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeLayoutIsLittleEndian(t *testing.T) {
	data := Encode(Prefs{Version: 1, Volume: 1.0, Sensitivity: 0.5})

	require.Len(t, data, 12)
	assert.Equal(t, []byte{1, 0, 0, 0}, data[0:4])
	// 1.0 = 0x3F800000, 0.5 = 0x3F000000
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, data[4:8])
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x3F}, data[8:12])
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	p, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.dat"))

	require.NoError(t, err)
	assert.Equal(t, Prefs{Version: 1, Volume: 1.0, Sensitivity: 0.7}, p)
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "playerprefs.dat")
	want := Prefs{Version: 3, Volume: 0.25, Sensitivity: 1.5}

	require.NoError(t, Save(ctx, path, want))
	got, err := Load(ctx, path)

	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadTruncatedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playerprefs.dat")
	require.NoError(t, os.WriteFile(path, []byte{2, 0, 0, 0, 0xAA}, 0o600))

	p, err := Load(context.Background(), path)

	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Equal(t, Default(), p)
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	data := append(Encode(Prefs{Version: 2, Volume: 0.5, Sensitivity: 0.7}), 9, 9, 9)

	p, err := Decode(data)

	require.NoError(t, err)
	assert.Equal(t, int32(2), p.Version)
	assert.InDelta(t, 0.5, p.Volume, 1e-6)
}

func TestStoreClampsAndNotifies(t *testing.T) {
	s := NewStore("", Default(), nil)
	var seen []Prefs
	sub := s.OnChange.Subscribe(func(p Prefs) { seen = append(seen, p) })
	defer sub.Unsubscribe()

	require.NoError(t, s.Adjust("volume", 0.5))
	require.NoError(t, s.Adjust("Sensitivity", -10))

	p := s.Get()
	assert.Equal(t, MaxVolume, p.Volume)
	assert.Equal(t, MinSensitivity, p.Sensitivity)
	// The volume adjust was clamped to the current value, so only one change fired.
	require.Len(t, seen, 1)
	assert.Equal(t, MinSensitivity, seen[0].Sensitivity)
}

func TestStoreUnknownSetting(t *testing.T) {
	s := NewStore("", Default(), nil)

	_, err := s.Value("brightness")
	assert.Error(t, err)
	assert.Error(t, s.Adjust("brightness", 1))
}

func TestStoreSaveAndOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "playerprefs.dat")

	s := NewStore(path, Default(), nil)
	require.NoError(t, s.SetValue(KeyVolume, 0.4))
	require.NoError(t, s.Save(ctx))

	reopened := Open(ctx, path, nil)
	assert.InDelta(t, 0.4, reopened.Get().Volume, 1e-6)
	assert.Equal(t, path, reopened.Path())
}

func TestOpenCorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playerprefs.dat")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	s := Open(context.Background(), path, nil)

	assert.Equal(t, Default(), s.Get())
}

func TestStoreReset(t *testing.T) {
	s := NewStore("", Prefs{Version: 1, Volume: 0.1, Sensitivity: 1.9}, nil)
	s.Reset()
	assert.Equal(t, Default(), s.Get())
}
