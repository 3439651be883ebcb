// Package prefs loads and saves the player preferences file.
//
// The file is a fixed little-endian record: an int32 format version followed
// by two float32 values, volume then look sensitivity.
package prefs

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	FormatVersion      int32   = 1
	DefaultVolume      float32 = 1.0
	DefaultSensitivity float32 = 0.7

	fileName      = "playerprefs.dat"
	recordSize    = 12
	lockRetryWait = 25 * time.Millisecond
)

// ErrCorrupt is returned alongside default preferences when the file exists
// but cannot be decoded.
var ErrCorrupt = errors.New("preferences file corrupted")

// Prefs is the persisted player preference record.
type Prefs struct {
	Version     int32   `json:"version" yaml:"version"`
	Volume      float32 `json:"volume" yaml:"volume"`
	Sensitivity float32 `json:"sensitivity" yaml:"sensitivity"`
}

// Default returns the preferences used when no file exists.
func Default() Prefs {
	return Prefs{Version: FormatVersion, Volume: DefaultVolume, Sensitivity: DefaultSensitivity}
}

// DefaultPath is playerprefs.dat inside the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "walkabout", fileName), nil
}

// Encode writes p in the on-disk layout.
func Encode(p Prefs) []byte {
	buf := make([]byte, 0, recordSize)
	buf, _ = binary.Append(buf, binary.LittleEndian, p.Version)
	buf, _ = binary.Append(buf, binary.LittleEndian, p.Volume)
	buf, _ = binary.Append(buf, binary.LittleEndian, p.Sensitivity)
	return buf
}

// Decode reads the on-disk layout. Bytes past the record are ignored.
func Decode(data []byte) (Prefs, error) {
	if len(data) < recordSize {
		return Prefs{}, fmt.Errorf("%w: %d bytes, want %d", ErrCorrupt, len(data), recordSize)
	}
	var p Prefs
	r := bytes.NewReader(data[:recordSize])
	if err := binary.Read(r, binary.LittleEndian, &p.Version); err != nil {
		return Prefs{}, fmt.Errorf("%w: version: %v", ErrCorrupt, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &p.Volume); err != nil {
		return Prefs{}, fmt.Errorf("%w: volume: %v", ErrCorrupt, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &p.Sensitivity); err != nil {
		return Prefs{}, fmt.Errorf("%w: sensitivity: %v", ErrCorrupt, err)
	}
	return p, nil
}

// Load reads the preferences at path. A missing file yields the defaults and
// no error. An unreadable or short file yields the defaults and an error
// wrapping ErrCorrupt, which callers treat as a warning.
func Load(ctx context.Context, path string) (Prefs, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryRLockContext(ctx, lockRetryWait)
	if err != nil {
		return Default(), fmt.Errorf("lock preferences: %w", err)
	}
	if locked {
		defer func() { _ = lock.Unlock() }()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	p, err := Decode(data)
	if err != nil {
		return Default(), err
	}
	return p, nil
}

// Save writes p to path atomically, creating the parent directory.
func Save(ctx context.Context, path string, p Prefs) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryWait)
	if err != nil {
		return fmt.Errorf("lock preferences: %w", err)
	}
	if locked {
		defer func() { _ = lock.Unlock() }()
	}

	tmp, err := os.CreateTemp(dir, "playerprefs-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(Encode(p)); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	cleanup = false
	return nil
}
