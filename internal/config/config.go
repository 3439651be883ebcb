// Package config loads walkabout.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const DefaultFile = "walkabout.toml"

type Config struct {
	Window WindowConfig `toml:"window"`
	Player PlayerConfig `toml:"player"`
	Log    LogConfig    `toml:"log"`
	Game   GameConfig   `toml:"game"`
}

type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int32  `toml:"width"`
	Height     int32  `toml:"height"`
	TargetFPS  int32  `toml:"target_fps"`
	Fullscreen bool   `toml:"fullscreen"`
}

type PlayerConfig struct {
	MoveSpeed         float32 `toml:"move_speed"`
	JumpForce         float32 `toml:"jump_force"`
	Sensitivity       float32 `toml:"sensitivity"`
	MaxLookAngle      float32 `toml:"max_look_angle"`
	EyeHeight         float32 `toml:"eye_height"`
	CrouchHeight      float32 `toml:"crouch_height"`
	CrouchSpeedFactor float32 `toml:"crouch_speed_factor"`
}

type LogConfig struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

type GameConfig struct {
	StartScene string `toml:"start_scene"`
	Language   string `toml:"language"`
	PrefsPath  string `toml:"prefs_path"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "walkabout",
			Width:     1366,
			Height:    768,
			TargetFPS: 60,
		},
		Player: PlayerConfig{
			MoveSpeed:         5,
			JumpForce:         3,
			Sensitivity:       1,
			MaxLookAngle:      90,
			EyeHeight:         1.6,
			CrouchHeight:      0.9,
			CrouchSpeedFactor: 0.5,
		},
		Log: LogConfig{
			Level: "info",
		},
		Game: GameConfig{
			StartScene: "hideout",
			Language:   "en",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := Parse(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML into cfg and validates the result. Keys that are not
// part of the schema are rejected.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate rejects values the game cannot run with and clamps the rest.
func (c *Config) Validate() error {
	if c.Window.Width < 320 || c.Window.Height < 240 {
		return fmt.Errorf("window must be at least 320x240, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TargetFPS <= 0 {
		c.Window.TargetFPS = 60
	}
	if strings.TrimSpace(c.Window.Title) == "" {
		c.Window.Title = "walkabout"
	}

	p := &c.Player
	if p.MoveSpeed < 0 {
		return fmt.Errorf("move_speed must not be negative, got %v", p.MoveSpeed)
	}
	if p.JumpForce < 0 {
		return fmt.Errorf("jump_force must not be negative, got %v", p.JumpForce)
	}
	p.Sensitivity = clamp(p.Sensitivity, 0, 2)
	p.MaxLookAngle = clamp(p.MaxLookAngle, 0, 180)
	p.CrouchSpeedFactor = clamp(p.CrouchSpeedFactor, 0, 1)
	if p.EyeHeight <= 0 {
		return fmt.Errorf("eye_height must be positive, got %v", p.EyeHeight)
	}
	if p.CrouchHeight <= 0 || p.CrouchHeight > p.EyeHeight {
		p.CrouchHeight = p.EyeHeight
	}

	c.Game.StartScene = strings.ToLower(strings.TrimSpace(c.Game.StartScene))
	if c.Game.StartScene == "" {
		c.Game.StartScene = "hideout"
	}
	if strings.TrimSpace(c.Game.Language) == "" {
		c.Game.Language = "en"
	}
	return nil
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
