// Package level holds the built-in scene layouts and registers them as
// scene loaders. Layouts are YAML documents embedded in the binary.
package level

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/atomic"
	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/walkabout/internal/scene"
)

//go:embed layouts/*.yaml
var layoutFS embed.FS

// ErrInvalidLayout wraps every validation failure.
var ErrInvalidLayout = errors.New("invalid layout")

// Vec3 is a position or extent in world units.
type Vec3 [3]float32

type Block struct {
	Pos   Vec3   `yaml:"pos"`
	Size  Vec3   `yaml:"size"`
	Color string `yaml:"color"`
}

// Layout is a walkable scene: a square floor of side Size centred on the
// origin, static blocks, and a spawn point.
type Layout struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Size        float32 `yaml:"size"`
	Spawn       Vec3    `yaml:"spawn"`
	Sky         string  `yaml:"sky"`
	Ground      string  `yaml:"ground"`
	Blocks      []Block `yaml:"blocks"`
}

// Parse decodes and validates one layout document.
func Parse(data []byte) (Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

func (l Layout) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidLayout)
	}
	if l.Size <= 0 {
		return fmt.Errorf("%w: %s: size must be positive", ErrInvalidLayout, l.Name)
	}
	half := l.Size / 2
	if abs(l.Spawn[0]) > half || abs(l.Spawn[2]) > half {
		return fmt.Errorf("%w: %s: spawn outside the floor", ErrInvalidLayout, l.Name)
	}
	for _, c := range []string{l.Sky, l.Ground} {
		if c == "" {
			continue
		}
		if _, err := ParseColor(c); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidLayout, l.Name, err)
		}
	}
	for i, b := range l.Blocks {
		if b.Size[0] <= 0 || b.Size[1] <= 0 || b.Size[2] <= 0 {
			return fmt.Errorf("%w: %s: block %d has an empty size", ErrInvalidLayout, l.Name, i)
		}
		if _, err := ParseColor(b.Color); err != nil {
			return fmt.Errorf("%w: %s: block %d: %v", ErrInvalidLayout, l.Name, i, err)
		}
	}
	return nil
}

// RGBA is an 8-bit colour.
type RGBA struct{ R, G, B, A uint8 }

// ParseColor reads "#RRGGBB" or "#RRGGBBAA".
func ParseColor(s string) (RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return RGBA{}, fmt.Errorf("bad colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("bad colour %q", s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Current holds the active layout. The scene manager's activation step
// writes it; hosts read it every frame.
type Current struct {
	layout atomic.Pointer[Layout]
	gen    atomic.Uint64
}

// Layout returns the active layout, or nil before the first scene loads.
func (c *Current) Layout() *Layout {
	return c.layout.Load()
}

// Generation increases every time a layout is activated.
func (c *Current) Generation() uint64 {
	return c.gen.Load()
}

func (c *Current) set(l *Layout) {
	c.layout.Store(l)
	c.gen.Inc()
}

// Builtin returns the embedded layouts sorted by name.
func Builtin() ([]Layout, error) {
	entries, err := layoutFS.ReadDir("layouts")
	if err != nil {
		return nil, err
	}
	out := make([]Layout, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		data, err := layoutFS.ReadFile(path.Join("layouts", e.Name()))
		if err != nil {
			return nil, err
		}
		l, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Register adds a loader for every built-in layout. Activating a loaded
// scene stores its layout in cur.
func Register(reg *scene.Registry, cur *Current) error {
	layouts, err := Builtin()
	if err != nil {
		return err
	}
	for _, l := range layouts {
		reg.Register(l.Name, Loader(l, cur))
	}
	return nil
}

// Loader builds the scene loader for l. Progress is reported per block on
// the 0..0.9 scale the manager expects while a load is still running.
func Loader(l Layout, cur *Current) scene.Loader {
	return func(ctx context.Context, progress scene.Progress) (scene.Activate, error) {
		built := l
		built.Blocks = make([]Block, 0, len(l.Blocks))
		for i, b := range l.Blocks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			built.Blocks = append(built.Blocks, b)
			progress(0.9 * float64(i+1) / float64(len(l.Blocks)))
		}
		return func() { cur.set(&built) }, nil
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
