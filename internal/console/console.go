// Package console runs typed commands against the menu stack, the scene
// manager and the player preferences.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/appengine-ltd/walkabout/internal/logging"
	"github.com/appengine-ltd/walkabout/internal/menu"
	"github.com/appengine-ltd/walkabout/internal/prefs"
	"github.com/appengine-ltd/walkabout/internal/scene"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)

// UnknownCommandError reports input that matched no verb, or more than one.
type UnknownCommandError struct {
	Input   string
	Options []string
}

func (e *UnknownCommandError) Error() string {
	switch len(e.Options) {
	case 0:
		return fmt.Sprintf("unknown command %q, try help", e.Input)
	case 1:
		return fmt.Sprintf("unknown command %q (did you mean %q?)", e.Input, e.Options[0])
	}
	return fmt.Sprintf("ambiguous command %q: %s", e.Input, strings.Join(e.Options, " or "))
}

func (e *UnknownCommandError) Unwrap() error { return ErrUnknownCommand }

// Intent is a parsed console line.
type Intent struct {
	Raw        string
	Normalised string
	Verb       string
	Args       []string
	Confidence float64
}

// Parse resolves the verb of raw and splits off its arguments.
func Parse(r *Registry, raw string) (Intent, error) {
	intent := Intent{Raw: raw, Normalised: normaliseInput(raw)}
	tokens := tokenise(intent.Normalised)
	if len(tokens) == 0 {
		return intent, &UnknownCommandError{Input: raw}
	}

	match, alternates := r.matchCommand(tokens[0])
	if match.Canonical == "" || match.Score < 0.5 {
		return intent, &UnknownCommandError{Input: tokens[0]}
	}
	if len(alternates) > 0 && (match.Score-alternates[0].Score) < 0.05 {
		return intent, &UnknownCommandError{
			Input:   tokens[0],
			Options: []string{match.Canonical, alternates[0].Canonical},
		}
	}
	if match.Source == "lev" {
		return intent, &UnknownCommandError{Input: tokens[0], Options: []string{match.Canonical}}
	}

	def, _ := r.Lookup(match.Canonical)
	args := tokens[1:]
	if len(args) < def.MinArgs || len(args) > def.MaxArgs {
		return intent, fmt.Errorf("%w: %s", ErrUsage, def.Usage)
	}
	intent.Verb = match.Canonical
	intent.Args = args
	intent.Confidence = match.Score
	return intent, nil
}

// Console executes parsed lines.
type Console struct {
	registry *Registry
	menu     *menu.InGame
	scenes   *scene.Manager
	prefs    *prefs.Store
	log      *slog.Logger
}

func New(m *menu.InGame, scenes *scene.Manager, store *prefs.Store, logger *slog.Logger) *Console {
	return &Console{
		registry: DefaultRegistry(),
		menu:     m,
		scenes:   scenes,
		prefs:    store,
		log:      logging.OrDiscard(logger),
	}
}

func (c *Console) Registry() *Registry { return c.registry }

// Execute runs one line and returns the text to show the player.
func (c *Console) Execute(ctx context.Context, line string) (string, error) {
	intent, err := Parse(c.registry, line)
	if err != nil {
		return "", err
	}
	c.log.Debug("console command", "verb", intent.Verb, "args", intent.Args)

	switch intent.Verb {
	case "help":
		return c.help(intent.Args), nil
	case "pause":
		if !c.menu.Paused() {
			c.menu.TogglePause()
		}
		return "paused", nil
	case "resume":
		if c.menu.Paused() {
			c.menu.TogglePause()
		}
		return "resumed", nil
	case "open":
		if _, err := c.menu.Menu(intent.Args[0]); err != nil {
			return "", err
		}
		if !c.menu.Paused() {
			c.menu.TogglePause()
		}
		if c.menu.Current() != nil && c.menu.Current().Name() == intent.Args[0] {
			return "", nil
		}
		if err := c.menu.OpenMenu(intent.Args[0]); err != nil {
			return "", err
		}
		return "", nil
	case "close":
		return "", c.menu.CloseCurrentMenu()
	case "back":
		return "", c.menu.Back()
	case "forward":
		return "", c.menu.Forward()
	case "set":
		return c.set(intent.Args[0], intent.Args[1])
	case "settings":
		p := c.prefs.Get()
		return fmt.Sprintf("volume %d%%, sensitivity %.2f", int(p.Volume*100+0.5), p.Sensitivity), nil
	case "goto":
		load, err := c.scenes.GoToScene(ctx, intent.Args[0])
		if err != nil {
			return "", err
		}
		return "loading " + load.Scene(), nil
	case "scenes":
		return strings.Join(c.scenes.Registry().Names(), ", "), nil
	case "quit":
		c.menu.Exit()
		return "bye", nil
	}
	return "", &UnknownCommandError{Input: intent.Verb}
}

func (c *Console) help(args []string) string {
	if len(args) == 1 {
		match, _ := c.registry.matchCommand(args[0])
		if def, ok := c.registry.Lookup(match.Canonical); ok {
			return def.Usage + ": " + def.Summary
		}
	}
	var b strings.Builder
	for i, def := range c.registry.Commands() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-34s %s", def.Usage, def.Summary)
	}
	return b.String()
}

func (c *Console) set(key, raw string) (string, error) {
	switch key {
	case "vol", "volume", "sound":
		key = prefs.KeyVolume
	case "sens", "sensitivity", "mouse":
		key = prefs.KeySensitivity
	default:
		return "", fmt.Errorf("%w: set <volume|sensitivity> <value>", ErrUsage)
	}
	v, ok := parseValue(raw)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a number", ErrUsage, raw)
	}
	if err := c.prefs.SetValue(key, v); err != nil {
		return "", err
	}
	got, _ := c.prefs.Value(key)
	return fmt.Sprintf("%s = %.2f", key, got), nil
}
