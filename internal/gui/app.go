// Package gui is the raylib host: a first-person walk through the active
// level with the pause menu drawn on top.
package gui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/walkabout/internal/config"
	"github.com/appengine-ltd/walkabout/internal/gui/theme"
	"github.com/appengine-ltd/walkabout/internal/input"
	"github.com/appengine-ltd/walkabout/internal/menu"
	"github.com/appengine-ltd/walkabout/internal/nav"
	"github.com/appengine-ltd/walkabout/internal/player"
	"github.com/appengine-ltd/walkabout/internal/prefs"
	"github.com/appengine-ltd/walkabout/internal/scene"
	"github.com/appengine-ltd/walkabout/internal/session"
	"github.com/appengine-ltd/walkabout/internal/signal"
)

// AssetDir holds optional fonts and UI textures.
const AssetDir = "assets"

type App struct {
	s   *session.Session
	log *slog.Logger

	menu    *menu.InGame
	cursor  *cursorLock
	actions *input.Actions
	body    *player.RigidBody
	ctrl    *player.Controller
	clock   scene.Clock

	world    world
	worldGen uint64
	subs     []*signal.Subscription

	width  int32
	height int32
}

func NewApp(s *session.Session) *App {
	return &App{s: s, log: s.Log}
}

// PlayerSettings converts the [player] config section.
func PlayerSettings(c config.PlayerConfig) player.Settings {
	return player.Settings{
		MoveSpeed:         c.MoveSpeed,
		JumpForce:         c.JumpForce,
		Sensitivity:       c.Sensitivity,
		MaxLookAngle:      c.MaxLookAngle,
		EyeHeight:         c.EyeHeight,
		CrouchHeight:      c.CrouchHeight,
		CrouchSpeedFactor: c.CrouchSpeedFactor,
	}
}

// Run opens the window and blocks until the player quits, the window is
// closed or ctx ends.
func (a *App) Run(ctx context.Context) error {
	win := a.s.Config.Window
	a.width, a.height = win.Width, win.Height

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(a.width, a.height, win.Title)
	defer rl.CloseWindow()
	rl.SetExitKey(0)
	rl.SetTargetFPS(win.TargetFPS)
	if win.Fullscreen {
		rl.ToggleFullscreen()
	}
	rl.InitAudioDevice()
	defer rl.CloseAudioDevice()

	initTypography(AssetDir)
	defer shutdownTypography()
	theme.LoadSkin(AssetDir + "/ui")
	defer theme.UnloadSkin()

	if err := a.setup(); err != nil {
		return err
	}
	defer a.teardown()

	if _, err := a.s.Start(ctx); err != nil {
		return err
	}

	for !a.s.Manager.QuitRequested() && !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}
		a.width = int32(rl.GetScreenWidth())
		a.height = int32(rl.GetScreenHeight())
		a.frame(rl.GetFrameTime())
	}
	a.log.Info("window closed", "scene", a.s.Manager.CurrentScene())
	return nil
}

func (a *App) setup() error {
	a.cursor = &cursorLock{}
	m, err := a.s.NewMenu(a.cursor)
	if err != nil {
		return err
	}
	a.menu = m

	a.body = player.NewRigidBody(rl.Vector3{})
	a.ctrl = player.New(a.body, PlayerSettings(a.s.Config.Player), m, a.log)
	a.ctrl.SetSensitivity(a.s.Sensitivity())
	a.actions = input.NewActions()
	a.ctrl.Enable(a.actions)

	rl.SetMasterVolume(a.s.Prefs.Get().Volume)
	a.subs = append(a.subs, a.s.Prefs.OnChange.Subscribe(func(p prefs.Prefs) {
		rl.SetMasterVolume(p.Volume)
		a.ctrl.SetSensitivity(a.s.Sensitivity())
	}))

	a.cursor.LockCursor()
	return nil
}

func (a *App) teardown() {
	for _, sub := range a.subs {
		sub.Unsubscribe()
	}
	a.subs = nil
	a.ctrl.Disable()
	a.menu.Disable()
	a.cursor.UnlockCursor()
}

func (a *App) frame(dt float32) {
	a.actions.Poll(raylibSource{})
	if a.menu.Paused() {
		cmd := menuCommand(rl.IsKeyPressed, rl.IsKeyDown)
		if err := a.menu.Do(cmd); err != nil && !errors.Is(err, nav.ErrInvalidState) {
			a.log.Warn("menu command failed", "command", cmd.String(), "error", err)
		}
	}

	a.s.Manager.Update()
	if gen := a.s.Levels.Generation(); gen != a.worldGen {
		a.worldGen = gen
		if l := a.s.Levels.Layout(); l != nil {
			a.world = newWorld(l)
			a.world.place(a.body)
		}
	}

	steps := a.clock.Advance(time.Duration(float64(dt)*float64(time.Second)), a.s.Manager.TimeScale())
	for range steps {
		a.ctrl.FixedUpdate()
		a.body.Step(scene.StepSeconds())
	}
	a.ctrl.Update(dt)

	a.draw()
}

func (a *App) draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	sky := defaultSky
	if a.world.size > 0 {
		sky = a.world.sky
	}
	rl.ClearBackground(sky)

	rl.BeginMode3D(a.ctrl.Camera())
	a.world.draw()
	rl.EndMode3D()

	loc := a.s.Localizer
	if !a.menu.Paused() {
		drawWalkHint(loc, a.world.name, a.height)
	}
	drawLoading(a.s.Manager.Pending(), loc, a.width, a.height)
	drawMenu(a.menu, loc, a.width, a.height)
}
