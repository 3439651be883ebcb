// Package player implements the first-person controller: mouse look with a
// clamped pitch, planar movement relative to the facing direction, jumping
// and crouching.
package player

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/walkabout/internal/input"
	"github.com/appengine-ltd/walkabout/internal/logging"
	"github.com/appengine-ltd/walkabout/internal/signal"
)

// Settings tune the controller. Angles are in degrees.
type Settings struct {
	MoveSpeed         float32
	JumpForce         float32
	Sensitivity       float32 // 0..2
	MaxLookAngle      float32 // 0..180
	EyeHeight         float32
	CrouchHeight      float32
	CrouchSpeedFactor float32
}

func DefaultSettings() Settings {
	return Settings{
		MoveSpeed:         5,
		JumpForce:         3,
		Sensitivity:       1,
		MaxLookAngle:      90,
		EyeHeight:         1.6,
		CrouchHeight:      0.9,
		CrouchSpeedFactor: 0.5,
	}
}

// PauseMenu is the in-game UI the Escape action toggles.
type PauseMenu interface {
	Paused() bool
	TogglePause()
}

const (
	crouchRate = 10
	// cameraPitchLimit keeps the view vector off the up axis.
	cameraPitchLimit = 89.5
)

var worldUp = rl.NewVector3(0, 1, 0)

type Controller struct {
	body     Body
	menu     PauseMenu
	settings Settings
	log      *slog.Logger

	actions *input.Actions
	subs    []*signal.Subscription

	yaw       float32
	pitch     float32
	eye       float32
	crouching bool
	camera    rl.Camera3D
}

// New builds a controller. menu may be nil, in which case Escape only logs.
func New(body Body, settings Settings, menu PauseMenu, logger *slog.Logger) *Controller {
	c := &Controller{
		body:     body,
		menu:     menu,
		settings: settings,
		log:      logging.OrDiscard(logger),
		eye:      settings.EyeHeight,
		camera: rl.Camera3D{
			Up:         worldUp,
			Fovy:       70,
			Projection: rl.CameraPerspective,
		},
	}
	c.SetSensitivity(settings.Sensitivity)
	c.moveCamera()
	return c
}

// Enable binds the controller to an action map and turns the actions on.
func (c *Controller) Enable(actions *input.Actions) {
	c.Disable()
	c.actions = actions

	actions.Move.Enable()
	actions.Look.Enable()
	actions.Crouch.Enable()

	c.subs = append(c.subs,
		actions.Jump.Performed.Subscribe(c.onJump),
		actions.Escape.Performed.Subscribe(c.onEscape),
	)
	actions.Jump.Enable()
	actions.Escape.Enable()
}

// Disable releases the action map.
func (c *Controller) Disable() {
	for _, sub := range c.subs {
		sub.Unsubscribe()
	}
	c.subs = nil
	if c.actions != nil {
		c.actions.DisableAll()
		c.actions = nil
	}
}

// SetSensitivity clamps and applies the look sensitivity.
func (c *Controller) SetSensitivity(v float32) {
	c.settings.Sensitivity = rl.Clamp(v, 0, 2)
}

func (c *Controller) Settings() Settings { return c.settings }

// Update runs once per rendered frame.
func (c *Controller) Update(dt float32) {
	if c.paused() || c.actions == nil {
		return
	}
	c.look()
	c.crouch(dt)
	c.moveCamera()
}

// FixedUpdate runs once per physics step.
func (c *Controller) FixedUpdate() {
	if c.paused() || c.actions == nil {
		return
	}
	c.move()
}

func (c *Controller) look() {
	d := rl.Vector2Scale(c.actions.Look.ReadValue(), c.settings.Sensitivity)

	// Mouse right turns right, which is a negative yaw about +Y here.
	c.yaw = wrapDegrees(c.yaw - d.X)

	// Screen Y grows downward, so a downward drag lowers the pitch.
	limit := rl.Clamp(c.settings.MaxLookAngle, 0, 180)
	c.pitch = rl.Clamp(c.pitch-d.Y, -limit, limit)
}

func (c *Controller) move() {
	in := c.actions.Move.ReadValue()

	dir := rl.Vector3Add(
		rl.Vector3Scale(c.Forward(), in.Y),
		rl.Vector3Scale(c.Right(), in.X),
	)
	dir.Y = 0

	speed := c.settings.MoveSpeed
	if c.crouching {
		speed *= c.settings.CrouchSpeedFactor
	}
	vel := c.body.Velocity()
	c.body.SetVelocity(rl.NewVector3(dir.X*speed, vel.Y, dir.Z*speed))
}

func (c *Controller) crouch(dt float32) {
	c.crouching = c.actions.Crouch.IsHeld()
	target := c.settings.EyeHeight
	if c.crouching {
		target = c.settings.CrouchHeight
	}
	t := rl.Clamp(dt*crouchRate, 0, 1)
	c.eye += (target - c.eye) * t
}

func (c *Controller) onJump(ctx input.Context) {
	if !ctx.Performed || c.paused() {
		return
	}
	c.body.AddImpulse(rl.Vector3Scale(worldUp, c.settings.JumpForce))
}

func (c *Controller) onEscape(ctx input.Context) {
	if !ctx.Performed {
		return
	}
	if c.menu == nil {
		c.log.Warn("pause menu is not assigned")
		return
	}
	c.menu.TogglePause()
}

func (c *Controller) moveCamera() {
	root := rl.Vector3Add(c.body.Position(), rl.NewVector3(0, c.eye, 0))
	c.camera.Position = root
	c.camera.Target = rl.Vector3Add(root, c.ViewDirection())
}

func (c *Controller) paused() bool {
	return c.menu != nil && c.menu.Paused()
}

// Forward is the horizontal facing direction.
func (c *Controller) Forward() rl.Vector3 {
	rad := float64(c.yaw) * math.Pi / 180
	return rl.NewVector3(float32(math.Sin(rad)), 0, float32(math.Cos(rad)))
}

// Right is the horizontal direction to the player's right.
func (c *Controller) Right() rl.Vector3 {
	return rl.Vector3CrossProduct(c.Forward(), worldUp)
}

// ViewDirection is the unit vector the camera looks along.
func (c *Controller) ViewDirection() rl.Vector3 {
	pitch := rl.Clamp(c.pitch, -cameraPitchLimit, cameraPitchLimit)
	p := float64(pitch) * math.Pi / 180
	y := float64(c.yaw) * math.Pi / 180
	return rl.NewVector3(
		float32(math.Cos(p)*math.Sin(y)),
		float32(math.Sin(p)),
		float32(math.Cos(p)*math.Cos(y)),
	)
}

func (c *Controller) Camera() rl.Camera3D { return c.camera }
func (c *Controller) Yaw() float32        { return c.yaw }
func (c *Controller) Pitch() float32      { return c.pitch }
func (c *Controller) EyeHeight() float32  { return c.eye }
func (c *Controller) Crouching() bool     { return c.crouching }

// Face sets the view angles, clamping pitch.
func (c *Controller) Face(yaw, pitch float32) {
	c.yaw = wrapDegrees(yaw)
	limit := rl.Clamp(c.settings.MaxLookAngle, 0, 180)
	c.pitch = rl.Clamp(pitch, -limit, limit)
	c.moveCamera()
}

func wrapDegrees(d float32) float32 {
	w := float32(math.Mod(float64(d), 360))
	if w < 0 {
		w += 360
	}
	return w
}
