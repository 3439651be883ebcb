// Package input maps raw keyboard and mouse state to named player actions.
package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/walkabout/internal/signal"
)

// Source is polled once per frame. The raylib window implements it in the
// gui package; tests use fakes.
type Source interface {
	KeyDown(key int32) bool
	KeyPressed(key int32) bool
	MouseDelta() rl.Vector2
}

// Kind says how an action produces values.
type Kind int

const (
	KindButton Kind = iota
	KindVector
	KindPointer
)

// Context is delivered to Performed subscribers.
type Context struct {
	Action    string
	Performed bool
}

// Composite binds four keys to a 2D vector.
type Composite struct {
	Up, Down, Left, Right []int32
}

// Action is one named input.
type Action struct {
	Name      string
	Kind      Kind
	Keys      []int32   // KindButton
	Composite Composite // KindVector

	enabled bool
	value   rl.Vector2
	held    bool

	// Performed fires when a button action is pressed while enabled.
	Performed signal.Signal[Context]
}

func (a *Action) Enable()       { a.enabled = true }
func (a *Action) Enabled() bool { return a.enabled }

// Disable stops the action and clears its value.
func (a *Action) Disable() {
	a.enabled = false
	a.value = rl.Vector2{}
	a.held = false
}

// ReadValue returns the last polled vector. Zero while disabled.
func (a *Action) ReadValue() rl.Vector2 {
	return a.value
}

// IsHeld reports whether a button action is down.
func (a *Action) IsHeld() bool {
	return a.held
}

func (a *Action) poll(src Source) {
	if !a.enabled {
		return
	}
	switch a.Kind {
	case KindVector:
		a.value = compositeValue(src, a.Composite)
	case KindPointer:
		a.value = src.MouseDelta()
	case KindButton:
		a.held = anyDown(src, a.Keys)
		if anyPressed(src, a.Keys) {
			a.Performed.Emit(Context{Action: a.Name, Performed: true})
		}
	}
}

func compositeValue(src Source, c Composite) rl.Vector2 {
	var v rl.Vector2
	if anyDown(src, c.Right) {
		v.X++
	}
	if anyDown(src, c.Left) {
		v.X--
	}
	if anyDown(src, c.Up) {
		v.Y++
	}
	if anyDown(src, c.Down) {
		v.Y--
	}
	if v.X != 0 && v.Y != 0 {
		v = rl.Vector2Normalize(v)
	}
	return v
}

func anyDown(src Source, keys []int32) bool {
	for _, k := range keys {
		if src.KeyDown(k) {
			return true
		}
	}
	return false
}

func anyPressed(src Source, keys []int32) bool {
	for _, k := range keys {
		if src.KeyPressed(k) {
			return true
		}
	}
	return false
}

// Actions is the player action map.
type Actions struct {
	Move   *Action
	Look   *Action
	Jump   *Action
	Escape *Action
	Crouch *Action
}

// NewActions returns the default bindings. Every action starts disabled.
func NewActions() *Actions {
	return &Actions{
		Move: &Action{Name: "Move", Kind: KindVector, Composite: Composite{
			Up:    []int32{rl.KeyW, rl.KeyUp},
			Down:  []int32{rl.KeyS, rl.KeyDown},
			Left:  []int32{rl.KeyA, rl.KeyLeft},
			Right: []int32{rl.KeyD, rl.KeyRight},
		}},
		Look:   &Action{Name: "Look", Kind: KindPointer},
		Jump:   &Action{Name: "Jump", Kind: KindButton, Keys: []int32{rl.KeySpace}},
		Escape: &Action{Name: "Escape", Kind: KindButton, Keys: []int32{rl.KeyEscape, rl.KeyP}},
		Crouch: &Action{Name: "Crouch", Kind: KindButton, Keys: []int32{rl.KeyLeftControl, rl.KeyC}},
	}
}

// All returns the actions in a stable order.
func (a *Actions) All() []*Action {
	return []*Action{a.Move, a.Look, a.Jump, a.Escape, a.Crouch}
}

// Poll reads src into every enabled action and fires Performed callbacks.
func (a *Actions) Poll(src Source) {
	for _, act := range a.All() {
		act.poll(src)
	}
}

// DisableAll disables every action.
func (a *Actions) DisableAll() {
	for _, act := range a.All() {
		act.Disable()
	}
}
