package input

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

type fakeSource struct {
	down    map[int32]bool
	pressed map[int32]bool
	mouse   rl.Vector2
}

func newFakeSource() *fakeSource {
	return &fakeSource{down: map[int32]bool{}, pressed: map[int32]bool{}}
}

func (f *fakeSource) KeyDown(k int32) bool    { return f.down[k] }
func (f *fakeSource) KeyPressed(k int32) bool { return f.pressed[k] }
func (f *fakeSource) MouseDelta() rl.Vector2  { return f.mouse }

func TestDisabledActionsReadZero(t *testing.T) {
	a := NewActions()
	src := newFakeSource()
	src.down[rl.KeyW] = true
	src.mouse = rl.NewVector2(3, 4)

	a.Poll(src)

	assert.Equal(t, rl.Vector2{}, a.Move.ReadValue())
	assert.Equal(t, rl.Vector2{}, a.Look.ReadValue())
}

func TestMoveCompositeNormalisesDiagonals(t *testing.T) {
	a := NewActions()
	a.Move.Enable()
	src := newFakeSource()

	src.down[rl.KeyW] = true
	a.Poll(src)
	assert.Equal(t, rl.NewVector2(0, 1), a.Move.ReadValue())

	src.down[rl.KeyRight] = true
	a.Poll(src)
	v := a.Move.ReadValue()
	assert.InDelta(t, 0.7071, v.X, 1e-3)
	assert.InDelta(t, 0.7071, v.Y, 1e-3)

	src.down[rl.KeyS] = true
	a.Poll(src)
	assert.Equal(t, rl.NewVector2(1, 0), a.Move.ReadValue())
}

func TestLookReadsMouseDelta(t *testing.T) {
	a := NewActions()
	a.Look.Enable()
	src := newFakeSource()
	src.mouse = rl.NewVector2(-2, 5)

	a.Poll(src)

	assert.Equal(t, rl.NewVector2(-2, 5), a.Look.ReadValue())
}

func TestButtonPerformedOnlyWhileEnabled(t *testing.T) {
	a := NewActions()
	var got []Context
	a.Jump.Performed.Subscribe(func(c Context) { got = append(got, c) })
	src := newFakeSource()
	src.pressed[rl.KeySpace] = true

	a.Poll(src)
	assert.Empty(t, got)

	a.Jump.Enable()
	a.Poll(src)
	assert.Equal(t, []Context{{Action: "Jump", Performed: true}}, got)
}

func TestCrouchHeldAndDisableClears(t *testing.T) {
	a := NewActions()
	a.Crouch.Enable()
	a.Move.Enable()
	src := newFakeSource()
	src.down[rl.KeyC] = true
	src.down[rl.KeyA] = true

	a.Poll(src)
	assert.True(t, a.Crouch.IsHeld())
	assert.Equal(t, rl.NewVector2(-1, 0), a.Move.ReadValue())

	a.DisableAll()
	assert.False(t, a.Crouch.IsHeld())
	assert.False(t, a.Crouch.Enabled())
	assert.Equal(t, rl.Vector2{}, a.Move.ReadValue())
}
