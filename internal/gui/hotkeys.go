package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/walkabout/internal/menu"
)

// keyFunc reports a key state for one frame.
type keyFunc func(key int32) bool

// menuBindings maps pause-menu keys to commands, checked in order.
// Escape is not here: the player's Escape action toggles the pause.
var menuBindings = []struct {
	keys []int32
	cmd  menu.Command
}{
	{[]int32{rl.KeyUp, rl.KeyW}, menu.CmdUp},
	{[]int32{rl.KeyDown, rl.KeyS}, menu.CmdDown},
	{[]int32{rl.KeyLeft, rl.KeyA}, menu.CmdLeft},
	{[]int32{rl.KeyRight, rl.KeyD}, menu.CmdRight},
	{[]int32{rl.KeyEnter, rl.KeyKpEnter, rl.KeySpace}, menu.CmdActivate},
	{[]int32{rl.KeyBackspace}, menu.CmdClose},
	{[]int32{rl.KeyLeftBracket}, menu.CmdBack},
	{[]int32{rl.KeyRightBracket}, menu.CmdForward},
}

// menuCommand returns the first bound command pressed this frame.
// Ctrl+Q quits from anywhere in the menu.
func menuCommand(pressed, down keyFunc) menu.Command {
	if (down(rl.KeyLeftControl) || down(rl.KeyRightControl)) && pressed(rl.KeyQ) {
		return menu.CmdQuit
	}
	for _, b := range menuBindings {
		for _, k := range b.keys {
			if pressed(k) {
				return b.cmd
			}
		}
	}
	return menu.CmdNone
}

// raylibSource feeds the player's input actions from the window.
type raylibSource struct{}

func (raylibSource) KeyDown(key int32) bool    { return rl.IsKeyDown(key) }
func (raylibSource) KeyPressed(key int32) bool { return rl.IsKeyPressed(key) }
func (raylibSource) MouseDelta() rl.Vector2    { return rl.GetMouseDelta() }

// cursorLock captures the mouse for looking around.
type cursorLock struct {
	locked bool
}

func (c *cursorLock) LockCursor() {
	if !c.locked {
		rl.DisableCursor()
		c.locked = true
	}
}

func (c *cursorLock) UnlockCursor() {
	if c.locked {
		rl.EnableCursor()
		c.locked = false
	}
}
