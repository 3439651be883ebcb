package theme

import rl "github.com/gen2brain/raylib-go/raylib"

// Palette for the pause menu and HUD. World colours come from the layouts.
var (
	Backdrop      = rl.NewColor(0x0B, 0x10, 0x14, 200)
	Panel         = rl.NewColor(0x1C, 0x23, 0x29, 240)
	PanelRaised   = rl.NewColor(0x21, 0x2A, 0x31, 255)
	Border        = rl.NewColor(0x2E, 0x3A, 0x40, 255)
	Divider       = rl.NewColor(0x26, 0x30, 0x38, 255)
	TextPrimary   = rl.NewColor(0xE8, 0xE2, 0xD8, 255)
	TextSecondary = rl.NewColor(0xA6, 0xAD, 0xB1, 255)
	TextMuted     = rl.NewColor(0x7D, 0x85, 0x8A, 255)
	Accent        = rl.NewColor(0xD4, 0x6A, 0x1E, 255)
	AccentCool    = rl.NewColor(0x2F, 0x5D, 0x42, 255)
	DisabledPanel = rl.NewColor(0x16, 0x1C, 0x21, 230)
)
