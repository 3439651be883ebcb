package menu

import "github.com/appengine-ltd/walkabout/internal/prefs"

// Panel names used by DefaultPanels.
const (
	PanelOverlay  = "overlay"
	PanelMain     = "main"
	PanelSettings = "settings"
	PanelControls = "controls"
)

// DefaultPanels returns the pause overlay, the pause main menu and its
// sub-menus.
func DefaultPanels() *Registry {
	return NewRegistry(
		NewPanel(PanelOverlay, ""),
		NewPanel(PanelMain, "PauseTitle",
			Item{Label: "MenuResume", Kind: ItemResume},
			Item{Label: "MenuSettings", Kind: ItemOpen, Target: PanelSettings},
			Item{Label: "MenuControls", Kind: ItemOpen, Target: PanelControls},
			Item{Label: "MenuQuit", Kind: ItemQuit},
		),
		NewPanel(PanelSettings, "SettingsTitle",
			Item{Label: "SettingVolume", Kind: ItemSetting, Setting: prefs.KeyVolume},
			Item{Label: "SettingSensitivity", Kind: ItemSetting, Setting: prefs.KeySensitivity},
			Item{Label: "MenuBack", Kind: ItemBack},
		),
		NewPanel(PanelControls, "ControlsTitle",
			Item{Label: "ControlMove", Kind: ItemInfo, Detail: "ControlMoveKeys"},
			Item{Label: "ControlLook", Kind: ItemInfo, Detail: "ControlLookKeys"},
			Item{Label: "ControlJump", Kind: ItemInfo, Detail: "ControlJumpKeys"},
			Item{Label: "ControlCrouch", Kind: ItemInfo, Detail: "ControlCrouchKeys"},
			Item{Label: "ControlPause", Kind: ItemInfo, Detail: "ControlPauseKeys"},
			Item{Label: "MenuBack", Kind: ItemBack},
		),
	)
}
