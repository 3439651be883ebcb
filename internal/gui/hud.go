package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/walkabout/internal/gui/theme"
	"github.com/appengine-ltd/walkabout/internal/i18n"
	"github.com/appengine-ltd/walkabout/internal/menu"
	"github.com/appengine-ltd/walkabout/internal/scene"
)

const menuWidth = float32(560)

// rowValue formats the right-hand column of a menu row.
func rowValue(m *menu.InGame, loc *i18n.Localizer, item menu.Item) string {
	switch item.Kind {
	case menu.ItemSetting:
		return m.DisplayValue(item)
	case menu.ItemInfo:
		return loc.T(item.Detail)
	case menu.ItemOpen:
		return ">"
	}
	return ""
}

func rowState(item menu.Item, selected bool) theme.RowState {
	switch {
	case item.Kind == menu.ItemInfo:
		return theme.RowReadOnly
	case selected:
		return theme.RowSelected
	}
	return theme.RowNormal
}

func drawMenu(m *menu.InGame, loc *i18n.Localizer, screenW, screenH int32) {
	if m.Overlay().Visible() {
		theme.DrawBackdrop(screenW, screenH)
	}
	p := m.Current()
	if p == nil {
		return
	}

	items := p.Items()
	height := theme.PaddingL*2 + float32(theme.Type.Header) + 24 +
		float32(len(items))*(theme.RowHeight+6) + float32(theme.Type.Small) + theme.PaddingM
	rect := rl.NewRectangle((float32(screenW)-menuWidth)/2, (float32(screenH)-height)/2, menuWidth, height)
	theme.DrawPanel(rect)

	x := rect.X + theme.PaddingL
	y := rect.Y + theme.PaddingL
	theme.DrawHeader(loc.T(p.Title()), int32(x), int32(y))

	depth, cursor := m.History()
	if depth > 1 {
		crumb := fmt.Sprintf("%d/%d", cursor+1, depth)
		theme.DrawHint(crumb, int32(rect.X+rect.Width-theme.PaddingL)-theme.MeasureText(crumb, theme.Type.Small), int32(y))
	}

	y += float32(theme.Type.Header) + 24
	rowW := rect.Width - theme.PaddingL*2
	for i, item := range items {
		row := rl.NewRectangle(x, y, rowW, theme.RowHeight)
		theme.DrawRow(row, rowState(item, i == p.Cursor()), loc.T(item.Label), rowValue(m, loc, item))
		y += theme.RowHeight + 6
	}

	theme.DrawHint(loc.T("HintMenu")+"   "+loc.T("HintHistory"), int32(x), int32(y+6))
}

func drawLoading(load *scene.Load, loc *i18n.Localizer, screenW, screenH int32) {
	if load == nil {
		return
	}
	pct := int(load.Progress()*100 + 0.5)
	label := loc.Tf("LoadingScene", map[string]any{"Scene": load.Scene(), "Percent": pct})
	bar := rl.NewRectangle(float32(screenW)/2-200, float32(screenH)-80, 400, 12)
	theme.DrawProgress(bar, float32(load.Progress()), label)
}

func drawWalkHint(loc *i18n.Localizer, sceneName string, screenH int32) {
	theme.DrawHint(sceneName, 16, 16)
	theme.DrawHint(loc.T("HintWalk"), 16, screenH-16-theme.Type.Small)
}
