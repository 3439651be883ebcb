package gui

import (
	"math"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/walkabout/internal/gui/theme"
)

type typographyState struct {
	font  rl.Font
	owned bool
}

var uiType typographyState

func initTypography(assetDir string) {
	uiType.font = rl.GetFontDefault()

	candidates := []string{
		filepath.Join(assetDir, "fonts", "Inter-Regular.ttf"),
		filepath.Join(assetDir, "fonts", "NotoSans-Regular.ttf"),
	}
	if f, ok := loadFontFromCandidates(candidates, 36); ok {
		uiType.font = f
		uiType.owned = true
	}

	rl.SetTextureFilter(uiType.font.Texture, rl.FilterBilinear)
	theme.SetTextRenderer(drawText, measureText)
}

func shutdownTypography() {
	if uiType.owned && uiType.font.Texture.ID != 0 {
		rl.UnloadFont(uiType.font)
	}
	uiType = typographyState{}
}

func loadFontFromCandidates(candidates []string, fontSize int32) (rl.Font, bool) {
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		font := rl.LoadFontEx(path, fontSize, nil, 0)
		if font.Texture.ID == 0 {
			continue
		}
		return font, true
	}
	return rl.Font{}, false
}

func drawText(text string, x, y, fontSize int32, clr rl.Color) {
	if uiType.font.Texture.ID == 0 {
		rl.DrawText(text, x, y, fontSize, clr)
		return
	}
	rl.DrawTextEx(uiType.font, text, rl.Vector2{X: float32(x), Y: float32(y)}, float32(fontSize), 1, clr)
}

func measureText(text string, fontSize int32) int32 {
	if uiType.font.Texture.ID == 0 {
		return rl.MeasureText(text, fontSize)
	}
	return int32(math.Round(float64(rl.MeasureTextEx(uiType.font, text, float32(fontSize), 1).X)))
}
