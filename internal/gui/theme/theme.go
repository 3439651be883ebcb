// Package theme draws the pause menu widgets.
package theme

import rl "github.com/gen2brain/raylib-go/raylib"

// TextDrawFunc renders text with caller-provided font handling.
type TextDrawFunc func(text string, x, y, fontSize int32, clr rl.Color)

// TextMeasureFunc reports text width in pixels for the active font.
type TextMeasureFunc func(text string, fontSize int32) int32

var (
	textDrawFn TextDrawFunc = func(text string, x, y, fontSize int32, clr rl.Color) {
		rl.DrawText(text, x, y, fontSize, clr)
	}
	textMeasureFn TextMeasureFunc = func(text string, fontSize int32) int32 {
		return rl.MeasureText(text, fontSize)
	}
)

// SetTextRenderer routes widget text through the host's loaded font.
func SetTextRenderer(draw TextDrawFunc, measure TextMeasureFunc) {
	if draw != nil {
		textDrawFn = draw
	}
	if measure != nil {
		textMeasureFn = measure
	}
}

func DrawText(text string, x, y, fontSize int32, clr rl.Color) {
	textDrawFn(text, x, y, fontSize, clr)
}

func MeasureText(text string, fontSize int32) int32 {
	return textMeasureFn(text, fontSize)
}
