package theme

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	PaddingS = float32(12)
	PaddingM = float32(18)
	PaddingL = float32(24)

	CornerRadius   = float32(0.08)
	CornerSegments = int32(8)

	BorderWidth      = float32(1.2)
	BorderWidthFocus = float32(2.0)
	RowHeight        = float32(42)
	AccentStripWidth = float32(4)
)

type RowState int

const (
	RowNormal RowState = iota
	RowSelected
	RowReadOnly
)

// DrawBackdrop dims the whole screen behind the pause menu.
func DrawBackdrop(screenW, screenH int32) {
	rl.DrawRectangle(0, 0, screenW, screenH, Backdrop)
}

// DrawPanel draws the menu card. A loaded panel skin replaces the flat fill.
func DrawPanel(rect rl.Rectangle) {
	if Skin.Panel.Tex.ID != 0 {
		DrawNineSlice(Skin.Panel, rect, rl.White)
	} else {
		rl.DrawRectangleRounded(rect, CornerRadius, CornerSegments, Panel)
	}
	rl.DrawRectangleRoundedLinesEx(rect, CornerRadius, CornerSegments, BorderWidth, mix(Border, AccentCool, 0.35))
}

// DrawRow draws one menu row with a label on the left and a value on the
// right.
func DrawRow(rect rl.Rectangle, state RowState, label, value string) {
	fill := rl.Fade(PanelRaised, 0.45)
	stroke := rl.Fade(Border, 0.9)
	left := TextPrimary
	right := TextSecondary
	strokeWidth := BorderWidth

	switch state {
	case RowSelected:
		fill = PanelRaised
		stroke = Accent
		strokeWidth = BorderWidthFocus
		right = Accent
	case RowReadOnly:
		fill = DisabledPanel
		stroke = rl.Fade(Border, 0.6)
		left = TextSecondary
		right = TextMuted
	}

	rl.DrawRectangleRounded(rect, CornerRadius, CornerSegments, fill)
	rl.DrawRectangleRoundedLinesEx(rect, CornerRadius, CornerSegments, strokeWidth, stroke)
	if state == RowSelected {
		rl.DrawRectangleRec(rl.NewRectangle(rect.X+1, rect.Y+2, AccentStripWidth, rect.Height-4), Accent)
	}

	textY := int32(rect.Y + (rect.Height-float32(Type.Body))/2)
	if label != "" {
		DrawText(label, int32(rect.X+PaddingM), textY, Type.Body, left)
	}
	if value != "" {
		w := MeasureText(value, Type.Body)
		DrawText(value, int32(rect.X+rect.Width-PaddingM)-w, textY, Type.Body, right)
	}
}

// DrawHeader draws a title with an accent underline.
func DrawHeader(text string, x, y int32) {
	if text == "" {
		return
	}
	DrawText(text, x, y, Type.Header, TextPrimary)
	lineW := max(int32(float32(MeasureText(text, Type.Header))*0.6), 44)
	lineY := float32(y + Type.Header + 6)
	rl.DrawLineEx(rl.NewVector2(float32(x), lineY), rl.NewVector2(float32(x+lineW), lineY), 2, Accent)
}

func DrawHint(text string, x, y int32) {
	if text == "" {
		return
	}
	DrawText(text, x, y, Type.Small, TextMuted)
}

// DrawProgress draws a labelled bar for fraction in 0..1.
func DrawProgress(rect rl.Rectangle, fraction float32, label string) {
	fraction = rl.Clamp(fraction, 0, 1)
	rl.DrawRectangleRec(rect, rl.Fade(PanelRaised, 0.9))
	fill := rl.NewRectangle(rect.X+1, rect.Y+1, (rect.Width-2)*fraction, rect.Height-2)
	if fill.Width > 0 {
		rl.DrawRectangleRec(fill, Accent)
	}
	rl.DrawRectangleLinesEx(rect, 1, rl.Fade(Border, 0.95))
	if label != "" {
		DrawText(label, int32(rect.X), int32(rect.Y)-Type.Small-6, Type.Small, TextSecondary)
	}
}

func mix(a, b rl.Color, t float32) rl.Color {
	t = rl.Clamp(t, 0, 1)
	inv := 1 - t
	return rl.NewColor(
		uint8(float32(a.R)*inv+float32(b.R)*t),
		uint8(float32(a.G)*inv+float32(b.G)*t),
		uint8(float32(a.B)*inv+float32(b.B)*t),
		uint8(float32(a.A)*inv+float32(b.A)*t),
	)
}
