package theme

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// NineSlice is a scalable 9-patch texture. Border sizes are in source
// pixels; the centre and edges stretch, corners do not.
type NineSlice struct {
	Tex                      rl.Texture2D
	Left, Right, Top, Bottom int32
}

// Skin holds optional textures. Zero-value slots fall back to flat fills.
var Skin struct {
	Panel  NineSlice
	loaded bool
}

const panelSlice = int32(8)

// LoadSkin reads textures from dir. Call once after rl.InitWindow.
func LoadSkin(dir string) {
	if Skin.loaded {
		return
	}
	Skin.loaded = true
	Skin.Panel = loadNineSlice(dir+"/panel_9slice.png", panelSlice)
}

// UnloadSkin releases textures. Call before rl.CloseWindow.
func UnloadSkin() {
	if Skin.Panel.Tex.ID != 0 {
		rl.UnloadTexture(Skin.Panel.Tex)
	}
	Skin.Panel = NineSlice{}
	Skin.loaded = false
}

// DrawNineSlice renders ns stretched over dest.
func DrawNineSlice(ns NineSlice, dest rl.Rectangle, tint rl.Color) {
	sw, sh := float32(ns.Tex.Width), float32(ns.Tex.Height)
	l, r, t, b := float32(ns.Left), float32(ns.Right), float32(ns.Top), float32(ns.Bottom)

	dl, dr, dt, db := l, r, t, b
	if dl+dr > dest.Width {
		dl, dr = dest.Width/2, dest.Width/2
	}
	if dt+db > dest.Height {
		dt, db = dest.Height/2, dest.Height/2
	}

	srcX := [3]float32{0, l, sw - r}
	srcW := [3]float32{l, sw - l - r, r}
	srcY := [3]float32{0, t, sh - b}
	srcH := [3]float32{t, sh - t - b, b}
	dstX := [3]float32{dest.X, dest.X + dl, dest.X + dest.Width - dr}
	dstW := [3]float32{dl, dest.Width - dl - dr, dr}
	dstY := [3]float32{dest.Y, dest.Y + dt, dest.Y + dest.Height - db}
	dstH := [3]float32{dt, dest.Height - dt - db, db}

	for row := range 3 {
		for col := range 3 {
			if dstW[col] <= 0 || dstH[row] <= 0 {
				continue
			}
			src := rl.NewRectangle(srcX[col], srcY[row], srcW[col], srcH[row])
			dst := rl.NewRectangle(dstX[col], dstY[row], dstW[col], dstH[row])
			rl.DrawTexturePro(ns.Tex, src, dst, rl.Vector2{}, 0, tint)
		}
	}
}

func loadNineSlice(path string, border int32) NineSlice {
	ns := NineSlice{Left: border, Right: border, Top: border, Bottom: border}
	if _, err := os.Stat(path); err != nil {
		return ns
	}
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return ns
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	ns.Tex = tex
	return ns
}
