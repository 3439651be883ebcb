package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/walkabout/internal/level"
	"github.com/appengine-ltd/walkabout/internal/player"
)

var (
	defaultSky    = rl.NewColor(0x14, 0x1A, 0x1F, 255)
	defaultGround = rl.NewColor(0x21, 0x2A, 0x31, 255)
	wireColor     = rl.Fade(rl.Black, 0.35)
)

type worldBlock struct {
	pos   rl.Vector3
	size  rl.Vector3
	color rl.Color
}

// world is a layout converted to raylib types once per activation.
type world struct {
	name   string
	size   float32
	spawn  rl.Vector3
	sky    rl.Color
	ground rl.Color
	blocks []worldBlock
}

func newWorld(l *level.Layout) world {
	w := world{
		name:   l.Name,
		size:   l.Size,
		spawn:  vec3(l.Spawn),
		sky:    colorOr(l.Sky, defaultSky),
		ground: colorOr(l.Ground, defaultGround),
		blocks: make([]worldBlock, len(l.Blocks)),
	}
	for i, b := range l.Blocks {
		w.blocks[i] = worldBlock{pos: vec3(b.Pos), size: vec3(b.Size), color: colorOr(b.Color, rl.Gray)}
	}
	return w
}

// place puts the body at the spawn point and fences it into the floor.
func (w world) place(body *player.RigidBody) {
	body.Teleport(w.spawn)
	body.Limit = w.size/2 - 0.5
}

func (w world) draw() {
	if w.size <= 0 {
		return
	}
	rl.DrawPlane(rl.Vector3{}, rl.NewVector2(w.size, w.size), w.ground)
	rl.DrawGrid(int32(w.size), 1)
	for _, b := range w.blocks {
		rl.DrawCube(b.pos, b.size.X, b.size.Y, b.size.Z, b.color)
		rl.DrawCubeWires(b.pos, b.size.X, b.size.Y, b.size.Z, wireColor)
	}
}

func vec3(v level.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

func colorOr(hex string, fallback rl.Color) rl.Color {
	c, err := level.ParseColor(hex)
	if err != nil {
		return fallback
	}
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
