package player

import rl "github.com/gen2brain/raylib-go/raylib"

// Body is the physics collaborator the controller steers.
type Body interface {
	Position() rl.Vector3
	Velocity() rl.Vector3
	SetVelocity(v rl.Vector3)
	AddImpulse(impulse rl.Vector3)
}

// RigidBody is a point mass with gravity, a flat floor and an optional
// square arena. It is enough for walking around a demo scene.
type RigidBody struct {
	pos     rl.Vector3
	vel     rl.Vector3
	Mass    float32
	Gravity float32
	FloorY  float32
	Limit   float32 // half-size of the arena on X and Z; 0 means unbounded
}

func NewRigidBody(pos rl.Vector3) *RigidBody {
	return &RigidBody{pos: pos, Mass: 1, Gravity: 9.81}
}

func (b *RigidBody) Position() rl.Vector3     { return b.pos }
func (b *RigidBody) Velocity() rl.Vector3     { return b.vel }
func (b *RigidBody) SetVelocity(v rl.Vector3) { b.vel = v }

// Teleport moves the body and stops it.
func (b *RigidBody) Teleport(pos rl.Vector3) {
	b.pos = pos
	b.vel = rl.Vector3{}
}

// AddImpulse changes velocity by impulse / mass.
func (b *RigidBody) AddImpulse(impulse rl.Vector3) {
	mass := b.Mass
	if mass <= 0 {
		mass = 1
	}
	b.vel = rl.Vector3Add(b.vel, rl.Vector3Scale(impulse, 1/mass))
}

// Grounded reports whether the body rests on the floor.
func (b *RigidBody) Grounded() bool {
	return b.pos.Y <= b.FloorY && b.vel.Y <= 0
}

// Step integrates one fixed physics step.
func (b *RigidBody) Step(dt float32) {
	if dt <= 0 {
		return
	}
	b.vel.Y -= b.Gravity * dt
	b.pos = rl.Vector3Add(b.pos, rl.Vector3Scale(b.vel, dt))

	if b.pos.Y <= b.FloorY {
		b.pos.Y = b.FloorY
		if b.vel.Y < 0 {
			b.vel.Y = 0
		}
	}
	if b.Limit > 0 {
		b.pos.X = rl.Clamp(b.pos.X, -b.Limit, b.Limit)
		b.pos.Z = rl.Clamp(b.pos.Z, -b.Limit, b.Limit)
	}
}
