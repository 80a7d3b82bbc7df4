// Package object defines the entities that live in a survival run.
package object

import (
	"time"

	"github.com/tomz197/chaos-survival/internal/physics"
)

// Object is anything with a bounding box that a renderer can draw.
type Object interface {
	Bounds() physics.Rect
}

// Screen represents the scene dimensions the simulation is clamped to.
type Screen struct {
	Width  float64
	Height float64
}

// Contains reports whether the point lies strictly inside the screen.
// Bullets are pruned on their top-left corner with this test.
func (s Screen) Contains(x, y float64) bool {
	return x > 0 && x < s.Width && y > 0 && y < s.Height
}

// Bullet is a projectile fired by the player or by an enemy.
// A bullet with zero velocity is inert: it stays where it is until pruned.
type Bullet struct {
	physics.Rect
	VX, VY float64
}

// NewBullet creates a size×size bullet centered on (cx, cy).
func NewBullet(cx, cy, size, vx, vy float64) *Bullet {
	return &Bullet{
		Rect: physics.CenteredAt(cx, cy, size, size),
		VX:   vx,
		VY:   vy,
	}
}

// Advance moves the bullet by its velocity.
func (b *Bullet) Advance() {
	b.Translate(b.VX, b.VY)
}

// Stop zeroes the velocity, leaving the bullet inert.
func (b *Bullet) Stop() {
	b.VX, b.VY = 0, 0
}

// Inert returns true if the bullet no longer moves.
func (b *Bullet) Inert() bool {
	return b.VX == 0 && b.VY == 0
}

// Bounds implements Object.
func (b *Bullet) Bounds() physics.Rect {
	return b.Rect
}

// Elapsed returns how long ago a timestamp on the simulation clock was.
func Elapsed(now, since time.Duration) time.Duration {
	return now - since
}
