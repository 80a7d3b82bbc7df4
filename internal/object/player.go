package object

import (
	"time"

	"github.com/tomz197/chaos-survival/internal/physics"
)

// Player is the controlled entity. Only the simulation mutates it.
type Player struct {
	physics.Rect

	Name  string
	Color string

	BaseSpeed   float64 // Speed without buffs
	Speed       float64 // Current speed, raised by the speed power-up
	BulletSpeed float64 // Current bullet speed, raised by the bullet power-up

	Health int
	Score  int

	Bullets      []*Bullet
	ShieldActive bool
	LastShot     time.Duration // Simulation time of the last fire window
}

// PlayerSpec describes a fresh player.
type PlayerSpec struct {
	Name        string
	Color       string
	Width       float64
	Height      float64
	Speed       float64
	BulletSpeed float64
	Health      int
}

// NewPlayer creates a player at (x, y) with full health and no score.
// LastShot starts far enough in the past that the first fire window is open.
func NewPlayer(x, y float64, spec PlayerSpec) *Player {
	return &Player{
		Rect:        physics.Rect{X: x, Y: y, W: spec.Width, H: spec.Height},
		Name:        spec.Name,
		Color:       spec.Color,
		BaseSpeed:   spec.Speed,
		Speed:       spec.Speed,
		BulletSpeed: spec.BulletSpeed,
		Health:      spec.Health,
		LastShot:    -time.Hour,
	}
}

// Move steps the player by Speed along each held direction.
// Each step is clamped so the rect stays inside the screen.
func (p *Player) Move(left, right, up, down bool, screen Screen) {
	if left {
		p.X = max(p.X-p.Speed, 0)
	}
	if right {
		p.X = min(p.X+p.Speed, max(screen.Width-p.W, 0))
	}
	if up {
		p.Y = max(p.Y-p.Speed, 0)
	}
	if down {
		p.Y = min(p.Y+p.Speed, max(screen.Height-p.H, 0))
	}
}

// Damage subtracts amount from health, never going below zero.
func (p *Player) Damage(amount int) {
	p.Health = physics.Clamp(p.Health-amount, 0, p.Health)
}

// Heal adds amount to health, capped at maxHealth.
func (p *Player) Heal(amount, maxHealth int) {
	p.Health = physics.Clamp(p.Health+amount, 0, maxHealth)
}

// Alive returns true while health is above zero.
func (p *Player) Alive() bool {
	return p.Health > 0
}

// Bounds implements Object.
func (p *Player) Bounds() physics.Rect {
	return p.Rect
}
