package object

import (
	"time"

	"github.com/tomz197/chaos-survival/internal/physics"
)

// EnemyType is the behavioural variant of an enemy.
type EnemyType int

const (
	EnemyNormal EnemyType = iota
	EnemyFast
	EnemyTank
	EnemyShielded
)

// EnemyTypes lists every type in spawn-table order.
var EnemyTypes = []EnemyType{EnemyNormal, EnemyFast, EnemyTank, EnemyShielded}

var enemyTypeNames = map[EnemyType]string{
	EnemyNormal:   "normal",
	EnemyFast:     "fast",
	EnemyTank:     "tank",
	EnemyShielded: "shielded",
}

func (t EnemyType) String() string {
	if name, ok := enemyTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// EnemyStats are the wave-scaled base numbers before type modifiers.
type EnemyStats struct {
	Width, Height    float64
	Speed            float64
	Health           int
	FastMultiplier   float64 // Speed factor for EnemyFast
	TankHealthFactor int     // Health factor for EnemyTank
}

// Enemy chases the player and fires at it.
type Enemy struct {
	physics.Rect
	Type     EnemyType
	Speed    float64
	Health   int
	Shielded bool          // Shielded enemies ignore player bullets
	LastShot time.Duration // Simulation time of the last shot
}

// NewEnemy creates an enemy of the given type with its modifiers applied.
// spawnedAt starts the fire cooldown.
func NewEnemy(x, y float64, typ EnemyType, stats EnemyStats, spawnedAt time.Duration) *Enemy {
	e := &Enemy{
		Rect:     physics.Rect{X: x, Y: y, W: stats.Width, H: stats.Height},
		Type:     typ,
		Speed:    stats.Speed,
		Health:   stats.Health,
		LastShot: spawnedAt,
	}

	switch typ {
	case EnemyFast:
		e.Speed *= stats.FastMultiplier
	case EnemyTank:
		e.Health *= stats.TankHealthFactor
	case EnemyShielded:
		e.Shielded = true
	}

	return e
}

// Chase moves the enemy toward (tx, ty) at its own speed and returns the
// unit heading it used.
func (e *Enemy) Chase(tx, ty float64) (float64, float64) {
	hx, hy := physics.Heading(e.X, e.Y, tx, ty)
	e.Translate(hx*e.Speed, hy*e.Speed)
	return hx, hy
}

// Hit applies damage and reports whether the enemy died.
func (e *Enemy) Hit(damage int) bool {
	e.Health -= damage
	return e.Health <= 0
}

// Bounds implements Object.
func (e *Enemy) Bounds() physics.Rect {
	return e.Rect
}
