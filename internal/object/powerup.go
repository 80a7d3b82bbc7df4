package object

import (
	"time"

	"github.com/tomz197/chaos-survival/internal/physics"
)

// PowerUpKind is the effect a power-up applies on pickup.
type PowerUpKind int

const (
	PowerUpHealth PowerUpKind = iota
	PowerUpShield
	PowerUpSpeed
	PowerUpBullet
)

// PowerUpKinds lists every kind in spawn-table order.
var PowerUpKinds = []PowerUpKind{PowerUpHealth, PowerUpShield, PowerUpSpeed, PowerUpBullet}

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpHealth:
		return "health"
	case PowerUpShield:
		return "shield"
	case PowerUpSpeed:
		return "speed"
	case PowerUpBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// PowerUp is a pickup lying on the field until claimed or expired.
type PowerUp struct {
	physics.Rect
	Kind      PowerUpKind
	SpawnedAt time.Duration
}

// NewPowerUp creates a size×size power-up with its top-left at (x, y).
func NewPowerUp(x, y, size float64, kind PowerUpKind, spawnedAt time.Duration) *PowerUp {
	return &PowerUp{
		Rect:      physics.Rect{X: x, Y: y, W: size, H: size},
		Kind:      kind,
		SpawnedAt: spawnedAt,
	}
}

// Expired returns true once the power-up has been on the field for lifetime.
func (p *PowerUp) Expired(now, lifetime time.Duration) bool {
	return Elapsed(now, p.SpawnedAt) >= lifetime
}

// Bounds implements Object.
func (p *PowerUp) Bounds() physics.Rect {
	return p.Rect
}
