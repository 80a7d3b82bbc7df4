// Package sim runs a survival session: entity registry, spawners, the
// per-tick step and the session state machine.
package sim

import (
	"time"

	"github.com/tomz197/chaos-survival/internal/loop/config"
	"github.com/tomz197/chaos-survival/internal/object"
)

// BoundsFunc returns the current scene dimensions.
type BoundsFunc func() (width, height float64)

// FixedBounds returns a BoundsFunc that always reports w×h.
func FixedBounds(w, h float64) BoundsFunc {
	return func() (float64, float64) { return w, h }
}

// State is everything one session owns. Collections keep insertion order.
// The player's bullets live on the Player.
type State struct {
	Player       *object.Player
	Enemies      []*object.Enemy
	EnemyBullets []*object.Bullet
	PowerUps     []*object.PowerUp

	Screen object.Screen
	Now    time.Duration // Simulated time since the session started
	Flash  Flash         // Transient cue for the renderer

	effects []Effect
}

// NewState creates a fresh session state with the player near the bottom center.
func NewState(screen object.Screen, t config.Tuning, name, color string) *State {
	x := screen.Width/2 - t.PlayerWidth/2
	y := screen.Height - t.PlayerSpawnOffset

	player := object.NewPlayer(x, y, object.PlayerSpec{
		Name:        name,
		Color:       color,
		Width:       t.PlayerWidth,
		Height:      t.PlayerHeight,
		Speed:       t.PlayerBaseSpeed,
		BulletSpeed: t.BulletSpeed,
		Health:      t.MaxHealth,
	})

	return &State{
		Player:       player,
		Enemies:      []*object.Enemy{},
		EnemyBullets: []*object.Bullet{},
		PowerUps:     []*object.PowerUp{},
		Screen:       screen,
	}
}

// Wave returns the difficulty tier: one more every waveDuration of play.
func (s *State) Wave(waveDuration time.Duration) int {
	return WaveAt(s.Now, waveDuration)
}

// WaveAt returns floor(elapsed/waveDuration)+1.
func WaveAt(elapsed, waveDuration time.Duration) int {
	if elapsed < 0 || waveDuration <= 0 {
		return 1
	}
	return int(elapsed/waveDuration) + 1
}

// AddEnemy appends an enemy to the registry.
func (s *State) AddEnemy(e *object.Enemy) {
	s.Enemies = append(s.Enemies, e)
}

// AddPowerUp appends a power-up to the registry.
func (s *State) AddPowerUp(p *object.PowerUp) {
	s.PowerUps = append(s.PowerUps, p)
}

// AddEnemyBullet appends an enemy bullet to the registry.
func (s *State) AddEnemyBullet(b *object.Bullet) {
	s.EnemyBullets = append(s.EnemyBullets, b)
}

// AddPlayerBullet appends a bullet to the player's active bullets.
func (s *State) AddPlayerBullet(b *object.Bullet) {
	s.Player.Bullets = append(s.Player.Bullets, b)
}

// RemoveEnemy drops a single enemy, keeping the order of the rest.
func (s *State) RemoveEnemy(target *object.Enemy) {
	s.Enemies = removeIf(s.Enemies, func(e *object.Enemy) bool { return e == target })
}

// RemovePowerUp drops a single power-up, keeping the order of the rest.
func (s *State) RemovePowerUp(target *object.PowerUp) {
	s.PowerUps = removeIf(s.PowerUps, func(p *object.PowerUp) bool { return p == target })
}

// removeIf compacts items in place, dropping those for which drop returns true.
// The tail is zeroed so removed pointers can be collected.
func removeIf[T any](items []T, drop func(T) bool) []T {
	kept := items[:0]
	for _, item := range items {
		if !drop(item) {
			kept = append(kept, item)
		}
	}
	var zero T
	for i := len(kept); i < len(items); i++ {
		items[i] = zero
	}
	return kept
}
