package sim

import (
	"time"

	"github.com/tomz197/chaos-survival/internal/object"
)

// Snapshot is a read-only copy of a session for renderers.
// Nothing in it aliases the live state.
type Snapshot struct {
	Phase    Phase
	Paused   bool
	GameOver bool

	Player        object.Player // Bullets is always nil; see PlayerBullets
	Enemies       []object.Enemy
	PlayerBullets []object.Bullet
	EnemyBullets  []object.Bullet
	PowerUps      []object.PowerUp

	Score   int
	Health  int
	Wave    int
	Elapsed time.Duration
	Flash   Flash

	ShieldRemaining time.Duration
	SpeedRemaining  time.Duration
	BulletRemaining time.Duration
	Screen          object.Screen
}

// Snapshot copies the current session for rendering.
// Before the first session it returns an idle snapshot with the scene size.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:    c.phase,
		Paused:   c.phase == PhasePaused,
		GameOver: c.phase == PhaseGameOver,
		Wave:     1,
	}

	s := c.state
	if s == nil {
		snap.Screen = c.screen()
		return snap
	}

	snap.Player = *s.Player
	snap.Player.Bullets = nil
	snap.PlayerBullets = copyValues(s.Player.Bullets)
	snap.Enemies = copyValues(s.Enemies)
	snap.EnemyBullets = copyValues(s.EnemyBullets)
	snap.PowerUps = copyValues(s.PowerUps)

	snap.Score = s.Player.Score
	snap.Health = s.Player.Health
	snap.Wave = s.Wave(c.tuning.WaveDuration)
	snap.Elapsed = s.Now
	snap.Flash = s.Flash
	snap.ShieldRemaining = s.EffectRemaining(EffectShield)
	snap.SpeedRemaining = s.EffectRemaining(EffectSpeed)
	snap.BulletRemaining = s.EffectRemaining(EffectBulletSpeed)
	snap.Screen = s.Screen

	return snap
}

func copyValues[T any](items []*T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = *item
	}
	return out
}

// Objects returns every drawable entity in draw order: power-ups, enemies,
// enemy bullets, player bullets, player.
func (s *Snapshot) Objects() []object.Object {
	objs := make([]object.Object, 0, len(s.PowerUps)+len(s.Enemies)+len(s.EnemyBullets)+len(s.PlayerBullets)+1)
	for i := range s.PowerUps {
		objs = append(objs, &s.PowerUps[i])
	}
	for i := range s.Enemies {
		objs = append(objs, &s.Enemies[i])
	}
	for i := range s.EnemyBullets {
		objs = append(objs, &s.EnemyBullets[i])
	}
	for i := range s.PlayerBullets {
		objs = append(objs, &s.PlayerBullets[i])
	}
	if s.Player.W > 0 {
		objs = append(objs, &s.Player)
	}
	return objs
}
