package sim

import (
	"math/rand"
	"time"

	"github.com/tomz197/chaos-survival/internal/loop/config"
	"github.com/tomz197/chaos-survival/internal/object"
)

// Spawner creates enemies and power-ups on fixed intervals of the simulation
// clock and removes power-ups that outlive their lifetime.
type Spawner struct {
	rng    *rand.Rand
	tuning config.Tuning

	nextEnemy   time.Duration
	nextPowerUp time.Duration
	stopped     bool
}

// NewSpawner creates a stopped spawner. Call Start when a session begins.
func NewSpawner(rng *rand.Rand, t config.Tuning) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Spawner{
		rng:     rng,
		tuning:  t,
		stopped: true,
	}
}

// Start arms both timers relative to now. The first spawn of each kind
// happens one full interval later.
func (sp *Spawner) Start(now time.Duration) {
	sp.nextEnemy = now + sp.tuning.EnemySpawnInterval
	sp.nextPowerUp = now + sp.tuning.PowerUpSpawnInterval
	sp.stopped = false
}

// Stop disarms both timers. Update is a no-op until Start is called again.
func (sp *Spawner) Stop() {
	sp.stopped = true
	sp.nextEnemy = 0
	sp.nextPowerUp = 0
}

// Running returns true while the timers are armed.
func (sp *Spawner) Running() bool {
	return !sp.stopped
}

// Update fires due timers and expires old power-ups. Each timer inserts at
// most one entity per call; a timer that fell several intervals behind
// catches up one interval per tick.
func (sp *Spawner) Update(s *State) {
	if sp.stopped {
		return
	}

	if s.Now >= sp.nextEnemy {
		sp.SpawnEnemy(s)
		sp.nextEnemy += sp.tuning.EnemySpawnInterval
	}

	if s.Now >= sp.nextPowerUp {
		sp.SpawnPowerUp(s)
		sp.nextPowerUp += sp.tuning.PowerUpSpawnInterval
	}

	lifetime := sp.tuning.PowerUpLifetime
	s.PowerUps = removeIf(s.PowerUps, func(p *object.PowerUp) bool {
		return p.Expired(s.Now, lifetime)
	})
}

// SpawnEnemy adds one enemy just above the top edge at a random x.
// The type is uniform over all enemy types and stats scale with the wave.
func (sp *Spawner) SpawnEnemy(s *State) *object.Enemy {
	t := sp.tuning
	stats := EnemyStatsForWave(t, s.Wave(t.WaveDuration))
	typ := object.EnemyTypes[sp.rng.Intn(len(object.EnemyTypes))]
	x := sp.rng.Float64() * (s.Screen.Width - stats.Width)

	enemy := object.NewEnemy(x, -stats.Height, typ, stats, s.Now)
	s.AddEnemy(enemy)
	return enemy
}

// SpawnPowerUp adds one power-up at a random position inside the screen.
func (sp *Spawner) SpawnPowerUp(s *State) *object.PowerUp {
	size := sp.tuning.PowerUpSize
	kind := object.PowerUpKinds[sp.rng.Intn(len(object.PowerUpKinds))]
	x := sp.rng.Float64() * (s.Screen.Width - size)
	y := sp.rng.Float64() * (s.Screen.Height - size)

	powerUp := object.NewPowerUp(x, y, size, kind, s.Now)
	s.AddPowerUp(powerUp)
	return powerUp
}

// EnemyStatsForWave returns base enemy stats for wave w before type modifiers:
// speed = base + perWave·w, health = base + perWave·w.
func EnemyStatsForWave(t config.Tuning, wave int) object.EnemyStats {
	return object.EnemyStats{
		Width:            t.EnemyWidth,
		Height:           t.EnemyHeight,
		Speed:            t.EnemyBaseSpeed + float64(wave)*t.EnemySpeedPerWave,
		Health:           t.EnemyBaseHealth + wave*t.EnemyHealthPerWave,
		FastMultiplier:   t.FastSpeedMultiplier,
		TankHealthFactor: t.TankHealthFactor,
	}
}
