package sim

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/chaos-survival/internal/object"
)

func TestEnemyStatsForWave(t *testing.T) {
	tuning := testTuning()
	for wave := 1; wave <= 20; wave++ {
		stats := EnemyStatsForWave(tuning, wave)
		if stats.Health != 30+5*wave {
			t.Errorf("wave %d: health = %d, want %d", wave, stats.Health, 30+5*wave)
		}
		wantSpeed := 2 + 0.2*float64(wave)
		if math.Abs(stats.Speed-wantSpeed) > 1e-9 {
			t.Errorf("wave %d: speed = %f, want %f", wave, stats.Speed, wantSpeed)
		}
	}
}

func TestWaveAt(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 1},
		{29999 * time.Millisecond, 1},
		{30 * time.Second, 2},
		{95 * time.Second, 4},
	}
	for _, tt := range tests {
		if got := WaveAt(tt.elapsed, 30*time.Second); got != tt.want {
			t.Errorf("WaveAt(%v) = %d, want %d", tt.elapsed, got, tt.want)
		}
	}
}

func TestSpawnerTimers(t *testing.T) {
	s := newTestState(t)
	sp := NewSpawner(rand.New(rand.NewSource(7)), testTuning())
	sp.Start(s.Now)

	counts := map[time.Duration]int{}
	for s.Now < 10*time.Second {
		s.Now += testTick
		sp.Update(s)
		counts[s.Now] = len(s.Enemies)
		if s.Now < 10*time.Second && len(s.PowerUps) != 0 {
			t.Fatalf("power-up spawned early at %v", s.Now)
		}
	}

	if counts[1990*time.Millisecond] != 0 {
		t.Errorf("enemy spawned before 2s")
	}
	if counts[2*time.Second] != 1 {
		t.Errorf("enemies at 2s = %d, want 1", counts[2*time.Second])
	}
	if counts[4*time.Second] != 2 {
		t.Errorf("enemies at 4s = %d, want 2", counts[4*time.Second])
	}
	if len(s.Enemies) != 5 {
		t.Errorf("enemies at 10s = %d, want 5", len(s.Enemies))
	}
	if len(s.PowerUps) != 1 {
		t.Errorf("power-ups at 10s = %d, want 1", len(s.PowerUps))
	}
}

func TestSpawnerOneInsertPerFire(t *testing.T) {
	s := newTestState(t)
	sp := NewSpawner(rand.New(rand.NewSource(7)), testTuning())
	sp.Start(0)

	// The clock jumps over several intervals at once.
	s.Now = 9 * time.Second
	sp.Update(s)
	if len(s.Enemies) != 1 {
		t.Fatalf("enemies after jump = %d, want 1", len(s.Enemies))
	}

	// Missed fires catch up one per update.
	sp.Update(s)
	sp.Update(s)
	sp.Update(s)
	if len(s.Enemies) != 4 {
		t.Fatalf("enemies after catch-up = %d, want 4", len(s.Enemies))
	}
	sp.Update(s)
	sp.Update(s)
	if len(s.Enemies) != 4 {
		t.Fatalf("spawner ran ahead of the clock: %d enemies", len(s.Enemies))
	}
}

func TestSpawnEnemyPlacement(t *testing.T) {
	s := newTestState(t)
	s.Now = 45 * time.Second // wave 2
	sp := NewSpawner(rand.New(rand.NewSource(3)), testTuning())

	seen := map[object.EnemyType]bool{}
	for i := 0; i < 200; i++ {
		e := sp.SpawnEnemy(s)
		seen[e.Type] = true

		if e.X < 0 || e.X >= 750 {
			t.Fatalf("enemy x = %f, want within [0,750)", e.X)
		}
		if e.Y != -50 {
			t.Fatalf("enemy y = %f, want -50", e.Y)
		}

		base := EnemyStatsForWave(testTuning(), 2)
		switch e.Type {
		case object.EnemyTank:
			if e.Health != 2*base.Health {
				t.Fatalf("tank health = %d, want %d", e.Health, 2*base.Health)
			}
		case object.EnemyFast:
			if math.Abs(e.Speed-1.5*base.Speed) > 1e-9 {
				t.Fatalf("fast speed = %f, want %f", e.Speed, 1.5*base.Speed)
			}
		case object.EnemyShielded:
			if !e.Shielded || e.Health != base.Health {
				t.Fatalf("shielded enemy = %+v", e)
			}
		case object.EnemyNormal:
			if e.Health != base.Health || e.Speed != base.Speed || e.Shielded {
				t.Fatalf("normal enemy = %+v", e)
			}
		}
	}

	if len(seen) != len(object.EnemyTypes) {
		t.Errorf("only saw types %v in 200 spawns", seen)
	}
}

func TestSpawnPowerUpInsideScreen(t *testing.T) {
	s := newTestState(t)
	sp := NewSpawner(rand.New(rand.NewSource(5)), testTuning())

	for i := 0; i < 100; i++ {
		p := sp.SpawnPowerUp(s)
		if p.X < 0 || p.Right() > s.Screen.Width || p.Y < 0 || p.Bottom() > s.Screen.Height {
			t.Fatalf("power-up outside screen: %+v", p.Rect)
		}
		if p.W != 30 || p.H != 30 {
			t.Fatalf("power-up size = %fx%f, want 30x30", p.W, p.H)
		}
	}
}

func TestPowerUpExpiry(t *testing.T) {
	s := newTestState(t)
	sp := NewSpawner(rand.New(rand.NewSource(5)), testTuning())
	sp.Start(0)

	s.Now = time.Second
	p := object.NewPowerUp(0, 0, 30, object.PowerUpShield, s.Now)
	s.AddPowerUp(p)

	s.Now = 10990 * time.Millisecond
	sp.Update(s)
	if len(s.PowerUps) != 2 || s.PowerUps[0] != p {
		t.Fatalf("power-up removed before its lifetime: %d left", len(s.PowerUps))
	}

	s.Now = 11 * time.Second
	sp.Update(s)
	for _, left := range s.PowerUps {
		if left == p {
			t.Fatal("power-up still present after 10s")
		}
	}
}

func TestSpawnerStopped(t *testing.T) {
	s := newTestState(t)
	sp := NewSpawner(nil, testTuning())
	if sp.Running() {
		t.Fatal("new spawner should be stopped")
	}

	sp.Start(0)
	sp.Stop()
	s.Now = time.Minute
	sp.Update(s)
	if len(s.Enemies) != 0 || len(s.PowerUps) != 0 {
		t.Fatal("stopped spawner inserted entities")
	}
}
