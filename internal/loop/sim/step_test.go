package sim

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/chaos-survival/internal/input"
	"github.com/tomz197/chaos-survival/internal/object"
)

// stepAt advances the clock one test tick and runs a step.
func stepAt(s *State, keys input.KeyChecker) {
	s.Now += testTick
	Step(s, keys, testTuning())
}

func TestStepMovesPlayer(t *testing.T) {
	s := newTestState(t)
	x0, y0 := s.Player.X, s.Player.Y

	stepAt(s, input.KeySet{input.KeyArrowLeft: true, input.KeyArrowUp: true})
	if s.Player.X != x0-5 || s.Player.Y != y0-5 {
		t.Fatalf("player at (%f,%f), want (%f,%f)", s.Player.X, s.Player.Y, x0-5, y0-5)
	}

	s.Player.X = 0
	stepAt(s, input.KeySet{input.KeyArrowLeft: true})
	if s.Player.X != 0 {
		t.Fatalf("player moved past the left edge: x=%f", s.Player.X)
	}
}

func TestStepKeepsBuffedPlayerOnScreen(t *testing.T) {
	s := newTestState(t)
	s.Player.Speed = s.Player.BaseSpeed + 2
	right := input.KeySet{input.KeyArrowRight: true}

	for range 200 {
		stepAt(s, right)
	}
	if got, want := s.Player.Right(), s.Screen.Width; got != want {
		t.Fatalf("player right edge = %f, want %f", got, want)
	}
}

func TestShootingCadence(t *testing.T) {
	s := newTestState(t)
	up := input.KeySet{input.KeyW: true}

	stepAt(s, up)
	if len(s.Player.Bullets) != 1 {
		t.Fatalf("bullets after first tick = %d, want 1", len(s.Player.Bullets))
	}
	if s.Player.LastShot != s.Now {
		t.Fatalf("LastShot = %v, want %v", s.Player.LastShot, s.Now)
	}

	// Cooldown is strict: exactly 300ms later still counts as too soon.
	for s.Now < s.Player.LastShot+300*time.Millisecond {
		stepAt(s, up)
	}
	if len(s.Player.Bullets) != 1 {
		t.Fatalf("fired during cooldown: %d bullets", len(s.Player.Bullets))
	}
	stepAt(s, up)
	if len(s.Player.Bullets) != 2 {
		t.Fatalf("bullets after cooldown = %d, want 2", len(s.Player.Bullets))
	}
}

func TestFireWindowClosesWithoutKeys(t *testing.T) {
	s := newTestState(t)
	s.Now = time.Second
	Step(s, input.NoKeys, testTuning())

	if s.Player.LastShot != time.Second {
		t.Fatalf("LastShot = %v, want 1s even with nothing held", s.Player.LastShot)
	}

	// The window just closed, so a key pressed on the next tick does not fire.
	stepAt(s, input.KeySet{input.KeyW: true})
	if len(s.Player.Bullets) != 0 {
		t.Fatalf("bullets = %d, want 0", len(s.Player.Bullets))
	}
}

func TestShootAllDirections(t *testing.T) {
	s := newTestState(t)
	s.Player.X, s.Player.Y = 375, 275
	all := input.KeySet{}
	for _, d := range fireDirections {
		all[d.key] = true
	}

	stepAt(s, all)
	if len(s.Player.Bullets) != 8 {
		t.Fatalf("bullets = %d, want 8", len(s.Player.Bullets))
	}

	for i, b := range s.Player.Bullets {
		speed := math.Hypot(b.VX, b.VY)
		if math.Abs(speed-6) > 1e-9 {
			t.Errorf("bullet %d speed = %f, want 6", i, speed)
		}
	}

	// First bullet is w: straight up from the player center, already advanced once.
	first := s.Player.Bullets[0]
	if first.VX != 0 || first.VY != -6 {
		t.Errorf("w bullet velocity = (%f,%f), want (0,-6)", first.VX, first.VY)
	}
	if first.X != 395 || first.Y != 289 {
		t.Errorf("w bullet at (%f,%f), want (395,289)", first.X, first.Y)
	}
}

func TestBulletSpeedBuffAppliesToNewBullets(t *testing.T) {
	s := newTestState(t)
	s.Player.BulletSpeed = 8
	stepAt(s, input.KeySet{input.KeyD: true})
	if b := s.Player.Bullets[0]; b.VX != 8 {
		t.Fatalf("bullet vx = %f, want 8", b.VX)
	}
}

func TestPlayerBulletsPrunedOutOfBounds(t *testing.T) {
	s := newTestState(t)
	s.AddPlayerBullet(&object.Bullet{Rect: rect(795, 100, 10, 10), VX: 6})
	s.AddPlayerBullet(&object.Bullet{Rect: rect(100, 3, 10, 10), VY: -6})
	s.AddPlayerBullet(&object.Bullet{Rect: rect(100, 100, 10, 10), VX: 6})

	stepAt(s, input.NoKeys)
	if len(s.Player.Bullets) != 1 {
		t.Fatalf("bullets = %d, want 1", len(s.Player.Bullets))
	}
	if s.Player.Bullets[0].X != 106 {
		t.Fatalf("surviving bullet x = %f, want 106", s.Player.Bullets[0].X)
	}
}

func TestBulletHitStopsBulletButKeepsIt(t *testing.T) {
	s := newTestState(t)
	e := placeEnemy(s, 100, 100, 100, false)
	b := &object.Bullet{Rect: rect(120, 155, 10, 10), VY: -6}
	s.AddPlayerBullet(b)

	stepAt(s, input.NoKeys)

	if e.Health != 80 {
		t.Errorf("enemy health = %d, want 80", e.Health)
	}
	if s.Player.Score != 5 {
		t.Errorf("score = %d, want 5", s.Player.Score)
	}
	if len(s.Player.Bullets) != 1 || !b.Inert() {
		t.Fatalf("hit bullet should stay as an inert bullet, got %d bullets, inert=%v", len(s.Player.Bullets), b.Inert())
	}

	// The inert bullet keeps overlapping, so it keeps hitting.
	stepAt(s, input.NoKeys)
	if e.Health != 60 || s.Player.Score != 10 {
		t.Errorf("after second tick health=%d score=%d, want 60 and 10", e.Health, s.Player.Score)
	}
	if b.Y != 149 {
		t.Errorf("inert bullet moved to y=%f", b.Y)
	}
}

func TestShieldedEnemyTakesNoDamage(t *testing.T) {
	s := newTestState(t)
	e := placeEnemy(s, 100, 100, 40, true)
	b := &object.Bullet{Rect: rect(120, 155, 10, 10), VY: -6}
	s.AddPlayerBullet(b)

	for i := 0; i < 5; i++ {
		stepAt(s, input.NoKeys)
	}

	if e.Health != 40 {
		t.Errorf("shielded enemy health = %d, want 40", e.Health)
	}
	if s.Player.Score != 0 {
		t.Errorf("score = %d, want 0", s.Player.Score)
	}
	if b.Inert() {
		t.Error("bullet should pass through a shielded enemy unaffected")
	}
}

func TestBulletHitsEveryOverlappingEnemy(t *testing.T) {
	s := newTestState(t)
	first := placeEnemy(s, 100, 100, 100, false)
	second := placeEnemy(s, 110, 100, 100, false)
	s.AddPlayerBullet(&object.Bullet{Rect: rect(125, 140, 10, 10)})

	stepAt(s, input.NoKeys)
	if first.Health != 80 || second.Health != 80 {
		t.Fatalf("health = %d/%d, want 80/80", first.Health, second.Health)
	}
	if s.Player.Score != 10 {
		t.Fatalf("score = %d, want 10", s.Player.Score)
	}
}

// Player at the center holds w; one unshielded 30-health enemy sits straight above.
func TestScenarioShootEnemyAbove(t *testing.T) {
	s := newTestState(t)
	s.Player.X, s.Player.Y = 375, 275
	e := placeEnemy(s, 375, 150, 30, false)
	up := input.KeySet{input.KeyW: true}

	hits := 0
	lastHealth := e.Health
	for i := 0; i < 60 && len(s.Enemies) > 0; i++ {
		stepAt(s, up)
		if e.Health < lastHealth {
			hits++
			lastHealth = e.Health
		}
	}

	if len(s.Enemies) != 0 {
		t.Fatalf("enemy survived with %d health", e.Health)
	}
	if e.Health > 0 {
		t.Fatalf("removed enemy has health %d", e.Health)
	}
	if hits < 2 {
		t.Fatalf("hits = %d, want at least 2", hits)
	}
	if want := 5*hits + 10; s.Player.Score != want {
		t.Fatalf("score = %d, want %d", s.Player.Score, want)
	}
}

func TestEnemyContact(t *testing.T) {
	tests := []struct {
		name       string
		shield     bool
		wantHealth int
		wantFlash  Flash
	}{
		{"unshielded", false, 90, FlashDamage},
		{"shielded", true, 100, FlashNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t)
			s.Player.ShieldActive = tt.shield
			placeEnemy(s, s.Player.X+10, s.Player.Y+10, 30, false)

			stepAt(s, input.NoKeys)

			if len(s.Enemies) != 0 {
				t.Error("touching enemy should be removed")
			}
			if s.Player.Health != tt.wantHealth {
				t.Errorf("health = %d, want %d", s.Player.Health, tt.wantHealth)
			}
			if s.Flash != tt.wantFlash {
				t.Errorf("flash = %v, want %v", s.Flash, tt.wantFlash)
			}
		})
	}
}

func TestEnemyChasesPlayer(t *testing.T) {
	s := newTestState(t)
	s.Player.X, s.Player.Y = 400, 400
	e := placeEnemy(s, 400, 0, 30, false)
	e.Speed = 3

	stepAt(s, input.NoKeys)
	if math.Abs(e.X-400) > 1e-9 || math.Abs(e.Y-3) > 1e-9 {
		t.Fatalf("enemy at (%f,%f), want (400,3)", e.X, e.Y)
	}
}

func TestEnemyFireCooldown(t *testing.T) {
	s := newTestState(t)
	s.Player.X, s.Player.Y = 400, 400
	e := placeEnemy(s, 400, 0, 30, false)
	e.LastShot = 0

	s.Now = 2 * time.Second
	Step(s, input.NoKeys, testTuning())
	if len(s.EnemyBullets) != 0 {
		t.Fatal("enemy fired at exactly the cooldown")
	}

	stepAt(s, input.NoKeys)
	if len(s.EnemyBullets) != 1 {
		t.Fatalf("enemy bullets = %d, want 1", len(s.EnemyBullets))
	}
	if e.LastShot != s.Now {
		t.Errorf("enemy LastShot = %v, want %v", e.LastShot, s.Now)
	}
	b := s.EnemyBullets[0]
	if math.Abs(b.VX) > 1e-9 || math.Abs(b.VY-4) > 1e-9 {
		t.Errorf("enemy bullet velocity = (%f,%f), want (0,4)", b.VX, b.VY)
	}
}

func TestEnemyBulletHitsPlayer(t *testing.T) {
	tests := []struct {
		name       string
		shield     bool
		wantHealth int
	}{
		{"unshielded", false, 90},
		{"shielded", true, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t)
			s.Player.ShieldActive = tt.shield
			s.AddEnemyBullet(&object.Bullet{Rect: rect(s.Player.X+20, s.Player.Y-12, 10, 10), VY: 4})

			stepAt(s, input.NoKeys)

			if len(s.EnemyBullets) != 0 {
				t.Error("bullet that hit the player should be removed")
			}
			if s.Player.Health != tt.wantHealth {
				t.Errorf("health = %d, want %d", s.Player.Health, tt.wantHealth)
			}
		})
	}
}

func TestEnemyBulletsPrunedOutOfBounds(t *testing.T) {
	s := newTestState(t)
	s.AddEnemyBullet(&object.Bullet{Rect: rect(2, 100, 10, 10), VX: -4})
	s.AddEnemyBullet(&object.Bullet{Rect: rect(100, 100, 10, 10), VX: 4})

	stepAt(s, input.NoKeys)
	if len(s.EnemyBullets) != 1 || s.EnemyBullets[0].X != 104 {
		t.Fatalf("enemy bullets = %+v, want only the in-bounds one", s.EnemyBullets)
	}
}

func TestHealthNeverNegative(t *testing.T) {
	s := newTestState(t)
	s.Player.Health = 15
	for i := 0; i < 3; i++ {
		placeEnemy(s, s.Player.X, s.Player.Y, 30, false)
	}

	stepAt(s, input.NoKeys)
	if s.Player.Health != 0 {
		t.Fatalf("health = %d, want 0", s.Player.Health)
	}
}
