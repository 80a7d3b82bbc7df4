package sim

import (
	"testing"
	"time"

	"github.com/tomz197/chaos-survival/internal/input"
	"github.com/tomz197/chaos-survival/internal/object"
)

func TestControllerLifecycle(t *testing.T) {
	c := newTestController(t)

	if c.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want idle", c.Phase())
	}
	if c.Tick() {
		t.Fatal("Tick ran before a session started")
	}
	if c.Pause() || c.Resume() {
		t.Fatal("pause/resume should be no-ops while idle")
	}

	c.StartSession("ada", "red")
	if c.Phase() != PhaseRunning {
		t.Fatalf("phase = %v, want running", c.Phase())
	}
	if !c.Tick() {
		t.Fatal("Tick did not run while running")
	}

	if c.Resume() {
		t.Fatal("Resume succeeded while running")
	}
	if !c.Pause() || c.Phase() != PhasePaused {
		t.Fatalf("Pause failed, phase = %v", c.Phase())
	}
	if c.Pause() {
		t.Fatal("second Pause should report false")
	}
	if c.Tick() {
		t.Fatal("Tick ran while paused")
	}

	c.TogglePause()
	if c.Phase() != PhaseRunning {
		t.Fatalf("toggle from paused: phase = %v, want running", c.Phase())
	}
	c.TogglePause()
	if c.Phase() != PhasePaused {
		t.Fatalf("toggle from running: phase = %v, want paused", c.Phase())
	}

	c.Teardown()
	if c.Phase() != PhaseIdle {
		t.Fatalf("phase after teardown = %v, want idle", c.Phase())
	}
	if c.Tick() {
		t.Fatal("Tick ran after teardown")
	}
}

func TestStartSessionDefaults(t *testing.T) {
	c := newTestController(t)
	c.StartSession("", "")

	if c.Name() != "Player" || c.Color() != "blue" {
		t.Fatalf("name/color = %q/%q, want Player/blue", c.Name(), c.Color())
	}
	p := c.State().Player
	if p.Health != 100 || p.Score != 0 {
		t.Fatalf("health/score = %d/%d, want 100/0", p.Health, p.Score)
	}
	if p.X != 375 || p.Y != 500 {
		t.Fatalf("player at (%f, %f), want (375, 500)", p.X, p.Y)
	}
}

func TestStartSessionWhileRunningResets(t *testing.T) {
	c := newTestController(t)
	c.StartSession("ada", "red")
	for range 250 {
		c.Tick()
	}
	c.State().Player.Score = 40

	c.StartSession("bob", "green")

	s := c.State()
	if s.Now != 0 || c.Ticks() != 0 {
		t.Fatalf("clock not reset: now=%v ticks=%d", s.Now, c.Ticks())
	}
	if s.Player.Score != 0 || len(s.Enemies) != 0 {
		t.Fatalf("state not reset: score=%d enemies=%d", s.Player.Score, len(s.Enemies))
	}
	if s.Player.Name != "bob" || s.Player.Color != "green" {
		t.Fatalf("player = %s/%s, want bob/green", s.Player.Name, s.Player.Color)
	}

	// The old enemy deadline must not carry over: first enemy again at 2s.
	for range 199 {
		c.Tick()
	}
	if len(s.Enemies) != 0 {
		t.Fatalf("enemy spawned before 2s of the new session")
	}
	c.Tick()
	if len(s.Enemies) != 1 {
		t.Fatalf("enemies = %d at 2s, want 1", len(s.Enemies))
	}
}

func TestPauseFreezesSpawners(t *testing.T) {
	c := newTestController(t)
	c.StartSession("ada", "red")

	for range 150 {
		c.Tick()
	}
	c.Pause()
	for range 1000 {
		c.Tick()
	}
	if got := c.State().Now; got != 1500*time.Millisecond {
		t.Fatalf("clock moved while paused: %v", got)
	}
	c.Resume()
	for range 60 {
		c.Tick()
	}

	if got := len(c.State().Enemies); got != 1 {
		t.Fatalf("enemies after 2.1s of play = %d, want exactly 1", got)
	}
}

func TestPauseFreezesEffects(t *testing.T) {
	c := newTestController(t)
	c.StartSession("ada", "red")
	c.Tick()

	s := c.State()
	s.AddPowerUp(object.NewPowerUp(s.Player.X, s.Player.Y, 30, object.PowerUpShield, s.Now))
	c.Tick() // picked up at 20ms, expires at 5020ms
	if !s.Player.ShieldActive {
		t.Fatal("shield not picked up")
	}

	c.Pause()
	for range 1000 {
		c.Tick()
	}
	c.Resume()

	for range 499 {
		c.Tick()
	}
	if !s.Player.ShieldActive {
		t.Fatalf("shield expired early at %v", s.Now)
	}
	c.Tick()
	if s.Player.ShieldActive {
		t.Fatalf("shield still active at %v", s.Now)
	}
}

func TestGameOverFiresOnce(t *testing.T) {
	var results []Result
	c := NewController(Options{
		Tuning:     testTuning(),
		Bounds:     FixedBounds(800, 600),
		OnGameOver: func(r Result) { results = append(results, r) },
	})
	c.StartSession("ada", "red")

	s := c.State()
	s.Player.Health = 10
	s.Player.Score = 25
	placeEnemy(s, s.Player.X, s.Player.Y, 30, false)

	if !c.Tick() {
		t.Fatal("tick did not run")
	}
	if c.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", c.Phase())
	}
	if s.Player.Health != 0 {
		t.Fatalf("health = %d, want 0", s.Player.Health)
	}

	for range 10 {
		if c.Tick() {
			t.Fatal("tick ran after game over")
		}
	}
	c.Pause()
	c.Resume()

	if len(results) != 1 {
		t.Fatalf("OnGameOver called %d times, want 1", len(results))
	}
	want := Result{Session: 1, Name: "ada", Color: "red", Score: 25, Wave: 1, Elapsed: testTick}
	if results[0] != want {
		t.Fatalf("result = %+v, want %+v", results[0], want)
	}
	if len(s.Effects()) != 0 {
		t.Fatalf("effects left after game over: %+v", s.Effects())
	}
}

func TestSessionNumbers(t *testing.T) {
	c := newTestController(t)
	if c.Session() != 0 || c.Result().Session != 0 {
		t.Fatalf("session before start = %d", c.Session())
	}

	c.StartSession("ada", "red")
	c.Restart()
	c.StartSession("bob", "blue")
	if c.Session() != 3 {
		t.Fatalf("session = %d, want 3", c.Session())
	}
	if got := c.Result().Session; got != 3 {
		t.Fatalf("result session = %d, want 3", got)
	}
}

func TestRestartKeepsNameAndColor(t *testing.T) {
	c := newTestController(t)
	c.StartSession("ada", "red")
	s := c.State()
	s.Player.Health = 0
	c.Tick()
	if c.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", c.Phase())
	}

	c.Restart()

	if c.Phase() != PhaseRunning {
		t.Fatalf("phase = %v, want running", c.Phase())
	}
	p := c.State().Player
	if p.Name != "ada" || p.Color != "red" || p.Health != 100 {
		t.Fatalf("player after restart = %s/%s health %d", p.Name, p.Color, p.Health)
	}
}

func TestTeardownCancelsEffects(t *testing.T) {
	c := newTestController(t)
	c.StartSession("ada", "red")
	s := c.State()
	s.AddPowerUp(object.NewPowerUp(s.Player.X, s.Player.Y, 30, object.PowerUpSpeed, s.Now))
	c.Tick()
	if len(s.Effects()) == 0 {
		t.Fatal("no effects recorded after pickup")
	}

	c.Teardown()

	if len(s.Effects()) != 0 {
		t.Fatalf("effects after teardown: %+v", s.Effects())
	}
}

func TestTickReadsKeys(t *testing.T) {
	keys := input.KeySet{input.KeyArrowLeft: true}
	c := NewController(Options{
		Tuning: testTuning(),
		Keys:   keys,
		Bounds: FixedBounds(800, 600),
	})
	c.StartSession("ada", "red")
	x0 := c.State().Player.X

	c.Tick()

	if got := c.State().Player.X; got != x0-5 {
		t.Fatalf("x = %f, want %f", got, x0-5)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c := newTestController(t)

	idle := c.Snapshot()
	if idle.Phase != PhaseIdle || idle.Wave != 1 {
		t.Fatalf("idle snapshot = %+v", idle)
	}

	c.StartSession("ada", "red")
	s := c.State()
	placeEnemy(s, 100, 100, 30, false)
	s.AddEnemyBullet(&object.Bullet{Rect: rect(10, 10, 5, 5)})
	s.AddPlayerBullet(&object.Bullet{Rect: rect(20, 20, 5, 5)})

	snap := c.Snapshot()
	snap.Enemies[0].Health = 1
	snap.EnemyBullets[0].X = 500
	snap.PlayerBullets[0].X = 500
	snap.Player.Health = 1

	if s.Enemies[0].Health != 30 {
		t.Error("snapshot enemy aliases live state")
	}
	if s.EnemyBullets[0].X != 10 || s.Player.Bullets[0].X != 20 {
		t.Error("snapshot bullets alias live state")
	}
	if s.Player.Health != 100 {
		t.Error("snapshot player aliases live state")
	}
	if snap.Player.Bullets != nil {
		t.Error("snapshot player should not carry bullets")
	}
	if got := len(snap.Objects()); got != 4 {
		t.Errorf("objects = %d, want 4", got)
	}
}
