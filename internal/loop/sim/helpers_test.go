package sim

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/chaos-survival/internal/loop/config"
	"github.com/tomz197/chaos-survival/internal/object"
	"github.com/tomz197/chaos-survival/internal/physics"
)

const testTick = 10 * time.Millisecond

// testTuning uses a tick that divides every default interval exactly.
func testTuning() config.Tuning {
	t := config.DefaultTuning()
	t.TickTime = testTick
	return t
}

func testScreen() object.Screen {
	return object.Screen{Width: 800, Height: 600}
}

func newTestState(t *testing.T) *State {
	t.Helper()
	return NewState(testScreen(), testTuning(), "tester", "blue")
}

// placeEnemy adds a stationary, non-firing enemy with its top-left at (x, y).
func placeEnemy(s *State, x, y float64, health int, shielded bool) *object.Enemy {
	e := &object.Enemy{
		Rect:     physics.Rect{X: x, Y: y, W: 50, H: 50},
		Health:   health,
		Shielded: shielded,
		LastShot: s.Now + time.Hour,
	}
	s.AddEnemy(e)
	return e
}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	return NewController(Options{
		Tuning: testTuning(),
		Bounds: FixedBounds(800, 600),
		Rand:   rand.New(rand.NewSource(1)),
	})
}

func rect(x, y, w, h float64) physics.Rect {
	return physics.Rect{X: x, Y: y, W: w, H: h}
}
