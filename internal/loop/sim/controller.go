package sim

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/chaos-survival/internal/input"
	"github.com/tomz197/chaos-survival/internal/loop/config"
	"github.com/tomz197/chaos-survival/internal/object"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseIdle     Phase = iota // No session started yet, or torn down
	PhaseRunning               // Ticks advance the simulation
	PhasePaused                // Clock, spawners and effects frozen
	PhaseGameOver              // Health reached zero; state kept for inspection
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Result summarizes a finished session.
type Result struct {
	Session int // Controller-local run number, starting at 1
	Name    string
	Color   string
	Score   int
	Wave    int
	Elapsed time.Duration
}

// Options configures a Controller.
type Options struct {
	Tuning     config.Tuning
	Keys       input.KeyChecker // Held-key lookup, read once per tick
	Bounds     BoundsFunc       // Scene size, read at session start and every tick
	Rand       *rand.Rand       // Spawn randomness; seeded from the clock if nil
	Logger     *log.Logger      // Discarded if nil
	OnGameOver func(Result)     // Called once per session on the loss transition
}

// Controller owns one session: it drives the tick schedule and the
// Idle → Running ⇄ Paused → GameOver state machine.
// It is not safe for concurrent use; one goroutine should own it.
type Controller struct {
	tuning     config.Tuning
	keys       input.KeyChecker
	bounds     BoundsFunc
	logger     *log.Logger
	onGameOver func(Result)

	state   *State
	spawner *Spawner
	phase   Phase
	ticks   uint64
	session int

	name  string
	color string
}

// NewController creates an idle controller. Zero-valued options fall back
// to the default tuning, no keys and the default scene size.
func NewController(opts Options) *Controller {
	if opts.Tuning == (config.Tuning{}) {
		opts.Tuning = config.DefaultTuning()
	}
	if opts.Keys == nil {
		opts.Keys = input.NoKeys
	}
	if opts.Bounds == nil {
		opts.Bounds = FixedBounds(config.SceneWidth, config.SceneHeight)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Controller{
		tuning:     opts.Tuning,
		keys:       opts.Keys,
		bounds:     opts.Bounds,
		logger:     opts.Logger,
		onGameOver: opts.OnGameOver,
		spawner:    NewSpawner(opts.Rand, opts.Tuning),
		name:       config.DefaultPlayerName,
		color:      config.DefaultPlayerColor,
	}
}

// StartSession resets everything and begins a run. Calling it while a run
// is in progress restarts from scratch.
func (c *Controller) StartSession(name, color string) {
	if name == "" {
		name = config.DefaultPlayerName
	}
	if color == "" {
		color = config.DefaultPlayerColor
	}
	c.name = name
	c.color = color

	c.spawner.Stop()
	c.state = NewState(c.screen(), c.tuning, name, color)
	c.ticks = 0
	c.session++
	c.spawner.Start(c.state.Now)
	c.phase = PhaseRunning

	c.logger.Info("session started", "name", name, "color", color)
}

// Restart starts a new session with the last used name and color.
func (c *Controller) Restart() {
	c.StartSession(c.name, c.color)
}

// Pause freezes a running session. Returns false if there was nothing to pause.
func (c *Controller) Pause() bool {
	if c.phase != PhaseRunning {
		return false
	}
	c.phase = PhasePaused
	c.logger.Debug("session paused", "elapsed", c.state.Now)
	return true
}

// Resume continues a paused session. Returns false if it was not paused.
func (c *Controller) Resume() bool {
	if c.phase != PhasePaused {
		return false
	}
	c.phase = PhaseRunning
	c.logger.Debug("session resumed", "elapsed", c.state.Now)
	return true
}

// TogglePause flips between Running and Paused.
func (c *Controller) TogglePause() {
	if !c.Pause() {
		c.Resume()
	}
}

// Teardown ends the session without a game over: spawners and pending
// effects are cancelled and the controller returns to Idle.
func (c *Controller) Teardown() {
	c.spawner.Stop()
	if c.state != nil {
		c.state.cancelEffects()
	}
	c.phase = PhaseIdle
}

// Tick advances a running session by one fixed step and reports whether a
// step ran. Order: clock, effect expiry, spawners, step, loss check.
func (c *Controller) Tick() bool {
	if c.phase != PhaseRunning {
		return false
	}

	s := c.state
	s.Screen = c.screen()
	s.Now += c.tuning.TickTime
	c.ticks++

	s.expireEffects(c.tuning)
	c.spawner.Update(s)
	Step(s, c.keys, c.tuning)

	if !s.Player.Alive() {
		c.gameOver()
	}
	return true
}

// gameOver stops spawners, cancels pending effects and reports the result.
func (c *Controller) gameOver() {
	c.phase = PhaseGameOver
	c.spawner.Stop()
	c.state.cancelEffects()

	result := c.Result()
	c.logger.Info("game over",
		"name", result.Name,
		"score", result.Score,
		"wave", result.Wave,
		"elapsed", result.Elapsed.Round(time.Second),
	)

	if c.onGameOver != nil {
		c.onGameOver(result)
	}
}

// Phase returns the current lifecycle state.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Ticks returns how many steps ran in the current session.
func (c *Controller) Ticks() uint64 {
	return c.ticks
}

// Session returns the number of the current or last run, 0 before the first.
func (c *Controller) Session() int {
	return c.session
}

// Name returns the display name of the current or last session.
func (c *Controller) Name() string {
	return c.name
}

// Color returns the color tag of the current or last session.
func (c *Controller) Color() string {
	return c.color
}

// Tuning returns the gameplay numbers in use.
func (c *Controller) Tuning() config.Tuning {
	return c.tuning
}

// Result summarizes the current or last session.
func (c *Controller) Result() Result {
	r := Result{Session: c.session, Name: c.name, Color: c.color, Wave: 1}
	if c.state == nil {
		return r
	}
	r.Score = c.state.Player.Score
	r.Wave = c.state.Wave(c.tuning.WaveDuration)
	r.Elapsed = c.state.Now
	return r
}

// State exposes the live session state. Callers must not keep it across ticks.
func (c *Controller) State() *State {
	return c.state
}

func (c *Controller) screen() object.Screen {
	w, h := c.bounds()
	return object.Screen{Width: w, Height: h}
}
