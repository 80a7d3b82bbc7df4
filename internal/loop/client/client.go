// Package client is the terminal front-end: it owns one survival session,
// feeds it held keys from the terminal and renders its snapshots.
package client

import (
	"bufio"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/chaos-survival/internal/draw"
	"github.com/tomz197/chaos-survival/internal/input"
	"github.com/tomz197/chaos-survival/internal/loop/config"
	"github.com/tomz197/chaos-survival/internal/loop/server"
	"github.com/tomz197/chaos-survival/internal/loop/sim"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	controller   *sim.Controller
	state        *ClientState
	canvas       *draw.Canvas
	frame        *draw.Frame // Output for the current frame
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Tuning       config.Tuning // Default tuning if zero
	Logger       *log.Logger   // Discarded if nil
	Rand         *rand.Rand    // Spawn randomness; seeded from the clock if nil
}

// NewClient creates a new client registered with the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	username := SanitizeUsername(opts.Username)
	handle := gs.RegisterClient(username)
	logger = logger.With("client", handle.ID, "user", username)

	stream := input.StartStream(r)
	controller := sim.NewController(sim.Options{
		Tuning: opts.Tuning,
		Keys:   stream,
		Bounds: sim.FixedBounds(config.SceneWidth, config.SceneHeight),
		Rand:   opts.Rand,
		Logger: logger,
		OnGameOver: func(result sim.Result) {
			gs.ReportResult(handle.ID, result)
		},
	})

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.SceneWidth, config.SceneHeight)
	canvas.SetReservedRows(config.HUDRows)
	canvas.SetOffset(offsetCol, offsetRow)
	frame := draw.NewFrame(w, offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		controller:   controller,
		state:        NewClientState(),
		canvas:       canvas,
		frame:        frame,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  stream,
		username:     username,
		termSizeFunc: termSizeFunc,
		logger:       logger,
	}
}

// SanitizeUsername trims a login name to something safe to print in the HUD:
// control characters are dropped and the result is capped at
// config.MaxUsernameLength runes. An empty result becomes the default name.
func SanitizeUsername(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < ' ' || r == 0x7f {
			return -1
		}
		return r
	}, strings.TrimSpace(name))

	runes := []rune(name)
	if len(runes) > config.MaxUsernameLength {
		runes = runes[:config.MaxUsernameLength]
	}
	if len(runes) == 0 {
		return config.DefaultPlayerName
	}
	return string(runes)
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	c.logger.Info("client connected")
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		// Handle game state
		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		// Draw frame
		if err := c.drawFrame(); err != nil {
			c.close()
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.close()
	draw.ClearScreen(c.writer)
	return nil
}

// close ends the session and unregisters from the server.
func (c *Client) close() {
	c.controller.Teardown()
	c.server.UnregisterClient(c.handle.ID)
	c.logger.Info("client disconnected")
}

// processInput reads this frame's input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = c.inputStream.ReadInput()

	if c.state.Input.Any() {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive client")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
		c.controller.Pause()
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventRanked:
				// A late rank for an earlier run must not label this one.
				if event.Session == c.controller.Session() {
					c.state.Rank = event.Rank
				}
			case server.EventServerShutdown:
				c.controller.Pause()
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.frame.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateStartState handles the title screen: number keys pick a color,
// space or enter starts a run.
func (c *Client) updateStartState() {
	if n := c.state.Input.Number; n >= 1 && n <= len(config.PlayerColors) {
		c.state.ColorIndex = n - 1
	}
	if c.state.Input.Space || c.state.Input.Enter {
		c.startGame()
	}
}

// updatePlayingState routes pause and restart and advances the simulation
// in fixed steps for the time that passed since the last frame.
func (c *Client) updatePlayingState() {
	in := c.state.Input

	switch c.controller.Phase() {
	case sim.PhaseRunning, sim.PhasePaused:
		if in.Pause {
			c.controller.TogglePause()
		}
	case sim.PhaseGameOver:
		if in.Restart || in.Enter || in.Space {
			c.restartGame()
			return
		}
	}

	c.advance(c.state.delta)
}

// advance runs as many fixed ticks as fit into the accumulated frame time.
// Time spent paused or beyond the catch-up limit is dropped.
func (c *Client) advance(delta time.Duration) {
	if c.controller.Phase() != sim.PhaseRunning {
		c.state.accumulator = 0
		return
	}

	tick := c.controller.Tuning().TickTime
	c.state.accumulator = min(c.state.accumulator+delta, tick*config.MaxCatchUpTicks)
	for c.state.accumulator >= tick {
		c.state.accumulator -= tick
		if !c.controller.Tick() {
			c.state.accumulator = 0
			return
		}
	}
}

// startGame starts a run with the chosen color.
func (c *Client) startGame() {
	c.inputStream.ResetKeys()
	c.controller.StartSession(c.username, config.PlayerColors[c.state.ColorIndex])
	c.state.Rank = rankUnknown
	c.state.accumulator = 0
	c.state.GameState = GameStatePlaying
}

// restartGame starts a new run with the same name and color.
func (c *Client) restartGame() {
	c.inputStream.ResetKeys()
	c.controller.Restart()
	c.state.Rank = rankUnknown
	c.state.accumulator = 0
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
