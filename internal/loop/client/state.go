package client

import (
	"time"

	"github.com/tomz197/chaos-survival/internal/input"
	"github.com/tomz197/chaos-survival/internal/loop/sim"
)

// GameState represents the current screen for a client.
// While playing, the session phase (running, paused, game over) lives in the
// sim.Controller.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen with color selection
	GameStatePlaying                   // A session exists
	GameStateShutdown                  // Server is shutting down
)

// rankUnknown means no rank event has arrived for the last run yet.
const rankUnknown = -1

// ClientState holds per-connection state (input, screen, timers).
type ClientState struct {
	Input      input.Input
	GameState  GameState
	ColorIndex int  // Index into config.PlayerColors
	Rank       int  // Leaderboard position of the last run, 0 if unranked
	Running    bool // Client loop running

	delta         time.Duration // Frame delta time (client-side)
	accumulator   time.Duration // Unsimulated time carried between frames
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state

	// Last drawn screen, to detect transitions that need a full clear
	prevGameState GameState
	prevPhase     sim.Phase
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Rank:      rankUnknown,
		Running:   true,
		// Force a full clear on the first frame
		prevGameState: -1,
	}
}
