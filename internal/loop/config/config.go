// Package config centralizes all tunable game parameters.
package config

import "time"

// Scene dimensions - the logical play area in scene units.
// Front-ends scale this to whatever they render into.
const (
	SceneWidth  = 800
	SceneHeight = 600
)

// Terminal view resolution - the canvas size in logical units.
// Actual rendering scales to fit terminal size.
const (
	MaxTermWidth  = 160 // Max render columns; larger terminals get a border
	MaxTermHeight = 60  // Max render rows
	HUDRows       = 2   // Rows reserved above the play area for the HUD
)

// Player presentation
const (
	DefaultPlayerName  = "Player"
	DefaultPlayerColor = "blue"
	MaxUsernameLength  = 16 // Maximum display length for player usernames
)

// PlayerColors lists the colors a player can pick on the start screen, by number key.
var PlayerColors = []string{"blue", "red", "green", "yellow", "purple", "orange", "cyan", "white"}

// Leaderboard
const (
	TopScoresCount = 5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxCatchUpTicks       = 5 // Simulation steps a slow frame may run to catch up
)

// Session host housekeeping
const (
	ServerTickRate = 20
	ServerTickTime = time.Second / ServerTickRate
)
