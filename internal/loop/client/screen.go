package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/chaos-survival/internal/draw"
	"github.com/tomz197/chaos-survival/internal/loop/config"
	"github.com/tomz197/chaos-survival/internal/loop/server"
	"github.com/tomz197/chaos-survival/internal/loop/sim"
	"github.com/tomz197/chaos-survival/internal/object"
)

// Entity colors.
var (
	enemyColors = map[object.EnemyType]draw.Color{
		object.EnemyNormal:   draw.ColorRed,
		object.EnemyFast:     draw.ColorOrange,
		object.EnemyTank:     draw.ColorPurple,
		object.EnemyShielded: draw.ColorGray,
	}
	powerUpColors = map[object.PowerUpKind]draw.Color{
		object.PowerUpHealth: draw.ColorGreen,
		object.PowerUpShield: draw.ColorCyan,
		object.PowerUpSpeed:  draw.ColorBlue,
		object.PowerUpBullet: draw.ColorYellow,
	}
	powerUpLabels = map[object.PowerUpKind]string{
		object.PowerUpHealth: "+",
		object.PowerUpShield: "S",
		object.PowerUpSpeed:  ">",
		object.PowerUpBullet: "B",
	}
)

// shieldMargin is how far the shield ring sits outside the player, in scene units.
const shieldMargin = 6

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	snap := c.controller.Snapshot()

	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	stateChanged := c.state.GameState != c.state.prevGameState || snap.Phase != c.state.prevPhase
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.frame.ClearScreen()
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.prevPhase = snap.Phase
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	if c.state.GameState != GameStateStart {
		c.drawScene(&snap)
	}

	// Render canvas to terminal
	c.canvas.Render(c.frame)

	// Border doubles as the damage / pickup flash
	c.canvas.RenderBorder(c.frame, flashColor(snap.Flash))

	if c.state.GameState != GameStateStart {
		c.drawPowerUpLabels(&snap)
	}

	// Draw UI overlay
	c.drawUI(&snap, c.server.GetSnapshot())

	return c.frame.Flush()
}

// flashColor returns the border color for a flash cue.
func flashColor(f sim.Flash) draw.Color {
	if f == sim.FlashNone {
		return draw.ColorGray
	}
	return draw.ColorNamed(f.Color())
}

// drawScene rasterizes every entity of the snapshot onto the canvas.
func (c *Client) drawScene(snap *sim.Snapshot) {
	cv := c.canvas

	for _, p := range snap.PowerUps {
		cv.FillRect(p.X, p.Y, p.W, p.H, powerUpColors[p.Kind])
	}
	for _, e := range snap.Enemies {
		cv.FillRect(e.X, e.Y, e.W, e.H, enemyColors[e.Type])
		if e.Shielded {
			cv.StrokeRect(e.X, e.Y, e.W, e.H, draw.ColorCyan)
		}
	}
	for _, b := range snap.EnemyBullets {
		cv.FillRect(b.X, b.Y, b.W, b.H, draw.ColorRed)
	}
	for _, b := range snap.PlayerBullets {
		cv.FillRect(b.X, b.Y, b.W, b.H, draw.ColorYellow)
	}

	if p := snap.Player; p.W > 0 {
		cv.FillRect(p.X, p.Y, p.W, p.H, draw.ColorNamed(p.Color))
		if p.ShieldActive {
			cv.StrokeRect(p.X-shieldMargin, p.Y-shieldMargin, p.W+2*shieldMargin, p.H+2*shieldMargin, draw.ColorCyan)
		}
	}
}

// drawPowerUpLabels writes a one-letter tag on each power-up.
// Marks the drawn cells as dirty so the canvas repaints them next frame.
func (c *Client) drawPowerUpLabels(snap *sim.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()

	for _, p := range snap.PowerUps {
		cx, cy := p.Center()
		col, row := c.canvas.LogicalToTerminal(cx, cy)
		if row <= config.HUDRows || row > termHeight || col < 1 || col > termWidth {
			continue
		}
		c.frame.Badge(col, row, draw.ColorBlack, powerUpColors[p.Kind], powerUpLabels[p.Kind])
		c.canvas.MarkTextDirty(col, row, 1)
	}
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snap *sim.Snapshot, host *server.HostSnapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := (termHeight + config.HUDRows) / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	if c.state.GameState == GameStateStart {
		c.drawStartScreen(centerX, centerY, host)
		return
	}

	c.drawPlayingHUD(termWidth, snap, host)
	switch snap.Phase {
	case sim.PhasePaused:
		c.drawPauseScreen(centerX, centerY)
	case sim.PhaseGameOver:
		c.drawGameOverScreen(centerX, centerY, snap, host)
	}
}

// writeCentered writes s centered on centerX and marks the cells dirty.
func (c *Client) writeCentered(centerX, row int, s string) {
	c.writeCenteredColored(centerX, row, draw.ColorNone, s)
}

func (c *Client) writeCenteredColored(centerX, row int, color draw.Color, s string) {
	width := len([]rune(s))
	col := max(centerX-width/2, 1)
	c.frame.Colored(col, row, color, s)
	c.canvas.MarkTextDirty(col, row, width)
}

// fit pads or truncates s to exactly width runes.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// drawPlayingHUD draws the two HUD rows above the play area.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth int, snap *sim.Snapshot, host *server.HostSnapshot) {
	f := c.frame

	status := fmt.Sprintf(" %-*s  HP %3d/%-3d  Score %-7d  Wave %-3d  Time %4ds  Online %-3d",
		config.MaxUsernameLength, snap.Player.Name,
		snap.Health, c.controller.Tuning().MaxHealth,
		snap.Score, snap.Wave, int(snap.Elapsed.Seconds()), host.Players,
	)
	f.Text(1, 1, fit(status+"  "+buffText(snap), termWidth))

	f.Colored(1, 2, flashColor(snap.Flash), strings.Repeat("─", termWidth))
}

// buffText lists the active timed power-ups with their remaining time.
func buffText(snap *sim.Snapshot) string {
	var parts []string
	for _, b := range []struct {
		label     string
		remaining time.Duration
	}{
		{"SHIELD", snap.ShieldRemaining},
		{"SPEED", snap.SpeedRemaining},
		{"RAPID", snap.BulletRemaining},
	} {
		if b.remaining > 0 {
			parts = append(parts, fmt.Sprintf("%s %.1fs", b.label, b.remaining.Seconds()))
		}
	}
	return strings.Join(parts, "  ")
}

// drawStartScreen draws the title screen with color selection and the leaderboard.
func (c *Client) drawStartScreen(centerX, centerY int, host *server.HostSnapshot) {
	title := "C H A O S   S U R V I V A L"
	bar := strings.Repeat("═", len(title)+6)
	titleStartY := centerY - 10
	c.writeCentered(centerX, titleStartY, "╔"+bar+"╗")
	c.writeCentered(centerX, titleStartY+1, "║   "+title+"   ║")
	c.writeCentered(centerX, titleStartY+2, "╚"+bar+"╝")

	c.writeCentered(centerX, titleStartY+4, "~ Survive the waves. Grab the power-ups. ~")

	controlsY := titleStartY + 6
	c.writeCentered(centerX, controlsY, "Controls")
	controlLines := []string{
		"Arrow keys  . . . . . .  Move",
		"W A S D . .  Shoot N / W / S / E",
		"Q E Z C . . . Shoot diagonally",
		"P . . . . . . . . . . .  Pause",
		"ESC / Ctrl-C  . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+1+i, line)
	}

	pickerY := controlsY + len(controlLines) + 2
	c.drawColorPicker(centerX, pickerY)

	// Blinking start prompt
	promptY := pickerY + 2
	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, promptY, ">>  Press SPACE to Start  <<")
	} else {
		c.writeCentered(centerX, promptY, strings.Repeat(" ", 28))
	}

	c.drawLeaderboard(centerX, promptY+2, host.TopScores)
}

// drawColorPicker shows the selectable colors; the chosen one is bracketed.
func (c *Client) drawColorPicker(centerX, row int) {
	var plain, styled strings.Builder
	plain.WriteString("Color: ")
	styled.WriteString("Color: ")
	for i, name := range config.PlayerColors {
		item := fmt.Sprintf(" %d %s ", i+1, name)
		if i == c.state.ColorIndex {
			item = fmt.Sprintf("[%d %s]", i+1, name)
		}
		plain.WriteString(item)
		styled.WriteString(draw.ColorNamed(name).Fg() + item + draw.ColorReset)
	}

	width := len(plain.String())
	col := max(centerX-width/2, 1)
	c.frame.Text(col, row, styled.String())
	c.canvas.MarkTextDirty(col, row, width)
}

// drawLeaderboard lists the best finished runs on this host.
func (c *Client) drawLeaderboard(centerX, row int, entries []server.TopScoreEntry) {
	c.writeCentered(centerX, row, "Top Survivors")
	if len(entries) == 0 {
		c.writeCentered(centerX, row+1, "No finished runs yet")
		return
	}
	for i, e := range entries {
		line := fmt.Sprintf("%d. %-*s %7d  wave %-3d %4ds",
			i+1, config.MaxUsernameLength, e.Username, e.Score, e.Wave, int(e.Elapsed.Seconds()))
		c.writeCenteredColored(centerX, row+1+i, draw.ColorNamed(e.Color), line)
	}
}

// drawPauseScreen draws the pause overlay.
func (c *Client) drawPauseScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-1, "P A U S E D")
	c.writeCentered(centerX, centerY+1, "Press P to resume")
}

// drawGameOverScreen draws the final result, rank and leaderboard.
func (c *Client) drawGameOverScreen(centerX, centerY int, snap *sim.Snapshot, host *server.HostSnapshot) {
	titleStartY := centerY - 8
	c.writeCentered(centerX, titleStartY, "G A M E   O V E R")

	summary := fmt.Sprintf("Score %d   Wave %d   Time %ds",
		snap.Score, snap.Wave, int(snap.Elapsed.Seconds()))
	c.writeCentered(centerX, titleStartY+2, summary)

	switch {
	case c.state.Rank > 0:
		c.writeCentered(centerX, titleStartY+3, fmt.Sprintf("New top score! Rank #%d", c.state.Rank))
	case c.state.Rank == 0:
		c.writeCentered(centerX, titleStartY+3, "Not on the board this time")
	}

	c.drawLeaderboard(centerX, titleStartY+5, host.TopScores)

	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, titleStartY+7+config.TopScoresCount, ">>  Press R to Restart  <<")
	} else {
		c.writeCentered(centerX, titleStartY+7+config.TopScoresCount, strings.Repeat(" ", 26))
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.writeCentered(centerX, centerY, msg)
	c.writeCentered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %2d seconds...", remaining))
	c.writeCentered(centerX, centerY+4, "Press ESC to disconnect now")
}
