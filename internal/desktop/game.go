// Package desktop is the windowed front-end: an ebiten.Game that drives one
// survival session at the simulation's tick rate.
package desktop

import (
	"fmt"
	"image/color"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/chaos-survival/internal/loop/config"
	"github.com/tomz197/chaos-survival/internal/loop/server"
	"github.com/tomz197/chaos-survival/internal/loop/sim"
	"github.com/tomz197/chaos-survival/internal/object"
)

// Options configures a Game.
type Options struct {
	Name   string
	Tuning config.Tuning // Default tuning if zero
	Logger *log.Logger   // Discarded if nil
	Rand   *rand.Rand
}

// Game implements ebiten.Game.
type Game struct {
	controller *sim.Controller
	board      *server.Leaderboard
	logger     *log.Logger

	name       string
	colorIndex int
	rank       int // Rank of the last finished run, 0 if unranked
}

var _ ebiten.Game = (*Game)(nil)

// NewGame creates a game on its title screen.
func NewGame(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Name == "" {
		opts.Name = config.DefaultPlayerName
	}

	g := &Game{
		board:  server.NewLeaderboard(config.TopScoresCount),
		logger: opts.Logger,
		name:   opts.Name,
	}
	g.controller = sim.NewController(sim.Options{
		Tuning: opts.Tuning,
		Keys:   keyboard{},
		Bounds: sim.FixedBounds(config.SceneWidth, config.SceneHeight),
		Rand:   opts.Rand,
		Logger: opts.Logger,
		OnGameOver: func(r sim.Result) {
			g.rank = g.board.Add(r)
		},
	})
	return g
}

// TPS returns the update rate that makes one Update equal one simulation tick.
func (g *Game) TPS() int {
	tick := g.controller.Tuning().TickTime
	return max(int((time.Second+tick/2)/tick), 1)
}

// Update handles menu keys and advances the session by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	switch g.controller.Phase() {
	case sim.PhaseIdle:
		for i, k := range numberKeys {
			if i < len(config.PlayerColors) && inpututil.IsKeyJustPressed(k) {
				g.colorIndex = i
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.controller.StartSession(g.name, config.PlayerColors[g.colorIndex])
		}
	case sim.PhaseRunning, sim.PhasePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			g.controller.TogglePause()
		}
	case sim.PhaseGameOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.controller.Restart()
		}
	}

	g.controller.Tick()
	return nil
}

// Draw renders the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.controller.Snapshot()
	screen.Fill(rgba(colorBackground))

	if snap.Phase == sim.PhaseIdle {
		g.drawTitle(screen)
		return
	}

	drawScene(screen, &snap)
	if snap.Flash != sim.FlashNone {
		w, h := float32(snap.Screen.Width), float32(snap.Screen.Height)
		vector.StrokeRect(screen, 2, 2, w-4, h-4, 4, rgba(snap.Flash.Color()), false)
	}
	g.drawHUD(screen, &snap)

	switch snap.Phase {
	case sim.PhasePaused:
		ebitenutil.DebugPrintAt(screen, "PAUSED - press P to resume", config.SceneWidth/2-78, config.SceneHeight/2)
	case sim.PhaseGameOver:
		g.drawGameOver(screen, &snap)
	}
}

// Layout returns the fixed scene size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.SceneWidth, config.SceneHeight
}

func drawScene(screen *ebiten.Image, snap *sim.Snapshot) {
	for _, p := range snap.PowerUps {
		fillRect(screen, p.X, p.Y, p.W, p.H, rgba(powerUpColors[p.Kind]))
		ebitenutil.DebugPrintAt(screen, powerUpLabels[p.Kind], int(p.X)+11, int(p.Y)+7)
	}
	for _, e := range snap.Enemies {
		fillRect(screen, e.X, e.Y, e.W, e.H, rgba(enemyColors[e.Type]))
		if e.Shielded {
			strokeRect(screen, e.X, e.Y, e.W, e.H, 3, rgba("cyan"))
		}
	}
	for _, b := range snap.EnemyBullets {
		fillRect(screen, b.X, b.Y, b.W, b.H, rgba("red"))
	}
	for _, b := range snap.PlayerBullets {
		fillRect(screen, b.X, b.Y, b.W, b.H, rgba("yellow"))
	}

	p := snap.Player
	fillRect(screen, p.X, p.Y, p.W, p.H, rgba(p.Color))
	if p.ShieldActive {
		strokeRect(screen, p.X-6, p.Y-6, p.W+12, p.H+12, 2, rgba("cyan"))
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, snap *sim.Snapshot) {
	hud := fmt.Sprintf("%s  HP %d/%d  Score %d  Wave %d  Time %ds",
		snap.Player.Name, snap.Health, g.controller.Tuning().MaxHealth,
		snap.Score, snap.Wave, int(snap.Elapsed.Seconds()))
	ebitenutil.DebugPrintAt(screen, hud, 8, 6)

	// Health bar
	maxHealth := float64(g.controller.Tuning().MaxHealth)
	fillRect(screen, 8, 24, 200, 6, rgba("darkred"))
	fillRect(screen, 8, 24, 200*float64(snap.Health)/maxHealth, 6, rgba("green"))

	var buffs []string
	if snap.ShieldRemaining > 0 {
		buffs = append(buffs, fmt.Sprintf("SHIELD %.1fs", snap.ShieldRemaining.Seconds()))
	}
	if snap.SpeedRemaining > 0 {
		buffs = append(buffs, fmt.Sprintf("SPEED %.1fs", snap.SpeedRemaining.Seconds()))
	}
	if snap.BulletRemaining > 0 {
		buffs = append(buffs, fmt.Sprintf("RAPID %.1fs", snap.BulletRemaining.Seconds()))
	}
	if len(buffs) > 0 {
		ebitenutil.DebugPrintAt(screen, strings.Join(buffs, "  "), 8, 34)
	}
}

func (g *Game) drawTitle(screen *ebiten.Image) {
	lines := []string{
		"C H A O S   S U R V I V A L",
		"",
		"Arrow keys      Move",
		"W A S D         Shoot N / W / S / E",
		"Q E Z C         Shoot diagonally",
		"P               Pause",
		"ESC             Quit",
		"",
		"Pick a color with 1-8, then press SPACE",
	}
	y := 160
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 260, y)
		y += 18
	}

	for i, name := range config.PlayerColors {
		x := float64(260 + i*36)
		fillRect(screen, x, float64(y+10), 24, 24, rgba(name))
		if i == g.colorIndex {
			strokeRect(screen, x-4, float64(y+6), 32, 32, 2, rgba("white"))
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprint(i+1), int(x)+8, y+40)
	}

	g.drawLeaderboard(screen, 260, y+80)
}

func (g *Game) drawGameOver(screen *ebiten.Image, snap *sim.Snapshot) {
	x, y := config.SceneWidth/2-110, 200
	ebitenutil.DebugPrintAt(screen, "G A M E   O V E R", x, y)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score %d   Wave %d   Time %ds",
		snap.Score, snap.Wave, int(snap.Elapsed.Seconds())), x, y+24)
	if g.rank > 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("New top score! Rank #%d", g.rank), x, y+42)
	}
	g.drawLeaderboard(screen, x, y+72)
	ebitenutil.DebugPrintAt(screen, "Press R to restart", x, y+96+18*config.TopScoresCount)
}

func (g *Game) drawLeaderboard(screen *ebiten.Image, x, y int) {
	ebitenutil.DebugPrintAt(screen, "Top Survivors", x, y)
	for i, e := range g.board.Entries() {
		line := fmt.Sprintf("%d. %-16s %7d  wave %d", i+1, e.Username, e.Score, e.Wave)
		ebitenutil.DebugPrintAt(screen, line, x, y+18*(i+1))
	}
}

func fillRect(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.FillRect(dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func strokeRect(dst *ebiten.Image, x, y, w, h float64, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), width, clr, false)
}

// Entity colors by name, shared with the terminal front-end's naming.
var (
	enemyColors = map[object.EnemyType]string{
		object.EnemyNormal:   "red",
		object.EnemyFast:     "orange",
		object.EnemyTank:     "purple",
		object.EnemyShielded: "gray",
	}
	powerUpColors = map[object.PowerUpKind]string{
		object.PowerUpHealth: "green",
		object.PowerUpShield: "cyan",
		object.PowerUpSpeed:  "blue",
		object.PowerUpBullet: "yellow",
	}
	powerUpLabels = map[object.PowerUpKind]string{
		object.PowerUpHealth: "+",
		object.PowerUpShield: "S",
		object.PowerUpSpeed:  ">",
		object.PowerUpBullet: "B",
	}
)
