package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/chaos-survival/internal/config"
	"github.com/tomz197/chaos-survival/internal/desktop"
	tuningconfig "github.com/tomz197/chaos-survival/internal/loop/config"
)

func main() {
	if _, err := config.LoadEnvFile(config.GetEnv("SURVIVAL_ENV_FILE", "")); err != nil {
		log.Fatal("failed to load env file", "err", err)
	}
	logger, err := config.NewLogger(os.Stderr, "desktop", config.GetEnv("LOG_LEVEL", ""))
	if err != nil {
		log.Fatal("failed to create logger", "err", err)
	}

	tuning, err := tuningconfig.LoadTuning(config.GetEnv("SURVIVAL_TUNING", ""))
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}

	game := desktop.NewGame(desktop.Options{
		Name:   config.GetEnv("USER", ""),
		Tuning: tuning,
		Logger: logger,
	})

	ebiten.SetWindowSize(tuningconfig.SceneWidth, tuningconfig.SceneHeight)
	ebiten.SetWindowTitle("Chaos Survival")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(game.TPS())

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game error", "err", err)
	}
}
