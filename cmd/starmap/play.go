package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/platform/audio"
	"github.com/vovakirdan/starmap/internal/platform/gfx"
	"github.com/vovakirdan/starmap/internal/platform/tui"
	"github.com/vovakirdan/starmap/internal/starmap"
	"github.com/vovakirdan/starmap/internal/storage"
)

var (
	flagWindow bool
	flagSound  bool
	flagWidth  int
	flagHeight int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a new run on the roadmap.

Controls:
  Left/Right, A/D  - Turn
  Up/W, Down/S     - Thrust / reverse
  Z, C             - Strafe
  F, Shift+Up      - Boost
  Space            - Launch from a pad / fire in the arena
  Enter            - Confirm
  P/Esc            - Pause
  R                - Retry
  X                - Abort the run
  Q/Ctrl+C         - Quit

The window frontend also reads gamepads and aims with the right mouse
button or the right stick.

Examples:
  starmap play
  starmap play --difficulty easy
  starmap play --window --sound
  starmap play --seed 42 --config ./my-starmap.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWindow, "window", false, "Open a desktop window instead of the terminal")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects and music")
	playCmd.Flags().IntVar(&flagWidth, "width", 1280, "Window width (with --window)")
	playCmd.Flags().IntVar(&flagHeight, "height", 720, "Window height (with --window)")
}

func runPlay(_ *cobra.Command, _ []string) {
	tuning, catalog := loadGameConfig()
	logger := newLogger("starmap")

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open times storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open times database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	var sound starmap.Audio
	if flagSound {
		player := audio.NewPlayer(logger)
		if err := player.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			defer player.Close()
			sound = player
		}
	}

	opts := starmap.Options{
		Tuning:  tuning,
		Catalog: catalog,
		HUD:     starmap.NewHUD(sound, logger, tuning.Settings.SFXVolume, tuning.Settings.MusicVolume),
		Logger:  logger,
		Seed:    flagSeed,
	}
	if store != nil {
		opts.Recorder = store
	}
	mgr := starmap.NewManager(opts)

	var runErr error
	if flagWindow {
		gopts := gfx.DefaultOptions()
		if flagWidth > 0 {
			gopts.Width = flagWidth
		}
		if flagHeight > 0 {
			gopts.Height = flagHeight
		}
		if flagFPS > 0 {
			gopts.TickRate = flagFPS
		}
		gopts.Logger = logger
		runErr = gfx.Run(mgr, gopts)
	} else {
		runErr = tui.Run(mgr, tui.Options{Config: cfg, Logger: logger})
	}

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
