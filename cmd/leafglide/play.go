package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"leafglide/internal/audio"
	"leafglide/internal/config"
	"leafglide/internal/core"
	"leafglide/internal/platform/tui"
	"leafglide/internal/storage"
)

var (
	flagConfig string
	flagMute   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the current terminal",
	Long: `Start a run in the current terminal.

Controls:
  Space/Up/W - Flap
  R          - Restart (after game over)
  M          - Mute sound
  Q/Ctrl+C   - Quit

Examples:
  leafglide play
  leafglide play --seed 42
  leafglide play --mute
  leafglide play --config ./my-leafglide.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound cues")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	var player *audio.Player
	if !flagMute {
		player = audio.NewPlayer()
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "leafglide"})

	runErr := tui.Run(gameCfg, rt, store, player, logger, localUsername())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// localUsername resolves the OS user for the score handle.
func localUsername() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
