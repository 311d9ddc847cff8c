// leafglide is a terminal side-scroller about a creature gliding through
// gaps in drifting obstacles.
//
// Usage:
//
//	leafglide play            - Play in the current terminal
//	leafglide scores          - Show the local leaderboard
//	leafglide serve           - Start SSH server for remote play
//	leafglide api             - Start the leaderboard HTTP API
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.leafglide/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "leafglide",
	Short: "Leafglide - glide through the gaps in your terminal",
	Long: `Leafglide is a terminal side-scroller: tap to flap, slip through
the gaps, grab power-ups, and survive as the world speeds up.

Available commands:
  play     - Play in the current terminal
  scores   - View the leaderboard
  serve    - Start SSH server for remote play
  api      - Start the leaderboard HTTP API

Examples:
  leafglide play
  leafglide play --seed 42
  leafglide scores
  leafglide scores --server http://scores.example.com
  leafglide serve --ssh :2222
  leafglide api --http :8080`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.leafglide/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}
