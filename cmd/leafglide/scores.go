package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"leafglide/internal/leaderboard"
	"leafglide/internal/storage"
)

var (
	flagServer string
	flagLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top scores.

Reads the local database by default. With --server, queries a remote
leaderboard API instead.

Examples:
  leafglide scores
  leafglide scores --limit 25
  leafglide scores --server http://scores.example.com`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagServer, "server", "", "Remote leaderboard base URL (empty = local database)")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
}

func runScores(cmd *cobra.Command, args []string) {
	var (
		entries []storage.ScoreEntry
		err     error
	)

	if flagServer != "" {
		entries, err = leaderboard.NewClient(flagServer).Top(flagLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error querying leaderboard: %v\n", err)
			os.Exit(1)
		}
	} else {
		store, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", openErr)
			os.Exit(1)
		}
		defer store.Close()

		entries, err = store.TopScores(flagLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("High Scores - Leafglide")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'leafglide play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-24s  %s\n", "Rank", "Score", "Name", "Date")
	fmt.Printf("  %-4s  %-10s  %-24s  %s\n", "----", "-----", "----", "----")

	for i, entry := range entries {
		name := entry.Name
		if name == "" {
			name = "anonymous"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-24s  %s\n", i+1, entry.Score, name, dateStr)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", entries[0].Score)
}
