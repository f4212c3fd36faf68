package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresStats bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show recorded runs",
	Long: `Display the top runs for a variant (default: tetris).

Examples:
  tetris scores
  tetris scores tetris_classic --limit 20
  tetris scores --limit 0
  tetris scores --stats
  tetris scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show (0 = all)")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show totals for every variant")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete recorded runs for the variant")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "tetris"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available variants.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresStats:
		err = printStats(store)
	case flagScoresClear:
		if err = store.ClearScores(gameID); err == nil {
			fmt.Printf("Cleared runs for %s.\n", gameID)
		}
	default:
		err = printScores(store, gameID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func printScores(store *storage.Store, gameID string) error {
	info, ok := registry.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown variant %q", gameID)
	}

	var scores []storage.ScoreEntry
	var err error
	if flagScoresLimit <= 0 {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tetris play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %s\n", "Rank", "Score", "Rows", "Level", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %s\n", "----", "-----", "----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-8d  %-5d  %-5d  %s\n", i+1, e.Score, e.Rows, e.Level, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	// Shared by all variants and kept when history is cleared
	if record, err := store.GetInt(tetris.HighScoreKey); err == nil {
		fmt.Printf("All-time high score: %d\n", record)
	}
	return nil
}

func printStats(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-16s  %-5s  %-8s  %-8s  %-6s  %s\n", "Variant", "Runs", "Best", "Average", "Rows", "Last played")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-16s  %-5d  %-8d  %-8.0f  %-6d  %s\n",
			id, s.GamesCount, s.HighScore, s.AvgScore, s.TotalRows, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
