package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: tetris).

Controls:
  Left/Right, A/D  - Move piece
  Up, W, Space     - Rotate
  Down, S          - Soft drop
  P                - Pause
  R                - Restart (after game over)
  Esc              - Leave (while paused or after game over)
  Q/Ctrl+C         - Quit

Levels:
  Level N starts the board with N rows of scattered blocks.

Difficulty options:
  easy   - Slower fall, starts on an empty board
  normal - Default speed, speeds up as rows are cleared
  hard   - Faster fall and a few seeded rows
  fixed  - No speed-up, stays at the configured fall interval

Examples:
  tetris play
  tetris play --level 6
  tetris play tetris_classic --difficulty hard
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", -1, "Starting level (-1 uses the configured level)")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "tetris"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available variants.")
		os.Exit(1)
	}
	if maxLevel := maxStartLevel(); flagLevel > maxLevel {
		fmt.Fprintf(os.Stderr, "Error: level %d is above the maximum of %d\n", flagLevel, maxLevel)
		os.Exit(1)
	}

	game, err := tui.ApplySelection(tui.Selection{GameID: gameID, Level: flagLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	_, runErr := tui.Run(game, store, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
