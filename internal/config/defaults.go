package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Grid: TetrisGrid{
			Width:  10,
			Height: 22,
		},
		Timing: TetrisTiming{
			FallInterval:   500 * time.Millisecond,
			RepeatInterval: 100 * time.Millisecond,
		},
		Gameplay: TetrisGameplay{
			StartLevel:  0,
			PaletteSize: 7,
			ScorePerRow: 10,
			BagMode:     "full",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "rows",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 2.0,
				MinFallInterval: 80 * time.Millisecond,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tetris", "tetris_classic":
		return defaultTetrisYAML
	default:
		return nil
	}
}
