// Package config provides YAML-based game configuration loading and
// difficulty management for tui-tetris.
package config

import (
	"errors"
	"time"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid tetris configuration")

// TetrisConfig contains all configuration for the falling-block game.
// Every leaf can be overridden by a TETRIS_* environment variable.
type TetrisConfig struct {
	Grid       TetrisGrid       `yaml:"grid"`
	Timing     TetrisTiming     `yaml:"timing"`
	Gameplay   TetrisGameplay   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TetrisGrid defines the playfield size in cells.
type TetrisGrid struct {
	Width  int `yaml:"width" env:"TETRIS_GRID_WIDTH"`
	Height int `yaml:"height" env:"TETRIS_GRID_HEIGHT"`
}

// TetrisTiming defines gravity and input repeat periods.
type TetrisTiming struct {
	FallInterval   time.Duration `yaml:"fall_interval" env:"TETRIS_FALL_INTERVAL"`
	RepeatInterval time.Duration `yaml:"repeat_interval" env:"TETRIS_REPEAT_INTERVAL"`
}

// TetrisGameplay defines scoring, seeding and piece supply.
type TetrisGameplay struct {
	StartLevel  int    `yaml:"start_level" env:"TETRIS_START_LEVEL"`
	PaletteSize int    `yaml:"palette_size" env:"TETRIS_PALETTE_SIZE"`
	ScorePerRow int    `yaml:"score_per_row" env:"TETRIS_SCORE_PER_ROW"`
	BagMode     string `yaml:"bag_mode" env:"TETRIS_BAG_MODE"` // "full" or "single"
}

// DifficultyConfig defines how gravity speeds up as rows are cleared.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" env:"TETRIS_DIFFICULTY_ENABLED"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard; ignored when disabled
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives difficulty.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "rows" or "none"
	MaxAt int    `yaml:"max_at"` // Rows cleared at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64       `yaml:"speed_multiplier"`  // Added to gravity speed at max difficulty
	MinFallInterval time.Duration `yaml:"min_fall_interval"` // Gravity never gets faster than this
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset maps a CLI value to a preset. Unknown values
// return "" which leaves the loaded configuration untouched.
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
