package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// LoadTetris loads the game configuration and applies TETRIS_* environment
// overrides on top.
// Search order: customPath -> ~/.tetris/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
func LoadTetris(customPath string) (TetrisConfig, error) {
	cfg, err := loadTetrisYAML(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadTetrisYAML(customPath string) (TetrisConfig, error) {
	var cfg TetrisConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := parseTetris(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := parseTetris(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/tetris.yaml"); err == nil {
		if err := parseTetris(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := parseTetris(defaultTetrisYAML, &cfg); err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseTetris decodes YAML over the hardcoded defaults, so a partial file
// only changes the keys it names.
func parseTetris(data []byte, cfg *TetrisConfig) error {
	parsed := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return err
	}
	*cfg = parsed
	return nil
}

// ApplyEnv overrides cfg fields from TETRIS_* environment variables. Unset
// variables leave the loaded values alone.
func ApplyEnv(cfg *TetrisConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// UserConfigPath returns ~/.tetris/configs/tetris.yaml, or empty if the home
// directory is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "configs", "tetris.yaml")
}

// Validate checks the values the game cannot run with.
func (c TetrisConfig) Validate() error {
	if c.Grid.Width < 4 || c.Grid.Height < 4 {
		return fmt.Errorf("%w: grid %dx%d is smaller than 4x4", ErrInvalid, c.Grid.Width, c.Grid.Height)
	}
	if c.Timing.FallInterval <= 0 {
		return fmt.Errorf("%w: timing.fall_interval must be positive", ErrInvalid)
	}
	if c.Timing.RepeatInterval <= 0 {
		return fmt.Errorf("%w: timing.repeat_interval must be positive", ErrInvalid)
	}
	if maxLevel := c.Grid.Height - 4; c.Gameplay.StartLevel < 0 || c.Gameplay.StartLevel > maxLevel {
		return fmt.Errorf("%w: gameplay.start_level %d outside [0, %d]", ErrInvalid, c.Gameplay.StartLevel, maxLevel)
	}
	if c.Gameplay.PaletteSize < 1 {
		return fmt.Errorf("%w: gameplay.palette_size must be at least 1", ErrInvalid)
	}
	if c.Gameplay.ScorePerRow < 0 {
		return fmt.Errorf("%w: gameplay.score_per_row must not be negative", ErrInvalid)
	}
	switch c.Gameplay.BagMode {
	case "", "full", "single":
	default:
		return fmt.Errorf("%w: gameplay.bag_mode %q (want full or single)", ErrInvalid, c.Gameplay.BagMode)
	}
	return nil
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.StartLevel = 0
		cfg.Timing.FallInterval = 700 * time.Millisecond
	case DifficultyHard:
		cfg.Gameplay.StartLevel = min(4, max(0, cfg.Grid.Height-4))
		cfg.Timing.FallInterval = 350 * time.Millisecond
	}
}
