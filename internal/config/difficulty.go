package config

import (
	"math"
	"time"
)

// DifficultyManager calculates gravity speed from rows cleared.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) for the rows
// cleared so far. A disabled manager is always at level 0, whatever
// initial_level says.
func (d *DifficultyManager) Level(rowsCleared int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	if d.cfg.Progression.Type != "rows" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(rowsCleared)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// FallInterval shortens the base gravity period as difficulty rises:
// speed grows from 1x to (1 + speed_multiplier)x, never below the floor.
func (d *DifficultyManager) FallInterval(base time.Duration, rowsCleared int) time.Duration {
	level := d.Level(rowsCleared)
	speed := 1.0 + level*d.cfg.Scaling.SpeedMultiplier
	if speed <= 0 {
		return base
	}
	result := time.Duration(float64(base) / speed)
	if floor := d.cfg.Scaling.MinFallInterval; floor > 0 && result < floor {
		result = floor
	}
	if result > base {
		result = base
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
