package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg TetrisConfig
	if err := parseTetris(defaultTetrisYAML, &cfg); err != nil {
		t.Fatalf("parse embedded yaml: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTetrisConfig()) {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultTetrisConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestLoadTetrisCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := "grid:\n  width: 12\ntiming:\n  fall_interval: 250ms\ngameplay:\n  bag_mode: single\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris: %v", err)
	}
	if cfg.Grid.Width != 12 {
		t.Errorf("Grid.Width = %d, expected 12", cfg.Grid.Width)
	}
	if cfg.Grid.Height != 22 {
		t.Errorf("Grid.Height = %d, expected default 22", cfg.Grid.Height)
	}
	if cfg.Timing.FallInterval != 250*time.Millisecond {
		t.Errorf("FallInterval = %v, expected 250ms", cfg.Timing.FallInterval)
	}
	if cfg.Timing.RepeatInterval != 100*time.Millisecond {
		t.Errorf("RepeatInterval = %v, expected default 100ms", cfg.Timing.RepeatInterval)
	}
	if cfg.Gameplay.BagMode != "single" {
		t.Errorf("BagMode = %q, expected single", cfg.Gameplay.BagMode)
	}
}

func TestLoadTetrisMissingCustomPath(t *testing.T) {
	_, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestLoadTetrisBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte("grid: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadTetris(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("LoadTetris error = %v, expected parse failure", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TETRIS_GRID_HEIGHT", "30")
	t.Setenv("TETRIS_FALL_INTERVAL", "1s")
	t.Setenv("TETRIS_START_LEVEL", "3")
	t.Setenv("TETRIS_BAG_MODE", "single")

	cfg := DefaultTetrisConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Grid.Height != 30 {
		t.Errorf("Grid.Height = %d, expected 30", cfg.Grid.Height)
	}
	if cfg.Grid.Width != 10 {
		t.Errorf("Grid.Width = %d, expected unchanged 10", cfg.Grid.Width)
	}
	if cfg.Timing.FallInterval != time.Second {
		t.Errorf("FallInterval = %v, expected 1s", cfg.Timing.FallInterval)
	}
	if cfg.Gameplay.StartLevel != 3 {
		t.Errorf("StartLevel = %d, expected 3", cfg.Gameplay.StartLevel)
	}
	if cfg.Gameplay.BagMode != "single" {
		t.Errorf("BagMode = %q, expected single", cfg.Gameplay.BagMode)
	}
}

func TestApplyEnvError(t *testing.T) {
	t.Setenv("TETRIS_GRID_WIDTH", "wide")

	cfg := DefaultTetrisConfig()
	err := ApplyEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*TetrisConfig)
	}{
		{"zero width", func(c *TetrisConfig) { c.Grid.Width = 0 }},
		{"negative height", func(c *TetrisConfig) { c.Grid.Height = -1 }},
		{"tiny grid", func(c *TetrisConfig) { c.Grid.Width = 3 }},
		{"zero fall interval", func(c *TetrisConfig) { c.Timing.FallInterval = 0 }},
		{"zero repeat interval", func(c *TetrisConfig) { c.Timing.RepeatInterval = 0 }},
		{"negative level", func(c *TetrisConfig) { c.Gameplay.StartLevel = -1 }},
		{"level too high", func(c *TetrisConfig) { c.Gameplay.StartLevel = 19 }},
		{"empty palette", func(c *TetrisConfig) { c.Gameplay.PaletteSize = 0 }},
		{"negative score", func(c *TetrisConfig) { c.Gameplay.ScorePerRow = -5 }},
		{"unknown bag", func(c *TetrisConfig) { c.Gameplay.BagMode = "7bag" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}

	cfg := DefaultTetrisConfig()
	cfg.Gameplay.StartLevel = 18
	if err := cfg.Validate(); err != nil {
		t.Errorf("level height-4 should be valid: %v", err)
	}
}

func TestApplyTetrisPreset(t *testing.T) {
	cfg := DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled {
		t.Error("hard preset should enable progression")
	}
	if cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("InitialLevel = %v, expected 0.7", cfg.Difficulty.InitialLevel)
	}
	if cfg.Gameplay.StartLevel != 4 {
		t.Errorf("StartLevel = %d, expected 4", cfg.Gameplay.StartLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("hard preset produced invalid config: %v", err)
	}
}

func TestParseDifficultyPreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
	}{
		{"easy", DifficultyEasy},
		{"normal", DifficultyNormal},
		{"hard", DifficultyHard},
		{"fixed", DifficultyFixed},
		{"", ""},
		{"insane", ""},
	}
	for _, tt := range tests {
		if got := ParseDifficultyPreset(tt.in); got != tt.expected {
			t.Errorf("ParseDifficultyPreset(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestDifficultyFallInterval(t *testing.T) {
	cfg := DefaultTetrisConfig().Difficulty
	cfg.Progression.MaxAt = 10
	cfg.Scaling.SpeedMultiplier = 1.0
	cfg.Scaling.MinFallInterval = 300 * time.Millisecond
	dm := NewDifficultyManager(cfg)
	base := 800 * time.Millisecond

	tests := []struct {
		rows     int
		expected time.Duration
	}{
		{0, 800 * time.Millisecond},
		{10, 400 * time.Millisecond},
		{50, 400 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := dm.FallInterval(base, tt.rows); got != tt.expected {
			t.Errorf("FallInterval(rows=%d) = %v, expected %v", tt.rows, got, tt.expected)
		}
	}

	cfg.Scaling.SpeedMultiplier = 10
	dm = NewDifficultyManager(cfg)
	if got := dm.FallInterval(base, 10); got != 300*time.Millisecond {
		t.Errorf("FallInterval should stop at floor, got %v", got)
	}

	cfg.Enabled = false
	dm = NewDifficultyManager(cfg)
	if got := dm.FallInterval(base, 10); got != base {
		t.Errorf("disabled FallInterval = %v, expected base %v", got, base)
	}
}

func TestDisabledDifficultyIgnoresInitialLevel(t *testing.T) {
	cfg := DefaultTetrisConfig().Difficulty
	cfg.Enabled = false
	cfg.InitialLevel = 0.5
	dm := NewDifficultyManager(cfg)

	if got := dm.Level(0); got != 0 {
		t.Errorf("Level() = %v, expected 0 when disabled", got)
	}
	base := 500 * time.Millisecond
	if got := dm.FallInterval(base, 0); got != base {
		t.Errorf("FallInterval() = %v, expected base %v when disabled", got, base)
	}

	cfg.Enabled = true
	cfg.Progression.Type = "none"
	if got := NewDifficultyManager(cfg).Level(50); got != 0.5 {
		t.Errorf("Level() = %v, expected the initial level without progression", got)
	}
}
