package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var (
	flagConfigEffective bool
	flagConfigWrite     bool
	flagConfigForce     bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or install the game configuration",
	Long: `Prints the default configuration YAML.

With --effective, prints the configuration the game would run with after
the config file, TETRIS_* environment variables and --difficulty are applied.
With --write, installs the default file at ~/.tetris/configs/tetris.yaml.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigEffective, "effective", false, "Print the resolved configuration")
	configCmd.Flags().BoolVar(&flagConfigWrite, "write", false, "Write the default configuration to the user config path")
	configCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file with --write")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	switch {
	case flagConfigWrite:
		path := config.UserConfigPath()
		if path == "" {
			return errors.New("cannot determine home directory")
		}
		if _, err := os.Stat(path); err == nil && !flagConfigForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create config directory: %w", err)
		}
		if err := os.WriteFile(path, config.GetDefaultYAML("tetris"), 0o644); err != nil {
			return fmt.Errorf("cannot write config: %w", err)
		}
		fmt.Fprintf(out, "Wrote %s\n", path)
		return nil

	case flagConfigEffective:
		cfg, err := config.LoadTetris(flagConfig)
		if err != nil {
			return err
		}
		if preset := config.ParseDifficultyPreset(flagDifficulty); preset != "" {
			config.ApplyTetrisPreset(&cfg, preset)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err

	default:
		_, err := out.Write(config.GetDefaultYAML("tetris"))
		return err
	}
}
