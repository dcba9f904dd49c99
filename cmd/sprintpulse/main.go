package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sprintpulse/internal/board"
	"sprintpulse/internal/config"
	"sprintpulse/internal/monday"
	"sprintpulse/internal/report"
	"sprintpulse/internal/run"
	"sprintpulse/internal/summary"
	"sprintpulse/internal/tui"
)

var (
	// CLI flags
	boardFlag   string
	sprintFlag  int
	configFlag  string
	dryRunFlag  bool
	openFlag    bool
	verboseFlag bool

	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sprintpulse",
		Short: "Risk-aware sprint summaries for Monday.com boards",
		Long: `sprintpulse evaluates the work items of one sprint group on a Monday.com
board against a fixed set of governance rules, computes the sprint timeline
verdict (Met, Missed, Ongoing), generates a summary, and writes the results
back to the board. Repeated runs update the same summary item, never
duplicating it.

Credentials:
  MONDAY_API_TOKEN   Monday.com API token (required)
  GEMINI_API_KEY     Gemini API key; without it the deterministic
                     rule-built summary is used`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zapConfig := zap.NewProductionConfig()
			if verboseFlag {
				zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = zapConfig.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return initConfig()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runSprintPulse,
	}

	rootCmd.Flags().StringVar(&boardFlag, "board", "", "Monday.com board id")
	rootCmd.Flags().IntVar(&sprintFlag, "sprint", 0, "Sprint number (e.g. 4). Skips the interactive picker.")
	rootCmd.Flags().StringVar(&configFlag, "config", "", "Path to sprintpulse.yaml")
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Evaluate and print without writing to the board")
	rootCmd.Flags().BoolVar(&openFlag, "open", false, "Open the board in a browser after the run")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Debug logging")
	_ = viper.BindPFlag("board_id", rootCmd.Flags().Lookup("board"))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() error {
	viper.SetEnvPrefix("SPRINTPULSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	config.SetDefaults()

	if configFlag != "" {
		viper.SetConfigFile(configFlag)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", configFlag, err)
		}
		return nil
	}

	viper.SetConfigName("sprintpulse")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional; only a malformed one is an error.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return fmt.Errorf("failed to read sprintpulse.yaml: %w", err)
		}
	}
	return nil
}

func runSprintPulse(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := monday.New()
	if err != nil {
		return err
	}

	var generator summary.Generator
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		gen, err := summary.NewGeminiGenerator(ctx, apiKey, cfg.Model)
		if err != nil {
			return err
		}
		generator = gen
	} else {
		logger.Info("GEMINI_API_KEY not set, using rule-built summaries")
	}

	pipeline := &run.Pipeline{
		Client:    client,
		Generator: generator,
		Config:    cfg,
		Log:       logger,
		DryRun:    dryRunFlag,
	}

	snap, err := pipeline.Fetch(ctx)
	if err != nil {
		return err
	}

	group, err := selectGroup(snap)
	if err != nil {
		return err
	}

	rep, err := pipeline.Run(ctx, snap, group)
	if err != nil {
		return err
	}
	report.Render(os.Stdout, rep)

	if openFlag {
		if err := browser.OpenURL(cfg.BoardURL()); err != nil {
			logger.Warn("failed to open browser", zap.Error(err))
		}
	}
	return nil
}

func selectGroup(snap *board.Snapshot) (monday.Group, error) {
	if sprintFlag > 0 {
		return snap.FindSprintGroup(sprintFlag)
	}
	return tui.PickSprint(snap.SprintGroups())
}
