// Package config loads runtime configuration from flags, environment, and an
// optional sprintpulse.yaml file via viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"sprintpulse/internal/board"
)

// Config is the resolved runtime configuration for one invocation.
type Config struct {
	BoardID     string                  `mapstructure:"board_id"`
	PageLimit   int                     `mapstructure:"page_limit"`
	NearDueDays int                     `mapstructure:"near_due_days"`
	Model       string                  `mapstructure:"model"`
	RedLabel    string                  `mapstructure:"red_label"`
	YellowLabel string                  `mapstructure:"yellow_label"`
	Columns     map[board.Role][]string `mapstructure:"columns"`
}

// SetDefaults registers the default values on viper. Column candidates carry
// the title variants seen on real boards, matched case-insensitively.
func SetDefaults() {
	viper.SetDefault("api_token", "")
	viper.SetDefault("page_limit", 100)
	viper.SetDefault("near_due_days", 3)
	viper.SetDefault("model", "gemini-2.0-flash")
	viper.SetDefault("red_label", "At risk")
	viper.SetDefault("yellow_label", "Watch")
	viper.SetDefault("columns", map[string][]string{
		string(board.RoleStatus):     {"status", "dev status"},
		string(board.RoleTrack):      {"track", "vertical"},
		string(board.RoleOwner):      {"owner", "product owner", "assignee"},
		string(board.RoleTimeline):   {"timeline", "due date"},
		string(board.RoleCompletion): {"completion date", "actual date", "done date"},
		string(board.RoleDependency): {"blocked by", "dependency"},
		string(board.RoleHighlight):  {"risk highlight", "risk status", "data quality"},
	})
}

// Load resolves the configuration after flags are bound and the optional
// config file has been read.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.BoardID == "" {
		return nil, fmt.Errorf("board id is required: pass --board, set SPRINTPULSE_BOARD_ID, or add board_id to sprintpulse.yaml")
	}
	if cfg.PageLimit <= 0 || cfg.PageLimit > 500 {
		return nil, fmt.Errorf("page_limit must be between 1 and 500, got %d", cfg.PageLimit)
	}
	if cfg.NearDueDays < 0 {
		return nil, fmt.Errorf("near_due_days must not be negative, got %d", cfg.NearDueDays)
	}
	return &cfg, nil
}

// BoardURL returns the browser URL for the configured board.
func (c *Config) BoardURL() string {
	return fmt.Sprintf("https://view.monday.com/boards/%s", c.BoardID)
}
