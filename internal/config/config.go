// Package config loads the selector configuration for board extraction.
//
// Configuration precedence (highest to lowest):
//  1. RETRO_-prefixed environment variables
//     (RETRO_VOTE_THRESHOLD, RETRO_SELECTORS_BOARD_TITLE, ...)
//  2. YAML config file passed via --config
//  3. Built-in defaults for the reference board layout
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// DefaultReadyTimeout bounds the wait for the board's message lists to
// render before extraction gives up.
const DefaultReadyTimeout = 15 * time.Second

// Selectors maps each semantic role on the board page to a CSS
// selector expression.
type Selectors struct {
	BoardTitle   string `koanf:"board_title"`
	Column       string `koanf:"column"`
	ColumnHeader string `koanf:"column_header"`
	MessageList  string `koanf:"message_list"`
	Message      string `koanf:"message"`
	MessageText  string `koanf:"message_text"`
	MessageVotes string `koanf:"message_votes"`
}

// Config is the process-wide extraction configuration, loaded once at
// startup and passed explicitly to the extractor.
type Config struct {
	Selectors Selectors `koanf:"selectors"`
	// VoteThreshold is the minimum vote count a message needs to be
	// included in the export.
	VoteThreshold int `koanf:"vote_threshold"`
	// ReadyTimeout bounds the readiness gate at the start of an
	// extraction run.
	ReadyTimeout time.Duration `koanf:"ready_timeout"`
}

// Default returns the configuration for the reference board layout.
func Default() *Config {
	return &Config{
		Selectors: Selectors{
			BoardTitle:   "#board-name",
			Column:       ".message-column",
			ColumnHeader: ".column-header",
			MessageList:  ".message-list",
			Message:      ".message-main",
			MessageText:  ".message-body .text",
			MessageVotes: ".votes .vote-count",
		},
		VoteThreshold: 1,
		ReadyTimeout:  DefaultReadyTimeout,
	}
}

// Load reads the YAML file at path (optional, "" skips it), applies
// RETRO_ environment overrides on top and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// RETRO_SELECTORS_BOARD_TITLE -> selectors.board_title
	// RETRO_VOTE_THRESHOLD       -> vote_threshold
	if err := k.Load(env.Provider("RETRO_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "RETRO_"))
		if rest, ok := strings.CutPrefix(s, "selectors_"); ok {
			return "selectors." + rest
		}
		return s
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env overrides: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the extractor cannot run with.
func (c *Config) Validate() error {
	roles := []struct {
		name string
		expr string
	}{
		{"selectors.board_title", c.Selectors.BoardTitle},
		{"selectors.column", c.Selectors.Column},
		{"selectors.column_header", c.Selectors.ColumnHeader},
		{"selectors.message_list", c.Selectors.MessageList},
		{"selectors.message", c.Selectors.Message},
		{"selectors.message_text", c.Selectors.MessageText},
		{"selectors.message_votes", c.Selectors.MessageVotes},
	}
	for _, role := range roles {
		if strings.TrimSpace(role.expr) == "" {
			return fmt.Errorf("%s must not be empty", role.name)
		}
	}
	if c.VoteThreshold < 0 {
		return fmt.Errorf("vote_threshold must not be negative: %d", c.VoteThreshold)
	}
	if c.ReadyTimeout <= 0 {
		return fmt.Errorf("ready_timeout must be positive: %s", c.ReadyTimeout)
	}
	return nil
}
