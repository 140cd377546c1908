// Package config loads table, AI, and server settings from HCL files,
// the same hclparse/gohcl pair the rest of the stack uses for its own
// configuration surface.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete configuration surface: table stakes, AI seat
// assignment, and the server listener.
type Config struct {
	Table  TableSettings  `hcl:"table,block"`
	AI     AISettings     `hcl:"ai,block"`
	Server ServerSettings `hcl:"server,block"`
}

// TableSettings holds table pacing and stakes. Only AutoAdvanceSeconds is
// applied to new games; StartingStack, SmallBlind and BigBlind are loaded
// and validated, but games use the orchestrator's fixed defaults.
type TableSettings struct {
	StartingStack      int `hcl:"starting_stack,optional"`
	SmallBlind         int `hcl:"small_blind,optional"`
	BigBlind           int `hcl:"big_blind,optional"`
	AutoAdvanceSeconds int `hcl:"auto_advance_seconds,optional"`
}

// AISettings lists AI personalities, equity sample count, and reasoning
// visibility. These are loaded and validated only; seat assignment,
// equity sampling, and reasoning visibility do not read them.
type AISettings struct {
	Personalities []string `hcl:"personalities,optional"`
	EquitySamples int      `hcl:"equity_samples,optional"`
	ShowThinking  bool     `hcl:"show_thinking,optional"`
}

// ServerSettings controls the optional websocket listener.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Table: TableSettings{
			StartingStack:      1000,
			SmallBlind:         5,
			BigBlind:           10,
			AutoAdvanceSeconds: 2,
		},
		AI: AISettings{
			Personalities: []string{"conservative", "aggressive", "mathematical"},
			EquitySamples: 300,
			ShowThinking:  false,
		},
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
	}
}

// Load reads configuration from an HCL file, falling back to Default
// when the file does not exist. Missing fields within a present file are
// filled from Default rather than left at HCL's zero values.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %s", filename, diags.Error())
	}

	cfg := Default()
	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %s", filename, diags.Error())
	}

	if cfg.Table.StartingStack == 0 {
		cfg.Table.StartingStack = Default().Table.StartingStack
	}
	if cfg.Table.SmallBlind == 0 {
		cfg.Table.SmallBlind = Default().Table.SmallBlind
	}
	if cfg.Table.BigBlind == 0 {
		cfg.Table.BigBlind = Default().Table.BigBlind
	}
	if cfg.AI.EquitySamples == 0 {
		cfg.AI.EquitySamples = Default().AI.EquitySamples
	}
	if cfg.Table.AutoAdvanceSeconds == 0 {
		cfg.Table.AutoAdvanceSeconds = Default().Table.AutoAdvanceSeconds
	}
	if len(cfg.AI.Personalities) == 0 {
		cfg.AI.Personalities = Default().AI.Personalities
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = Default().Server.Address
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = Default().Server.Port
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = Default().Server.LogLevel
	}

	return cfg, nil
}

// Validate checks the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("config: small blind must be positive")
	}
	if c.Table.BigBlind <= c.Table.SmallBlind {
		return fmt.Errorf("config: big blind must exceed small blind")
	}
	if c.Table.StartingStack <= c.Table.BigBlind {
		return fmt.Errorf("config: starting stack must exceed big blind")
	}
	if c.Table.AutoAdvanceSeconds <= 0 {
		return fmt.Errorf("config: auto_advance_seconds must be positive")
	}
	if len(c.AI.Personalities) == 0 || len(c.AI.Personalities) > 3 {
		return fmt.Errorf("config: must configure 1-3 AI personalities, got %d", len(c.AI.Personalities))
	}
	for _, p := range c.AI.Personalities {
		switch p {
		case "conservative", "aggressive", "mathematical":
		default:
			return fmt.Errorf("config: unknown AI personality %q", p)
		}
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Server.Port)
	}
	return nil
}

// Address returns the full listen address for the server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// AutoAdvanceDelay returns the pause before a new hand starts automatically.
func (c *Config) AutoAdvanceDelay() time.Duration {
	return time.Duration(c.Table.AutoAdvanceSeconds) * time.Second
}
