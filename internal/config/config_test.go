package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFillsMissingFieldsFromDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holdem.hcl")
	body := `
table {
  small_blind = 25
  big_blind   = 50
}
ai {
  personalities = ["conservative", "aggressive"]
}
server {
  port = 9090
}
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Table.SmallBlind)
	assert.Equal(t, 50, cfg.Table.BigBlind)
	assert.Equal(t, Default().Table.StartingStack, cfg.Table.StartingStack)
	assert.Equal(t, []string{"conservative", "aggressive"}, cfg.AI.Personalities)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, Default().Server.Address, cfg.Server.Address)
}

func TestValidateRejectsBadBlindOrdering(t *testing.T) {
	cfg := Default()
	cfg.Table.BigBlind = cfg.Table.SmallBlind
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownPersonality(t *testing.T) {
	cfg := Default()
	cfg.AI.Personalities = []string{"chaotic-neutral"}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsTooManyPersonalities(t *testing.T) {
	cfg := Default()
	cfg.AI.Personalities = []string{"conservative", "aggressive", "mathematical", "conservative"}
	assert.Error(t, cfg.Validate())
}

func TestValidateAcceptsDefault(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidateRejectsNonPositiveAutoAdvance(t *testing.T) {
	cfg := Default()
	cfg.Table.AutoAdvanceSeconds = 0
	assert.Error(t, cfg.Validate())
}

func TestAutoAdvanceDelayConvertsSecondsToDuration(t *testing.T) {
	cfg := Default()
	cfg.Table.AutoAdvanceSeconds = 3
	assert.Equal(t, 3*time.Second, cfg.AutoAdvanceDelay())
}

func TestAddressFormatsHostPort(t *testing.T) {
	cfg := Default()
	cfg.Server.Address = "0.0.0.0"
	cfg.Server.Port = 1234
	assert.Equal(t, "0.0.0.0:1234", cfg.Address())
}
