package bot

import (
	"testing"
)

func TestLoadConfig_WithValidEnv(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token-123")
	t.Setenv("DATABASE_URL", "postgres://localhost/emberbot")
	t.Setenv("DEVELOPER_IDS", "111,222")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DiscordToken != "test-token-123" {
		t.Errorf("expected token %q, got %q", "test-token-123", cfg.DiscordToken)
	}
	if len(cfg.DeveloperIDs) != 2 {
		t.Fatalf("expected 2 developer IDs, got %d", len(cfg.DeveloperIDs))
	}
	if !cfg.IsDeveloper("222") {
		t.Error("expected 222 to be a developer")
	}
	if cfg.IsDeveloper("333") {
		t.Error("expected 333 not to be a developer")
	}
}

func TestLoadConfig_WithEmptyToken(t *testing.T) {
	// Clear the environment variable
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/emberbot")

	_, err := LoadConfig()
	if err == nil {
		t.Error("expected error for missing token, got nil")
	}
}
