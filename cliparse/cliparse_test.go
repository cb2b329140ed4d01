// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/loopvote/redirect"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "VOTING_MODE", "TARGET_ID", "ADMIN_KEY_SALT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "file:loopvote.db" {
		t.Errorf("expected default sqlite file, got %s", cfg.DatabaseURL)
	}
	if cfg.VotingMode != redirect.Normal {
		t.Errorf("expected normal mode, got %s", cfg.VotingMode)
	}
	if cfg.AdminKeySalt != "" {
		t.Errorf("expected no admin salt, got %s", cfg.AdminKeySalt)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("VOTING_MODE", "joke_mode")
	t.Setenv("TARGET_ID", "12")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.VotingMode != redirect.RedirectAll {
		t.Errorf("expected redirect-all, got %s", cfg.VotingMode)
	}
	if cfg.TargetID != 12 {
		t.Errorf("expected target 12, got %d", cfg.TargetID)
	}
	if cfg.AdminKeySalt != "test-salt" {
		t.Errorf("expected admin salt from env, got %s", cfg.AdminKeySalt)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("VOTING_MODE", "redirect-all")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-mode", "normal", "-admin-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.VotingMode != redirect.Normal {
		t.Errorf("CLI should override env: expected normal, got %s", cfg.VotingMode)
	}
	if cfg.DatabaseURL != "file:test.db" {
		t.Errorf("expected file:test.db, got %s", cfg.DatabaseURL)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"bad port env", nil, map[string]string{"PORT": "abc"}},
		{"port out of range", []string{"-p", "70000"}, nil},
		{"unknown mode", []string{"-mode", "chaos"}, nil},
		{"unknown database", []string{"-t", "mysql"}, nil},
		{"postgres without url", []string{"-t", "postgres"}, nil},
		{"bad target env", nil, map[string]string{"TARGET_ID": "seven"}},
		{"negative target", []string{"-target", "-3"}, nil},
		{"unknown flag", []string{"-slug-salt", "x"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=4000\nVOTING_MODE=redirect-all\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VOTING_MODE", "normal")

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"), path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 4000 {
		t.Errorf("expected port from .env, got %d", cfg.Port)
	}
	// Existing variables are not overridden
	if cfg.VotingMode != redirect.Normal {
		t.Errorf("expected process env to win, got %s", cfg.VotingMode)
	}
}
