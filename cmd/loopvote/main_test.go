// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"database/sql"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/loopvote/models"
	"github.com/danielhkuo/loopvote/redirect"
	"github.com/danielhkuo/loopvote/router"
	"github.com/danielhkuo/loopvote/testutil"
)

type testServer struct {
	url   string
	conn  *sql.DB
	modes *redirect.Switch
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	// Keep the caller's environment out of flag resolution
	for _, key := range []string{"LOOPVOTE_SERVER", "LOOPVOTE_TIMEOUT", "LOOPVOTE_ADMIN_SALT", "LOOPVOTE_SEED", "LOOPVOTE_DEBUG"} {
		t.Setenv(key, "")
	}

	conn := testutil.SetupTestDB(t)
	modes := redirect.NewSwitch(redirect.Normal)
	r := redirect.NewRedirector(testutil.TestTargetID, modes, nil)
	srv := httptest.NewServer(router.NewRouter(conn, testutil.GetTestConfig(), r))
	t.Cleanup(srv.Close)
	return testServer{url: srv.URL, conn: conn, modes: modes}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestModeGet(t *testing.T) {
	ts := newTestServer(t)

	out, err := execute(t, "--server", ts.url, "mode", "get")
	if err != nil {
		t.Fatalf("mode get failed: %v", err)
	}
	if !strings.Contains(out, "Voting mode: normal") {
		t.Errorf("Expected normal mode in output, got %q", out)
	}
}

func TestModeSet(t *testing.T) {
	ts := newTestServer(t)

	out, err := execute(t, "--server", ts.url, "--admin-salt", "test-admin-salt", "mode", "set", "joke_mode")
	if err != nil {
		t.Fatalf("mode set failed: %v", err)
	}
	if !strings.Contains(out, "Voting mode: redirect-all") {
		t.Errorf("Expected redirect-all in output, got %q", out)
	}
	if got := ts.modes.Load(); got != redirect.RedirectAll {
		t.Errorf("Expected server mode redirect-all, got %s", got)
	}
}

func TestModeSet_Errors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "no salt",
			args:    []string{"--server", ts.url, "mode", "set", "normal"},
			wantErr: errNoAdminSalt,
		},
		{
			name:    "unknown mode",
			args:    []string{"--server", ts.url, "--admin-salt", "test-admin-salt", "mode", "set", "sideways"},
			wantErr: redirect.ErrUnknownMode,
		},
		{
			name:    "wrong salt",
			args:    []string{"--server", ts.url, "--admin-salt", "not-the-salt", "mode", "set", "redirect-all"},
			wantMsg: "failed to set voting mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Expected error containing %q, got %v", tt.wantMsg, err)
			}
		})
	}

	if got := ts.modes.Load(); got != redirect.Normal {
		t.Errorf("Mode should be unchanged, got %s", got)
	}
}

func TestStandings(t *testing.T) {
	ts := newTestServer(t)
	if _, err := ts.conn.Exec(`UPDATE house SET votes = 12 WHERE id = 3`); err != nil {
		t.Fatal(err)
	}
	if _, err := ts.conn.Exec(`UPDATE house SET votes = 1500 WHERE id = 7`); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--server", ts.url, "standings")
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("Expected 5 houses and a total, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "1st") || !strings.Contains(lines[0], "House #7") || !strings.Contains(lines[0], "1,500") {
		t.Errorf("Unexpected first place line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2nd") || !strings.Contains(lines[1], "House #3") {
		t.Errorf("Unexpected second place line: %q", lines[1])
	}
	if lines[5] != "1,512 votes cast" {
		t.Errorf("Unexpected total line: %q", lines[5])
	}
}

func TestSettings_EnvAndConfigFile(t *testing.T) {
	ts := newTestServer(t)

	t.Run("env server", func(t *testing.T) {
		t.Setenv("LOOPVOTE_SERVER", ts.url)
		if _, err := execute(t, "mode", "get"); err != nil {
			t.Errorf("mode get with LOOPVOTE_SERVER failed: %v", err)
		}
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "loopvote.yaml")
		data := "server: " + ts.url + "\nadmin-salt: test-admin-salt\n"
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := execute(t, "-c", path, "mode", "set", "redirect-all"); err != nil {
			t.Fatalf("mode set from config file failed: %v", err)
		}
		if got := ts.modes.Load(); got != redirect.RedirectAll {
			t.Errorf("Expected redirect-all, got %s", got)
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := execute(t, "-c", filepath.Join(t.TempDir(), "nope.yaml"), "mode", "get")
		if err == nil || !strings.Contains(err.Error(), "error reading config") {
			t.Errorf("Expected config read error, got %v", err)
		}
	})

	t.Run("bad timeout", func(t *testing.T) {
		_, err := execute(t, "--server", ts.url, "--timeout", "0s", "mode", "get")
		if err == nil || !strings.Contains(err.Error(), "timeout must be positive") {
			t.Errorf("Expected timeout error, got %v", err)
		}
	})
}

func TestRankHouses(t *testing.T) {
	houses := []models.House{
		{ID: 12, Votes: 3},
		{ID: 1, Votes: 9},
		{ID: 7, Votes: 3},
	}
	ranked := rankHouses(houses)

	want := []int{1, 7, 12}
	for i, h := range ranked {
		if h.ID != want[i] {
			t.Errorf("Position %d: expected house %d, got %d", i, want[i], h.ID)
		}
	}
	if houses[0].ID != 12 {
		t.Error("rankHouses should not reorder its input")
	}
}

func TestOfflineBoot(t *testing.T) {
	boot := offlineBoot(time.Now())

	targets := 0
	for _, h := range boot.Houses {
		if h.IsTarget {
			targets++
			if h.ID != testutil.TestTargetID {
				t.Errorf("Expected target %d, got %d", testutil.TestTargetID, h.ID)
			}
		}
	}
	if targets != 1 {
		t.Errorf("Expected exactly one target, got %d", targets)
	}
	if len(boot.Messages) == 0 {
		t.Error("Expected seeded guestbook messages")
	}
}

func TestNewRand_Seeded(t *testing.T) {
	a, b := newRand(42), newRand(42)
	for i := 0; i < 5; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("Same seed should give the same sequence")
		}
	}
}
