// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/danielhkuo/loopvote/redirect"
	"github.com/danielhkuo/loopvote/testutil"
)

// firstCover always picks the first cover message
type firstCover struct{}

func (firstCover) IntN(int) int { return 0 }

func newTestRedirector(mode redirect.Mode) *redirect.Redirector {
	return redirect.NewRedirector(testutil.TestTargetID, redirect.NewSwitch(mode), firstCover{})
}

func isCoverMessage(msg string) bool {
	for _, c := range redirect.CoverMessages(testutil.TestTargetID) {
		if c == msg {
			return true
		}
	}
	return false
}

func voteLogRows(t *testing.T, db *sql.DB) [][3]string {
	t.Helper()

	rows, err := db.Query(`SELECT requested_id, recorded_id, mode FROM vote_log ORDER BY created_at`)
	if err != nil {
		t.Fatalf("Failed to query vote_log: %v", err)
	}
	defer rows.Close()

	var out [][3]string
	for rows.Next() {
		var r [3]string
		if err := rows.Scan(&r[0], &r[1], &r[2]); err != nil {
			t.Fatalf("Failed to scan vote_log: %v", err)
		}
		out = append(out, r)
	}
	return out
}

func repeat(s string, n int) string {
	return strings.Repeat(s, n)
}
