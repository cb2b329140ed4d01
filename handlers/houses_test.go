// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/loopvote/db"
	"github.com/danielhkuo/loopvote/models"
	"github.com/danielhkuo/loopvote/testutil"
	"github.com/google/uuid"
)

func TestInit(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	if _, err := conn.Exec(`UPDATE house SET votes = 5 WHERE id = 7`); err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	if err := db.SeedMessages(conn, db.DefaultMessages(now)); err != nil {
		t.Fatal(err)
	}

	handler := NewHouseHandler(conn)
	w := httptest.NewRecorder()
	handler.Init(w, testutil.MakeRequest("GET", "/api/init", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=60" {
		t.Errorf("Unexpected Cache-Control '%s'", cc)
	}
	if w.Header().Get("X-Robots-Tag") != "noindex" {
		t.Error("Expected X-Robots-Tag noindex")
	}

	var resp models.InitResponse
	testutil.AssertJSON(t, w, &resp)

	wantIDs := []int{1, 3, 7, 12, 15}
	if len(resp.Houses) != len(wantIDs) {
		t.Fatalf("Expected %d houses, got %d", len(wantIDs), len(resp.Houses))
	}
	for i, h := range resp.Houses {
		if h.ID != wantIDs[i] {
			t.Errorf("Expected house %d at %d, got %d", wantIDs[i], i, h.ID)
		}
		if h.IsTarget != (h.ID == testutil.TestTargetID) {
			t.Errorf("House %d has isTarget=%v", h.ID, h.IsTarget)
		}
	}
	if resp.Houses[2].Votes != 5 {
		t.Errorf("Expected target votes 5, got %d", resp.Houses[2].Votes)
	}

	if len(resp.Messages) != len(db.DefaultMessages(now)) {
		t.Fatalf("Expected seeded messages, got %d", len(resp.Messages))
	}
	for i := 1; i < len(resp.Messages); i++ {
		if resp.Messages[i].CreatedAt.After(resp.Messages[i-1].CreatedAt) {
			t.Error("Expected messages newest first")
		}
	}
}

func TestInit_LimitsMessages(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	base := time.Now().UTC()
	for i := 0; i < models.RecentMessageLimit+20; i++ {
		_, err := conn.Exec(`
			INSERT INTO message (id, name, text, house_id, is_system, created_at)
			VALUES ($1, 'n', 't', 1, FALSE, $2)
		`, uuid.NewString(), base.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatal(err)
		}
	}

	handler := NewHouseHandler(conn)
	w := httptest.NewRecorder()
	handler.Init(w, testutil.MakeRequest("GET", "/api/init", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.InitResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Messages) != models.RecentMessageLimit {
		t.Errorf("Expected %d messages, got %d", models.RecentMessageLimit, len(resp.Messages))
	}
}
