// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/loopvote/models"
	"github.com/danielhkuo/loopvote/testutil"
)

func TestPostMessage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewMessageHandler(db)

	before := time.Now().Add(-time.Second)
	req := testutil.MakeRequest("POST", "/api/message", models.PostMessageRequest{
		Name:    "  Rudolph  ",
		Text:    " #7 lights up my nose ",
		HouseID: 7,
	}, nil)
	w := httptest.NewRecorder()
	handler.PostMessage(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PostMessageResponse
	testutil.AssertJSON(t, w, &resp)

	if !resp.Success || resp.ID == "" {
		t.Errorf("Unexpected response %+v", resp)
	}
	if resp.Timestamp.Before(before) {
		t.Errorf("Timestamp %v is before request", resp.Timestamp)
	}

	var name, text string
	var isSystem bool
	err := db.QueryRow(`SELECT name, text, is_system FROM message WHERE id = $1`, resp.ID).Scan(&name, &text, &isSystem)
	if err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}
	if name != "Rudolph" || text != "#7 lights up my nose" {
		t.Errorf("Expected trimmed fields, got '%s' / '%s'", name, text)
	}
	if isSystem {
		t.Error("Expected is_system false by default")
	}
}

func TestPostMessage_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
	}{
		{"wrong content type", "text/plain", `{"name":"a","text":"b","houseId":7}`, http.StatusBadRequest},
		{"invalid JSON", "application/json", `{"name":`, http.StatusBadRequest},
		{"blank name", "application/json", `{"name":"   ","text":"b","houseId":7}`, http.StatusBadRequest},
		{"long name", "application/json", `{"name":"` + repeat("n", 51) + `","text":"b","houseId":7}`, http.StatusBadRequest},
		{"missing text", "application/json", `{"name":"a","houseId":7}`, http.StatusBadRequest},
		{"long text", "application/json", `{"name":"a","text":"` + repeat("t", 501) + `","houseId":7}`, http.StatusBadRequest},
		{"zero house", "application/json", `{"name":"a","text":"b","houseId":0}`, http.StatusBadRequest},
		{"unknown house", "application/json", `{"name":"a","text":"b","houseId":99}`, http.StatusNotFound},
		{"max lengths", "application/json", `{"name":"` + repeat("n", 50) + `","text":"` + repeat("t", 500) + `","houseId":1}`, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			handler := NewMessageHandler(db)

			req := httptest.NewRequest("POST", "/api/message", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", tc.contentType)
			w := httptest.NewRecorder()
			handler.PostMessage(w, req)

			testutil.AssertStatus(t, w, tc.wantStatus)

			want := 0
			if tc.wantStatus == http.StatusOK {
				want = 1
			}
			if got := testutil.CountRows(t, db, "message"); got != want {
				t.Errorf("Expected %d messages stored, got %d", want, got)
			}
		})
	}
}
