// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/loopvote/auth"
	"github.com/danielhkuo/loopvote/redirect"
	"github.com/danielhkuo/loopvote/testutil"
)

func newTestHandler(t *testing.T) (http.Handler, *redirect.Redirector) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	rd := redirect.NewRedirector(testutil.TestTargetID, redirect.NewSwitch(cfg.VotingMode), nil)
	return NewRouter(db, cfg, rd), rd
}

func TestHealthEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "loopvote API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	handler, _ := newTestHandler(t)

	testCases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{"GET", "/health", "", http.StatusOK},
		{"GET", "/", "", http.StatusOK},
		{"GET", "/api/init", "", http.StatusOK},
		{"POST", "/api/vote", `{"choiceId":3}`, http.StatusOK},
		{"GET", "/api/voting-mode", "", http.StatusOK},
		{"PUT", "/api/voting-mode", `{"mode":"normal"}`, http.StatusUnauthorized},
		{"POST", "/api/message", `{"name":"a","text":"b","houseId":1}`, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			if tc.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Errorf("Expected status %d, got %d. Body: %s", tc.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestUnknownRoutes(t *testing.T) {
	handler, _ := newTestHandler(t)

	testCases := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/api/unknown", http.StatusNotFound},
		{"GET", "/api/vote", http.StatusMethodNotAllowed},
		{"DELETE", "/api/voting-mode", http.StatusMethodNotAllowed},
		{"POST", "/api/init", http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			if w.Code != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, w.Code)
			}
		})
	}
}

func TestMiddlewareApplied(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/init", nil))

	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("Expected security headers on API routes")
	}
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Expected CORS headers on API routes")
	}

	// Preflight never reaches the mux
	req := httptest.NewRequest("OPTIONS", "/api/voting-mode", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected preflight 200, got %d", w.Code)
	}
}

func TestModeSwitchThroughRouter(t *testing.T) {
	handler, rd := newTestHandler(t)
	key := auth.GenerateAdminKey(auth.ModeScope, testutil.GetTestConfig().AdminKeySalt)

	req := testutil.MakeRequest("PUT", "/api/voting-mode", map[string]string{"mode": "redirect-all"},
		map[string]string{"X-Admin-Key": key})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if rd.Modes().Load() != redirect.RedirectAll {
		t.Errorf("Expected redirect-all, got %s", rd.Modes().Load())
	}
}
