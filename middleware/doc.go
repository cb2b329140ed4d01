// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Response Headers

CORS allows GET, POST, PUT and OPTIONS with headers Content-Type,
Authorization and X-Admin-Key. SecurityHeaders adds X-Frame-Options,
X-Content-Type-Options, Referrer-Policy, Permissions-Policy and HSTS.

	handler := middleware.SecurityHeaders(middleware.CORS(mux))

NoCache marks a single response as uncacheable.

# JSON Helpers

	if !middleware.IsJSON(r) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, data)

Error responses use the models.ErrorResponse envelope:

	{"error": "Bad Request", "message": "..."}

# Client IP

GetClientIP checks X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
