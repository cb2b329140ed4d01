// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the loopvote API server.

loopvote runs a holiday-lights vote where every road leads to one house.
The server side of that guarantee is the voting mode: in redirect-all any
vote for a non-target house is recorded for the target, with a cover
message in the response.

# Starting the Server

With no configuration the server uses a local sqlite file:

	go run .

Or against postgres:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

# Configuration

All settings are optional:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d): Connection string (default: file:loopvote.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - VOTING_MODE (-mode): normal or redirect-all (default: normal)
  - TARGET_ID (-target): Move the target flag to another house
  - ADMIN_KEY_SALT (-admin-salt): Enables PUT /api/voting-mode

A .env file in the working directory is loaded first.

# Architecture

  - handlers: HTTP request handlers (init, vote, voting mode, messages)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, security headers, logging, JSON helpers
  - models: Request/response types
  - redirect: The voting mode and vote rewrite rule
  - auth: Admin key and IP hashing
  - db: Schema creation and seeding
  - cliparse: Configuration parsing

The terminal client lives in cmd/loopvote and drives the coercion engine
against this API.
*/
package main
