// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	_ = cliparse.LoadEnvFile(".env")
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string (default: file:loopvote.db for sqlite)
  - DatabaseType: sqlite (default) or postgres
  - VotingMode: normal (default) or redirect-all
  - TargetID: Overrides the seeded target house when non-zero
  - AdminKeySalt: Secret for the voting-mode admin key (optional)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-mode         Voting mode
	-target       Target house id
	-admin-salt   Admin key salt

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	VOTING_MODE    → -mode
	TARGET_ID      → -target
	ADMIN_KEY_SALT → -admin-salt

CLI flags take precedence over environment variables, and the environment
takes precedence over a .env file loaded with LoadEnvFile.

Without ADMIN_KEY_SALT the voting mode is fixed for the life of the process.
*/
package cliparse
