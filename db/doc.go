// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and seeding.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on sqlite and postgres, and queries use $N
placeholders which both drivers accept.

# Tables

  - house: The catalog, one row per house, with its vote count
  - message: Guestbook entries
  - vote_log: One row per accepted vote submission

A partial unique index on house(is_target) keeps at most one target.

# Seeding

	db.SeedHouses(conn, db.DefaultHouses())
	db.SeedMessages(conn, db.DefaultMessages(time.Now()))
	target, err := db.TargetID(conn)

SeedHouses never overwrites existing rows, so restarts keep their tallies.
SetTarget moves the target flag to another house.
*/
package db
