// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/loopvote/models"
	"github.com/google/uuid"
)

var (
	ErrNoTarget     = errors.New("no target house configured")
	ErrUnknownHouse = errors.New("house not found")
)

// DefaultHouses is the catalog a fresh database starts with.
func DefaultHouses() []models.House {
	return []models.House{
		{
			ID:          1,
			Address:     "101 Candy Cane Lane",
			Description: "A modest display with some inflatable reindeer. Cute, but maybe too safe?",
			ImageURL:    "https://picsum.photos/400/300?random=1",
		},
		{
			ID:          3,
			Address:     "103 Mistletoe Ave",
			Description: "High concept minimal white lights. Very chic, very boring.",
			ImageURL:    "https://picsum.photos/400/300?random=2",
		},
		{
			ID:          7,
			Address:     "107 Jingle Bell Rock",
			Description: "A SYMPHONY OF ILLUMINATION. 50,000 synchronized lights, animatronics, and pure holiday spirit.",
			ImageURL:    "https://picsum.photos/400/300?random=7",
			IsTarget:    true,
		},
		{
			ID:          12,
			Address:     "112 Frosty Way",
			Description: "They left their Halloween decorations up and put Santa hats on skeletons.",
			ImageURL:    "https://picsum.photos/400/300?random=4",
		},
		{
			ID:          15,
			Address:     "115 Nutcracker Blvd",
			Description: "Lots of lasers. Blinds the neighbors. A bit aggressive.",
			ImageURL:    "https://picsum.photos/400/300?random=5",
		},
	}
}

// DefaultMessages is the guestbook a fresh database starts with, dated
// relative to now.
func DefaultMessages(now time.Time) []models.Message {
	seed := []struct {
		name     string
		text     string
		houseID  int
		ago      time.Duration
		isSystem bool
	}{
		{"Santa's Little Helper", "House #7 can be seen from space. Literally. ISS confirmed.", 7, 2 * time.Minute, false},
		{"Karen from HOA", "I usually complain about brightness, but House #7 is tasteful art.", 7, 5 * time.Minute, false},
		{"Anonymous", "House #3 tried, but #7 has better synchronization.", 3, 12 * time.Minute, false},
		{"The Grinch", "Even I can't hate the display at #7. My heart grew 3 sizes.", 7, 15 * time.Minute, false},
		{"Sparky", "I like the skeletons at #12!", 12, 20 * time.Minute, false},
		{"System Admin", "Daily Reminder: House #7 uses 100% renewable reindeer energy.", 7, 30 * time.Minute, true},
	}

	msgs := make([]models.Message, 0, len(seed))
	for _, s := range seed {
		msgs = append(msgs, models.Message{
			ID:        uuid.NewString(),
			Name:      s.name,
			Text:      s.text,
			HouseID:   s.houseID,
			IsSystem:  s.isSystem,
			CreatedAt: now.Add(-s.ago).UTC(),
		})
	}
	return msgs
}

// SeedHouses inserts houses that do not exist yet. Existing rows, and their
// vote counts, are left alone.
func SeedHouses(db *sql.DB, houses []models.House) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, h := range houses {
		_, err := tx.Exec(`
			INSERT INTO house (id, address, description, image_url, is_target, votes)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, h.ID, h.Address, h.Description, h.ImageURL, h.IsTarget, h.Votes)
		if err != nil {
			return fmt.Errorf("failed to seed house %d: %w", h.ID, err)
		}
	}

	return tx.Commit()
}

// SeedMessages inserts msgs only when the guestbook is empty.
func SeedMessages(db *sql.DB, msgs []models.Message) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM message`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count messages: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, m := range msgs {
		_, err := tx.Exec(`
			INSERT INTO message (id, name, text, house_id, is_system, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, m.ID, m.Name, m.Text, m.HouseID, m.IsSystem, m.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to seed message: %w", err)
		}
	}

	return tx.Commit()
}

// TargetID returns the id of the house flagged as the target.
func TargetID(db *sql.DB) (int, error) {
	var id int
	err := db.QueryRow(`SELECT id FROM house WHERE is_target LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNoTarget
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query target: %w", err)
	}
	return id, nil
}

// SetTarget moves the target flag to id.
func SetTarget(db *sql.DB, id int) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM house WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check house: %w", err)
	}
	if !exists {
		return ErrUnknownHouse
	}

	if _, err := tx.Exec(`UPDATE house SET is_target = FALSE WHERE is_target`); err != nil {
		return fmt.Errorf("failed to clear target: %w", err)
	}
	if _, err := tx.Exec(`UPDATE house SET is_target = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to set target: %w", err)
	}

	return tx.Commit()
}
