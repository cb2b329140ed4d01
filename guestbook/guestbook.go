// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package guestbook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/loopvote/models"
)

var (
	ErrInvalidName  = fmt.Errorf("name must be a non-empty string (max %d chars)", models.MaxMessageNameLen)
	ErrInvalidText  = fmt.Errorf("text must be a non-empty string (max %d chars)", models.MaxMessageTextLen)
	ErrInvalidHouse = errors.New("houseId must be a positive integer")
)

// Sanitize trims name and text and checks their limits.
func Sanitize(req models.PostMessageRequest) (models.PostMessageRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Text = strings.TrimSpace(req.Text)

	if req.Name == "" || utf8.RuneCountInString(req.Name) > models.MaxMessageNameLen {
		return req, ErrInvalidName
	}
	if req.Text == "" || utf8.RuneCountInString(req.Text) > models.MaxMessageTextLen {
		return req, ErrInvalidText
	}
	if req.HouseID < 1 {
		return req, ErrInvalidHouse
	}
	return req, nil
}

// Ago renders a message time the way the feed shows it.
func Ago(m models.Message, now time.Time) string {
	if now.Sub(m.CreatedAt) < time.Minute {
		return "Just now"
	}
	return humanize.RelTime(m.CreatedAt, now, "ago", "from now")
}

// Poster sends a message to the server.
type Poster interface {
	PostMessage(ctx context.Context, msg models.PostMessageRequest) (models.PostMessageResponse, error)
}

// Board is the client's copy of the feed. New posts show up locally before
// the server has them; a failed post stays on the board.
type Board struct {
	mu       sync.Mutex
	messages []models.Message
	poster   Poster
	limit    int
	timeout  time.Duration
	now      func() time.Time

	wg sync.WaitGroup
}

func NewBoard(initial []models.Message, poster Poster) *Board {
	b := &Board{
		poster:  poster,
		limit:   models.RecentMessageLimit,
		timeout: 10 * time.Second,
		now:     time.Now,
	}
	b.messages = append(b.messages, initial...)
	b.trimLocked()
	return b
}

// Post adds the message to the top of the board and sends it in the background.
func (b *Board) Post(req models.PostMessageRequest) (models.Message, error) {
	req, err := Sanitize(req)
	if err != nil {
		return models.Message{}, err
	}

	msg := models.Message{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Text:      req.Text,
		HouseID:   req.HouseID,
		IsSystem:  req.IsSystem,
		CreatedAt: b.now(),
	}

	b.mu.Lock()
	b.messages = append([]models.Message{msg}, b.messages...)
	b.trimLocked()
	b.mu.Unlock()

	if b.poster == nil {
		return msg, nil
	}

	b.wg.Add(1)
	go func(localID string) {
		defer b.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		resp, err := b.poster.PostMessage(ctx, req)
		if err != nil {
			slog.Warn("message kept locally, post failed", "error", err)
			return
		}
		b.confirm(localID, resp)
	}(msg.ID)

	return msg, nil
}

func (b *Board) confirm(localID string, resp models.PostMessageResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.messages {
		if b.messages[i].ID == localID {
			b.messages[i].ID = resp.ID
			if !resp.Timestamp.IsZero() {
				b.messages[i].CreatedAt = resp.Timestamp
			}
			return
		}
	}
}

// Messages returns the feed newest first.
func (b *Board) Messages() []models.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Message, len(b.messages))
	copy(out, b.messages)
	return out
}

// Wait blocks until every background post has finished.
func (b *Board) Wait() {
	b.wg.Wait()
}

func (b *Board) trimLocked() {
	if len(b.messages) > b.limit {
		b.messages = b.messages[:b.limit]
	}
}
