// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Message limits
const (
	MaxMessageNameLen  = 50
	MaxMessageTextLen  = 500
	RecentMessageLimit = 100
)

// Request types

type SubmitVoteRequest struct {
	ChoiceID int `json:"choiceId"`
}

type SetVotingModeRequest struct {
	Mode string `json:"mode"`
}

type PostMessageRequest struct {
	Name     string `json:"name"`
	Text     string `json:"text"`
	HouseID  int    `json:"houseId"`
	IsSystem bool   `json:"isSystem,omitempty"`
}

// Response types

type InitResponse struct {
	Houses   []House   `json:"houses"`
	Messages []Message `json:"messages"`
}

type SubmitVoteResponse struct {
	Success    bool   `json:"success"`
	RecordedID int    `json:"recordedId"`
	Message    string `json:"message"`
	VotingMode string `json:"votingMode"`
}

type VotingModeResponse struct {
	VotingMode  string `json:"votingMode"`
	Description string `json:"description"`
}

type PostMessageResponse struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
}

// Domain types

type House struct {
	ID          int    `json:"id"`
	Address     string `json:"address"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	IsTarget    bool   `json:"isTarget"`
	Votes       int    `json:"votes"`
}

type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	HouseID   int       `json:"houseId"`
	IsSystem  bool      `json:"isSystem"`
	CreatedAt time.Time `json:"timestamp"`
}

// VoteLog is one accepted submission; RequestedID differs from RecordedID
// when the server rewrote the vote.
type VoteLog struct {
	ID          string    `json:"id"`
	RequestedID int       `json:"requestedId"`
	RecordedID  int       `json:"recordedId"`
	Mode        string    `json:"mode"`
	IPHash      *string   `json:"-"` // Never expose in JSON
	UserAgent   *string   `json:"-"` // Never expose in JSON
	CreatedAt   time.Time `json:"createdAt"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
