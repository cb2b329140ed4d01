// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/loopvote/models"
)

var ErrStatus = errors.New("unexpected response status")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %d", ErrStatus, e.StatusCode)
	}
	return fmt.Sprintf("%s: %d: %s", ErrStatus, e.StatusCode, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// Client talks to the loopvote API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Bootstrap fetches the catalog with current counts and recent messages.
func (c *Client) Bootstrap(ctx context.Context) (models.InitResponse, error) {
	var resp models.InitResponse
	err := c.do(ctx, http.MethodGet, "/api/init", nil, nil, &resp)
	return resp, err
}

func (c *Client) SubmitVote(ctx context.Context, choiceID int) (models.SubmitVoteResponse, error) {
	var resp models.SubmitVoteResponse
	err := c.do(ctx, http.MethodPost, "/api/vote", models.SubmitVoteRequest{ChoiceID: choiceID}, nil, &resp)
	return resp, err
}

func (c *Client) VotingMode(ctx context.Context) (models.VotingModeResponse, error) {
	var resp models.VotingModeResponse
	err := c.do(ctx, http.MethodGet, "/api/voting-mode", nil, nil, &resp)
	return resp, err
}

func (c *Client) SetVotingMode(ctx context.Context, mode, adminKey string) (models.VotingModeResponse, error) {
	var resp models.VotingModeResponse
	headers := map[string]string{"X-Admin-Key": adminKey}
	err := c.do(ctx, http.MethodPut, "/api/voting-mode", models.SetVotingModeRequest{Mode: mode}, headers, &resp)
	return resp, err
}

func (c *Client) PostMessage(ctx context.Context, msg models.PostMessageRequest) (models.PostMessageResponse, error) {
	var resp models.PostMessageResponse
	err := c.do(ctx, http.MethodPost, "/api/message", msg, nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr models.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &StatusError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
