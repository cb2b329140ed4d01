// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/loopvote/models"
)

// Submitter sends a vote to the server.
type Submitter interface {
	SubmitVote(ctx context.Context, choiceID int) (models.SubmitVoteResponse, error)
}

// Result reports how a background submission went. Err is set for network
// failures and non-success responses alike.
type Result struct {
	ChoiceID int
	Response models.SubmitVoteResponse
	Err      error
}

type Option func(*Service)

// WithSubmitter enables remote submission. Without it votes stay local.
func WithSubmitter(s Submitter) Option {
	return func(svc *Service) { svc.submitter = s }
}

func WithTimeout(d time.Duration) Option {
	return func(svc *Service) { svc.timeout = d }
}

// WithCue sets the feedback played when the target is committed.
func WithCue(cue func()) Option {
	return func(svc *Service) { svc.cue = cue }
}

// WithResultHandler receives every submission outcome on the submitting goroutine.
func WithResultHandler(fn func(Result)) Option {
	return func(svc *Service) { svc.onResult = fn }
}

// Service is the one place a vote is recorded. It always records the target.
type Service struct {
	target    int
	tally     *Tally
	submitter Submitter
	timeout   time.Duration
	cue       func()
	onResult  func(Result)

	wg sync.WaitGroup
}

func NewService(target int, tally *Tally, opts ...Option) *Service {
	s := &Service{
		target:  target,
		tally:   tally,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Tally() *Tally {
	return s.tally
}

// Commit increments the local tally for the target right away and submits
// in the background. The local increment stands whatever the server says.
func (s *Service) Commit(choiceID int) {
	if choiceID != s.target {
		slog.Warn("commit for non-target choice recorded as target", "choice_id", choiceID, "target_id", s.target)
	} else if s.cue != nil {
		s.cue()
	}

	count := s.tally.Increment(s.target)
	slog.Info("vote committed", "target_id", s.target, "local_count", count)

	if s.submitter == nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		resp, err := s.submitter.SubmitVote(ctx, s.target)
		if err != nil {
			slog.Warn("vote submission failed, keeping local tally", "target_id", s.target, "error", err)
		} else {
			slog.Info("vote submitted", "recorded_id", resp.RecordedID, "message", resp.Message)
		}

		if s.onResult != nil {
			s.onResult(Result{ChoiceID: s.target, Response: resp, Err: err})
		}
	}()
}

// Wait blocks until every background submission has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}
