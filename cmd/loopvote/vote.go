// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/loopvote/client"
	"github.com/danielhkuo/loopvote/coercion"
	"github.com/danielhkuo/loopvote/db"
	"github.com/danielhkuo/loopvote/models"
	"github.com/danielhkuo/loopvote/tui"
)

const debugLogFile = "loopvote-debug.log"

type voteOptions struct {
	house     int
	theatrics bool
	name      string
	offline   bool
	altScreen bool
}

func newVoteCmd(load func() (settings, error)) *cobra.Command {
	var opts voteOptions

	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Open the interactive ballot",
		Long: `Open the interactive ballot.

Use --house to start with a house already selected, the way the
QR code on each yard sign does. With --offline (or when the server
can't be reached) votes and messages stay on this machine.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load()
			if err != nil {
				return err
			}
			return runVote(cmd.Context(), s, opts)
		},
	}
	cmd.Flags().IntVar(&opts.house, "house", 0, "house to select on start")
	cmd.Flags().BoolVar(&opts.theatrics, "theatrics", false, "add processing pauses before every vote")
	cmd.Flags().StringVar(&opts.name, "name", "", "name to sign guestbook messages with")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "don't contact the server")
	cmd.Flags().BoolVar(&opts.altScreen, "alt-screen", false, "run in the terminal's alternate screen")
	return cmd
}

func runVote(ctx context.Context, s settings, opts voteOptions) error {
	closeLog, err := setupLogging(s.Debug)
	if err != nil {
		return err
	}
	defer closeLog()

	if ctx == nil {
		ctx = context.Background()
	}

	var c *client.Client
	boot := offlineBoot(time.Now())
	if !opts.offline {
		c = client.New(s.Server, s.Timeout)
		bctx, cancel := context.WithTimeout(ctx, s.Timeout)
		resp, err := c.Bootstrap(bctx)
		cancel()
		switch {
		case err != nil:
			slog.Warn("bootstrap failed, voting offline", "server", s.Server, "error", err)
			fmt.Fprintf(os.Stderr, "Couldn't reach %s, votes will stay on this machine.\n", s.Server)
			c = nil
		case len(resp.Houses) == 0:
			slog.Warn("server returned no houses, voting offline", "server", s.Server)
			c = nil
		default:
			boot = resp
		}
	}

	timings := coercion.DefaultTimings()
	if opts.theatrics {
		timings = coercion.TheatricalTimings()
	}
	deps := tui.Deps{
		Boot:     boot,
		Timings:  timings,
		Rand:     newRand(s.Seed),
		Name:     opts.name,
		DeepLink: opts.house,
	}
	// Leave the interfaces nil rather than holding a nil *client.Client
	if c != nil {
		deps.Submitter = c
		deps.Poster = c
	}

	model, err := tui.New(deps)
	if err != nil {
		return fmt.Errorf("failed to start ballot: %w", err)
	}

	var progOpts []tea.ProgramOption
	if opts.altScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, progOpts...)
	_, runErr := p.Run()
	model.Close()
	if runErr != nil {
		return fmt.Errorf("ballot exited: %w", runErr)
	}

	slog.Info("ballot closed", "tally", model.Tally())
	return nil
}

// setupLogging keeps slog off the terminal while the ballot owns it.
func setupLogging(debug bool) (func(), error) {
	if !debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}
	f, err := tea.LogToFile(debugLogFile, "loopvote")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return func() { _ = f.Close() }, nil
}

// offlineBoot is the catalog a fresh server would return.
func offlineBoot(now time.Time) models.InitResponse {
	return models.InitResponse{
		Houses:   db.DefaultHouses(),
		Messages: db.DefaultMessages(now),
	}
}
