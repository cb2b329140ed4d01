// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/loopvote/auth"
	"github.com/danielhkuo/loopvote/client"
	"github.com/danielhkuo/loopvote/models"
	"github.com/danielhkuo/loopvote/redirect"
)

var errNoAdminSalt = errors.New("admin salt required: pass --admin-salt or set LOOPVOTE_ADMIN_SALT")

func newModeCmd(load func() (settings, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode",
		Short: "Read or change the server's voting mode",
	}

	// mode get
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Show the current voting mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), s.Timeout)
			defer cancel()

			resp, err := client.New(s.Server, s.Timeout).VotingMode(ctx)
			if err != nil {
				return fmt.Errorf("failed to get voting mode: %w", err)
			}
			printMode(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	// mode set
	setCmd := &cobra.Command{
		Use:   "set <normal|redirect-all>",
		Short: "Change the voting mode (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load()
			if err != nil {
				return err
			}
			mode, err := redirect.ParseMode(args[0])
			if err != nil {
				return err
			}
			if s.AdminSalt == "" {
				return errNoAdminSalt
			}
			key := auth.GenerateAdminKey(auth.ModeScope, s.AdminSalt)

			ctx, cancel := context.WithTimeout(cmd.Context(), s.Timeout)
			defer cancel()

			resp, err := client.New(s.Server, s.Timeout).SetVotingMode(ctx, string(mode), key)
			if err != nil {
				return fmt.Errorf("failed to set voting mode: %w", err)
			}
			printMode(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.AddCommand(getCmd, setCmd)
	return cmd
}

func printMode(w io.Writer, resp models.VotingModeResponse) {
	fmt.Fprintf(w, "Voting mode: %s\n", resp.VotingMode)
	if resp.Description != "" {
		fmt.Fprintf(w, "  %s\n", resp.Description)
	}
}
