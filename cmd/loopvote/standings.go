// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/loopvote/client"
	"github.com/danielhkuo/loopvote/models"
)

func newStandingsCmd(load func() (settings, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Print the current vote counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), s.Timeout)
			defer cancel()

			boot, err := client.New(s.Server, s.Timeout).Bootstrap(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch standings: %w", err)
			}
			printStandings(cmd.OutOrStdout(), boot.Houses)
			return nil
		},
	}
}

// rankHouses orders by votes, most first, with ties broken by id.
func rankHouses(houses []models.House) []models.House {
	ranked := append([]models.House(nil), houses...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Votes != ranked[j].Votes {
			return ranked[i].Votes > ranked[j].Votes
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

func printStandings(w io.Writer, houses []models.House) {
	total := 0
	for i, h := range rankHouses(houses) {
		total += h.Votes
		fmt.Fprintf(w, "%-5s House #%-3d %-28s %s\n",
			humanize.Ordinal(i+1), h.ID, h.Address, humanize.Comma(int64(h.Votes)))
	}
	fmt.Fprintf(w, "%s votes cast\n", humanize.Comma(int64(total)))
}
