// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package main implements the loopvote terminal client.
//
// loopvote provides commands for:
//   - Voting in the interactive terminal ballot
//   - Printing the current standings
//   - Reading and changing the server's voting mode
package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// version is set at build time via ldflags.
	version = "dev"

	// cfgFile holds the path to an explicit configuration file.
	cfgFile string
)

// settings are the values shared by every subcommand, resolved from flags,
// LOOPVOTE_* environment variables and loopvote.yaml in that order.
type settings struct {
	Server    string
	Timeout   time.Duration
	Debug     bool
	Seed      uint64
	AdminSalt string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "loopvote",
		Short: "Vote for your favourite holiday lights",
		Long: `loopvote is a terminal ballot for the holiday lights contest.
Pick any house you like. The ballot will take it from there.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: ./loopvote.yaml)")
	flags.String("server", "http://localhost:3318", "API server base URL")
	flags.Duration("timeout", 5*time.Second, "timeout for each request to the server")
	flags.Bool("debug", false, "write debug logs to loopvote-debug.log")
	flags.Uint64("seed", 0, "seed for the ballot's random choices (0 picks one)")
	flags.String("admin-salt", "", "admin key salt used by 'mode set'")
	for _, name := range []string{"server", "timeout", "debug", "seed", "admin-salt"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	load := func() (settings, error) { return loadSettings(v, cfgFile) }

	rootCmd.AddCommand(newVoteCmd(load))
	rootCmd.AddCommand(newStandingsCmd(load))
	rootCmd.AddCommand(newModeCmd(load))
	return rootCmd
}

// loadSettings reads the optional config file and environment into v.
// A missing default config file is not an error; a missing explicit one is.
func loadSettings(v *viper.Viper, file string) (settings, error) {
	v.SetEnvPrefix("LOOPVOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("loopvote")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(dir + "/loopvote")
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("error reading config: %w", err)
		}
	}

	s := settings{
		Server:    strings.TrimSpace(v.GetString("server")),
		Timeout:   v.GetDuration("timeout"),
		Debug:     v.GetBool("debug"),
		Seed:      v.GetUint64("seed"),
		AdminSalt: v.GetString("admin-salt"),
	}
	if s.Server == "" {
		return settings{}, errors.New("server URL must not be empty")
	}
	if s.Timeout <= 0 {
		return settings{}, fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	return s, nil
}

// newRand returns the ballot's random source. A zero seed draws one.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
