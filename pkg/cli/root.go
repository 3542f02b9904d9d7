// Copyright (c) 2025, The AutoPkg Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	apperrors "github.com/autopkg/index/pkg/errors"
	"github.com/autopkg/index/pkg/logging"
)

const (
	name           = "recipe-index"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitInterrupted = 2
	exitBuildFailed = 3
)

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Build a searchable index of AutoPkg recipes",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `recipe-index walks checked-out AutoPkg recipe repositories, parses every
YAML and plist recipe, and writes a single JSON index keyed by recipe
identifier, with a shortname lookup table and parent/child links.

Repositories are read from --repos-dir laid out as <owner>/<name>. With --org
(or --sync) the organization's public repositories are discovered on GitHub
and shallow-cloned there first.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Shorthand for --log-level=debug",
			},
			&cli.BoolFlag{
				Name:    "log-json",
				Usage:   "Emit logs as JSON",
				Sources: cli.EnvVars("RECIPE_INDEX_LOG_JSON"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			initLogger(cmd)
			return ctx, nil
		},
		Commands: []*cli.Command{
			buildCmd(),
			syncCmd(),
			publishCmd(),
			statsCmd(),
		},
	}
}

// initLogger configures slog from the root flags before any command runs.
func initLogger(cmd *cli.Command) {
	level := cmd.String("log-level")
	if cmd.Bool("debug") {
		level = "debug"
	}

	if cmd.Bool("log-json") {
		logging.SetDefault(logging.NewStructuredLogger(name, version, level))
	} else {
		logging.SetDefault(logging.NewTextLogger(name, version, level))
	}

	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", level)
}

// Execute runs the CLI with os.Args and exits with a status derived from
// the returned error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().Run(ctx, os.Args)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return exitInterrupted
	case apperrors.HasCode(err, apperrors.ErrCodeBuildFailed):
		return exitBuildFailed
	default:
		return exitError
	}
}
