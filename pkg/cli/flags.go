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
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/autopkg/index/pkg/builder"
	"github.com/autopkg/index/pkg/config"
	"github.com/autopkg/index/pkg/defaults"
	"github.com/autopkg/index/pkg/github"
	"github.com/autopkg/index/pkg/serializer"
	"github.com/autopkg/index/pkg/workspace"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Usage:   fmt.Sprintf("Path to a YAML config file (default: ./%s when present)", defaults.ConfigFileName),
		Sources: cli.EnvVars("RECIPE_INDEX_CONFIG"),
	}
}

func reposDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "repos-dir",
		Usage:   "Directory holding repository checkouts as <owner>/<name>",
		Value:   defaults.ReposDir,
		Sources: cli.EnvVars("RECIPE_INDEX_REPOS_DIR"),
	}
}

func orgFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "org",
		Usage:   "GitHub organization whose repositories are discovered and cloned",
		Value:   defaults.Organization,
		Sources: cli.EnvVars("RECIPE_INDEX_ORG"),
	}
}

func tokenFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "token",
		Usage:   "GitHub token for repository discovery",
		Sources: cli.EnvVars("RECIPE_INDEX_TOKEN", "GITHUB_TOKEN"),
	}
}

func excludeFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "exclude",
		Usage: "Repository full name (owner/name) to skip, can be repeated; replaces the configured list",
	}
}

func updateFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "update",
		Usage: "Fast-forward checkouts that already exist",
	}
}

func concurrencyFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "clone-concurrency",
		Usage:   "Number of repositories cloned in parallel",
		Value:   defaults.CloneConcurrency,
		Sources: cli.EnvVars("RECIPE_INDEX_CLONE_CONCURRENCY"),
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Output destination. Supports: file paths, "-" for stdout,
	or ConfigMap URIs (cm://namespace/name).`,
		Value:   defaults.IndexPath,
		Sources: cli.EnvVars("RECIPE_INDEX_OUTPUT"),
	}
}

func formatFlag(value string) cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("Output format (supported: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   value,
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig file for cm:// locations (overrides KUBECONFIG env)",
	}
}

func indexFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "index",
		Aliases: []string{"i"},
		Usage:   "Index location: file path, HTTP/HTTPS URL, or cm://namespace/name",
		Value:   defaults.IndexPath,
		Sources: cli.EnvVars("RECIPE_INDEX_INDEX"),
	}
}

// loadConfig reads the config file and lays explicitly set flags over it.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	var opts []config.Option
	if cmd.IsSet("org") {
		opts = append(opts, config.WithOrganization(cmd.String("org")))
	}
	if cmd.IsSet("repos-dir") {
		opts = append(opts, config.WithReposDir(cmd.String("repos-dir")))
	}
	if cmd.IsSet("output") {
		opts = append(opts, config.WithOutput(cmd.String("output")))
	}
	if cmd.IsSet("format") {
		opts = append(opts, config.WithFormat(cmd.String("format")))
	}
	if cmd.IsSet("annotations") {
		opts = append(opts, config.WithAnnotations(cmd.String("annotations")))
	}
	if cmd.IsSet("fail-on-errors") {
		opts = append(opts, config.WithFailOnErrors(cmd.Bool("fail-on-errors")))
	}
	if cmd.IsSet("clone-concurrency") {
		opts = append(opts, config.WithCloneConcurrency(int(cmd.Int("clone-concurrency"))))
	}
	if cmd.IsSet("exclude") {
		opts = append(opts, config.WithExcludedRepos(cmd.StringSlice("exclude")))
	}

	cfg.Apply(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// discover lists the organization's repositories and drops the ones that
// should not be indexed.
func discover(ctx context.Context, cmd *cli.Command, cfg *config.Config) ([]github.Repo, error) {
	client := github.NewClient(
		github.WithBaseURL(cfg.GitHub.APIURL),
		github.WithToken(cmd.String("token")),
		github.WithUserAgent(name+"/"+version),
		github.WithRateLimit(cfg.GitHub.RequestsPerSecond, cfg.GitHub.Burst),
	)

	if cfg.GitHub.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.GitHub.Timeout)
		defer cancel()
	}

	all, err := client.ListOrgRepos(ctx, cfg.Organization)
	if err != nil {
		return nil, err
	}

	kept := github.Filter(all, cfg.ExcludedRepos)
	slog.Info("discovered repositories",
		"org", cfg.Organization,
		"total", len(all),
		"kept", len(kept))
	return kept, nil
}

// syncRepos discovers and clones repositories into the configured
// checkout directory, returning them in discovery order.
func syncRepos(ctx context.Context, cmd *cli.Command, cfg *config.Config) ([]builder.Repository, error) {
	repos, err := discover(ctx, cmd, cfg)
	if err != nil {
		return nil, err
	}

	cloner := workspace.NewCloner(cfg.ReposDir,
		workspace.WithConcurrency(cfg.CloneConcurrency),
		workspace.WithUpdate(cmd.Bool("update")),
	)
	return cloner.Sync(ctx, repos)
}
