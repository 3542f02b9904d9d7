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
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/autopkg/index/pkg/builder"
	"github.com/autopkg/index/pkg/config"
	"github.com/autopkg/index/pkg/diagnostics"
	apperrors "github.com/autopkg/index/pkg/errors"
	"github.com/autopkg/index/pkg/k8s/client"
	"github.com/autopkg/index/pkg/parser"
	"github.com/autopkg/index/pkg/recipe"
	"github.com/autopkg/index/pkg/serializer"
)

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:                  "build",
		EnableShellCompletion: true,
		Usage:                 "Build the recipe index from repository checkouts",
		Description: `Index every *.recipe, *.recipe.plist and *.recipe.yaml file found at
least one directory below each repository root.

Recipes that fail to parse, are empty, or have no Identifier are skipped
and reported. Unresolved %VARIABLE% references, missing parent recipes and
duplicate identifiers are reported as warnings. A warning summary is printed
to stderr when the build finishes.

# Examples

Index existing checkouts:
  recipe-index build --repos-dir repos -o v1/index.json

Discover, clone and index the autopkg organization, failing on parse errors:
  recipe-index build --org autopkg --fail-on-errors --annotations github

Write the index to a ConfigMap:
  recipe-index build -o cm://autopkg/recipe-index`,
		Flags: []cli.Flag{
			configFlag(),
			reposDirFlag(),
			orgFlag(),
			&cli.BoolFlag{
				Name:  "sync",
				Usage: "Discover and clone the organization's repositories before building",
			},
			tokenFlag(),
			excludeFlag(),
			updateFlag(),
			concurrencyFlag(),
			outputFlag(),
			formatFlag("json"),
			&cli.StringFlag{
				Name:    "annotations",
				Usage:   fmt.Sprintf("Emit diagnostics as workflow annotations (%s, %s)", config.AnnotationsGitHub, config.AnnotationsNone),
				Value:   config.AnnotationsNone,
				Sources: cli.EnvVars("RECIPE_INDEX_ANNOTATIONS"),
			},
			&cli.BoolFlag{
				Name:    "fail-on-errors",
				Usage:   "Exit non-zero when any recipe could not be parsed",
				Sources: cli.EnvVars("RECIPE_INDEX_FAIL_ON_ERRORS"),
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write build metrics in Prometheus text format to this path",
			},
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			format, err := serializer.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}

			repos, err := buildInputs(ctx, cmd, cfg)
			if err != nil {
				return err
			}

			b := builder.New(
				builder.WithParser(parser.NewParser(parser.WithMaxSize(cfg.MaxRecipeBytes))),
				builder.WithNormalizer(recipe.NewNormalizer(recipe.WithTypeRules(cfg.TypeRules))),
				builder.WithDiagnostics(diagnosticOptions(cmd, cfg)...),
				builder.WithVersion(version),
			)

			res, err := b.Build(ctx, repos)
			if err != nil {
				return err
			}

			if kc := cmd.String("kubeconfig"); kc != "" {
				client.SetKubeconfig(kc)
			}
			if err := writeIndex(ctx, cmd.Root().Writer, res, format, cfg.Output); err != nil {
				return err
			}

			if err := res.Diagnostics.WriteSummary(cmd.Root().ErrWriter); err != nil {
				slog.Warn("failed to write summary", "error", err)
			}

			if path := cmd.String("metrics-file"); path != "" {
				if err := builder.WriteMetrics(path); err != nil {
					return err
				}
			}

			if n := res.Failures(); cfg.FailOnErrors && n > 0 {
				return apperrors.NewWithContext(apperrors.ErrCodeBuildFailed,
					fmt.Sprintf("%d recipe files could not be indexed", n),
					map[string]any{"failures": n, "buildID": res.Header.BuildID()})
			}
			return nil
		},
	}
}

// buildInputs returns the repositories to index: freshly synced when
// discovery was requested, otherwise whatever is checked out.
func buildInputs(ctx context.Context, cmd *cli.Command, cfg *config.Config) ([]builder.Repository, error) {
	if cmd.Bool("sync") || cmd.IsSet("org") {
		return syncRepos(ctx, cmd, cfg)
	}
	return builder.ReposFromDir(cfg.ReposDir)
}

// diagnosticOptions routes workflow annotations to stdout unless the index
// itself is written there.
func diagnosticOptions(cmd *cli.Command, cfg *config.Config) []diagnostics.Option {
	if cfg.Annotations != config.AnnotationsGitHub {
		return nil
	}
	var w io.Writer = cmd.Root().Writer
	if out := strings.TrimSpace(cfg.Output); out == "" || out == serializer.StdoutPath {
		w = cmd.Root().ErrWriter
	}
	return []diagnostics.Option{diagnostics.WithAnnotations(w)}
}

// writeIndex writes the index to output; "" and "-" go to stdout.
func writeIndex(ctx context.Context, stdout io.Writer, res *builder.Result, format serializer.Format, output string) error {
	var ser serializer.Serializer
	if out := strings.TrimSpace(output); out == "" || out == serializer.StdoutPath {
		ser = serializer.NewWriter(format, stdout)
	} else {
		var err error
		ser, err = serializer.NewFileWriterOrStdout(format, output, serializer.WithHeader(res.Header))
		if err != nil {
			return err
		}
	}
	defer func() {
		if err := serializer.Close(ser); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	if err := ser.Serialize(ctx, res.Index); err != nil {
		return fmt.Errorf("failed to write index to %q: %w", output, err)
	}

	slog.Info("index written", "output", output, "format", format, "identifiers", res.Index.Len())
	return nil
}
