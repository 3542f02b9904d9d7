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

	"github.com/urfave/cli/v3"
)

func syncCmd() *cli.Command {
	return &cli.Command{
		Name:                  "sync",
		EnableShellCompletion: true,
		Usage:                 "Discover and clone the organization's recipe repositories",
		Description: `List the organization's repositories on GitHub, drop private, forked,
archived, disabled, template and excluded ones, and shallow-clone the rest
into --repos-dir as <owner>/<name>. Existing checkouts are kept as they are
unless --update is given.`,
		Flags: []cli.Flag{
			configFlag(),
			reposDirFlag(),
			orgFlag(),
			tokenFlag(),
			excludeFlag(),
			updateFlag(),
			concurrencyFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			repos, err := syncRepos(ctx, cmd, cfg)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			for _, r := range repos {
				fmt.Fprintln(w, r.FullName)
			}
			fmt.Fprintf(cmd.Root().ErrWriter, "Synced %d repositories into %s\n", len(repos), cfg.ReposDir)
			return nil
		},
	}
}
