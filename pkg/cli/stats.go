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

	"github.com/autopkg/index/pkg/index"
	"github.com/autopkg/index/pkg/k8s/client"
	"github.com/autopkg/index/pkg/serializer"
)

func statsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "stats",
		EnableShellCompletion: true,
		Usage:                 "Summarize an existing index",
		Description: `Load an index from a file, an HTTP(S) URL or a ConfigMap and print the
number of identifiers and shortnames, entries per inferred type and per
repository, and how many recipes have children.`,
		Flags: []cli.Flag{
			indexFlag(),
			formatFlag(string(serializer.FormatTable)),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := serializer.ParseFormat(cmd.String("format"))
			if err != nil {
				return err
			}

			if kc := cmd.String("kubeconfig"); kc != "" {
				client.SetKubeconfig(kc)
			}

			location := cmd.String("index")
			ix, err := serializer.FromFile[index.Index](ctx, location)
			if err != nil {
				return fmt.Errorf("failed to load index from %q: %w", location, err)
			}

			return serializer.NewWriter(format, cmd.Root().Writer).Serialize(ctx, ix.Stats())
		},
	}
}
