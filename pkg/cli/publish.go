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
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/autopkg/index/pkg/defaults"
	apperrors "github.com/autopkg/index/pkg/errors"
	"github.com/autopkg/index/pkg/header"
	"github.com/autopkg/index/pkg/index"
	"github.com/autopkg/index/pkg/oci"
	"github.com/autopkg/index/pkg/serializer"
)

const defaultOCITag = "latest"

func publishCmd() *cli.Command {
	return &cli.Command{
		Name:                  "publish",
		EnableShellCompletion: true,
		Usage:                 "Publish a built index as an OCI artifact",
		Description: `Pack the directory holding the index file into an OCI artifact of type
application/vnd.autopkg.recipe-index.v1 and push it to a registry, or
write it to a local OCI Image Layout directory. The index is loaded and
checked before anything is pushed.

Registry credentials come from --username/--password when set, otherwise
from the Docker credential store.

# Examples

  recipe-index publish --index v1/index.json --to oci://ghcr.io/autopkg/index:latest
  recipe-index publish --to ./layout --tag dev`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "index",
				Aliases: []string{"i"},
				Usage:   "Path of the index file; its directory is published",
				Value:   defaults.IndexPath,
				Sources: cli.EnvVars("RECIPE_INDEX_INDEX"),
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "Target: oci://registry/repository[:tag] or a local layout directory",
				Required: true,
				Sources:  cli.EnvVars("RECIPE_INDEX_PUBLISH_TO"),
			},
			&cli.StringFlag{
				Name:  "tag",
				Usage: "Tag used when the target does not carry one",
				Value: defaultOCITag,
			},
			&cli.StringFlag{
				Name:    "username",
				Usage:   "Registry username",
				Sources: cli.EnvVars("RECIPE_INDEX_REGISTRY_USERNAME"),
			},
			&cli.StringFlag{
				Name:    "password",
				Usage:   "Registry password or token",
				Sources: cli.EnvVars("RECIPE_INDEX_REGISTRY_PASSWORD"),
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the registry",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ref, err := oci.ParseOutputTarget(cmd.String("to"))
			if err != nil {
				return err
			}
			ref = ref.WithDefaultTag(cmd.String("tag"))

			indexPath := cmd.String("index")
			ix, err := serializer.FromFile[index.Index](ctx, indexPath)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
					fmt.Sprintf("failed to load index %s", indexPath), err)
			}

			h := header.New()
			h.Init(header.KindRecipeIndex, header.APIVersion, version)

			res, err := oci.Push(ctx, oci.PushOptions{
				SourceDir:   filepath.Dir(indexPath),
				Reference:   ref,
				PlainHTTP:   cmd.Bool("plain-http"),
				InsecureTLS: cmd.Bool("insecure-tls"),
				Username:    cmd.String("username"),
				Password:    cmd.String("password"),
				Annotations: oci.Annotations(h),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "Published %d identifiers to %s@%s\n", ix.Len(), res.Reference, res.Digest)
			return nil
		},
	}
}
