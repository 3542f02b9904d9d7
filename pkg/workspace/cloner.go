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

package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/autopkg/index/pkg/builder"
	"github.com/autopkg/index/pkg/defaults"
	apperrors "github.com/autopkg/index/pkg/errors"
	"github.com/autopkg/index/pkg/github"
)

// GitRunner runs a git subcommand in dir.
type GitRunner interface {
	Run(ctx context.Context, dir string, args ...string) error
}

// ExecGit runs the git binary found on PATH.
type ExecGit struct {
	// Binary overrides the git executable; defaults to "git".
	Binary string
}

// Run implements GitRunner.
func (g ExecGit) Run(ctx context.Context, dir string, args ...string) error {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Cloner keeps a directory of shallow checkouts laid out as <root>/<owner>/<name>.
type Cloner struct {
	root        string
	runner      GitRunner
	concurrency int
	update      bool
	timeout     time.Duration
}

// Option configures a Cloner.
type Option func(*Cloner)

// WithRunner sets the git runner.
func WithRunner(r GitRunner) Option {
	return func(c *Cloner) {
		if r != nil {
			c.runner = r
		}
	}
}

// WithConcurrency bounds the number of git commands run at once.
func WithConcurrency(n int) Option {
	return func(c *Cloner) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithUpdate fast-forwards checkouts that already exist.
func WithUpdate(update bool) Option {
	return func(c *Cloner) {
		c.update = update
	}
}

// WithTimeout bounds each clone or pull.
func WithTimeout(d time.Duration) Option {
	return func(c *Cloner) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewCloner returns a Cloner rooted at root.
func NewCloner(root string, opts ...Option) *Cloner {
	c := &Cloner{
		root:        root,
		runner:      ExecGit{},
		concurrency: defaults.CloneConcurrency,
		timeout:     defaults.CloneTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Root returns the checkout directory.
func (c *Cloner) Root() string {
	return c.root
}

// Sync makes sure every repository has a checkout under the root and returns
// them in input order. The first failure cancels the remaining work.
func (c *Cloner) Sync(ctx context.Context, repos []github.Repo) ([]builder.Repository, error) {
	if err := os.MkdirAll(c.root, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create repositories directory", err)
	}

	result := make([]builder.Repository, len(repos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, r := range repos {
		g.Go(func() error {
			repo, err := c.syncOne(gctx, r)
			if err != nil {
				return err
			}
			result[i] = repo
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Cloner) syncOne(ctx context.Context, r github.Repo) (builder.Repository, error) {
	repo := builder.NewRepository(c.root, r.FullName)

	if err := ctx.Err(); err != nil {
		return repo, apperrors.Wrap(apperrors.ErrCodeTimeout, "sync canceled", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	info, err := os.Stat(repo.Path)
	switch {
	case err == nil && info.IsDir():
		if !c.update {
			slog.Debug("checkout exists, skipping", "repo", r.FullName)
			return repo, nil
		}
		slog.Info("updating checkout", "repo", r.FullName)
		if err := c.runner.Run(ctx, repo.Path, "pull", "--ff-only"); err != nil {
			return repo, apperrors.WrapWithContext(apperrors.ErrCodeUnavailable, "failed to update repository", err,
				map[string]any{"repo": r.FullName})
		}
		return repo, nil
	case err == nil:
		return repo, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "checkout path is not a directory",
			map[string]any{"repo": r.FullName, "path": repo.Path})
	case !os.IsNotExist(err):
		return repo, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to stat checkout", err)
	}

	if r.CloneURL == "" {
		return repo, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "repository has no clone URL",
			map[string]any{"repo": r.FullName})
	}

	parent := filepath.Dir(repo.Path)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return repo, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create owner directory", err)
	}

	slog.Info("cloning repository", "repo", r.FullName)
	if err := c.runner.Run(ctx, parent, "clone", "--depth=1", r.CloneURL, filepath.Base(repo.Path)); err != nil {
		return repo, apperrors.WrapWithContext(apperrors.ErrCodeUnavailable, "failed to clone repository", err,
			map[string]any{"repo": r.FullName})
	}
	return repo, nil
}
