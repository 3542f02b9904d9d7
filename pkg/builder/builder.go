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

package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/autopkg/index/pkg/diagnostics"
	apperrors "github.com/autopkg/index/pkg/errors"
	"github.com/autopkg/index/pkg/header"
	"github.com/autopkg/index/pkg/index"
	"github.com/autopkg/index/pkg/locator"
	"github.com/autopkg/index/pkg/parser"
	"github.com/autopkg/index/pkg/recipe"
)

// Option configures a Builder.
type Option func(*Builder)

// WithParser sets the recipe parser.
func WithParser(p *parser.Parser) Option {
	return func(b *Builder) {
		b.parser = p
	}
}

// WithNormalizer sets the recipe normalizer.
func WithNormalizer(n *recipe.Normalizer) Option {
	return func(b *Builder) {
		b.normalizer = n
	}
}

// WithDiagnostics passes options to the collector created for each build.
func WithDiagnostics(opts ...diagnostics.Option) Option {
	return func(b *Builder) {
		b.diagOpts = append(b.diagOpts, opts...)
	}
}

// WithVersion sets the tool version recorded in the build header.
func WithVersion(version string) Option {
	return func(b *Builder) {
		b.version = version
	}
}

// Builder turns checked-out repositories into a recipe index.
type Builder struct {
	parser     *parser.Parser
	normalizer *recipe.Normalizer
	diagOpts   []diagnostics.Option
	version    string
}

// New creates a Builder with default parser and normalizer.
func New(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.parser == nil {
		b.parser = parser.NewParser()
	}
	if b.normalizer == nil {
		b.normalizer = recipe.NewNormalizer()
	}
	return b
}

// Result is the outcome of one build.
type Result struct {
	Index       *index.Index
	Diagnostics *diagnostics.Collector
	Header      *header.Header
	Duration    time.Duration
	// Files is the number of recipe files located.
	Files int
}

// Failures returns the number of recipes skipped as unparseable or empty.
func (r *Result) Failures() int {
	return r.Diagnostics.HardFailures()
}

// Build indexes repos strictly in order, files within a repository in
// locator order, then stitches parent links. Problems with individual
// files and unreadable repository roots are recorded in the result's
// diagnostics and never stop the build; only cancellation of ctx returns
// an error.
func (b *Builder) Build(ctx context.Context, repos []Repository) (*Result, error) {
	start := time.Now()

	h := header.New()
	h.Init(header.KindRecipeIndex, header.APIVersion, b.version)

	res := &Result{
		Index:       index.New(),
		Diagnostics: diagnostics.New(b.diagOpts...),
		Header:      h,
	}

	slog.Info("building recipe index", "repos", len(repos), "buildID", h.BuildID())

	for _, repo := range repos {
		n, err := b.BuildRepository(ctx, res.Index, res.Diagnostics, repo)
		res.Files += n
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			b.record(res.Diagnostics, diagnostics.CategoryMissingRepository, repo.Path,
				fmt.Sprintf("Repository %s could not be read and was skipped: %v", repo.FullName, err))
		}
	}

	for _, d := range res.Index.Stitch() {
		b.record(res.Diagnostics, diagnostics.CategoryDanglingParent, "", d.String())
	}

	res.Diagnostics.SetIndexed(res.Index.Len())
	res.Duration = time.Since(start)

	buildDuration.Observe(res.Duration.Seconds())
	identifiersIndexed.Set(float64(res.Index.Len()))

	slog.Info("recipe index built",
		"identifiers", res.Index.Len(),
		"files", res.Files,
		"warnings", res.Diagnostics.Total(),
		"failures", res.Failures(),
		"duration", res.Duration)

	return res, nil
}

// BuildRepository adds the recipes of one repository to ix without
// stitching. It returns the number of files located.
func (b *Builder) BuildRepository(ctx context.Context, ix *index.Index, diag *diagnostics.Collector, repo Repository) (int, error) {
	files, err := locator.Locate(repo.Path)
	if err != nil {
		return 0, apperrors.WrapWithContext(apperrors.ErrCodeNotFound, "repository checkout unavailable", err,
			map[string]any{"repo": repo.FullName, "path": repo.Path})
	}

	repositoriesIndexed.Inc()
	slog.Debug("indexing repository", "repo", repo.FullName, "files", len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("index build canceled in %s: %w", repo.FullName, err)
		}
		b.processFile(ix, diag, repo, file)
	}
	return len(files), nil
}

func (b *Builder) processFile(ix *index.Index, diag *diagnostics.Collector, repo Repository, file string) {
	rel, err := recipe.RelativePath(repo.Path, file)
	if err != nil {
		// Locate only returns paths below the root.
		rel = file
	}

	m, err := b.parser.ParseFile(file)
	if err != nil {
		b.recordParseFailure(diag, file, err)
		return
	}

	doc := recipe.NewDocument(m)
	res := b.normalizer.Normalize(doc, repo.FullName, rel)
	if res.Deprecated {
		filesProcessed.WithLabelValues(outcomeDeprecated).Inc()
		return
	}

	for _, u := range recipe.Resolve(res.Entry, doc) {
		b.record(diag, diagnostics.CategoryUnresolvedVariable, file,
			fmt.Sprintf("Unable to resolve variable %s in field '%s' in %s", u.Variable, u.Field, file))
	}

	if !res.HasIdentifier {
		filesProcessed.WithLabelValues(outcomeMissingIdentifier).Inc()
		b.record(diag, diagnostics.CategoryMissingIdentifier, file,
			fmt.Sprintf("Recipe has no Identifier and was not indexed: %s", file))
		return
	}

	if prev, replaced := ix.Add(res.Identifier, res.Entry); replaced {
		b.record(diag, diagnostics.CategoryDuplicateID, file,
			fmt.Sprintf("Identifier %s in %s/%s replaces the entry from %s/%s",
				res.Identifier, repo.FullName, rel, prev.Repo, prev.Path))
	}
	if res.ParentIdentifier != "" {
		ix.Link(res.Identifier, res.ParentIdentifier)
	}
	filesProcessed.WithLabelValues(outcomeIndexed).Inc()
}

func (b *Builder) recordParseFailure(diag *diagnostics.Collector, file string, err error) {
	var (
		pe *parser.ParseError
		ee *parser.EmptyDocumentError
	)
	switch {
	case errors.As(err, &pe):
		filesProcessed.WithLabelValues(outcomeParseError).Inc()
		cat := diagnostics.CategoryPlistParse
		if pe.Format == parser.FormatYAML {
			cat = diagnostics.CategoryYAMLParse
		}
		b.record(diag, cat, file, pe.Error())
	case errors.As(err, &ee):
		filesProcessed.WithLabelValues(outcomeEmpty).Inc()
		b.record(diag, diagnostics.CategoryEmptyDocument, file, ee.Error())
	default:
		filesProcessed.WithLabelValues(outcomeParseError).Inc()
		cat := diagnostics.CategoryPlistParse
		if parser.FormatFromPath(file) == parser.FormatYAML {
			cat = diagnostics.CategoryYAMLParse
		}
		b.record(diag, cat, file, err.Error())
	}
}

func (b *Builder) record(diag *diagnostics.Collector, cat diagnostics.Category, file, message string) {
	diagnosticsRecorded.WithLabelValues(string(cat)).Inc()
	diag.Record(cat, file, message)
}
