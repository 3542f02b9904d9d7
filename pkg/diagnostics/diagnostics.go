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

package diagnostics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Category groups diagnostics of the same kind.
type Category string

const (
	CategoryYAMLParse          Category = "yaml_parse_errors"
	CategoryPlistParse         Category = "plist_parse_errors"
	CategoryEmptyDocument      Category = "empty_documents"
	CategoryMissingIdentifier  Category = "missing_identifiers"
	CategoryUnresolvedVariable Category = "unresolved_variables"
	CategoryDanglingParent     Category = "dangling_parents"
	CategoryDuplicateID        Category = "duplicate_identifiers"
	CategoryMissingRepository  Category = "missing_repositories"
)

var categories = []Category{
	CategoryYAMLParse,
	CategoryPlistParse,
	CategoryEmptyDocument,
	CategoryMissingIdentifier,
	CategoryUnresolvedVariable,
	CategoryDanglingParent,
	CategoryDuplicateID,
	CategoryMissingRepository,
}

var labels = map[Category]string{
	CategoryYAMLParse:          "YAML parsing errors",
	CategoryPlistParse:         "Plist parsing errors",
	CategoryEmptyDocument:      "Empty recipe files",
	CategoryMissingIdentifier:  "Recipes without identifier",
	CategoryUnresolvedVariable: "Unresolved variables",
	CategoryDanglingParent:     "Missing parent recipes",
	CategoryDuplicateID:        "Duplicate identifiers",
	CategoryMissingRepository:  "Missing repositories",
}

// Categories returns every category in summary order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Label returns the human-readable summary label.
func (c Category) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}

// HardFailure reports whether diagnostics in c mean a recipe was skipped.
func (c Category) HardFailure() bool {
	switch c {
	case CategoryYAMLParse, CategoryPlistParse, CategoryEmptyDocument:
		return true
	default:
		return false
	}
}

// Severity is the log level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one recorded anomaly.
type Diagnostic struct {
	Category Category `json:"category" yaml:"category"`
	Severity Severity `json:"severity" yaml:"severity"`
	// Path is the offending file, empty when the anomaly spans files.
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the logger records are emitted to. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = l
	}
}

// WithAnnotations writes each record to w as a GitHub Actions workflow
// command so CI can attach it to the file.
func WithAnnotations(w io.Writer) Option {
	return func(c *Collector) {
		c.annotations = w
	}
}

// Collector accumulates diagnostics for one build. It has no effect on
// index content.
type Collector struct {
	entries     map[Category][]Diagnostic
	indexed     int
	logger      *slog.Logger
	annotations io.Writer
}

// New creates an empty Collector.
func New(opts ...Option) *Collector {
	c := &Collector{entries: make(map[Category][]Diagnostic)}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Record stores a diagnostic and emits it immediately.
func (c *Collector) Record(cat Category, path, message string) Diagnostic {
	d := Diagnostic{
		Category: cat,
		Severity: SeverityWarning,
		Path:     path,
		Message:  message,
	}
	if cat.HardFailure() {
		d.Severity = SeverityError
	}
	c.entries[cat] = append(c.entries[cat], d)
	c.emit(d)
	return d
}

// Recordf is Record with a formatted message.
func (c *Collector) Recordf(cat Category, path, format string, args ...any) Diagnostic {
	return c.Record(cat, path, fmt.Sprintf(format, args...))
}

func (c *Collector) emit(d Diagnostic) {
	level := slog.LevelWarn
	if d.Severity == SeverityError {
		level = slog.LevelError
	}
	c.logger.Log(context.Background(), level, d.Message,
		"category", string(d.Category),
		"path", d.Path,
	)

	if c.annotations == nil {
		return
	}
	if d.Path == "" {
		fmt.Fprintf(c.annotations, "::warning::%s\n", escapeData(d.Message))
		return
	}
	fmt.Fprintf(c.annotations, "::warning file=%s::%s\n", escapeProperty(d.Path), escapeData(d.Message))
}

// SetIndexed records the number of identifiers in the finished index.
func (c *Collector) SetIndexed(n int) {
	c.indexed = n
}

// Indexed returns the value last passed to SetIndexed.
func (c *Collector) Indexed() int {
	return c.indexed
}

// Diagnostics returns the records in cat, in recording order.
func (c *Collector) Diagnostics(cat Category) []Diagnostic {
	return c.entries[cat]
}

// All returns every record grouped by category in summary order.
func (c *Collector) All() []Diagnostic {
	var all []Diagnostic
	for _, cat := range categories {
		all = append(all, c.entries[cat]...)
	}
	return all
}

// Count returns the number of records in cat.
func (c *Collector) Count(cat Category) int {
	return len(c.entries[cat])
}

// Total returns the number of records across all categories.
func (c *Collector) Total() int {
	n := 0
	for _, list := range c.entries {
		n += len(list)
	}
	return n
}

// HardFailures counts recipes skipped because they could not be parsed
// or were empty.
func (c *Collector) HardFailures() int {
	n := 0
	for cat, list := range c.entries {
		if cat.HardFailure() {
			n += len(list)
		}
	}
	return n
}

// CategoryCount is one line of a summary.
type CategoryCount struct {
	Category Category `json:"category" yaml:"category"`
	Label    string   `json:"label" yaml:"label"`
	Count    int      `json:"count" yaml:"count"`
}

// Summary is the aggregate view printed after a build.
type Summary struct {
	Indexed      int             `json:"indexed" yaml:"indexed"`
	Warnings     int             `json:"warnings" yaml:"warnings"`
	HardFailures int             `json:"hardFailures" yaml:"hardFailures"`
	Categories   []CategoryCount `json:"categories" yaml:"categories"`
}

// Summary returns the counts, omitting empty categories.
func (c *Collector) Summary() Summary {
	s := Summary{
		Indexed:      c.indexed,
		Warnings:     c.Total(),
		HardFailures: c.HardFailures(),
		Categories:   []CategoryCount{},
	}
	for _, cat := range categories {
		if n := c.Count(cat); n > 0 {
			s.Categories = append(s.Categories, CategoryCount{Category: cat, Label: cat.Label(), Count: n})
		}
	}
	return s
}

// WriteSummary prints the summary in plain text.
func (c *Collector) WriteSummary(w io.Writer) error {
	s := c.Summary()
	var b strings.Builder
	fmt.Fprintf(&b, "Recipes indexed: %d\n", s.Indexed)
	if s.Warnings > 0 {
		b.WriteString("\nWARNING SUMMARY:\n")
		fmt.Fprintf(&b, "Total warnings: %d\n", s.Warnings)
		for _, cc := range s.Categories {
			fmt.Fprintf(&b, "%s: %d\n", cc.Label, cc.Count)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Annotation escaping follows the GitHub Actions workflow command format.
func escapeData(s string) string {
	r := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	return r.Replace(s)
}

func escapeProperty(s string) string {
	r := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
	return r.Replace(s)
}
