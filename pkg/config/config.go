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

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/autopkg/index/pkg/defaults"
	apperrors "github.com/autopkg/index/pkg/errors"
	"github.com/autopkg/index/pkg/recipe"
)

// Annotation modes for diagnostics.
const (
	AnnotationsGitHub = "github"
	AnnotationsNone   = "none"
)

// GitHub configures repository discovery.
type GitHub struct {
	APIURL            string        `yaml:"apiURL,omitempty"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond,omitempty"`
	Burst             int           `yaml:"burst,omitempty"`
	Timeout           time.Duration `yaml:"timeout,omitempty"`
}

// Config is the optional .recipe-index.yaml file. Command-line flags take
// precedence over every value here.
type Config struct {
	Organization     string           `yaml:"organization,omitempty"`
	ReposDir         string           `yaml:"reposDir,omitempty"`
	Output           string           `yaml:"output,omitempty"`
	Format           string           `yaml:"format,omitempty"`
	Annotations      string           `yaml:"annotations,omitempty"`
	FailOnErrors     bool             `yaml:"failOnErrors,omitempty"`
	ExcludedRepos    []string         `yaml:"excludedRepos,omitempty"`
	CloneConcurrency int              `yaml:"cloneConcurrency,omitempty"`
	MaxRecipeBytes   int              `yaml:"maxRecipeBytes,omitempty"`
	GitHub           GitHub           `yaml:"github,omitempty"`
	TypeRules        recipe.TypeRules `yaml:"typeRules,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Organization:     defaults.Organization,
		ReposDir:         defaults.ReposDir,
		Output:           defaults.IndexPath,
		Format:           "json",
		Annotations:      AnnotationsNone,
		ExcludedRepos:    defaults.ExcludedRepos(),
		CloneConcurrency: defaults.CloneConcurrency,
		MaxRecipeBytes:   defaults.MaxRecipeBytes,
		GitHub: GitHub{
			APIURL:            defaults.GitHubAPIURL,
			RequestsPerSecond: defaults.GitHubRequestsPerSecond,
			Burst:             defaults.GitHubRequestBurst,
			Timeout:           defaults.GitHubListTimeout,
		},
	}
}

// Option adjusts a loaded Config.
type Option func(*Config)

// WithOrganization overrides the GitHub organization.
func WithOrganization(org string) Option {
	return func(c *Config) {
		c.Organization = org
	}
}

// WithReposDir overrides the checkout directory.
func WithReposDir(dir string) Option {
	return func(c *Config) {
		c.ReposDir = dir
	}
}

// WithOutput overrides the output destination.
func WithOutput(output string) Option {
	return func(c *Config) {
		c.Output = output
	}
}

// WithFormat overrides the output format.
func WithFormat(format string) Option {
	return func(c *Config) {
		c.Format = format
	}
}

// WithAnnotations overrides the annotation mode.
func WithAnnotations(mode string) Option {
	return func(c *Config) {
		c.Annotations = mode
	}
}

// WithFailOnErrors overrides the exit policy.
func WithFailOnErrors(fail bool) Option {
	return func(c *Config) {
		c.FailOnErrors = fail
	}
}

// WithCloneConcurrency overrides the number of parallel clones.
func WithCloneConcurrency(n int) Option {
	return func(c *Config) {
		c.CloneConcurrency = n
	}
}

// WithExcludedRepos replaces the excluded repository list.
func WithExcludedRepos(names []string) Option {
	return func(c *Config) {
		c.ExcludedRepos = append([]string(nil), names...)
	}
}

// Apply applies opts in order and returns c.
func (c *Config) Apply(opts ...Option) *Config {
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode reads YAML from r over the defaults. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to decode config", err)
	}
	return c, nil
}

// Load reads the config file at path. An empty path tries
// defaults.ConfigFileName in the working directory and falls back to
// Default when it does not exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaults.ConfigFileName
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, fmt.Sprintf("failed to open config %s", path), err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the values that would otherwise fail late in a build.
func (c *Config) Validate() error {
	var problems []string

	switch c.Format {
	case "json", "yaml":
	default:
		problems = append(problems, fmt.Sprintf("format must be json or yaml, got %q", c.Format))
	}
	switch c.Annotations {
	case AnnotationsGitHub, AnnotationsNone:
	default:
		problems = append(problems, fmt.Sprintf("annotations must be %s or %s, got %q", AnnotationsGitHub, AnnotationsNone, c.Annotations))
	}
	if strings.TrimSpace(c.ReposDir) == "" {
		problems = append(problems, "reposDir must not be empty")
	}
	if c.CloneConcurrency < 1 {
		problems = append(problems, "cloneConcurrency must be at least 1")
	}
	if c.MaxRecipeBytes < 1 {
		problems = append(problems, "maxRecipeBytes must be positive")
	}
	if c.GitHub.RequestsPerSecond <= 0 {
		problems = append(problems, "github.requestsPerSecond must be positive")
	}
	if c.GitHub.Burst < 1 {
		problems = append(problems, "github.burst must be at least 1")
	}
	for _, name := range c.ExcludedRepos {
		if !strings.Contains(name, "/") {
			problems = append(problems, fmt.Sprintf("excludedRepos entry %q is not owner/name", name))
		}
	}
	if err := c.TypeRules.Validate(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid configuration: "+strings.Join(problems, "; "),
			map[string]any{"problems": problems})
	}
	return nil
}
