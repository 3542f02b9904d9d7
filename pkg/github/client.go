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

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/autopkg/index/pkg/defaults"
	apperrors "github.com/autopkg/index/pkg/errors"
	"github.com/autopkg/index/pkg/serializer"
)

// Repo is the subset of the GitHub repository object used for indexing.
type Repo struct {
	FullName      string `json:"full_name"`
	CloneURL      string `json:"clone_url"`
	DefaultBranch string `json:"default_branch,omitempty"`
	Private       bool   `json:"private"`
	Fork          bool   `json:"fork"`
	Archived      bool   `json:"archived"`
	Disabled      bool   `json:"disabled"`
	IsTemplate    bool   `json:"is_template"`
}

// SkipReason names the first flag that makes the repository unindexable,
// or returns "" when it should be indexed.
func (r Repo) SkipReason() string {
	switch {
	case r.Private:
		return "private"
	case r.Fork:
		return "fork"
	case r.Archived:
		return "archived"
	case r.Disabled:
		return "disabled"
	case r.IsTemplate:
		return "is_template"
	default:
		return ""
	}
}

// Filter drops skippable repositories and excluded full names, keeping
// the order of repos.
func Filter(repos []Repo, excluded []string) []Repo {
	skip := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		skip[name] = true
	}

	out := make([]Repo, 0, len(repos))
	for _, r := range repos {
		if reason := r.SkipReason(); reason != "" {
			slog.Debug("skipping repository", "repo", r.FullName, "reason", reason)
			continue
		}
		if skip[r.FullName] {
			slog.Debug("skipping repository", "repo", r.FullName, "reason", "excluded")
			continue
		}
		out = append(out, r)
	}
	return out
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithRateLimit paces requests with a token bucket.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithPageSize sets per_page for listing calls.
func WithPageSize(n int) Option {
	return func(c *Client) {
		c.pageSize = n
	}
}

// Client lists repositories through the GitHub REST API.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	pageSize  int
	http      *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a Client for api.github.com with the default pacing.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   defaults.GitHubAPIURL,
		userAgent: "recipe-index",
		pageSize:  defaults.GitHubPageSize,
		http:      serializer.NewHTTPClient(),
		limiter:   rate.NewLimiter(rate.Limit(defaults.GitHubRequestsPerSecond), defaults.GitHubRequestBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListOrgRepos returns every repository of org, requesting pages until an
// empty one comes back. Order follows the API.
func (c *Client) ListOrgRepos(ctx context.Context, org string) ([]Repo, error) {
	var all []Repo
	for page := 1; ; page++ {
		repos, err := c.listPage(ctx, org, page)
		if err != nil {
			return nil, err
		}
		if len(repos) == 0 {
			break
		}
		all = append(all, repos...)
	}
	slog.Info("listed organization repositories", "org", org, "repos", len(all))
	return all, nil
}

func (c *Client) listPage(ctx context.Context, org string, page int) ([]Repo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeTimeout, "rate limiter wait canceled", err)
	}

	q := url.Values{}
	q.Set("per_page", strconv.Itoa(c.pageSize))
	q.Set("page", strconv.Itoa(page))
	endpoint := fmt.Sprintf("%s/orgs/%s/repos?%s", c.baseURL, url.PathEscape(org), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	slog.Debug("listing repositories", "org", org, "page", page)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeUnavailable, "repository listing failed", err,
			map[string]any{"org": org, "page": page})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, org, page)
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInternal, "failed to decode repository listing", err,
			map[string]any{"org": org, "page": page})
	}
	return repos, nil
}

func statusError(resp *http.Response, org string, page int) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	ctx := map[string]any{
		"org":    org,
		"page":   page,
		"status": resp.StatusCode,
		"body":   strings.TrimSpace(string(body)),
	}

	code := apperrors.ErrCodeInternal
	switch {
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		code = apperrors.ErrCodeRateLimitExceeded
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		code = apperrors.ErrCodeUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		code = apperrors.ErrCodeNotFound
	case resp.StatusCode >= 500:
		code = apperrors.ErrCodeUnavailable
	}
	return apperrors.NewWithContext(code, fmt.Sprintf("repository listing returned %s", resp.Status), ctx)
}
