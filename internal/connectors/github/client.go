package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

// Client wraps the go-github client with helper methods.
type Client struct {
	gh    *gh.Client
	quota *quota
}

// NewClient creates a GitHub API client sending requests through httpClient
// with a static access token. Works for both PAT and OAuth access tokens.
func NewClient(ctx context.Context, httpClient *http.Client, token, baseURL string) (*Client, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	tc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	tc.Timeout = httpClient.Timeout

	client := gh.NewClient(tc)
	if baseURL != "" && baseURL != DefaultAPIBase {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("github: parse base url: %w", err)
		}
		client.BaseURL = u
	}

	return &Client{gh: client, quota: newQuota()}, nil
}

// ValidateCredentials checks the token by fetching the authenticated user.
func (c *Client) ValidateCredentials(ctx context.Context) error {
	_, resp, err := c.gh.Users.Get(ctx, "")
	c.quota.update(resp)
	if err != nil {
		return c.wrapError(err, "validate credentials")
	}
	return nil
}

// ListRepos returns one page of repositories the authenticated user can access.
func (c *Client) ListRepos(ctx context.Context, perPage int) ([]*gh.Repository, error) {
	repos, resp, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, repoListOptions(perPage))
	c.quota.update(resp)
	if err != nil {
		return nil, c.wrapError(err, "list repos")
	}
	return repos, nil
}

// CountAccessibleRepos walks every page of accessible repositories.
// This includes owned, collaborator and organization member repos.
func (c *Client) CountAccessibleRepos(ctx context.Context) (int, error) {
	opts := repoListOptions(syncPageSize)
	total := 0

	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		repos, resp, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, opts)
		c.quota.update(resp)
		if err != nil {
			return total, c.wrapError(err, "list repos")
		}
		total += len(repos)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return total, nil
}

// ListIssues returns one page of issues. With an empty owner it lists
// issues assigned to the authenticated user across all repositories.
func (c *Client) ListIssues(ctx context.Context, owner, repo string, perPage int) ([]*gh.Issue, error) {
	var (
		issues []*gh.Issue
		resp   *gh.Response
		err    error
	)
	if owner == "" {
		issues, resp, err = c.gh.Issues.List(ctx, true, &gh.IssueListOptions{
			State:       "open",
			Sort:        "updated",
			ListOptions: gh.ListOptions{PerPage: perPage},
		})
	} else {
		issues, resp, err = c.gh.Issues.ListByRepo(ctx, owner, repo, &gh.IssueListByRepoOptions{
			State:       "open",
			Sort:        "updated",
			ListOptions: gh.ListOptions{PerPage: perPage},
		})
	}
	c.quota.update(resp)
	if err != nil {
		return nil, c.wrapError(err, "list issues")
	}
	return issues, nil
}

func repoListOptions(perPage int) *gh.RepositoryListByAuthenticatedUserOptions {
	return &gh.RepositoryListByAuthenticatedUserOptions{
		Visibility:  "all",
		Affiliation: "owner,collaborator,organization_member",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: perPage},
	}
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		reset := c.quota.ResetTime()
		if abuseErr.RetryAfter != nil {
			reset = time.Now().Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{ResetAt: reset, Remaining: c.quota.Remaining(), Limit: c.quota.Limit()}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{StatusCode: ghErr.Response.StatusCode, Message: ghErr.Message}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	if errors.Is(err, domain.ErrTransport) {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return fmt.Errorf("%s: %w: %w", operation, domain.ErrTransport, err)
}
