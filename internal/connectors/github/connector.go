package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-connect/internal/connectors"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

// Ensure Connector implements the capability interfaces.
var (
	_ driven.Connector      = (*Connector)(nil)
	_ driven.ResourceLister = (*Connector)(nil)
	_ driven.Syncer         = (*Connector)(nil)
)

// Connector browses GitHub repositories and issues.
type Connector struct {
	cfg  domain.ConnectorConfig
	auth *domain.ConnectorAuth
	deps connectors.Deps
}

// NewFactory returns the factory registered for GitHub.
func NewFactory(deps connectors.Deps) driven.ConnectorFactory {
	return func(cfg domain.ConnectorConfig, auth *domain.ConnectorAuth) driven.Connector {
		return New(cfg, auth, deps)
	}
}

// New creates a new GitHub connector.
func New(cfg domain.ConnectorConfig, auth *domain.ConnectorAuth, deps connectors.Deps) *Connector {
	return &Connector{cfg: cfg, auth: auth, deps: deps}
}

// Config returns the connector config.
func (c *Connector) Config() domain.ConnectorConfig {
	return c.cfg
}

func (c *Connector) token() string {
	if token := strings.TrimSpace(c.auth.Credential(domain.CredToken)); token != "" {
		return token
	}
	return connectors.Setting(c.deps.Settings, SettingToken, "")
}

func (c *Connector) client(ctx context.Context) (*Client, error) {
	base := connectors.Setting(c.deps.Settings, SettingAPIBase, DefaultAPIBase)
	return NewClient(ctx, c.deps.Client(), c.token(), base)
}

// Authorize checks that a token is configured. Tokens are created at
// github.com/settings/tokens.
func (c *Connector) Authorize(_ context.Context) (domain.AuthResult, error) {
	if c.token() == "" {
		return domain.AuthResult{}, fmt.Errorf("%s: %s is not set: %w", ID, SettingToken, domain.ErrAuthRequired)
	}
	return domain.AuthResult{
		Status:  domain.AuthStatusReady,
		Message: "GitHub token configured",
	}, nil
}

// AuthStatus applies the status priority chain.
func (c *Connector) AuthStatus(ctx context.Context) domain.ConnectorStatus {
	return connectors.ResolveStatus(ctx, ID, c.token() != "", c.auth, c.TestConnection)
}

// Revoke always succeeds. Personal access tokens are revoked in GitHub settings.
func (c *Connector) Revoke(_ context.Context) bool {
	return true
}

// TestConnection validates the token against the authenticated user endpoint.
func (c *Connector) TestConnection(ctx context.Context) bool {
	if c.token() == "" {
		return false
	}
	return connectors.Attempt(ID, "test", func() error {
		client, err := c.client(ctx)
		if err != nil {
			return err
		}
		return client.ValidateCredentials(ctx)
	})
}

// Resources lists repositories or issues. For issues, opts.Query may name
// a single repository as "owner/repo".
func (c *Connector) Resources(ctx context.Context, resourceType string, opts domain.ResourceOptions) []domain.Resource {
	if c.token() == "" {
		return []domain.Resource{}
	}

	perPage := opts.LimitOr(DefaultPerPage)
	switch resourceType {
	case ResourceRepositories:
		return connectors.AttemptList(ID, "list_repositories", func() ([]domain.Resource, error) {
			client, err := c.client(ctx)
			if err != nil {
				return nil, err
			}
			repos, err := client.ListRepos(ctx, perPage)
			if err != nil {
				return nil, err
			}
			return toResources(repos)
		})
	case ResourceIssues:
		owner, repo, err := splitRepo(opts.Query)
		if err != nil {
			_ = connectors.Observe(ID, "list_issues", err)
			return []domain.Resource{}
		}
		return connectors.AttemptList(ID, "list_issues", func() ([]domain.Resource, error) {
			client, err := c.client(ctx)
			if err != nil {
				return nil, err
			}
			issues, err := client.ListIssues(ctx, owner, repo, perPage)
			if err != nil {
				return nil, err
			}
			return toResources(issues)
		})
	default:
		return []domain.Resource{}
	}
}

// Sync walks every accessible repository and reports the count.
func (c *Connector) Sync(ctx context.Context, _ domain.ResourceOptions) domain.SyncResult {
	if c.token() == "" {
		return domain.SyncResult{Status: string(domain.StatusNotConnected)}
	}

	var total int
	ok := connectors.Attempt(ID, "sync", func() error {
		client, err := c.client(ctx)
		if err != nil {
			return err
		}
		total, err = client.CountAccessibleRepos(ctx)
		return err
	})
	if !ok {
		return domain.SyncResult{Synced: total, Status: string(domain.StatusError)}
	}
	return domain.SyncResult{Synced: total, Status: domain.SyncCompleted}
}

// splitRepo parses "owner/repo". An empty string selects the user's issues.
func splitRepo(full string) (owner, repo string, err error) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", "", nil
	}
	owner, repo, ok := strings.Cut(full, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("repository %q must be owner/repo: %w", full, domain.ErrInvalidInput)
	}
	return owner, repo, nil
}

func toResources[T any](items []T) ([]domain.Resource, error) {
	out := make([]domain.Resource, 0, len(items))
	for _, item := range items {
		r, err := connectors.ToResource(item)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
