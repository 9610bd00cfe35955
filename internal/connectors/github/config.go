package github

import "github.com/custodia-labs/sercha-connect/internal/core/domain"

// ID is the registry key of the GitHub connector.
const ID = "github"

// Settings read by the GitHub connector.
const (
	SettingToken   = "GITHUB_TOKEN"
	SettingAPIBase = "GITHUB_API_BASE"
)

// DefaultAPIBase is the public GitHub REST root.
const DefaultAPIBase = "https://api.github.com/"

// DefaultPerPage is the page size when no limit is given.
const DefaultPerPage = 10

// syncPageSize is the page size used while walking repositories.
const syncPageSize = 100

// Resource types served by Resources.
const (
	ResourceRepositories = "repositories"
	ResourceIssues       = "issues"
)

// DefaultConfig returns the registry descriptor for GitHub.
func DefaultConfig() domain.ConnectorConfig {
	return domain.ConnectorConfig{
		ID:               ID,
		Name:             "GitHub",
		Description:      "Connect to GitHub to browse repositories and track issues.",
		Icon:             "🐙",
		Category:         domain.CategoryDevelopment,
		RequiresAuth:     true,
		AuthKind:         domain.AuthAPIKey,
		Status:           domain.StatusNotConnected,
		Enabled:          true,
		DocumentationURL: "https://docs.github.com/en/rest",
		CredentialKeys:   []string{domain.CredToken},
		SettingKeys: []domain.SettingKey{
			{Key: SettingToken, Label: "Personal Access Token", Required: true, Secret: true},
		},
	}
}
