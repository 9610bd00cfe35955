// Package github implements a connector for the GitHub REST API.
//
// The connector authenticates with a personal access token or an OAuth
// token, read from the stored auth object ("token") or the GITHUB_TOKEN
// setting. It lists the repositories accessible to the authenticated user
// and issues, either across those repositories or for one "owner/repo".
//
// # Sync
//
// Sync walks every accessible repository page by page and reports how
// many were seen. Nothing is persisted; callers use the count to confirm
// the token's reach.
//
// # Rate limits
//
// Requests are throttled by the shared outbound HTTP client. The quota
// reported by GitHub on each response is recorded so a rate limit error
// can carry the reset time.
package github
