// Package google provides shared infrastructure for the Gmail and Google
// Calendar connectors.
//
// This package contains:
//   - OAuthBase, the authorize/status/revoke/test lifecycle both connectors share
//   - TokenSource adapter from a ConnectorAuth to oauth2.TokenSource
//   - Service factories for creating Google API clients
//   - Error mapping for common Google API errors (401, 403, 404, 429)
//
// # Usage
//
// Each Google connector embeds OAuthBase and supplies its own probe:
//
//	base := google.NewOAuthBase(cfg, auth, deps, app)
//	svc, err := google.NewGmailService(ctx, base.AuthedClient(), endpoint)
//
// # OAuth2 Scopes
//
// Google connectors request these scopes:
//   - https://www.googleapis.com/auth/gmail.readonly (restricted)
//   - https://www.googleapis.com/auth/gmail.send (sensitive)
//   - https://www.googleapis.com/auth/calendar.readonly (sensitive)
//   - https://www.googleapis.com/auth/calendar.events (sensitive)
package google
