// Package connectors holds the behaviour shared by every connector
// implementation: the status priority chain, the error-to-result adapter
// that wraps each outbound call, capability dispatch for optional
// operations, and a small JSON client for REST providers.
//
// Provider packages (google/gmail, google/calendar, stripe, twilio, github)
// build on these helpers and are registered by core/services at startup.
package connectors
