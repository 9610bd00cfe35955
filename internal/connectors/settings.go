package connectors

import (
	"strings"

	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

// Setting returns settings[key], or def when the value is empty.
// A nil settings source always yields def.
func Setting(settings driven.Settings, key, def string) string {
	if settings == nil {
		return def
	}
	if v := strings.TrimSpace(settings.Get(key)); v != "" {
		return v
	}
	return def
}

// BaseURL returns the API base URL override for key, without a trailing slash.
func BaseURL(settings driven.Settings, key, def string) string {
	return strings.TrimRight(Setting(settings, key, def), "/")
}
