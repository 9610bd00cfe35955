// Package settings composes Settings sources.
package settings

import (
	"strings"

	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

// Ensure Chain implements the interface.
var _ driven.Settings = Chain(nil)

// Chain is an ordered list of sources. The first non-empty value wins.
type Chain []driven.Settings

// Get returns the first non-empty value for key.
func (c Chain) Get(key string) string {
	for _, s := range c {
		if s == nil {
			continue
		}
		if v := s.Get(key); strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
