package driven

// Settings supplies client identifiers, redirect URIs and secrets.
// Connectors read it on every call so changes take effect without restart.
type Settings interface {
	// Get returns the value for key, or an empty string if unset.
	Get(key string) string
}

// WritableSettings is a Settings source that can be updated.
type WritableSettings interface {
	Settings
	Set(key, value string) error
	// Keys returns all keys with a value.
	Keys() []string
}

// SettingsFunc adapts a function to the Settings interface.
type SettingsFunc func(key string) string

// Get calls f(key).
func (f SettingsFunc) Get(key string) string { return f(key) }
