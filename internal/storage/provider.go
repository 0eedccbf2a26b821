// Package storage defines the key-value abstraction the peak log persists to.
package storage

// KV is a string key-value store. Set replaces the whole value.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
}
