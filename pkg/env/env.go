// Package env reads process environment variables with fallbacks. It
// exists for the few lookups that happen before config loading.
package env

import "os"

// Get returns the variable's value, or fallback when unset or empty.
func Get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
