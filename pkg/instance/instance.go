// Package instance identifies the running replica in logs so multiple
// cron workers competing for the lock can be told apart.
package instance

import "os"

// GetID returns the replica identifier, preferring an explicit
// WORKER_ID, then the hostname.
func GetID() string {
	if id := os.Getenv("WORKER_ID"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "worker-0"
}
