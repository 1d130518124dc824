// internal/app/system/timeouts/timeouts.go

// Package timeouts holds the deadlines handlers put on database work, so
// individual call sites don't grow their own magic durations.
package timeouts

import "time"

const (
	// Short bounds per-request lookups: the session user fetch, the
	// settings read behind every rendered page.
	Short = 5 * time.Second

	// Long bounds bulk work that walks every collection: snapshot
	// builds, backup restores, and full-site imports.
	Long = 30 * time.Second
)
