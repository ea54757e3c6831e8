// Package testutil provides common utility functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mapcraftlabs/feasibility-dashboard/internal/scenario"
)

// FindRecord finds a scenario record by name.
// Returns nil if no record carries that name.
func FindRecord(records []*scenario.Record, name string) *scenario.Record {
	for _, r := range records {
		if r != nil && r.Name == name {
			return r
		}
	}
	return nil
}

// WriteSource writes a CSV source file into dir and returns its path.
func WriteSource(tb testing.TB, dir, name, contents string) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		tb.Fatalf("failed to write source %s: %v", name, err)
	}
	return path
}
