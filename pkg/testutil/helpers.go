// Package testutil provides common utility functions for testing.
package testutil

import (
	"strings"

	"github.com/gapaero/loadsheet/internal/envelope"
)

// FindCheck finds the envelope check of a phase in the checks slice.
// Returns a pointer to the check if found, nil otherwise.
func FindCheck(checks []envelope.Check, phase envelope.Phase) *envelope.Check {
	for i := range checks {
		if checks[i].Phase == phase {
			return &checks[i]
		}
	}
	return nil
}

// FindWarning returns the first warning starting with prefix, or "" if none does.
func FindWarning(warnings []string, prefix string) string {
	for _, w := range warnings {
		if strings.HasPrefix(w, prefix) {
			return w
		}
	}
	return ""
}
