// ABOUTME: Input validation for operation parameters.
// ABOUTME: Runs before any catalog or registry access so invalid_input always
// ABOUTME: precedes software_not_found.

package lifecycle

import "strings"

const maxNameLength = 100

// validateName checks a software name parameter. Returns an empty string when
// valid, otherwise the rejection reason.
func validateName(name string) string {
	if name == "" {
		return "software name must be a non-empty string"
	}
	if strings.TrimSpace(name) == "" {
		return "software name cannot be empty or whitespace"
	}
	if len(name) > maxNameLength {
		return "software name exceeds 100 characters"
	}
	return ""
}

// validateTask checks a task name parameter.
func validateTask(task string) string {
	if task == "" {
		return "task must be a non-empty string"
	}
	if strings.TrimSpace(task) == "" {
		return "task cannot be empty or whitespace"
	}
	if len(task) > maxNameLength {
		return "task exceeds 100 characters"
	}
	return ""
}
