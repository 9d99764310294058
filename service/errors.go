package service

import "fmt"

// EnvironmentError signals that a service cannot operate because required
// auth material (cookies, credentials) is absent from the user's environment.
// It is a configuration condition, not a runtime failure, and the CLI renders
// it with its remedy rather than as a bare error string.
type EnvironmentError struct {
	// Tag of the service raising the condition.
	Tag string
	// Missing names the absent material, e.g. "credentials" or "cookies".
	Missing string
	// Remedy tells the user how to provide it.
	Remedy string
}

func (e *EnvironmentError) Error() string {
	s := fmt.Sprintf("%s requires %s which are not configured", e.Tag, e.Missing)
	if e.Remedy != "" {
		s += "; " + e.Remedy
	}
	return s
}
