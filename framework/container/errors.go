package container

import (
	"strconv"
	"strings"
)

// All registry failures are programmer-error classes: they indicate a
// wiring defect and are meant to abort startup, not to be retried or
// shown to an end user.

// DuplicateRegistrationError is returned by Register when the identity
// already has an entry. The existing entry is left untouched.
type DuplicateRegistrationError struct{ Identity string }

func (e *DuplicateRegistrationError) Error() string {
	// Example: container: duplicate registration for "user.service"
	return "container: duplicate registration for " + strconv.Quote(e.Identity)
}

// UnregisteredTypeError is returned by Resolve when the requested
// identity, or any identity in its dependency graph, has no entry.
type UnregisteredTypeError struct{ Identity string }

func (e *UnregisteredTypeError) Error() string {
	// Example: container: no entry registered for "user.repo"
	return "container: no entry registered for " + strconv.Quote(e.Identity)
}

// CyclicDependencyError is returned by Resolve when the dependency graph
// contains a cycle. Cycle lists the identities on the cycle, starting
// and ending with the identity that closed it.
type CyclicDependencyError struct{ Cycle []string }

func (e *CyclicDependencyError) Error() string {
	// Example: container: cyclic dependency "a" -> "b" -> "a"
	quoted := make([]string, len(e.Cycle))
	for i, id := range e.Cycle {
		quoted[i] = strconv.Quote(id)
	}
	return "container: cyclic dependency " + strings.Join(quoted, " -> ")
}

// WrongTypeError is returned by the generic Resolve helper when an
// identity resolves to a value of an unexpected type.
type WrongTypeError struct {
	Identity string
	Got      string
}

func (e *WrongTypeError) Error() string {
	// Example: container: "user.repo" resolved to unexpected type *main.Logger
	return "container: " + strconv.Quote(e.Identity) + " resolved to unexpected type " + e.Got
}
