package selector

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a requested target name matched no record.
// A request for a missing entity must fail loudly; the engine never answers
// it with an empty-but-valid graph.
type NotFoundError struct {
	// Kind is the entity level: "ministry", "project" or "recipient".
	Kind string

	// Name is the canonicalized target name that failed to match.
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Kind, e.Name)
}

// IsNotFound returns true if the error is a target-name lookup failure.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
