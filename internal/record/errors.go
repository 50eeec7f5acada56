package record

import (
	"errors"
	"fmt"
)

// UnavailableError indicates the backing dataset file could not be opened or
// read. It is fatal for the current request; retry policy belongs to the
// caller.
type UnavailableError struct {
	Path string
	Err  error
}

func (e *UnavailableError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("record store unavailable: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("record store unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// IsUnavailable returns true if the error is a record-store availability
// failure. Uses errors.As to handle wrapped errors.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}
