// internal/domain/forecast/errors.go
package forecast

import (
	"errors"
	"fmt"
)

// ReasonUnavailable is the only failure reason surfaced to users.
const ReasonUnavailable = "unavailable"

// Provider-level failure classes.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrProviderMalformed   = errors.New("weather provider returned a malformed payload")
)

// Error is returned by the coordinator whenever a report cannot be produced.
type Error struct {
	Reason   string
	Location string
	Kind     Kind
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("forecast %s for %q: %s: %v", e.Kind, e.Location, e.Reason, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsUnavailable reports whether err is a coordinator Error with ReasonUnavailable.
func IsUnavailable(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Reason == ReasonUnavailable
}
