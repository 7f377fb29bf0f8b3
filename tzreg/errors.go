package tzreg

import (
	"errors"
	"fmt"
)

// ErrUnknownTimezone matches every *UnknownTimezoneError.
var ErrUnknownTimezone = errors.New("unknown timezone")

// UnknownTimezoneError is returned by Resolve for names that are not in the
// catalog or whose location could not be loaded.
type UnknownTimezoneError struct {
	Name string
	// Err is the load failure for catalog members; nil otherwise.
	Err error
}

func (e *UnknownTimezoneError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unknown timezone %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("unknown timezone %q", e.Name)
}

func (e *UnknownTimezoneError) Is(target error) bool { return target == ErrUnknownTimezone }

func (e *UnknownTimezoneError) Unwrap() error { return e.Err }
