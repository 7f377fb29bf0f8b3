package timequery

import "errors"

var (
	// ErrInvalidSourceTimezone is returned by Convert when the source zone
	// does not resolve. The registry error is wrapped as well, so
	// errors.Is(err, tzreg.ErrUnknownTimezone) also holds.
	ErrInvalidSourceTimezone = errors.New("invalid source timezone")
	// ErrInvalidTargetTimezone is the target zone counterpart of
	// ErrInvalidSourceTimezone.
	ErrInvalidTargetTimezone = errors.New("invalid target timezone")
)
