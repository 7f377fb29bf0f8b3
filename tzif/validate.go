package tzif

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of RFC 8536 section 3 that a
// reader relies on. All violations are reported together.
func Validate(d Data) error {
	var errs []error
	if d.Version != d.V1Header.Version {
		errs = append(errs, fmt.Errorf("inconsistent version: file = %v, v1 header = %v", d.Version, d.V1Header.Version))
	}
	errs = append(errs, validateBlock("v1", d.V1Header, d.V1Data)...)
	if d.Version > V1 {
		if d.V2Header.Version != d.Version {
			errs = append(errs, fmt.Errorf("inconsistent version: file = %v, v2 header = %v", d.Version, d.V2Header.Version))
		}
		errs = append(errs, validateBlock("v2", d.V2Header, d.V2Data)...)
	}
	return errors.Join(errs...)
}

func validateBlock(v string, h Header, b DataBlock) []error {
	var err []error

	if h.Isutcnt != 0 && h.Isutcnt != h.Typecnt {
		err = append(err, fmt.Errorf("invalid %s isutcnt (%d): must be 0 or equal to typecnt (%d)", v, h.Isutcnt, h.Typecnt))
	}
	if h.Isstdcnt != 0 && h.Isstdcnt != h.Typecnt {
		err = append(err, fmt.Errorf("invalid %s isstdcnt (%d): must be 0 or equal to typecnt (%d)", v, h.Isstdcnt, h.Typecnt))
	}
	if h.Typecnt == 0 {
		err = append(err, fmt.Errorf("invalid %s typecnt: must not be zero", v))
	}
	if h.Charcnt == 0 {
		err = append(err, fmt.Errorf("invalid %s charcnt: must not be zero", v))
	}

	if times, types := len(b.TransitionTimes), len(b.TransitionTypes); times != types {
		err = append(err, fmt.Errorf("inconsistent %s transitions: transition times = %d, transition types = %d", v, times, types))
	}
	for i := 1; i < len(b.TransitionTimes); i++ {
		if b.TransitionTimes[i] <= b.TransitionTimes[i-1] {
			err = append(err, fmt.Errorf("invalid %s transition time %d: not in strictly ascending order", v, i))
			break
		}
	}
	for i, t := range b.TransitionTypes {
		if int(t) >= len(b.LocalTimeTypeRecords) {
			err = append(err, fmt.Errorf("invalid %s transition type %d: index %d out of range", v, i, t))
		}
	}

	n := len(b.TimeZoneDesignation)
	if n > 0 && b.TimeZoneDesignation[n-1] != 0 {
		err = append(err, fmt.Errorf("invalid %s time zone designations: missing null terminator", v))
	}
	for i, r := range b.LocalTimeTypeRecords {
		if r.Utoff == -1<<31 {
			err = append(err, fmt.Errorf("invalid %s local time type %d: utoff must not be -2**31", v, i))
		}
		if int(r.Idx) >= n {
			err = append(err, fmt.Errorf("invalid %s local time type %d: designation index %d out of range", v, i, r.Idx))
		}
	}
	return err
}
