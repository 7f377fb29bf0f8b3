// Package formatpref guesses whether the user prefers a 12-hour or 24-hour
// clock from the locale environment variables.
package formatpref

import (
	"strings"

	"github.com/ngrash/timedate/civilfmt"
	"github.com/ngrash/timedate/internal/clock"
	"github.com/ngrash/timedate/internal/environ"
	"github.com/ngrash/timedate/tzreg"
)

// Labels reported in TimeFormatInfo.DetectedFormat.
const (
	Label12h = "12-hour"
	Label24h = "24-hour"
)

// TimeFormatInfo is the detected display preference together with the
// current time in both renderings.
type TimeFormatInfo struct {
	DetectedFormat string `json:"detected_format"`
	Is12Hour       bool   `json:"is_12_hour"`
	CurrentTime12h string `json:"current_time_12h"`
	CurrentTime24h string `json:"current_time_24h"`
}

// Detector inspects LC_TIME and LANG.
type Detector struct {
	env   environ.Env
	clk   clock.Clock
	local tzreg.Zone
}

// NewDetector returns a detector rendering the current time in local.
func NewDetector(env environ.Env, clk clock.Clock, local tzreg.Zone) *Detector {
	if env == nil {
		env = environ.OS{}
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &Detector{env: env, clk: clk, local: local}
}

// Is12Hour reports whether LC_TIME contains "US" or LANG starts with
// "en_US". Anything else, including an empty environment, means 24-hour.
func (d *Detector) Is12Hour() bool {
	return strings.Contains(d.env.Getenv("LC_TIME"), "US") ||
		strings.HasPrefix(d.env.Getenv("LANG"), "en_US")
}

// Detect returns the preference and the current time in the local zone.
func (d *Detector) Detect() TimeFormatInfo {
	info := civilfmt.Format(d.clk.Now(), d.local)
	is12 := d.Is12Hour()
	label := Label24h
	if is12 {
		label = Label12h
	}
	return TimeFormatInfo{
		DetectedFormat: label,
		Is12Hour:       is12,
		CurrentTime12h: info.Format12h,
		CurrentTime24h: info.Format24h,
	}
}
