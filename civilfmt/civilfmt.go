// Package civilfmt renders instants as civil times in a zone.
package civilfmt

import (
	"time"

	"github.com/ngrash/timedate/tzreg"
)

const (
	// TimestampLayout is RFC 3339 with optional fractional seconds and a
	// numeric offset, also for UTC.
	TimestampLayout = "2006-01-02T15:04:05.999999999-07:00"
	// OffsetLayout renders the UTC offset as ±HHMM.
	OffsetLayout = "-0700"
	// Layout12h is the twelve-hour clock with meridiem.
	Layout12h = "03:04:05 PM"
	// Layout24h is the twenty-four-hour clock.
	Layout24h = "15:04:05"
	// LocalLayout is used for the ambient zone description.
	LocalLayout = "2006-01-02 15:04:05 MST"
)

// TimeInfo describes an instant as seen in one zone. IsDST is always false;
// daylight saving time is not derived.
type TimeInfo struct {
	Timestamp string `json:"timestamp"`
	Timezone  string `json:"timezone"`
	UTCOffset string `json:"utc_offset"`
	IsDST     bool   `json:"is_dst"`
	Format12h string `json:"format_12h"`
	Format24h string `json:"format_24h"`
}

// Format projects t onto z.
func Format(t time.Time, z tzreg.Zone) TimeInfo {
	ct := t.In(z.Location())
	abbr, _ := ct.Zone()
	if z.Kind() == tzreg.KindUTC {
		abbr = "UTC"
	}
	return TimeInfo{
		Timestamp: ct.Format(TimestampLayout),
		Timezone:  abbr,
		UTCOffset: ct.Format(OffsetLayout),
		IsDST:     false,
		Format12h: ct.Format(Layout12h),
		Format24h: ct.Format(Layout24h),
	}
}

// FormatLocal renders t in z with date, time and zone abbreviation.
func FormatLocal(t time.Time, z tzreg.Zone) string {
	return t.In(z.Location()).Format(LocalLayout)
}

// Offset renders the UTC offset of z at t.
func Offset(t time.Time, z tzreg.Zone) string {
	return t.In(z.Location()).Format(OffsetLayout)
}
