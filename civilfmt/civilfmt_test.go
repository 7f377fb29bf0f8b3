package civilfmt

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/timedate/tzreg"
)

func resolve(t *testing.T, name string) tzreg.Zone {
	t.Helper()
	z, err := tzreg.Default().Resolve(name)
	if err != nil {
		t.Fatal(err)
	}
	return z
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		zone string
		want TimeInfo
	}{
		{
			name: "utc",
			t:    time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC),
			zone: "UTC",
			want: TimeInfo{
				Timestamp: "2024-01-15T10:30:00+00:00",
				Timezone:  "UTC",
				UTCOffset: "+0000",
				Format12h: "10:30:00 AM",
				Format24h: "10:30:00",
			},
		},
		{
			name: "new york summer midnight",
			t:    time.Date(2024, time.July, 1, 4, 0, 0, 0, time.UTC),
			zone: "America/New_York",
			want: TimeInfo{
				Timestamp: "2024-07-01T00:00:00-04:00",
				Timezone:  "EDT",
				UTCOffset: "-0400",
				Format12h: "12:00:00 AM",
				Format24h: "00:00:00",
			},
		},
		{
			name: "half hour offset with fraction",
			t:    time.Date(2024, time.January, 15, 13, 0, 0, 500000000, time.UTC),
			zone: "Asia/Kolkata",
			want: TimeInfo{
				Timestamp: "2024-01-15T18:30:00.5+05:30",
				Timezone:  "IST",
				UTCOffset: "+0530",
				Format12h: "06:30:00 PM",
				Format24h: "18:30:00",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.t, resolve(t, tt.zone))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormat_ZeroZone(t *testing.T) {
	got := Format(time.Date(2024, time.January, 15, 23, 5, 6, 0, time.UTC), tzreg.Zone{})
	if got.Timezone != "UTC" || got.Timestamp != "2024-01-15T23:05:06+00:00" || got.Format12h != "11:05:06 PM" {
		t.Errorf("Format(zero zone) = %+v", got)
	}
}

func TestFormat_TimestampRoundTrips(t *testing.T) {
	at := time.Date(2024, time.November, 3, 5, 59, 59, 999, time.UTC)
	for _, name := range []string{"UTC", "Europe/Berlin", "Australia/Adelaide", "Pacific/Chatham"} {
		info := Format(at, resolve(t, name))
		back, err := time.Parse(time.RFC3339Nano, info.Timestamp)
		if err != nil {
			t.Errorf("%s: time.Parse(%q) error: %v", name, info.Timestamp, err)
			continue
		}
		if !back.Equal(at) {
			t.Errorf("%s: %q parses to %v, want %v", name, info.Timestamp, back, at)
		}
	}
}

func TestFormatLocal(t *testing.T) {
	at := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)
	if got, want := FormatLocal(at, resolve(t, "Europe/Berlin")), "2024-01-15 11:30:00 CET"; got != want {
		t.Errorf("FormatLocal() = %q, want %q", got, want)
	}
	if got, want := Offset(at, resolve(t, "Europe/Berlin")), "+0100"; got != want {
		t.Errorf("Offset() = %q, want %q", got, want)
	}
	loc := time.FixedZone("XYZ", -3*3600)
	if got, want := FormatLocal(at, tzreg.Ambient(loc)), "2024-01-15 07:30:00 XYZ"; got != want {
		t.Errorf("FormatLocal(ambient) = %q, want %q", got, want)
	}
}
