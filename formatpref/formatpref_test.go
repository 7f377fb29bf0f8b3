package formatpref

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/timedate/internal/clock"
	"github.com/ngrash/timedate/internal/environ"
	"github.com/ngrash/timedate/tzreg"
)

func TestDetect(t *testing.T) {
	now := clock.Fixed(time.Date(2024, time.January, 15, 14, 5, 9, 0, time.UTC))
	tests := []struct {
		name string
		env  environ.Map
		want bool
	}{
		{"empty", environ.Map{}, false},
		{"lang en_US", environ.Map{"LANG": "en_US.UTF-8"}, true},
		{"lang en_GB", environ.Map{"LANG": "en_GB.UTF-8"}, false},
		{"lang de_DE", environ.Map{"LANG": "de_DE.UTF-8"}, false},
		{"lang suffix US", environ.Map{"LANG": "es_US.UTF-8"}, false},
		{"lc_time US", environ.Map{"LC_TIME": "es_US.UTF-8"}, true},
		{"lc_time wins over lang", environ.Map{"LC_TIME": "en_US", "LANG": "de_DE"}, true},
		{"lc_time 24h, lang en_US", environ.Map{"LC_TIME": "de_DE", "LANG": "en_US"}, true},
		{"lowercase us", environ.Map{"LC_TIME": "en_us"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDetector(tt.env, now, tzreg.UTC).Detect()
			want := TimeFormatInfo{
				DetectedFormat: Label24h,
				Is12Hour:       tt.want,
				CurrentTime12h: "02:05:09 PM",
				CurrentTime24h: "14:05:09",
			}
			if tt.want {
				want.DetectedFormat = Label12h
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Detect() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDetect_LocalZone(t *testing.T) {
	now := clock.Fixed(time.Date(2024, time.January, 15, 14, 5, 9, 0, time.UTC))
	local := tzreg.Ambient(time.FixedZone("ABC", 9*3600))
	got := NewDetector(environ.Map{}, now, local).Detect()
	if got.CurrentTime24h != "23:05:09" || got.CurrentTime12h != "11:05:09 PM" {
		t.Errorf("Detect() = %+v, want times in the local zone", got)
	}
}
