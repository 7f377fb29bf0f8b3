package instant

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/timedate/internal/clock"
	"github.com/ngrash/timedate/tzreg"
)

var fixedNow = time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

func newYork(t *testing.T) tzreg.Zone {
	t.Helper()
	z, err := tzreg.Default().Resolve("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	return z
}

func TestParse(t *testing.T) {
	ny := newYork(t)
	p := NewParser(clock.Fixed(fixedNow))
	tests := []struct {
		text string
		ref  tzreg.Zone
		want time.Time
	}{
		{"now", tzreg.UTC, fixedNow},
		{"NOW", ny, fixedNow},
		{"2024-01-15T10:30:00Z", ny, time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15T10:30:00+02:00", tzreg.UTC, time.Date(2024, time.January, 15, 8, 30, 0, 0, time.UTC)},
		{"2024-01-15T10:30:00.25-05:00", tzreg.UTC, time.Date(2024, time.January, 15, 15, 30, 0, 250000000, time.UTC)},
		{"2024-01-15 10:30:00", tzreg.UTC, time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15 10:30:00", ny, time.Date(2024, time.January, 15, 15, 30, 0, 0, time.UTC)},
		{"2024-07-15 10:30:00", ny, time.Date(2024, time.July, 15, 14, 30, 0, 0, time.UTC)},
		{"2024-07-01", ny, time.Date(2024, time.July, 1, 4, 0, 0, 0, time.UTC)},
		{"2024-07-01", tzreg.Zone{}, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := p.Parse(tt.text, tt.ref)
		if err != nil {
			t.Errorf("Parse(%q, %v) error: %v", tt.text, tt.ref, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q, %v) = %v, want %v", tt.text, tt.ref, got, tt.want)
		}
		if got.Location() != time.UTC {
			t.Errorf("Parse(%q, %v) location = %v, want UTC", tt.text, tt.ref, got.Location())
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	p := NewParser(clock.Fixed(fixedNow))
	for _, text := range []string{"", "not-a-date", "tomorrow", "2024-13-01", "2024-01-15T10:30:00", "15/01/2024", " now"} {
		_, err := p.Parse(text, tzreg.UTC)
		if !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidTimeFormat", text, err)
			continue
		}
		var ferr *InvalidTimeFormatError
		if !errors.As(err, &ferr) || ferr.Text != text {
			t.Errorf("Parse(%q) error = %#v, want text carried", text, err)
		}
	}
}

func TestParse_BaseGrammarsRejectDate(t *testing.T) {
	p := NewParser(clock.Fixed(fixedNow), BaseGrammars...)
	if _, err := p.Parse("2024-07-01", tzreg.UTC); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("Parse(bare date) error = %v, want ErrInvalidTimeFormat", err)
	}
	if _, err := p.Parse("2024-07-01 00:00:00", tzreg.UTC); err != nil {
		t.Errorf("Parse(date time) error: %v", err)
	}
}

func TestParse_Order(t *testing.T) {
	// RFC3339 before DateTime: an explicit offset wins over the reference zone.
	p := NewParser(clock.Fixed(fixedNow), DateTime, RFC3339)
	got, err := p.Parse("2024-01-15T10:30:00Z", newYork(t))
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestNewParser_Defaults(t *testing.T) {
	p := NewParser(nil)
	if diff := cmp.Diff(FullGrammars, p.Grammars()); diff != "" {
		t.Errorf("Grammars() mismatch (-want +got):\n%s", diff)
	}
	before := time.Now()
	got, err := p.Parse("now", tzreg.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if got.Before(before.Add(-time.Second)) || got.After(time.Now().Add(time.Second)) {
		t.Errorf("Parse(now) = %v, not close to the system clock", got)
	}
}

func TestGrammar_String(t *testing.T) {
	for g, want := range map[Grammar]string{Now: "now", RFC3339: "rfc3339", DateTime: "datetime", DateOnly: "date", Grammar(7): "Grammar(7)"} {
		if got := g.String(); got != want {
			t.Errorf("Grammar.String() = %q, want %q", got, want)
		}
	}
}
