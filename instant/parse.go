// Package instant turns text into instants and shifts instants by whole
// hours.
package instant

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ngrash/timedate/internal/clock"
	"github.com/ngrash/timedate/tzreg"
)

// Grammar is one accepted textual form of an instant.
type Grammar int

const (
	// Now is the case-insensitive literal "now".
	Now Grammar = iota
	// RFC3339 is a full timestamp with offset, e.g. 2024-07-01T12:00:00+02:00.
	RFC3339
	// DateTime is "2006-01-02 15:04:05" interpreted in the reference zone.
	DateTime
	// DateOnly is "2006-01-02", midnight in the reference zone.
	DateOnly
)

func (g Grammar) String() string {
	switch g {
	case Now:
		return "now"
	case RFC3339:
		return "rfc3339"
	case DateTime:
		return "datetime"
	case DateOnly:
		return "date"
	default:
		return fmt.Sprintf("Grammar(%d)", int(g))
	}
}

var (
	// FullGrammars is the chain used for point-in-time lookups.
	FullGrammars = []Grammar{Now, RFC3339, DateTime, DateOnly}
	// BaseGrammars is the chain used for arithmetic and conversion.
	BaseGrammars = []Grammar{Now, RFC3339, DateTime}
)

// ErrInvalidTimeFormat matches every *InvalidTimeFormatError.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// InvalidTimeFormatError is returned when no grammar accepts the text.
type InvalidTimeFormatError struct {
	Text string
}

func (e *InvalidTimeFormatError) Error() string {
	return fmt.Sprintf("invalid time format: %q", e.Text)
}

func (e *InvalidTimeFormatError) Is(target error) bool { return target == ErrInvalidTimeFormat }

// Parser tries an ordered list of grammars.
type Parser struct {
	clk      clock.Clock
	grammars []Grammar
}

// NewParser returns a parser trying grammars in order. Without grammars it
// uses FullGrammars. A nil clk means clock.System.
func NewParser(clk clock.Clock, grammars ...Grammar) *Parser {
	if clk == nil {
		clk = clock.System{}
	}
	if len(grammars) == 0 {
		grammars = FullGrammars
	}
	g := make([]Grammar, len(grammars))
	copy(g, grammars)
	return &Parser{clk: clk, grammars: g}
}

// Grammars returns the chain of p.
func (p *Parser) Grammars() []Grammar {
	out := make([]Grammar, len(p.grammars))
	copy(out, p.grammars)
	return out
}

// Parse returns the instant text denotes, in UTC. Grammars without an
// explicit offset read the civil time in ref.
func (p *Parser) Parse(text string, ref tzreg.Zone) (time.Time, error) {
	for _, g := range p.grammars {
		if t, ok := p.try(g, text, ref.Location()); ok {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &InvalidTimeFormatError{Text: text}
}

func (p *Parser) try(g Grammar, text string, loc *time.Location) (time.Time, bool) {
	var (
		t   time.Time
		err error
	)
	switch g {
	case Now:
		if !strings.EqualFold(text, "now") {
			return time.Time{}, false
		}
		return p.clk.Now(), true
	case RFC3339:
		t, err = time.Parse(time.RFC3339, text)
	case DateTime:
		t, err = time.ParseInLocation(time.DateTime, text, loc)
	case DateOnly:
		t, err = time.ParseInLocation(time.DateOnly, text, loc)
	default:
		return time.Time{}, false
	}
	return t, err == nil
}
