// Package tzdata scans the source files of the IANA time zone database
// (https://www.iana.org/time-zones) for the names they define.
//
// Both the annotated distribution files (africa, europe, backward, ...) and
// the compact tzdata.zi form shipped with most zoneinfo installations are
// understood. Rule bodies and zone offsets are not interpreted; the scanner
// only tracks enough structure to tell zone, continuation, rule and link
// lines apart.
package tzdata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// File is the result of scanning one or more tzdb source files. Rule and
// continuation lines are checked but not kept.
type File struct {
	ZoneLines []ZoneLine
	LinkLines []LinkLine
}

// ZoneLine is the first line of a zone definition.
type ZoneLine struct {
	Name string
}

// LinkLine represents a link line.
//
//	Link  TARGET           LINK-NAME
//	Link  Europe/Istanbul  Asia/Istanbul
//
// The LINK-NAME is an alternative name for TARGET.
type LinkLine struct {
	From string // TARGET
	To   string // LINK-NAME
}

// parseError is an error that occurred during parsing.
// It contains the line number and the line where the error occurred.
type parseError struct {
	lineNumber int
	line       string
	err        error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.lineNumber, e.line, e.err)
}

func (e *parseError) Unwrap() error { return e.err }

// Parse scans r and returns the zone and link lines it contains.
// Leap and Expires lines of leap-second files are accepted and ignored.
func Parse(r io.Reader) (File, error) {
	var result File
	scanner := bufio.NewScanner(r)

	var (
		lineNumber           int
		continuationExpected bool
	)
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		fields := splitLine(line)
		if fields == nil {
			continue // comment or empty line
		}

		if continuationExpected && !isKeyword(fields[0]) {
			if len(fields) < 3 {
				return result, &parseError{lineNumber, line, fmt.Errorf("parse zone continuation: expected at least 3 fields, got %d", len(fields))}
			}
			// STDOFF RULES FORMAT [UNTIL]
			continuationExpected = len(fields) > 3
			continue
		}
		continuationExpected = false

		switch kw := strings.ToLower(fields[0]); {
		case kw == "leap" || kw == "expires":
			continue
		case isAbbrev(kw, "zone", "z"):
			zone, err := parseZoneLine(fields)
			if err != nil {
				return result, &parseError{lineNumber, line, fmt.Errorf("parse zone: %w", err)}
			}
			result.ZoneLines = append(result.ZoneLines, zone)
			// Zone NAME STDOFF RULES FORMAT [UNTIL]
			continuationExpected = len(fields) > 5
		case isAbbrev(kw, "rule", "r"):
			if len(fields) != 10 {
				return result, &parseError{lineNumber, line, fmt.Errorf("parse rule: expected 10 fields, got %d", len(fields))}
			}
		case isAbbrev(kw, "link", "l"):
			link, err := parseLinkLine(fields)
			if err != nil {
				return result, &parseError{lineNumber, line, fmt.Errorf("parse link: %w", err)}
			}
			result.LinkLines = append(result.LinkLines, link)
		default:
			return result, &parseError{lineNumber, line, errors.New("unexpected line")}
		}
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scanner: %w", err)
	}
	return result, nil
}

// Names returns the sorted, de-duplicated names of all zones and links.
func (f File) Names() []string {
	seen := make(map[string]bool, len(f.ZoneLines)+len(f.LinkLines))
	var names []string
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for _, z := range f.ZoneLines {
		add(z.Name)
	}
	for _, l := range f.LinkLines {
		add(l.To)
	}
	sort.Strings(names)
	return names
}

// Merge concatenates the lines of several files, e.g. all data files of a
// release.
func Merge(files ...File) File {
	var m File
	for _, f := range files {
		m.ZoneLines = append(m.ZoneLines, f.ZoneLines...)
		m.LinkLines = append(m.LinkLines, f.LinkLines...)
	}
	return m
}

func parseZoneLine(fields []string) (ZoneLine, error) {
	if len(fields) < 5 {
		return ZoneLine{}, fmt.Errorf("expected at least 5 fields, got %d", len(fields))
	}
	if len(fields) > 9 {
		return ZoneLine{}, fmt.Errorf("expected at most 9 fields, got %d", len(fields))
	}
	name, err := parseName(fields[1])
	if err != nil {
		return ZoneLine{}, fmt.Errorf("NAME %q: %w", fields[1], err)
	}
	return ZoneLine{Name: name}, nil
}

func parseLinkLine(fields []string) (LinkLine, error) {
	if len(fields) != 3 {
		return LinkLine{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	var (
		link LinkLine
		errs error
		err  error
	)
	if link.From, err = parseName(fields[1]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("TARGET %q: %w", fields[1], err))
	}
	if link.To, err = parseName(fields[2]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("LINK-NAME %q: %w", fields[2], err))
	}
	return link, errs
}

// parseName validates a zone or link name.
//
// The zic man page says:
//
//	It should not contain a file name component "." or "..";
//	a file name component is a maximal substring that does not
//	contain "/".
func parseName(s string) (string, error) {
	if len(s) == 0 {
		return "", errors.New("empty name")
	}
	for _, c := range strings.Split(s, "/") {
		if c == "" || c == "." || c == ".." {
			return "", fmt.Errorf("invalid file name component %q", c)
		}
	}
	return s, nil
}

// splitLine strips comments and returns the white-space separated fields of
// line, or nil if nothing is left.
func splitLine(line string) []string {
	if i := strings.Index(line, "#"); i != -1 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// isKeyword reports whether s starts a zone, rule, link, leap or expires line.
func isKeyword(s string) bool {
	l := strings.ToLower(s)
	return isAbbrev(l, "zone", "z") || isAbbrev(l, "rule", "r") || isAbbrev(l, "link", "l") ||
		l == "leap" || l == "expires"
}

// isAbbrev reports whether s abbreviates long and is at least as long as min.
func isAbbrev(s string, long string, min string) bool {
	return strings.HasPrefix(s, min) && strings.HasPrefix(long, s)
}
