// Package timequery answers civil-time queries: the current time in a zone,
// the time a text denotes, hour offsets, conversions between zones, the
// ambient zone, the preferred clock format and the zone catalog.
//
// A Service holds only immutable state and is safe for concurrent use.
package timequery

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ngrash/timedate/civilfmt"
	"github.com/ngrash/timedate/formatpref"
	"github.com/ngrash/timedate/instant"
	"github.com/ngrash/timedate/internal/clock"
	"github.com/ngrash/timedate/internal/environ"
	"github.com/ngrash/timedate/tzreg"
)

// TimezoneInfo describes the ambient zone.
type TimezoneInfo struct {
	Name        string `json:"name"`
	CurrentTime string `json:"current_time"`
	UTCOffset   string `json:"utc_offset"`
	IsDST       bool   `json:"is_dst"`
}

// Service is the query facade.
type Service struct {
	reg   *tzreg.Registry
	clk   clock.Clock
	env   environ.Env
	local *time.Location
	log   zerolog.Logger

	// ambient and ambientName describe the process' zone, see
	// AmbientTimezoneInfo.
	ambient     tzreg.Zone
	ambientName string

	full     *instant.Parser
	base     *instant.Parser
	detector *formatpref.Detector
}

// New returns a service resolving zones with reg. A nil reg means
// tzreg.Default().
func New(reg *tzreg.Registry, opts ...Option) *Service {
	if reg == nil {
		reg = tzreg.Default()
	}
	s := &Service{
		reg:   reg,
		clk:   clock.System{},
		env:   environ.OS{},
		local: time.Local,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ambient, s.ambientName = s.resolveAmbient()
	s.full = instant.NewParser(s.clk, instant.FullGrammars...)
	s.base = instant.NewParser(s.clk, instant.BaseGrammars...)
	s.detector = formatpref.NewDetector(s.env, s.clk, s.ambient)
	return s
}

// resolveAmbient returns the zone named by TZ if it is in the catalog and
// the ambient location otherwise.
func (s *Service) resolveAmbient() (tzreg.Zone, string) {
	if tz := strings.TrimPrefix(s.env.Getenv("TZ"), ":"); tz != "" {
		if z, err := s.reg.Resolve(tz); err == nil {
			return z, tz
		}
	}
	return tzreg.Ambient(s.local), s.local.String()
}

// Registry returns the registry used by s.
func (s *Service) Registry() *tzreg.Registry { return s.reg }

// CurrentTime returns the current instant in zone; "" means UTC.
func (s *Service) CurrentTime(zone string) (civilfmt.TimeInfo, error) {
	z, err := s.reg.Resolve(zone)
	if err != nil {
		s.log.Debug().Str("op", "current_time").Str("timezone", zone).Err(err).Msg("query failed")
		return civilfmt.TimeInfo{}, err
	}
	info := civilfmt.Format(s.clk.Now(), z)
	s.log.Debug().Str("op", "current_time").Str("timezone", z.Name()).Str("timestamp", info.Timestamp).Msg("query")
	return info, nil
}

// TimeAt returns the instant text denotes, shown in zone. Text without an
// offset is read as civil time in zone; a bare date means midnight.
func (s *Service) TimeAt(text, zone string) (civilfmt.TimeInfo, error) {
	ev := s.log.Debug().Str("op", "time_at").Str("date_time", text).Str("timezone", zone)
	z, err := s.reg.Resolve(zone)
	if err != nil {
		ev.Err(err).Msg("query failed")
		return civilfmt.TimeInfo{}, err
	}
	t, err := s.full.Parse(text, z)
	if err != nil {
		ev.Err(err).Msg("query failed")
		return civilfmt.TimeInfo{}, err
	}
	info := civilfmt.Format(t, z)
	ev.Str("timestamp", info.Timestamp).Msg("query")
	return info, nil
}

// Offset shifts the instant base denotes by hours and shows the result in
// zone. Bare dates are not accepted.
func (s *Service) Offset(base string, hours int32, zone string) (civilfmt.TimeInfo, error) {
	ev := s.log.Debug().Str("op", "time_offset").Str("base_time", base).Int32("offset_hours", hours).Str("timezone", zone)
	z, err := s.reg.Resolve(zone)
	if err != nil {
		ev.Err(err).Msg("query failed")
		return civilfmt.TimeInfo{}, err
	}
	t, err := s.base.Parse(base, z)
	if err != nil {
		ev.Err(err).Msg("query failed")
		return civilfmt.TimeInfo{}, err
	}
	info := civilfmt.Format(instant.AddHours(t, hours), z)
	ev.Str("timestamp", info.Timestamp).Msg("query")
	return info, nil
}

// Convert reads text as civil time in from and shows the same instant in
// to. The source zone is checked before the target zone. Bare dates are not
// accepted.
func (s *Service) Convert(text, from, to string) (civilfmt.TimeInfo, error) {
	ev := s.log.Debug().Str("op", "convert").Str("time", text).Str("from_timezone", from).Str("to_timezone", to)
	src, err := s.reg.Resolve(from)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidSourceTimezone, err)
		ev.Err(err).Msg("query failed")
		return civilfmt.TimeInfo{}, err
	}
	dst, err := s.reg.Resolve(to)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidTargetTimezone, err)
		ev.Err(err).Msg("query failed")
		return civilfmt.TimeInfo{}, err
	}
	t, err := s.base.Parse(text, src)
	if err != nil {
		ev.Err(err).Msg("query failed")
		return civilfmt.TimeInfo{}, err
	}
	info := civilfmt.Format(t, dst)
	ev.Str("timestamp", info.Timestamp).Msg("query")
	return info, nil
}

// AmbientTimezoneInfo describes the process' zone. If the TZ environment
// variable names a catalog zone, that zone and name are used. Otherwise
// the ambient location is described under its own name, "Local" for the
// system zone. TZ is read once, when the service is created.
func (s *Service) AmbientTimezoneInfo() TimezoneInfo {
	now := s.clk.Now()
	info := TimezoneInfo{
		Name:        s.ambientName,
		CurrentTime: civilfmt.FormatLocal(now, s.ambient),
		UTCOffset:   civilfmt.Offset(now, s.ambient),
		IsDST:       false,
	}
	s.log.Debug().Str("op", "timezone_info").Str("name", info.Name).Str("utc_offset", info.UTCOffset).Msg("query")
	return info
}

// FormatPreference reports the preferred clock format and the current
// time in both renderings, shown in the zone AmbientTimezoneInfo describes.
func (s *Service) FormatPreference() formatpref.TimeFormatInfo {
	info := s.detector.Detect()
	s.log.Debug().Str("op", "time_format").Str("detected_format", info.DetectedFormat).Msg("query")
	return info
}

// ListTimezones returns catalog names containing filter, ignoring case,
// limited to the registry's list limit.
func (s *Service) ListTimezones(filter string) []string {
	names := s.reg.Enumerate(filter)
	s.log.Debug().Str("op", "list_timezones").Str("filter", filter).Int("count", len(names)).Msg("query")
	return names
}
