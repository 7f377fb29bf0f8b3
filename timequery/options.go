package timequery

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ngrash/timedate/internal/clock"
	"github.com/ngrash/timedate/internal/environ"
)

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the system clock.
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clk = c
		}
	}
}

// WithEnv replaces the process environment.
func WithEnv(e environ.Env) Option {
	return func(s *Service) {
		if e != nil {
			s.env = e
		}
	}
}

// WithLocal sets the ambient location; time.Local by default.
func WithLocal(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.local = loc
		}
	}
}

// WithLogger sets the logger used for per-call debug records.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}
