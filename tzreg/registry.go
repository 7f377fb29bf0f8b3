// Package tzreg maps textual zone identifiers to the rules needed to project
// instants onto civil times.
//
// A Registry is built once from a Source and is safe for concurrent use.
// Three sources are provided: the catalog compiled into the binary, the
// names found in tzdb source files and a zoneinfo directory of TZif files.
package tzreg

import (
	"strings"
	"time"
)

//go:generate go run ../cmd/tzcatalog -o catalog_gen.go -pkg tzreg

// DefaultListLimit is the number of names returned by Enumerate unless
// WithListLimit says otherwise.
const DefaultListLimit = 50

// Source provides zone names and loads their locations.
type Source interface {
	// Names returns every identifier the source can load.
	Names() []string
	// Load returns the location for one of the identifiers returned by Names.
	Load(name string) (*time.Location, error)
}

// Registry resolves identifiers against an immutable catalog.
type Registry struct {
	src       Source
	catalog   Catalog
	listLimit int
}

// Option configures a Registry.
type Option func(*Registry)

// WithListLimit sets the maximum number of names returned by Enumerate.
// Values below 1 are ignored.
func WithListLimit(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.listLimit = n
		}
	}
}

// NewRegistry builds the catalog of src.
func NewRegistry(src Source, opts ...Option) *Registry {
	r := &Registry{
		src:       src,
		catalog:   NewCatalog(src.Names()),
		listLimit: DefaultListLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default returns a registry over the compiled catalog.
func Default() *Registry {
	return NewRegistry(Compiled())
}

// Catalog returns the catalog of r.
func (r *Registry) Catalog() Catalog { return r.catalog }

// ListLimit returns the maximum length of Enumerate results.
func (r *Registry) ListLimit() int { return r.listLimit }

// Resolve returns the zone named name.
//
// The empty string and "UTC" always yield UTC. Every other name must be an
// exact member of the catalog.
func (r *Registry) Resolve(name string) (Zone, error) {
	if name == "" || name == "UTC" {
		return UTC, nil
	}
	if !r.catalog.Contains(name) {
		return Zone{}, &UnknownTimezoneError{Name: name}
	}
	loc, err := r.src.Load(name)
	if err != nil {
		return Zone{}, &UnknownTimezoneError{Name: name, Err: err}
	}
	return databaseZone(name, loc), nil
}

// Enumerate returns catalog names containing filter, ignoring case, in
// catalog order and truncated to the list limit. An empty filter matches
// every name.
func (r *Registry) Enumerate(filter string) []string {
	needle := strings.ToLower(filter)
	out := make([]string, 0, r.listLimit)
	for _, n := range r.catalog.names {
		if len(out) == r.listLimit {
			break
		}
		if needle == "" || strings.Contains(strings.ToLower(n), needle) {
			out = append(out, n)
		}
	}
	return out
}
