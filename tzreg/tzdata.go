package tzreg

import (
	"time"

	"github.com/ngrash/timedate/tzdata"
)

type tzdataSource struct {
	names []string
}

// FromTZData returns a source offering the names of every Zone and Link line
// in f. Locations are loaded with time.LoadLocation.
func FromTZData(f tzdata.File) Source {
	return tzdataSource{names: f.Names()}
}

func (s tzdataSource) Names() []string { return s.names }

func (tzdataSource) Load(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}
