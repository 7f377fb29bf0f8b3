package tzreg

import (
	"time"
	_ "time/tzdata" // embed the database so Compiled works without system files
)

type compiledSource struct{}

// Compiled returns the catalog generated into this package. Locations are
// loaded with time.LoadLocation, which falls back to the embedded database.
func Compiled() Source { return compiledSource{} }

// CompiledVersion returns the tzdb release the compiled catalog was built
// from.
func CompiledVersion() string { return compiledVersion }

func (compiledSource) Names() []string {
	names := make([]string, len(compiledNames))
	copy(names, compiledNames)
	return names
}

func (compiledSource) Load(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}
