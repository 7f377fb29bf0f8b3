package tzreg

import "time"

// Kind tells how a Zone was obtained.
type Kind uint8

const (
	// KindUTC is the fixed zero-offset zone. It never touches the database.
	KindUTC Kind = iota
	// KindDatabase is a zone resolved from the catalog.
	KindDatabase
	// KindAmbient is the process' local zone.
	KindAmbient
)

func (k Kind) String() string {
	switch k {
	case KindUTC:
		return "utc"
	case KindDatabase:
		return "database"
	case KindAmbient:
		return "ambient"
	default:
		return "unknown"
	}
}

// Zone identifies the rules used to project an instant onto a civil time.
// The zero Zone is UTC.
type Zone struct {
	kind Kind
	name string
	loc  *time.Location
}

// UTC is the fixed zero-offset zone.
var UTC = Zone{kind: KindUTC, name: "UTC", loc: time.UTC}

// Ambient returns the zone for the process' local location. A nil loc
// means time.Local.
func Ambient(loc *time.Location) Zone {
	if loc == nil {
		loc = time.Local
	}
	return Zone{kind: KindAmbient, name: loc.String(), loc: loc}
}

func databaseZone(name string, loc *time.Location) Zone {
	return Zone{kind: KindDatabase, name: name, loc: loc}
}

// Kind returns how z was obtained.
func (z Zone) Kind() Kind { return z.kind }

// Name returns the catalog name of z, "UTC" for the fixed zone and the
// location name for the ambient zone.
func (z Zone) Name() string {
	if z.kind == KindUTC {
		return "UTC"
	}
	return z.name
}

// Location returns the location used for projections.
func (z Zone) Location() *time.Location {
	if z.loc == nil {
		return time.UTC
	}
	return z.loc
}

func (z Zone) String() string { return z.Name() }
