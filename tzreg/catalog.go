package tzreg

import "sort"

// Catalog is an immutable, byte-order sorted set of zone identifiers.
type Catalog struct {
	names []string
	set   map[string]struct{}
}

// NewCatalog copies, sorts and de-duplicates names.
func NewCatalog(names []string) Catalog {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	c := Catalog{set: make(map[string]struct{}, len(sorted))}
	for _, n := range sorted {
		if n == "" {
			continue
		}
		if _, ok := c.set[n]; ok {
			continue
		}
		c.set[n] = struct{}{}
		c.names = append(c.names, n)
	}
	return c
}

// Names returns a copy of the identifiers in catalog order.
func (c Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of identifiers.
func (c Catalog) Len() int { return len(c.names) }

// Contains reports whether name is a member. Matching is case-sensitive.
func (c Catalog) Contains(name string) bool {
	_, ok := c.set[name]
	return ok
}
