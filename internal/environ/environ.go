// Package environ abstracts read access to process environment variables.
package environ

import "os"

// Env reads environment variables. Missing variables read as "".
type Env interface {
	Getenv(key string) string
}

// OS reads the real process environment.
type OS struct{}

// Getenv returns os.Getenv(key).
func (OS) Getenv(key string) string { return os.Getenv(key) }

// Map is a fixed environment, mostly useful in tests.
type Map map[string]string

// Getenv returns m[key].
func (m Map) Getenv(key string) string { return m[key] }
