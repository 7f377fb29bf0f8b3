package tzreg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ngrash/timedate/tzif"
)

// zoneinfoSkip lists top-level entries of a zoneinfo tree that are not
// zones of their own.
var zoneinfoSkip = map[string]bool{
	"posix":      true,
	"right":      true,
	"localtime":  true,
	"posixrules": true,
}

type zoneinfoSource struct {
	names []string
	locs  map[string]*time.Location
}

// FromZoneinfoDir reads every TZif file below dir, validates it and builds
// its location. Files without the TZif magic are skipped; files that have
// it but fail to decode or validate are an error. Symbolic links to regular
// files inside dir are registered under the link's own name, as link names
// are installed on many systems. All locations are built before
// FromZoneinfoDir returns.
func FromZoneinfoDir(ctx context.Context, dir string) (Source, error) {
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if zoneinfoSkip[rel] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		switch {
		case d.Type().IsRegular():
			paths = append(paths, rel)
		case d.Type()&fs.ModeSymlink != 0:
			ok, err := linksToFileIn(root, path)
			if err != nil {
				return err
			}
			if ok {
				paths = append(paths, rel)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	locs := make([]*time.Location, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, rel := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			loc, err := loadTZif(filepath.Join(root, rel), filepath.ToSlash(rel))
			if err != nil {
				return err
			}
			locs[i] = loc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	src := zoneinfoSource{locs: make(map[string]*time.Location, len(paths))}
	for i, rel := range paths {
		if locs[i] == nil {
			continue
		}
		name := filepath.ToSlash(rel)
		src.names = append(src.names, name)
		src.locs[name] = locs[i]
	}
	return src, nil
}

// linksToFileIn reports whether the symbolic link at path resolves to a
// regular file below root. Dangling links and links leaving root are
// ignored.
func linksToFileIn(root, path string) (bool, error) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("resolve %s: %w", path, err)
	}
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, nil
	}
	info, err := os.Stat(target)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", target, err)
	}
	return info.Mode().IsRegular(), nil
}

// loadTZif returns a nil location and no error for files that are not TZif.
func loadTZif(path, name string) (*time.Location, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !bytes.HasPrefix(raw, tzif.Magic[:]) {
		return nil, nil
	}
	data, err := tzif.DecodeData(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := tzif.Validate(data); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	loc, err := time.LoadLocationFromTZData(name, raw)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return loc, nil
}

func (s zoneinfoSource) Names() []string { return s.names }

func (s zoneinfoSource) Load(name string) (*time.Location, error) {
	loc, ok := s.locs[name]
	if !ok {
		return nil, fmt.Errorf("no TZif file for %q", name)
	}
	return loc, nil
}
