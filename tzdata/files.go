package tzdata

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// dataFileHeader starts every data file of a tzdb release.
	dataFileHeader = "# tzdb data for"
	// backwardFile holds compatibility links and lacks dataFileHeader.
	backwardFile = "backward"
)

// ParsePath parses a single source file or, if path is a directory, every
// data file directly inside it. Within a directory, files are recognized
// by the "# tzdb data for" header line or the ".zi" extension and parsed
// in name order, together with the backward file of links.
func ParsePath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	if !info.IsDir() {
		return parseFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return File{}, fmt.Errorf("read dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var files []File
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		p := filepath.Join(path, e.Name())
		if filepath.Ext(p) != ".zi" && e.Name() != backwardFile {
			ok, err := hasDataHeader(p)
			if err != nil {
				return File{}, err
			}
			if !ok {
				continue
			}
		}
		f, err := parseFile(p)
		if err != nil {
			return File{}, err
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return File{}, fmt.Errorf("%s: no tzdb data files", path)
	}
	return Merge(files...), nil
}

func parseFile(path string) (File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer fd.Close()
	f, err := Parse(fd)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func hasDataHeader(path string) (bool, error) {
	fd, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer fd.Close()
	line, err := bufio.NewReader(fd).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	return strings.HasPrefix(line, dataFileHeader), nil
}
