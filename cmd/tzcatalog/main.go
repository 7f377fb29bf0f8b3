// Command tzcatalog generates the zone catalog compiled into package tzreg.
//
// Without -src the latest release is downloaded from IANA. With -check the
// generated names are compared against the compiled catalog and the
// difference is printed; the exit status is 1 if they differ.
package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/timedate/tzdata"
	"github.com/ngrash/timedate/tzdb/ianadist"
	"github.com/ngrash/timedate/tzreg"
)

var (
	srcFlag     = flag.String("src", "", "tzdb source file or directory (default: download the latest release)")
	outFlag     = flag.String("o", "", "output file (default: stdout)")
	pkgFlag     = flag.String("pkg", "tzreg", "package name of the generated file")
	versionFlag = flag.String("version", "", "release version written to the file (default: detected)")
	checkFlag   = flag.Bool("check", false, "compare against the compiled catalog instead of writing a file")
)

// errDrift signals that -check found differences.
var errDrift = errors.New("catalog differs from compiled catalog")

func main() {
	flag.Parse()
	if err := run(os.Stdout); err != nil {
		if !errors.Is(err, errDrift) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(stdout io.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	names, version, err := load(ctx, *srcFlag)
	if err != nil {
		return err
	}
	if *versionFlag != "" {
		version = *versionFlag
	}

	if *checkFlag {
		return check(stdout, names, version)
	}

	src, err := generate(*pkgFlag, version, names)
	if err != nil {
		return err
	}
	if *outFlag == "" {
		_, err = stdout.Write(src)
		return err
	}
	return os.WriteFile(*outFlag, src, 0o644)
}

// load returns the sorted zone names and the release version of src.
func load(ctx context.Context, src string) ([]string, string, error) {
	if src == "" {
		release, _, err := ianadist.Latest(ctx, "")
		if err != nil {
			return nil, "", fmt.Errorf("download latest release: %w", err)
		}
		f, err := release.Parse()
		if err != nil {
			return nil, "", err
		}
		return f.Names(), release.Version, nil
	}

	f, err := tzdata.ParsePath(src)
	if err != nil {
		return nil, "", err
	}
	return f.Names(), detectVersion(src), nil
}

// detectVersion reads the version file of a release directory or the
// "# version" line heading a tzdata.zi file.
func detectVersion(src string) string {
	if info, err := os.Stat(src); err == nil && info.IsDir() {
		if v, err := os.ReadFile(filepath.Join(src, "version")); err == nil {
			return strings.TrimSpace(string(v))
		}
		return "unknown"
	}
	fd, err := os.Open(src)
	if err != nil {
		return "unknown"
	}
	defer fd.Close()
	line, _ := bufio.NewReader(fd).ReadString('\n')
	if v, ok := strings.CutPrefix(strings.TrimSpace(line), "# version "); ok {
		return strings.TrimSpace(v)
	}
	return "unknown"
}

func check(stdout io.Writer, names []string, version string) error {
	compiled := tzreg.Compiled().Names()
	if diff := cmp.Diff(compiled, names); diff != "" {
		fmt.Fprintf(stdout, "catalog %s differs from compiled catalog %s (-compiled +%s):\n%s",
			version, tzreg.CompiledVersion(), version, diff)
		return errDrift
	}
	fmt.Fprintf(stdout, "catalog %s matches compiled catalog %s (%d names)\n", version, tzreg.CompiledVersion(), len(names))
	return nil
}

var catalogTemplate = template.Must(template.New("catalog").Parse(`// Code generated by tzcatalog from tzdata {{.Version}}; DO NOT EDIT.

package {{.Package}}

// compiledVersion is the tzdb release the compiled catalog was generated from.
const compiledVersion = {{printf "%q" .Version}}

// compiledNames lists every zone and link name of the release in byte order.
var compiledNames = []string{
{{- range .Names}}
	{{printf "%q" .}},
{{- end}}
}
`))

func generate(pkg, version string, names []string) ([]byte, error) {
	var buf bytes.Buffer
	err := catalogTemplate.Execute(&buf, struct {
		Package string
		Version string
		Names   []string
	}{pkg, version, names})
	if err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}
