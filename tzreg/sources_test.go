package tzreg

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/timedate/tzdata"
	"github.com/ngrash/timedate/tzif"
)

// fixedTZif returns a version 2 TZif file for a zone without transitions.
func fixedTZif(t *testing.T, abbr string, utoff int32) []byte {
	t.Helper()
	var buf bytes.Buffer
	desig := []byte(abbr + "\x00")
	h := tzif.Header{Version: tzif.V2, Typecnt: 1, Charcnt: uint32(len(desig))}
	for i := 0; i < 2; i++ {
		buf.Write(tzif.Magic[:])
		if err := binary.Write(&buf, binary.BigEndian, h); err != nil {
			t.Fatal(err)
		}
		if err := binary.Write(&buf, binary.BigEndian, tzif.LocalTimeTypeRecord{Utoff: utoff}); err != nil {
			t.Fatal(err)
		}
		buf.Write(desig)
	}
	buf.WriteString("\n" + abbr + "\n")
	return buf.Bytes()
}

func writeZoneinfo(t *testing.T, dir string, files map[string][]byte) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFromZoneinfoDir(t *testing.T) {
	dir := t.TempDir()
	writeZoneinfo(t, dir, map[string][]byte{
		"Etc/Test":          fixedTZif(t, "TST", 3600),
		"Test/Deep/Zone":    fixedTZif(t, "DZT", -7200),
		"Etc/GMT":           fixedTZif(t, "GMT", 0),
		"posix/Etc/Test":    fixedTZif(t, "TST", 3600),
		"right/Etc/Test":    fixedTZif(t, "TST", 3600),
		"localtime":         fixedTZif(t, "TST", 3600),
		"posixrules":        fixedTZif(t, "TST", 3600),
		"zone1970.tab":      []byte("# tzdb timezone descriptions\n"),
		"tzdata.zi":         []byte("# version 2025b\n"),
		"leap-seconds.list": []byte("#\n"),
	})

	src, err := FromZoneinfoDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("FromZoneinfoDir() error: %v", err)
	}
	r := NewRegistry(src)
	want := []string{"Etc/GMT", "Etc/Test", "Test/Deep/Zone"}
	if diff := cmp.Diff(want, r.Catalog().Names()); diff != "" {
		t.Errorf("Catalog().Names() mismatch (-want +got):\n%s", diff)
	}

	z, err := r.Resolve("Test/Deep/Zone")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	name, off := time.Unix(0, 0).In(z.Location()).Zone()
	if name != "DZT" || off != -7200 {
		t.Errorf("Zone() = %q, %d, want DZT, -7200", name, off)
	}

	if _, err := r.Resolve("America/New_York"); err == nil {
		t.Error("Resolve(America/New_York) succeeded on a catalog without it")
	}
	if _, err := src.Load("Nope"); err == nil {
		t.Error("Load(Nope) = nil error")
	}
}

func TestFromZoneinfoDir_Symlinks(t *testing.T) {
	dir := t.TempDir()
	writeZoneinfo(t, dir, map[string][]byte{
		"America/New_York": fixedTZif(t, "EST", -18000),
		"Etc/UTC":          fixedTZif(t, "UTC", 0),
	})
	outside := filepath.Join(t.TempDir(), "Outside")
	if err := os.WriteFile(outside, fixedTZif(t, "OUT", 3600), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, d := range []string{"US", "Asia"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	links := map[string]string{
		"US/Eastern":    filepath.Join("..", "America", "New_York"),
		"Universal":     filepath.Join(dir, "Etc", "UTC"),
		"Asia/Escape":   outside,
		"Asia/Dangling": filepath.Join("..", "Etc", "Nope"),
		"Etc/Dir":       filepath.Join("..", "America"),
	}
	for link, target := range links {
		if err := os.Symlink(target, filepath.Join(dir, filepath.FromSlash(link))); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}
	}

	src, err := FromZoneinfoDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("FromZoneinfoDir() error: %v", err)
	}
	r := NewRegistry(src)
	want := []string{"America/New_York", "Etc/UTC", "US/Eastern", "Universal"}
	if diff := cmp.Diff(want, r.Catalog().Names()); diff != "" {
		t.Errorf("Catalog().Names() mismatch (-want +got):\n%s", diff)
	}

	z, err := r.Resolve("US/Eastern")
	if err != nil {
		t.Fatalf("Resolve(US/Eastern) error: %v", err)
	}
	if got := z.Name(); got != "US/Eastern" {
		t.Errorf("Name() = %q, want US/Eastern", got)
	}
	name, off := time.Unix(0, 0).In(z.Location()).Zone()
	if name != "EST" || off != -18000 {
		t.Errorf("Zone() = %q, %d, want EST, -18000", name, off)
	}
	if got := r.Enumerate("eastern"); !cmp.Equal(got, []string{"US/Eastern"}) {
		t.Errorf("Enumerate(eastern) = %v, want [US/Eastern]", got)
	}
}

func TestFromZoneinfoDir_SymlinkedRoot(t *testing.T) {
	dir := t.TempDir()
	writeZoneinfo(t, dir, map[string][]byte{"Etc/Test": fixedTZif(t, "TST", 0)})
	link := filepath.Join(t.TempDir(), "zoneinfo")
	if err := os.Symlink(dir, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	src, err := FromZoneinfoDir(context.Background(), link)
	if err != nil {
		t.Fatalf("FromZoneinfoDir() error: %v", err)
	}
	if diff := cmp.Diff([]string{"Etc/Test"}, src.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromZoneinfoDir_Invalid(t *testing.T) {
	dir := t.TempDir()
	raw := fixedTZif(t, "BAD", 0)
	writeZoneinfo(t, dir, map[string][]byte{
		"Etc/Good":      fixedTZif(t, "GUD", 0),
		"Etc/Truncated": raw[:30],
	})
	_, err := FromZoneinfoDir(context.Background(), dir)
	if err == nil || !strings.Contains(err.Error(), "Truncated") {
		t.Errorf("FromZoneinfoDir() error = %v, want error naming the truncated file", err)
	}
}

func TestFromZoneinfoDir_Missing(t *testing.T) {
	if _, err := FromZoneinfoDir(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("FromZoneinfoDir(missing) = nil error")
	}
}

func TestFromZoneinfoDir_Canceled(t *testing.T) {
	dir := t.TempDir()
	writeZoneinfo(t, dir, map[string][]byte{"Etc/Test": fixedTZif(t, "TST", 0)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FromZoneinfoDir(ctx, dir); err == nil {
		t.Error("FromZoneinfoDir(canceled) = nil error")
	}
}

func TestFromTZData(t *testing.T) {
	f, err := tzdata.Parse(strings.NewReader(`
Z Europe/Berlin 0:53:28 - LMT 1893 Ap
1 - CET
L Europe/Berlin Arctic/Longyearbyen
`))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry(FromTZData(f))
	want := []string{"Arctic/Longyearbyen", "Europe/Berlin"}
	if diff := cmp.Diff(want, r.Catalog().Names()); diff != "" {
		t.Errorf("Catalog().Names() mismatch (-want +got):\n%s", diff)
	}
	z, err := r.Resolve("Europe/Berlin")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if z.Location().String() != "Europe/Berlin" {
		t.Errorf("Location() = %v", z.Location())
	}
	if _, err := r.Resolve("Europe/Paris"); err == nil {
		t.Error("Resolve(Europe/Paris) succeeded on a catalog without it")
	}
}
