// Package ianadist downloads and unpacks tzdb releases distributed by IANA.
//
// Releases are downloaded from the [IANA data server]. Callers should keep
// the [ETags] returned by this package and pass them to later calls to avoid
// downloading an unchanged release again.
//
// [ETags]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/ETag
// [IANA data server]: https://www.iana.org/time-zones
package ianadist

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/ngrash/timedate/tzdata"
)

// TZDataFiles maps data file names ("africa", "europe", "backward", ...) to
// their contents. Every value except backward starts with the line
// "# tzdb data for".
type TZDataFiles map[string][]byte

// Release is an unpacked tzdb release.
type Release struct {
	// Version is the release version, e.g. "2024b".
	Version string
	// DataFiles holds the zic input files of the release.
	DataFiles TZDataFiles
	// LeapSecondsFile is the content of the leapseconds file.
	LeapSecondsFile []byte
}

// Parse scans all data files of the release in file name order and merges
// the result.
func (r *Release) Parse() (tzdata.File, error) {
	names := make([]string, 0, len(r.DataFiles))
	for name := range r.DataFiles {
		names = append(names, name)
	}
	sort.Strings(names)

	files := make([]tzdata.File, 0, len(names))
	for _, name := range names {
		f, err := tzdata.Parse(bytes.NewReader(r.DataFiles[name]))
		if err != nil {
			return tzdata.File{}, fmt.Errorf("parse %s: %w", name, err)
		}
		files = append(files, f)
	}
	return tzdata.Merge(files...), nil
}

// DefaultClient is used by the package-level functions Latest and Download.
var DefaultClient = &Client{}

// Client downloads tzdb releases. The zero value is ready to use.
type Client struct {
	// HTTPClient is used for all requests; http.DefaultClient if nil.
	// Tests replace its transport to avoid network calls.
	HTTPClient *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

const (
	// baseURL is the base URL for time zones on the IANA data server.
	baseURL = "https://data.iana.org/time-zones/"
	// latestDataPath is the latest data archive relative to baseURL.
	latestDataPath = "tzdata-latest.tar.gz"
	// dataFileMagicHeader identifies data files in the archive.
	dataFileMagicHeader = "# tzdb data for"
	// leapSecondsFilename is the name of the leap seconds file in the archive.
	leapSecondsFilename = "leapseconds"
	// versionFilename is the name of the version file in the archive.
	versionFilename = "version"
	// backwardFilename holds the compatibility links and has no magic header.
	backwardFilename = "backward"
	emptyEtag       = ""
)

// ReadArchive unpacks a gzip-compressed tar archive as published at
// https://data.iana.org/time-zones/releases/.
func ReadArchive(r io.Reader) (*Release, error) {
	gunzip, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("read gzip: %w", err)
	}
	tr := tar.NewReader(gunzip)

	result := Release{DataFiles: make(TZDataFiles)}
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		switch header.Name {
		case leapSecondsFilename:
			if result.LeapSecondsFile, err = io.ReadAll(tr); err != nil {
				return nil, fmt.Errorf("read leap seconds file: %w", err)
			}
			continue
		case versionFilename:
			v, err := io.ReadAll(tr)
			if err != nil {
				return nil, fmt.Errorf("read version file: %w", err)
			}
			result.Version = strings.TrimSpace(string(v))
			if result.Version == "" {
				return nil, fmt.Errorf("empty version file")
			}
			continue
		}

		if header.Size < int64(len(dataFileMagicHeader)) {
			continue // too small to be a data file
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", header.Name, err)
		}
		if header.Name != backwardFilename && !bytes.HasPrefix(data, []byte(dataFileMagicHeader)) {
			continue
		}
		result.DataFiles[header.Name] = data
	}

	if len(result.DataFiles) == 0 {
		return nil, fmt.Errorf("no data files found")
	}
	if result.Version == "" {
		return nil, fmt.Errorf("no version found")
	}
	return &result, nil
}

// Latest is a wrapper around DefaultClient.Latest.
func Latest(ctx context.Context, etag string) (*Release, string, error) {
	return DefaultClient.Latest(ctx, etag)
}

// Latest downloads and unpacks the latest release.
//
// If the server answers 304 Not Modified, Latest returns a nil Release, the
// given etag and a nil error. On error the returned ETag is empty.
func (c *Client) Latest(ctx context.Context, etag string) (*Release, string, error) {
	body, newEtag, err := c.Download(ctx, latestDataPath, etag)
	if err != nil {
		return nil, emptyEtag, err
	}
	if body == nil {
		return nil, etag, nil // not modified
	}
	defer func() {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, body)
		_ = body.Close()
	}()

	release, err := ReadArchive(body)
	if err != nil {
		return nil, emptyEtag, err
	}
	return release, newEtag, nil
}

// Download is a wrapper around DefaultClient.Download.
func Download(ctx context.Context, path, etag string) (io.ReadCloser, string, error) {
	return DefaultClient.Download(ctx, path, etag)
}

// Download fetches path relative to the IANA time zone data server.
//
// A non-empty etag is sent as If-None-Match. On 304 Not Modified the body is
// nil and the given etag is returned. Otherwise the caller must read and
// close the returned body. Status codes other than 200 and 304 are errors.
func (c *Client) Download(ctx context.Context, path, etag string) (io.ReadCloser, string, error) {
	u, err := url.JoinPath(baseURL, path)
	if err != nil {
		return nil, emptyEtag, fmt.Errorf("join URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, emptyEtag, fmt.Errorf("create request for %q: %w", u, err)
	}
	if etag != emptyEtag {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, emptyEtag, fmt.Errorf("GET %q: %w", u, err)
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		if resp.StatusCode == http.StatusNotModified {
			return nil, etag, nil
		}
		return nil, emptyEtag, fmt.Errorf("response for %q: unexpected status: %s", u, resp.Status)
	}
	return resp.Body, resp.Header.Get("ETag"), nil
}
