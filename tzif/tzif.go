// Package tzif decodes TZif files as described in RFC 8536.
// https://datatracker.ietf.org/doc/html/rfc8536
//
// Only reading is supported. The decoder is used to recognise compiled zone
// files in a zoneinfo tree before they are handed to the time package.
package tzif

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// NOTE: All multi-octet integer values MUST be stored in network octet
// order format (high-order octet first, otherwise known as big-endian),
// with all bits significant.
var order = binary.BigEndian

// Version is the version octet of a TZif header.
// V1 files use 32-bit time values, V2 and later add a second data block
// with 64-bit time values followed by a footer.
type Version byte

const (
	V1 Version = 0x00
	V2 Version = '2'
	V3 Version = '3'
	V4 Version = '4'
)

func (v Version) String() string {
	switch v {
	case V1:
		return "V1 (0x00)"
	case V2:
		return "V2 (0x32)"
	case V3:
		return "V3 (0x33)"
	case V4:
		return "V4 (0x34)"
	default:
		return fmt.Sprintf("<undefined version (%d)>", v)
	}
}

// Magic is the four-octet ASCII sequence "TZif" that starts every header.
var Magic = [4]byte{'T', 'Z', 'i', 'f'}

// Header is the header of a TZif data block.
//
//	+---------------+---+
//	|  magic    (4) |ver|
//	+---------------+---+---------------------------------------+
//	|           [unused - reserved for future use] (15)         |
//	+---------------+---------------+---------------+-----------+
//	|  isutcnt  (4) |  isstdcnt (4) |  leapcnt  (4) |
//	+---------------+---------------+---------------+
//	|  timecnt  (4) |  typecnt  (4) |  charcnt  (4) |
//	+---------------+---------------+---------------+
type Header struct {
	Version  Version
	Reserved [15]byte
	Isutcnt  uint32
	Isstdcnt uint32
	Leapcnt  uint32
	Timecnt  uint32
	Typecnt  uint32
	Charcnt  uint32
}

// ReadHeader reads a header including its magic.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return h, fmt.Errorf("reading magic: %w", err)
	}
	if !bytes.Equal(magic[:], Magic[:]) {
		return h, fmt.Errorf("invalid magic: %q", magic[:])
	}
	err := binary.Read(r, order, &h)
	return h, err
}

// Size of a time value in the version 1 and version 2+ data blocks.
const (
	v1TimeSize = 4
	v2TimeSize = 8
)

// LocalTimeTypeRecord describes one local time type.
//
//	+---------------+---+---+
//	|  utoff (4)    |dst|idx|
//	+---------------+---+---+
type LocalTimeTypeRecord struct {
	// Utoff is the number of seconds added to UT to get local time.
	Utoff int32
	// Dst reports whether the type is daylight saving time.
	Dst bool
	// Idx indexes the time zone designations.
	Idx uint8
}

// LeapSecondRecord is a leap-second record. Occur is widened to 64 bits for
// both block versions.
type LeapSecondRecord struct {
	Occur int64
	Corr  int32
}

// DataBlock is a decoded data block. Transition times of version 1 blocks
// are widened to 64 bits.
type DataBlock struct {
	TransitionTimes        []int64
	TransitionTypes        []uint8
	LocalTimeTypeRecords   []LocalTimeTypeRecord
	TimeZoneDesignation    []byte
	LeapSecondRecords      []LeapSecondRecord
	StandardWallIndicators []bool
	UTLocalIndicators      []bool
}

func readBlock(r io.Reader, h Header, timeSize int) (DataBlock, error) {
	var b DataBlock
	if h.Timecnt > 0 {
		b.TransitionTimes = make([]int64, h.Timecnt)
		for i := range b.TransitionTimes {
			t, err := readTime(r, timeSize)
			if err != nil {
				return b, fmt.Errorf("reading transition times: %w", err)
			}
			b.TransitionTimes[i] = t
		}
		b.TransitionTypes = make([]uint8, h.Timecnt)
		if _, err := io.ReadFull(r, b.TransitionTypes); err != nil {
			return b, fmt.Errorf("reading transition types: %w", err)
		}
	}
	if h.Typecnt > 0 {
		b.LocalTimeTypeRecords = make([]LocalTimeTypeRecord, h.Typecnt)
		for i := range b.LocalTimeTypeRecords {
			if err := binary.Read(r, order, &b.LocalTimeTypeRecords[i]); err != nil {
				return b, fmt.Errorf("reading local time type record: %w", err)
			}
		}
	}
	if h.Charcnt > 0 {
		b.TimeZoneDesignation = make([]byte, h.Charcnt)
		if _, err := io.ReadFull(r, b.TimeZoneDesignation); err != nil {
			return b, fmt.Errorf("reading time zone designation: %w", err)
		}
	}
	if h.Leapcnt > 0 {
		b.LeapSecondRecords = make([]LeapSecondRecord, h.Leapcnt)
		for i := range b.LeapSecondRecords {
			occur, err := readTime(r, timeSize)
			if err != nil {
				return b, fmt.Errorf("reading leap second record: %w", err)
			}
			b.LeapSecondRecords[i].Occur = occur
			if err := binary.Read(r, order, &b.LeapSecondRecords[i].Corr); err != nil {
				return b, fmt.Errorf("reading leap second record: %w", err)
			}
		}
	}
	var err error
	if b.StandardWallIndicators, err = readIndicators(r, h.Isstdcnt); err != nil {
		return b, fmt.Errorf("reading standard/wall indicators: %w", err)
	}
	if b.UTLocalIndicators, err = readIndicators(r, h.Isutcnt); err != nil {
		return b, fmt.Errorf("reading UT/local indicators: %w", err)
	}
	return b, nil
}

func readTime(r io.Reader, size int) (int64, error) {
	if size == v1TimeSize {
		var t int32
		err := binary.Read(r, order, &t)
		return int64(t), err
	}
	var t int64
	err := binary.Read(r, order, &t)
	return t, err
}

func readIndicators(r io.Reader, n uint32) ([]bool, error) {
	if n == 0 {
		return nil, nil
	}
	raw := make([]byte, n)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, err
	}
	ind := make([]bool, n)
	for i, v := range raw {
		if v > 1 {
			return nil, fmt.Errorf("indicator %d: invalid value %d", i, v)
		}
		ind[i] = v == 1
	}
	return ind, nil
}

// Footer holds the POSIX TZ string that follows a version 2+ data block.
//
//	+---+--------------------+---+
//	| NL|  TZ string (0...)  |NL |
//	+---+--------------------+---+
type Footer struct {
	TZString []byte
}

const asciiNewLine = byte(0x0A)

// ReadFooter reads a footer including both newlines.
func ReadFooter(r io.Reader) (Footer, error) {
	var f Footer
	buf := make([]byte, 1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return f, fmt.Errorf("reading newline: %w", err)
	}
	if buf[0] != asciiNewLine {
		return f, fmt.Errorf("expected newline, got %#x", buf[0])
	}
	var b []byte
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return f, fmt.Errorf("reading TZ string: %w", err)
		}
		if buf[0] == asciiNewLine {
			break
		}
		b = append(b, buf[0])
	}
	f.TZString = b
	return f, nil
}

// Data is a decoded TZif file. The V2 fields are zero for version 1 files.
type Data struct {
	Version Version

	V1Header Header
	V1Data   DataBlock

	V2Header Header
	V2Data   DataBlock
	V2Footer Footer
}

// DecodeData reads a complete TZif file from r.
func DecodeData(r io.Reader) (Data, error) {
	var (
		d   Data
		err error
	)
	d.V1Header, err = ReadHeader(r)
	if err != nil {
		return d, fmt.Errorf("read v1 header: %w", err)
	}
	d.Version = d.V1Header.Version

	d.V1Data, err = readBlock(r, d.V1Header, v1TimeSize)
	if err != nil {
		return d, fmt.Errorf("read v1 data block: %w", err)
	}
	if d.Version == V1 {
		return d, nil
	}

	d.V2Header, err = ReadHeader(r)
	if err != nil {
		return d, fmt.Errorf("read v2 header: %w", err)
	}
	d.V2Data, err = readBlock(r, d.V2Header, v2TimeSize)
	if err != nil {
		return d, fmt.Errorf("read v2 data block: %w", err)
	}
	d.V2Footer, err = ReadFooter(r)
	if err != nil {
		return d, fmt.Errorf("read footer: %w", err)
	}
	return d, nil
}
