// Package dispatch maps the tool-style and resource-style addressing
// schemes onto a timequery.Service.
package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ngrash/timedate/timequery"
)

var (
	// ErrUnknownTool is returned by Call for unsupported tool names.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidArguments is returned by Call for malformed or incomplete
	// arguments.
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrUnknownResource is returned by Read for unsupported URIs.
	ErrUnknownResource = errors.New("unknown resource")
)

// Scheme prefixes every resource URI.
const Scheme = "timedate://"

// Tool describes a callable operation.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Resource describes a readable URI template.
type Resource struct {
	URITemplate string `json:"uri_template"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MIMEType    string `json:"mime_type"`
}

var tools = []Tool{
	{"get_current_time", "Get the current time in a timezone (UTC if omitted)"},
	{"get_time_at", "Get time at a specific date and timezone"},
	{"calculate_time_offset", "Add or subtract whole hours from a time"},
	{"convert_timezone", "Convert a time from one timezone to another"},
	{"get_timezone_info", "Get information about the local timezone"},
	{"get_time_format", "Get the preferred 12/24-hour format and the current time in both"},
	{"list_timezones", "List available timezones, optionally filtered"},
}

var resources = []Resource{
	{Scheme + "current-time/{timezone}", "current_time", "Current time in the specified timezone", "application/json"},
	{Scheme + "timezone-info", "timezone_info", "Information about the local timezone", "application/json"},
	{Scheme + "timezones/{filter}", "timezone_list", "List of available timezones, optionally filtered", "application/json"},
	{Scheme + "time-format", "time_format", "Time format preferences and current time in both formats", "application/json"},
}

// Tools returns the supported tools.
func Tools() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}

// Resources returns the supported resource templates.
func Resources() []Resource {
	out := make([]Resource, len(resources))
	copy(out, resources)
	return out
}

type currentTimeArgs struct {
	Timezone string `json:"timezone"`
}

type timeAtArgs struct {
	DateTime string `json:"date_time" validate:"required"`
	Timezone string `json:"timezone"`
}

type timeOffsetArgs struct {
	BaseTime    string `json:"base_time" validate:"required"`
	OffsetHours *int32 `json:"offset_hours" validate:"required"`
	Timezone    string `json:"timezone"`
}

type convertArgs struct {
	Time         string `json:"time" validate:"required"`
	FromTimezone string `json:"from_timezone" validate:"required"`
	ToTimezone   string `json:"to_timezone" validate:"required"`
}

type listArgs struct {
	Filter string `json:"filter"`
}

// Dispatcher routes calls and reads to a service.
type Dispatcher struct {
	svc      *timequery.Service
	validate *validator.Validate
}

// New returns a dispatcher for svc.
func New(svc *timequery.Service) *Dispatcher {
	return &Dispatcher{svc: svc, validate: validator.New()}
}

// Call invokes the named tool. args is a JSON object; empty or null args
// are treated as {}.
func (d *Dispatcher) Call(name string, args json.RawMessage) (any, error) {
	switch name {
	case "get_current_time":
		var a currentTimeArgs
		if err := d.decode(args, &a); err != nil {
			return nil, err
		}
		return result(d.svc.CurrentTime(a.Timezone))
	case "get_time_at":
		var a timeAtArgs
		if err := d.decode(args, &a); err != nil {
			return nil, err
		}
		return result(d.svc.TimeAt(a.DateTime, a.Timezone))
	case "calculate_time_offset":
		var a timeOffsetArgs
		if err := d.decode(args, &a); err != nil {
			return nil, err
		}
		return result(d.svc.Offset(a.BaseTime, *a.OffsetHours, a.Timezone))
	case "convert_timezone":
		var a convertArgs
		if err := d.decode(args, &a); err != nil {
			return nil, err
		}
		return result(d.svc.Convert(a.Time, a.FromTimezone, a.ToTimezone))
	case "get_timezone_info":
		return d.svc.AmbientTimezoneInfo(), nil
	case "get_time_format":
		return d.svc.FormatPreference(), nil
	case "list_timezones":
		var a listArgs
		if err := d.decode(args, &a); err != nil {
			return nil, err
		}
		return d.svc.ListTimezones(a.Filter), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
}

// result drops the zero value of failed calls.
func result[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (d *Dispatcher) decode(args json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) != 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
		}
	}
	if err := d.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}

// Read returns the content of a resource URI. Path parameters are
// URL-unescaped; "local" selects the default zone for current-time and
// "all" disables the timezones filter.
func (d *Dispatcher) Read(uri string) (any, error) {
	path, ok := strings.CutPrefix(uri, Scheme)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, uri)
	}
	switch path {
	case "timezone-info":
		return d.svc.AmbientTimezoneInfo(), nil
	case "time-format":
		return d.svc.FormatPreference(), nil
	}

	if raw, ok := strings.CutPrefix(path, "current-time/"); ok {
		tz, err := param(uri, raw)
		if err != nil {
			return nil, err
		}
		if tz == "local" {
			tz = ""
		}
		return result(d.svc.CurrentTime(tz))
	}
	if raw, ok := strings.CutPrefix(path, "timezones/"); ok {
		filter, err := param(uri, raw)
		if err != nil {
			return nil, err
		}
		if filter == "all" {
			filter = ""
		}
		return d.svc.ListTimezones(filter), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownResource, uri)
}

func param(uri, raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: %q: missing parameter", ErrUnknownResource, uri)
	}
	p, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnknownResource, uri, err)
	}
	return p, nil
}
