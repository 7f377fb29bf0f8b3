package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (a *app) nowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now [zone]",
		Short: "Current time in a zone (UTC if omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var zone string
			if len(args) == 1 {
				zone = args[0]
			}
			info, err := a.svc.CurrentTime(zone)
			if err != nil {
				return err
			}
			return printJSON(cmd, info)
		},
	}
}

func (a *app) atCmd() *cobra.Command {
	var zone string
	cmd := &cobra.Command{
		Use:   "at <time>",
		Short: "Show the instant a text denotes",
		Long: `Show the instant a text denotes in a zone.

Accepted forms: now, RFC 3339 (2024-01-15T10:30:00Z),
"2024-01-15 10:30:00" and 2024-01-15. Forms without an offset are read as
civil time in --zone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.svc.TimeAt(args[0], zone)
			if err != nil {
				return err
			}
			return printJSON(cmd, info)
		},
	}
	cmd.Flags().StringVar(&zone, "zone", "", "zone to read and show the time in (default UTC)")
	return cmd
}

func (a *app) offsetCmd() *cobra.Command {
	var zone string
	cmd := &cobra.Command{
		Use:   "offset [--zone zone] <time> <hours>",
		Short: "Add or subtract whole hours",
		Long: `Add or subtract whole hours from a time.

Flags must precede the arguments so negative hours are not read as flags:

  timedate offset --zone Europe/Berlin now -3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := strconv.ParseInt(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("parse hours: %w", err)
			}
			info, err := a.svc.Offset(args[0], int32(hours), zone)
			if err != nil {
				return err
			}
			return printJSON(cmd, info)
		},
	}
	cmd.Flags().StringVar(&zone, "zone", "", "zone to read and show the time in (default UTC)")
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *app) convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <time> <from> <to>",
		Short: "Convert a time between zones",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.svc.Convert(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return printJSON(cmd, info)
		},
	}
}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Describe the local zone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, a.svc.AmbientTimezoneInfo())
		},
	}
}

func (a *app) formatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format",
		Short: "Detect the preferred 12/24-hour clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, a.svc.FormatPreference())
		},
	}
}

func (a *app) zonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones [filter]",
		Short: "List zone names containing filter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter string
			if len(args) == 1 {
				filter = args[0]
			}
			return printJSON(cmd, a.svc.ListTimezones(filter))
		},
	}
}
