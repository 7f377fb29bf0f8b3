package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ngrash/timedate/internal/dispatch"
)

func (a *app) callCmd() *cobra.Command {
	var long strings.Builder
	long.WriteString("Invoke a tool by name with JSON arguments.\n\nTools:\n")
	for _, t := range dispatch.Tools() {
		fmt.Fprintf(&long, "  %-22s %s\n", t.Name, t.Description)
	}
	return &cobra.Command{
		Use:   "call <tool> [json]",
		Short: "Invoke a tool with JSON arguments",
		Long:  long.String(),
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw json.RawMessage
			if len(args) == 2 {
				raw = json.RawMessage(args[1])
			}
			v, err := dispatch.New(a.svc).Call(args[0], raw)
			if err != nil {
				return err
			}
			return printJSON(cmd, v)
		},
	}
}

func (a *app) readCmd() *cobra.Command {
	var long strings.Builder
	long.WriteString("Read a resource URI.\n\nResources:\n")
	for _, r := range dispatch.Resources() {
		fmt.Fprintf(&long, "  %-36s %s\n", r.URITemplate, r.Description)
	}
	return &cobra.Command{
		Use:   "read <uri>",
		Short: "Read a resource URI",
		Long:  long.String(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := dispatch.New(a.svc).Read(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, v)
		},
	}
}
