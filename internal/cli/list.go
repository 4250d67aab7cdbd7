package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored submissions in insertion order",
		Long: `List every stored submission of a collection, oldest first.

Examples:
  medai-admin list
  medai-admin list --collection call-requests
  medai-admin list --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	stores, view, err := opts.view()
	if err != nil {
		return err
	}
	defer stores.Close()

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		data, _, err := view.Export("json")
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to encode records", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	header, rows := view.Table()
	fmt.Fprintf(out, "%s\nTotal Submissions: %d\n", view.Variant().Name, len(rows))
	if len(rows) == 0 {
		fmt.Fprintln(out, "No submissions yet")
		return nil
	}

	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
