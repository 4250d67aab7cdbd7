package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"MedAI_LandingSite/internal/export"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Type   string // "json" | "csv"
	Output string
	Stdout bool

	now func() time.Time
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts, now: time.Now}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a collection as JSON or CSV",
		Long: `Write a collection to a file named like the admin panel download,
e.g. demo-requests-2026-10-17.csv, or to --out.

Examples:
  medai-admin export --type csv
  medai-admin export --type json --out backup.json
  medai-admin export --type csv --stdout`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", "json", "export type (json|csv)")
	cmd.Flags().StringVarP(&opts.Output, "out", "o", "", "output file (default: <collection>-<date>.<type>)")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "write to stdout instead of a file")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	if opts.Type != "json" && opts.Type != "csv" {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid export type %q: must be json or csv", opts.Type))
	}

	stores, view, err := opts.view()
	if err != nil {
		return err
	}
	defer stores.Close()

	data, total, err := view.Export(opts.Type)
	if errors.Is(err, export.ErrNothingToExport) {
		label := strings.ReplaceAll(view.Variant().ExportPrefix, "-", " ")
		return WrapExitError(ExitFailure, "No "+label+" to export", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "export failed", err)
	}

	if opts.Stdout {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	path := opts.Output
	if path == "" {
		path = export.Filename(view.Variant().ExportPrefix, opts.Type, opts.now())
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return WrapExitError(ExitCommandError, "failed to write export", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d submissions to %s\n", total, path)
	return nil
}
