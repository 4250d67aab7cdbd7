package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"MedAI_LandingSite/internal/app"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Database   string
	Collection string
	Format     string // "text" | "json"
}

// ValidFormats defines the allowed output formats for list.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the admin CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "medai-admin",
		Short: "Inspect, export and clear stored MedAI form submissions",
		Long: `Admin viewer for the submissions the MedAI landing API stores.

Works directly on the SQLite file the API writes to, so it can be used
while the API is running or on a copied database.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "./medai_site.db", "path to SQLite database")
	cmd.PersistentFlags().StringVarP(&opts.Collection, "collection", "c", "demo-requests", "collection (demo-requests|call-requests)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))

	return cmd
}

// view opens the database and resolves the selected collection. The caller
// closes the returned stores.
func (o *RootOptions) view() (*app.Stores, app.View, error) {
	stores, err := app.OpenStores(o.Database, zap.NewNop())
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	v, ok := stores.Views()[o.Collection]
	if !ok {
		stores.Close()
		return nil, nil, NewExitError(ExitCommandError, fmt.Sprintf("unknown collection %q", o.Collection))
	}
	return stores, v, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
