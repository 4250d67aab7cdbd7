package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"MedAI_LandingSite/internal/archiver"
)

// ClearOptions holds flags for the clear command.
type ClearOptions struct {
	*RootOptions
	Yes        bool
	ArchiveDir string

	now func() time.Time
}

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClearOptions{RootOptions: rootOpts, now: time.Now}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every submission in a collection",
		Long: `Delete every stored submission of a collection. This cannot be undone;
export first if the data is still needed.

Without --yes the command asks for confirmation on stdin. A JSON snapshot
is written to --archive-dir before anything is deleted.

Examples:
  medai-admin clear
  medai-admin clear --collection call-requests --yes`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().StringVar(&opts.ArchiveDir, "archive-dir", "data/archive", "directory for the pre-clear snapshot (empty disables)")

	return cmd
}

func runClear(opts *ClearOptions, cmd *cobra.Command) error {
	stores, view, err := opts.view()
	if err != nil {
		return err
	}
	defer stores.Close()

	label := strings.ReplaceAll(view.Variant().ExportPrefix, "-", " ")
	confirm := func() bool {
		if opts.Yes {
			return true
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Are you sure you want to clear all %s? This action cannot be undone. [y/N] ", label)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}

	var archive func([]byte) error
	if opts.ArchiveDir != "" {
		// 삭제 전에 스냅샷 저장, 실패하면 삭제하지 않음
		archive = func(snapshot []byte) error {
			return opts.archive(cmd, view.Variant().ExportPrefix, snapshot)
		}
	}

	cleared, err := view.Clear(confirm, archive)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to clear, nothing was deleted", err)
	}
	if !cleared {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted, nothing was deleted.")
		return NewExitError(ExitFailure, "clear declined")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "All %s cleared\n", label)
	return nil
}

func (o *ClearOptions) archive(cmd *cobra.Command, prefix string, snapshot []byte) error {
	arch, err := archiver.NewArchiver(o.ArchiveDir)
	if err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}
	path, err := arch.Save(prefix, "json", snapshot, o.now())
	if err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Snapshot written to %s\n", path)
	return nil
}
