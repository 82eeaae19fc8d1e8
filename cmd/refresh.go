package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	logger "keysmith/internal/logging"
	"keysmith/internal/ui"
	"keysmith/internal/workflows"
)

var (
	refreshRoot     string
	refreshKeyTypes []string
)

func init() {
	RefreshCmd.Flags().StringVar(&refreshRoot, "root", ".", "working tree to scan for managed .sops.yaml files")
	RefreshCmd.Flags().StringSliceVar(&refreshKeyTypes, "key-types", nil, "comma-separated key types to accept; empty defaults to ssh-ed25519")
	RefreshCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RefreshCmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

var RefreshCmd = &cobra.Command{
	Use:   "refresh-secrets",
	Short: "Refresh every managed .sops.yaml in the working tree with current contributor keys",
	Long: `Finds all git-tracked .sops.yaml files and merges the current contributor
key set into each one's managed key group. Key sources are fetched once and
shared across files. Files that fail (for example, unparsable documents) are
reported at the end; the remaining files are still refreshed.

Example:
  keysmith refresh-secrets
  keysmith refresh-secrets --root ../infra --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger = logger.Logger{Verbose: verbose, Debug: debug}

		s, cleanup := startSpinner("Refreshing policy documents...", verbose)

		result, err := workflows.Refresh(cmd.Context(), workflows.RefreshOptions{
			Root:     refreshRoot,
			KeyTypes: refreshKeyTypes,
			Verbose:  verbose,
			Debug:    debug,
		})
		if err != nil {
			s.FinalMSG = ui.Error.Sprint("✗") + " Refresh failed"
			cleanup()
			return err
		}

		if result.Failed > 0 {
			msg := ui.Error.Sprint("✗") + " " + result.Summary() + "\n"
			for _, file := range result.Files {
				if file.Err != nil {
					msg += ui.Info.Sprint("→") + " " + ui.Path.Sprint(file.Path) + ": " + file.Err.Error() + "\n"
				}
			}
			s.FinalMSG = msg
			cleanup()
			return fmt.Errorf("%d policy document(s) could not be refreshed", result.Failed)
		}

		s.FinalMSG = ui.Success.Sprint("✓") + " " + result.Summary()
		cleanup()
		return nil
	},
}
