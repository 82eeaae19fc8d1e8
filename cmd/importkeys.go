package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"keysmith/internal/format"
	logger "keysmith/internal/logging"
	"keysmith/internal/ui"
	"keysmith/internal/workflows"
)

var (
	importGithubURL     string
	importLocalCheckout string
	importGithubUsers   []string
	importKnownHosts    string
	importSSHHosts      []string
	importKeyTypes      []string
	importFormat        string
	importInplaceEdit   string
)

func init() {
	ImportKeysCmd.Flags().StringVar(&importGithubURL, "github-url", "", "GitHub repository URL to import contributor keys from")
	ImportKeysCmd.Flags().StringVar(&importLocalCheckout, "local-checkout", ".", "path to a local git checkout whose origin remote selects the repository")
	ImportKeysCmd.Flags().StringSliceVar(&importGithubUsers, "github-users", nil, "comma-separated GitHub usernames to fetch keys for instead of contributor discovery")
	ImportKeysCmd.Flags().StringVar(&importKnownHosts, "known-hosts", "", "path to an SSH known-hosts file to harvest host keys from")
	ImportKeysCmd.Flags().StringSliceVar(&importSSHHosts, "ssh-hosts", nil, "comma-separated hosts to ssh-keyscan for keys")
	ImportKeysCmd.Flags().StringSliceVar(&importKeyTypes, "key-types", nil, "comma-separated key types to accept (e.g. ssh-ed25519,ssh-rsa); empty accepts all")
	ImportKeysCmd.Flags().StringVar(&importFormat, "format", string(format.AuthorizedKeys), "output format: "+strings.Join(format.Kinds(), ", "))
	ImportKeysCmd.Flags().StringVar(&importInplaceEdit, "inplace-edit", "", "merge the keys into this .sops.yaml file instead of printing (implies --format sops)")
	ImportKeysCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	ImportKeysCmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

var ImportKeysCmd = &cobra.Command{
	Use:   "import-keys",
	Short: "Import contributors' SSH keys and render them for sops or authorized_keys",
	Long: `Fetches the SSH public keys of a GitHub repository's contributors (or an
explicit user list), optionally augments them with keys from a known-hosts
file or a live ssh-keyscan, and renders the deduplicated set.

Examples:
  keysmith import-keys --github-url https://github.com/example/app --format sops
  keysmith import-keys --github-users alice,bob --format authorized_keys
  keysmith import-keys --local-checkout . --inplace-edit .sops.yaml
  keysmith import-keys --known-hosts ~/.ssh/known_hosts --key-types ssh-ed25519`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger = logger.Logger{Verbose: verbose, Debug: debug}

		kind, err := format.Parse(importFormat)
		if err != nil {
			return err
		}

		s, cleanup := startSpinner("Importing keys...", verbose)

		var buf bytes.Buffer
		result, err := workflows.ImportKeys(cmd.Context(), workflows.ImportOptions{
			GithubURL:      importGithubURL,
			LocalCheckout:  importLocalCheckout,
			GithubUsers:    importGithubUsers,
			KnownHostsPath: importKnownHosts,
			SSHHosts:       importSSHHosts,
			KeyTypes:       importKeyTypes,
			Format:         kind,
			InplacePath:    importInplaceEdit,
			Out:            &buf,
			Verbose:        verbose,
			Debug:          debug,
		})
		if err != nil {
			s.FinalMSG = ui.Error.Sprint("✗") + " Key import failed"
			cleanup()
			return err
		}

		if result.WrotePath != "" {
			s.FinalMSG = ui.Success.Sprint("✓") + " Updated " + ui.Path.Sprint(result.WrotePath) +
				fmt.Sprintf(" with %d key(s) for %d principal(s)", result.Records, len(result.Principals))
			cleanup()
			return nil
		}

		cleanup()
		fmt.Print(buf.String())
		return nil
	},
}
