package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"keysmith/cmd"
	"keysmith/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "keysmith",
	Short: "Keysmith - Turn contributors' public SSH keys into sops-ready key material.",
	Long: `Keysmith fetches the SSH public keys of a project's contributors and turns
them into machine-consumable key material for secret-management tooling:
an authorized_keys listing, age recipients, or the key group of a sops
policy document.

Usage:
  keysmith <command> [flags]

Available Commands:
  import-keys      Fetch and render contributor keys
  refresh-secrets  Refresh every managed .sops.yaml in the working tree
  config           Manage user configuration

Run 'keysmith help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		figure.NewColorFigure("keysmith", "alligator2", "green", true).Print()
		fmt.Println()
		fmt.Println("Run 'keysmith --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.ImportKeysCmd)
	rootCmd.AddCommand(cmd.RefreshCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" "+err.Error())
		os.Exit(1)
	}
}
