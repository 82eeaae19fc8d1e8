package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"keysmith/internal/configs"
	"keysmith/internal/keys"
	"keysmith/internal/ui"
)

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage keysmith's user configuration",
}

func init() {
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configs.DefaultPath()
		if err != nil {
			return fmt.Errorf("locating config directory: %w", err)
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}

		settings := configs.Settings{
			KeyTypes: []string{keys.TypeEd25519},
		}
		if err := configs.SaveTOML(path, settings); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Created " + ui.Path.Sprint(path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := configs.Load()
		if err != nil {
			return err
		}

		path, _ := configs.DefaultPath()
		fmt.Printf("config file:     %s\n", path)
		fmt.Printf("key_types:       %v\n", settings.KeyTypes)
		fmt.Printf("github_api_url:  %s\n", orDefault(settings.GithubAPIURL, "https://api.github.com"))
		fmt.Printf("github_keys_url: %s\n", orDefault(settings.GithubKeysURL, "https://github.com"))
		if configs.GithubToken() != "" {
			fmt.Println("GITHUB_TOKEN:    set")
		} else {
			fmt.Println("GITHUB_TOKEN:    not set")
		}
		return nil
	},
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
