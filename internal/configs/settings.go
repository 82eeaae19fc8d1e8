package configs

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Settings holds the optional user-level configuration. Everything has
// a sensible default; the config file only exists for people who need
// to pin key types or point at a GitHub Enterprise instance.
type Settings struct {
	// KeyTypes is the default key-type filter applied when the command
	// line does not pass --key-types.
	KeyTypes []string `toml:"key_types"`

	// GithubAPIURL overrides the GitHub API endpoint.
	GithubAPIURL string `toml:"github_api_url"`

	// GithubKeysURL overrides the base URL for `<user>.keys` listings.
	GithubKeysURL string `toml:"github_keys_url"`
}

// DefaultPath returns the user config file location,
// typically ~/.config/keysmith/config.toml.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "keysmith", "config.toml"), nil
}

// Load reads the user settings file. A missing file yields zero-value
// settings, not an error.
func Load() (*Settings, error) {
	path, err := DefaultPath()
	if err != nil {
		return &Settings{}, nil
	}
	settings := &Settings{}
	if err := LoadTOML(path, settings); err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, err
	}
	return settings, nil
}

// GithubToken returns the GitHub API token from the environment. A
// .env file in the working directory is honored so the token can live
// next to the project instead of in shell profiles.
func GithubToken() string {
	_ = godotenv.Load()
	return os.Getenv("GITHUB_TOKEN")
}
