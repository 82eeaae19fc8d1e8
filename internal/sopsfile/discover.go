package sopsfile

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Discover returns every git-tracked .sops.yaml policy document under
// root, as paths relative to the current working directory. Only
// tracked files are refreshed; stray generated copies are ignored.
func Discover(ctx context.Context, root string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", root, "ls-files", "*.sops.yaml")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("listing tracked .sops.yaml files in %s: %w", root, err)
	}

	var files []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		files = append(files, filepath.Join(root, line))
	}
	return files, nil
}
