package sources

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	kerrors "keysmith/internal/errors"
	"keysmith/internal/keys"
)

// noreplyPattern matches GitHub noreply committer emails, with or
// without the numeric user id prefix: `12345+user@users.noreply.github.com`.
var noreplyPattern = regexp.MustCompile(`^(?:\d+\+)?([A-Za-z0-9-]+)@users\.noreply\.github\.com$`)

// LocalCheckout resolves the GitHub repository behind a local git
// checkout's origin remote and yields the contributors' published keys.
// Usernames that only appear in commit history (via GitHub noreply
// committer emails) are fetched as well, with local-checkout provenance
// so the dedup tie-break prefers the contributor listing when both
// report the same key.
type LocalCheckout struct {
	Client *Client
	Path   string

	// SkippedUsers collects usernames whose key listing could not be
	// fetched, from the contributor listing and from mined history.
	SkippedUsers []string
}

func (s *LocalCheckout) Name() string {
	return fmt.Sprintf("local checkout %s", s.Path)
}

func (s *LocalCheckout) Optional() bool { return false }

func (s *LocalCheckout) Records(ctx context.Context) ([]keys.Record, error) {
	remote, err := gitOutput(ctx, s.Path, "remote", "get-url", "origin")
	if err != nil {
		return nil, fmt.Errorf("%w: reading origin remote of %s: %v", kerrors.ErrNoGithubRemote, s.Path, err)
	}

	repoSource, err := NewGithubRepo(s.Client, remote)
	if err != nil {
		return nil, err
	}
	records, err := repoSource.Records(ctx)
	if err != nil {
		return nil, err
	}
	s.SkippedUsers = repoSource.SkippedUsers

	seen := make(map[string]bool)
	for _, rec := range records {
		seen[rec.Principal] = true
	}

	// Commit authors who are not in the contributor listing (squash
	// merges, renamed accounts) still get their keys collected, tagged
	// with local-checkout provenance.
	for _, username := range s.minedUsernames(ctx) {
		if seen[username] {
			continue
		}
		seen[username] = true
		userRecords, err := s.Client.UserKeys(ctx, username, keys.OriginLocalCheckout)
		if err != nil {
			s.SkippedUsers = append(s.SkippedUsers, username)
			continue
		}
		records = append(records, userRecords...)
	}
	return records, nil
}

// Degradations reports every username whose key listing could not be
// fetched during the last Records call.
func (s *LocalCheckout) Degradations() []keys.Warning {
	var warnings []keys.Warning
	for _, username := range s.SkippedUsers {
		warnings = append(warnings, keys.Warning{
			Source: s.Name(),
			Err:    fmt.Errorf("could not fetch keys for %s", username),
		})
	}
	return warnings
}

// minedUsernames extracts GitHub usernames from noreply committer
// emails in the checkout's history. Mining failures contribute nothing;
// the checkout may be shallow or history-less.
func (s *LocalCheckout) minedUsernames(ctx context.Context) []string {
	out, err := gitOutput(ctx, s.Path, "log", "--format=%ae")
	if err != nil {
		return nil
	}

	var usernames []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		m := noreplyPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		usernames = append(usernames, m[1])
	}
	return usernames
}

func gitOutput(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
