package sources

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/crypto/ssh"

	"keysmith/internal/keys"
)

// KnownHosts yields host keys parsed from an SSH known-hosts file. The
// source is optional: a missing or unreadable file degrades to a
// warning, key distribution should not be blocked by ancillary file
// absence.
type KnownHosts struct {
	Path string
}

func (s *KnownHosts) Name() string {
	return fmt.Sprintf("known-hosts file %s", s.Path)
}

func (s *KnownHosts) Optional() bool { return true }

func (s *KnownHosts) Records(ctx context.Context) ([]keys.Record, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	return parseKnownHostsData(data)
}

// ScanHosts yields host keys from a live ssh-keyscan of the given
// hosts. Optional: unreachable hosts degrade to a warning.
type ScanHosts struct {
	Hosts []string
}

func (s *ScanHosts) Name() string {
	return fmt.Sprintf("ssh-keyscan %s", strings.Join(s.Hosts, ","))
}

func (s *ScanHosts) Optional() bool { return true }

func (s *ScanHosts) Records(ctx context.Context) ([]keys.Record, error) {
	var records []keys.Record
	for _, host := range s.Hosts {
		out, err := exec.CommandContext(ctx, "ssh-keyscan", host).Output()
		if err != nil {
			return nil, fmt.Errorf("ssh-keyscan %s: %w", host, err)
		}
		hostRecords, err := parseKnownHostsData(out)
		if err != nil {
			return nil, fmt.Errorf("parsing ssh-keyscan output for %s: %w", host, err)
		}
		records = append(records, hostRecords...)
	}
	return records, nil
}

// parseKnownHostsData parses known_hosts formatted content into
// records. The principal of each record is the entry's first host
// pattern (a hashed pattern stays hashed).
func parseKnownHostsData(data []byte) ([]keys.Record, error) {
	var records []keys.Record
	rest := data
	for len(rest) > 0 {
		_, hosts, pubKey, _, remaining, err := ssh.ParseKnownHosts(rest)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing known-hosts entry: %w", err)
		}
		rest = remaining

		if len(hosts) == 0 {
			continue
		}
		records = append(records, keys.Record{
			Principal: hosts[0],
			Type:      pubKey.Type(),
			Material:  base64.StdEncoding.EncodeToString(pubKey.Marshal()),
			Origins:   []keys.Origin{keys.OriginKnownHosts},
		})
	}
	return records, nil
}
