package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	kerrors "keysmith/internal/errors"
	"keysmith/internal/keys"
)

const (
	defaultAPIBase  = "https://api.github.com"
	defaultKeysBase = "https://github.com"
)

// Client talks to the GitHub API and to the public per-user key
// endpoint. Transient HTTP failures are retried by the underlying
// retryable client; anything beyond that is the caller's problem.
type Client struct {
	// HTTP is the retrying HTTP client used for every request.
	HTTP *retryablehttp.Client

	// APIBase is the GitHub API endpoint, overridable for tests.
	APIBase string

	// KeysBase is the base URL for the public `<user>.keys` listing.
	KeysBase string

	// Token, when set, is sent as `Authorization: token ...`. Required
	// for private repositories and to avoid throttling.
	Token string
}

// NewClient builds a Client with production endpoints. An empty token
// is fine for public repositories.
func NewClient(token string) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.Logger = nil
	httpClient.HTTPClient.Timeout = 30 * time.Second

	return &Client{
		HTTP:     httpClient,
		APIBase:  defaultAPIBase,
		KeysBase: defaultKeysBase,
		Token:    token,
	}
}

// UserKeys fetches the published SSH public keys of one GitHub user and
// returns them as records for the given principal with the given origin.
func (c *Client) UserKeys(ctx context.Context, username string, origin keys.Origin) ([]keys.Record, error) {
	body, err := c.get(ctx, c.KeysBase+"/"+username+".keys")
	if err != nil {
		return nil, fmt.Errorf("fetching keys for %s: %w", username, err)
	}

	var records []keys.Record
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		keyType, material, found := strings.Cut(line, " ")
		if !found {
			continue
		}
		records = append(records, keys.Record{
			Principal: username,
			Type:      keyType,
			Material:  material,
			Origins:   []keys.Origin{origin},
		})
	}
	return records, nil
}

// Contributors lists the usernames with access to a repository. It
// prefers the GraphQL collaborators listing (which needs a token) and
// falls back to the public REST contributors endpoint.
func (c *Client) Contributors(ctx context.Context, owner, repo string) ([]string, error) {
	logins, err := c.collaboratorsGraphQL(ctx, owner, repo)
	if err == nil {
		return logins, nil
	}
	return c.contributorsREST(ctx, owner, repo)
}

func (c *Client) collaboratorsGraphQL(ctx context.Context, owner, repo string) ([]string, error) {
	query := fmt.Sprintf(`query {
  repository(owner: %q, name: %q) {
    collaborators(first: 100) {
      edges { node { login } }
    }
  }
}`, owner, repo)

	body, err := c.postJSON(ctx, c.APIBase+"/graphql", map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	var response struct {
		Data struct {
			Repository struct {
				Collaborators struct {
					Edges []struct {
						Node struct {
							Login string `json:"login"`
						} `json:"node"`
					} `json:"edges"`
				} `json:"collaborators"`
			} `json:"repository"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decoding collaborators response: %w", err)
	}

	edges := response.Data.Repository.Collaborators.Edges
	if len(edges) == 0 {
		return nil, fmt.Errorf("collaborators query returned no results")
	}
	logins := make([]string, 0, len(edges))
	for _, edge := range edges {
		logins = append(logins, edge.Node.Login)
	}
	return logins, nil
}

func (c *Client) contributorsREST(ctx context.Context, owner, repo string) ([]string, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/repos/%s/%s/contributors", c.APIBase, owner, repo))
	if err != nil {
		return nil, fmt.Errorf("listing contributors of %s/%s: %w", owner, repo, err)
	}

	var contributors []struct {
		Login string `json:"login"`
	}
	if err := json.Unmarshal(body, &contributors); err != nil {
		return nil, fmt.Errorf("decoding contributors response: %w", err)
	}
	logins := make([]string, 0, len(contributors))
	for _, contributor := range contributors {
		logins = append(logins, contributor.Login)
	}
	return logins, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) postJSON(ctx context.Context, url string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *retryablehttp.Request) ([]byte, error) {
	if c.Token != "" {
		req.Header.Set("Authorization", "token "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned HTTP %d", req.URL, resp.StatusCode)
	}
	return body, nil
}

// GithubRepo yields the published keys of every contributor of one
// GitHub repository. It is a required source: if the repository cannot
// be listed, the aggregation fails.
type GithubRepo struct {
	Client *Client
	Owner  string
	Repo   string

	// SkippedUsers collects usernames whose key listing could not be
	// fetched; the source keeps going, key distribution should not be
	// blocked by one deleted account.
	SkippedUsers []string
}

// NewGithubRepo builds a repository source from a repository URL in
// https or ssh form.
func NewGithubRepo(client *Client, rawURL string) (*GithubRepo, error) {
	owner, repo, err := ParseRepoURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &GithubRepo{Client: client, Owner: owner, Repo: repo}, nil
}

func (s *GithubRepo) Name() string {
	return fmt.Sprintf("github repo %s/%s", s.Owner, s.Repo)
}

func (s *GithubRepo) Optional() bool { return false }

// Degradations reports every contributor whose key listing could not
// be fetched during the last Records call.
func (s *GithubRepo) Degradations() []keys.Warning {
	var warnings []keys.Warning
	for _, username := range s.SkippedUsers {
		warnings = append(warnings, keys.Warning{
			Source: s.Name(),
			Err:    fmt.Errorf("could not fetch keys for %s", username),
		})
	}
	return warnings
}

func (s *GithubRepo) Records(ctx context.Context) ([]keys.Record, error) {
	logins, err := s.Client.Contributors(ctx, s.Owner, s.Repo)
	if err != nil {
		return nil, err
	}

	var records []keys.Record
	for _, login := range logins {
		userRecords, err := s.Client.UserKeys(ctx, login, keys.OriginGithubUser)
		if err != nil {
			s.SkippedUsers = append(s.SkippedUsers, login)
			continue
		}
		records = append(records, userRecords...)
	}
	return records, nil
}

// GithubUsers yields the published keys of an explicit username list,
// sidestepping contributor discovery (and its auth requirements)
// entirely. Required source.
type GithubUsers struct {
	Client *Client
	Users  []string
}

func (s *GithubUsers) Name() string {
	return fmt.Sprintf("github users %s", strings.Join(s.Users, ","))
}

func (s *GithubUsers) Optional() bool { return false }

func (s *GithubUsers) Records(ctx context.Context) ([]keys.Record, error) {
	var records []keys.Record
	for _, username := range s.Users {
		userRecords, err := s.Client.UserKeys(ctx, username, keys.OriginGithubUser)
		if err != nil {
			return nil, err
		}
		records = append(records, userRecords...)
	}
	return records, nil
}

// ParseRepoURL extracts owner and repository name from a GitHub URL in
// either https (https://github.com/owner/repo) or ssh
// (git@github.com:owner/repo.git) form.
func ParseRepoURL(rawURL string) (owner, repo string, err error) {
	trimmed := strings.TrimSpace(rawURL)
	var path string
	switch {
	case strings.HasPrefix(trimmed, "https://github.com/"):
		path = strings.TrimPrefix(trimmed, "https://github.com/")
	case strings.HasPrefix(trimmed, "git@github.com:"):
		path = strings.TrimPrefix(trimmed, "git@github.com:")
	default:
		return "", "", fmt.Errorf("%w: %q is not a GitHub repository URL", kerrors.ErrNoGithubRemote, rawURL)
	}

	path = strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: cannot split %q into owner and repository", kerrors.ErrNoGithubRemote, rawURL)
	}
	return parts[0], parts[1], nil
}
