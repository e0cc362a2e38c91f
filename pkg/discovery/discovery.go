// Package discovery enumerates package repositories on a source-hosting
// service. It authenticates with an environment-supplied token, paginates
// the "repositories I can push to" endpoint, and filters the results down
// to package repositories by naming convention. It shares no data
// structures with the held-back engine.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/ajxudir/heldback/pkg/errors"
	"github.com/ajxudir/heldback/pkg/verbose"
)

// Environment variables checked, in order, for the access token.
const (
	TokenEnvVar         = "HELDBACK_GITHUB_TOKEN"
	FallbackTokenEnvVar = "GITHUB_TOKEN"
)

// perPage is the page size requested from the repositories endpoint.
const perPage = 100

// Options configures repository discovery.
//
// Fields:
//   - Token: Access token; read from the environment when empty
//   - BaseURL: API base URL (e.g., https://api.github.com)
//   - Suffix: Naming-convention suffix package repositories carry
//   - Client: HTTP client; http.DefaultClient when nil
type Options struct {
	Token   string
	BaseURL string
	Suffix  string
	Client  *http.Client
}

// repo is the subset of the repository listing the filter needs.
type repo struct {
	Name string `json:"name"`
	Fork bool   `json:"fork"`
}

// FindPackages enumerates package repositories the token can push to.
//
// It performs the following operations:
//   - Resolves the access token, failing before any network call when
//     none is available
//   - Pages through the repositories endpoint until an empty page
//   - Drops forks and repositories not ending in the configured suffix
//   - Returns the deduplicated base names (suffix stripped), sorted
//
// Parameters:
//   - ctx: Context for request cancellation
//   - opts: Discovery options
//
// Returns:
//   - []string: Sorted, deduplicated package base names
//   - error: CredentialError when no token is available, or any HTTP
//     or decoding failure
func FindPackages(ctx context.Context, opts Options) ([]string, error) {
	token := opts.Token
	if token == "" {
		token = os.Getenv(TokenEnvVar)
	}
	if token == "" {
		token = os.Getenv(FallbackTokenEnvVar)
	}
	if token == "" {
		return nil, &errors.CredentialError{Variable: TokenEnvVar}
	}

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	base := strings.TrimSuffix(opts.BaseURL, "/")
	seen := make(map[string]struct{})

	for page := 1; ; page++ {
		repos, err := fetchPage(ctx, client, base, token, page)
		if err != nil {
			return nil, err
		}
		if len(repos) == 0 {
			break
		}

		for _, r := range repos {
			if r.Fork || !strings.HasSuffix(r.Name, opts.Suffix) {
				continue
			}
			seen[strings.TrimSuffix(r.Name, opts.Suffix)] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	verbose.Debugf("Discovery found %d package repositories", len(names))
	return names, nil
}

// fetchPage requests one page of the pushable-repositories listing.
func fetchPage(ctx context.Context, client *http.Client, base, token string, page int) ([]repo, error) {
	url := fmt.Sprintf("%s/user/repos?type=push&per_page=%d&page=%d", base, perPage, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("repository listing failed: %s", resp.Status)
	}

	var repos []repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("failed to decode repository listing: %w", err)
	}

	verbose.Tracef("Discovery page %d: %d repositories", page, len(repos))
	return repos, nil
}
