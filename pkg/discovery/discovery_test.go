package discovery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/heldback/pkg/errors"
)

// newListingServer serves pages of repository listings, one slice per
// page, and records the Authorization headers it receives.
func newListingServer(t *testing.T, pages [][]repo, auths *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*auths = append(*auths, r.Header.Get("Authorization"))

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		require.NoError(t, err)

		var body []repo
		if page <= len(pages) {
			body = pages[page-1]
		}
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}))
}

// TestFindPackages tests the behavior of FindPackages.
//
// It verifies:
//   - All pages are consumed until an empty page
//   - Forks and repositories without the suffix are dropped
//   - Results are suffix-stripped, deduplicated, and sorted
//   - Requests carry the bearer token
func TestFindPackages(t *testing.T) {
	var auths []string
	server := newListingServer(t, [][]repo{
		{
			{Name: "Zebra.jl"},
			{Name: "Forked.jl", Fork: true},
			{Name: "not-a-package"},
		},
		{
			{Name: "Alpha.jl"},
			{Name: "Zebra.jl"},
		},
	}, &auths)
	defer server.Close()

	names, err := FindPackages(context.Background(), Options{
		Token:   "secret",
		BaseURL: server.URL,
		Suffix:  ".jl",
		Client:  server.Client(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Alpha", "Zebra"}, names)

	// Two content pages plus the terminating empty page.
	require.Len(t, auths, 3)
	for _, auth := range auths {
		assert.Equal(t, "Bearer secret", auth)
	}
}

// TestFindPackagesTokenFromEnv tests the behavior of token resolution.
//
// It verifies:
//   - The primary environment variable supplies the token
//   - The fallback variable is used when the primary is unset
//   - No token at all is a credential failure before any request
func TestFindPackagesTokenFromEnv(t *testing.T) {
	var auths []string
	server := newListingServer(t, nil, &auths)
	defer server.Close()

	opts := Options{BaseURL: server.URL, Suffix: ".jl", Client: server.Client()}

	t.Setenv(TokenEnvVar, "primary")
	t.Setenv(FallbackTokenEnvVar, "fallback")
	_, err := FindPackages(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "Bearer primary", auths[len(auths)-1])

	t.Setenv(TokenEnvVar, "")
	_, err = FindPackages(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "Bearer fallback", auths[len(auths)-1])

	t.Setenv(FallbackTokenEnvVar, "")
	requests := len(auths)
	_, err = FindPackages(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, errors.IsCredential(err))
	assert.Len(t, auths, requests)
}

// TestFindPackagesHTTPError tests the behavior of non-success responses.
//
// It verifies:
//   - A non-200 status aborts discovery with an error
func TestFindPackagesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := FindPackages(context.Background(), Options{
		Token:   "secret",
		BaseURL: server.URL,
		Suffix:  ".jl",
		Client:  server.Client(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository listing failed")
}
