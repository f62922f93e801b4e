// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package updatecmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func withReleaseServer(t *testing.T, status int, body string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	orig := latestReleaseURL
	latestReleaseURL = srv.URL
	t.Cleanup(func() { latestReleaseURL = orig })
}

func TestFetchLatestRelease(t *testing.T) {
	require := require.New(t)
	withReleaseServer(t, http.StatusOK,
		`{"tag_name":"v1.2.0","html_url":"https://example.com/releases/v1.2.0"}`)

	rel, err := fetchLatestRelease(context.Background())
	require.NoError(err)
	require.Equal("v1.2.0", rel.TagName)
	require.Equal("https://example.com/releases/v1.2.0", rel.HTMLURL)
}

func TestFetchLatestReleaseBadStatus(t *testing.T) {
	require := require.New(t)
	withReleaseServer(t, http.StatusForbidden, `{"message":"rate limited"}`)

	_, err := fetchLatestRelease(context.Background())
	require.ErrorContains(err, "unexpected status")
}

func TestFetchLatestReleaseMissingTag(t *testing.T) {
	require := require.New(t)
	withReleaseServer(t, http.StatusOK, `{}`)

	_, err := fetchLatestRelease(context.Background())
	require.ErrorContains(err, "no tag name")
}

func TestCanonicalVersion(t *testing.T) {
	require := require.New(t)
	require.Equal("v1.0.0", canonicalVersion("1.0.0"))
	require.Equal("v1.2.3", canonicalVersion("v1.2.3"))
	require.Equal("", canonicalVersion("  "))
}
