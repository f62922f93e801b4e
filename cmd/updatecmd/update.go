// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package updatecmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/jordanamos/sas-cli/pkg/application"
	"github.com/jordanamos/sas-cli/pkg/constants"
	"github.com/jordanamos/sas-cli/pkg/ux"
)

var app *application.App

// latestReleaseURL is a variable so tests can point it at a local server
var latestReleaseURL = constants.LatestReleaseURL

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

func NewCmd(injectedApp *application.App, version string) *cobra.Command {
	app = injectedApp
	return &cobra.Command{
		Use:   "update",
		Short: "Check whether a newer release is available",
		Long: `Update checks the latest published release against the running
version. It does not install anything; it prints where to get the
new release when one exists.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return checkForUpdate(cmd.Context(), version)
		},
	}
}

func checkForUpdate(ctx context.Context, version string) error {
	rel, err := fetchLatestRelease(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	current := canonicalVersion(version)
	latest := canonicalVersion(rel.TagName)
	if !semver.IsValid(latest) {
		return fmt.Errorf("latest release has an unexpected tag %q", rel.TagName)
	}

	switch {
	case !semver.IsValid(current):
		ux.Logger.PrintToUser("Running a development build; latest release is %s", rel.TagName)
		ux.Logger.PrintToUser("%s", rel.HTMLURL)
	case semver.Compare(latest, current) > 0:
		ux.Logger.PrintToUser("A newer release is available: %s (running %s)", rel.TagName, version)
		ux.Logger.PrintToUser("%s", rel.HTMLURL)
	default:
		ux.Logger.GreenCheckmarkToUser("sas %s is up to date", version)
	}
	return nil
}

func fetchLatestRelease(ctx context.Context) (*release, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, latestReleaseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s from %s", resp.Status, latestReleaseURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	var rel release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, err
	}
	if rel.TagName == "" {
		return nil, fmt.Errorf("release response has no tag name")
	}
	return &rel, nil
}

// canonicalVersion normalizes a version or tag into semver form ("v1.2.3")
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
