// This file checks a published latest.json for a newer release. The
// check is advisory: every failure is returned as an error for the
// caller to log, never to abort on.

package update

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

var httpClient = &http.Client{Timeout: 8 * time.Second}

// latestMetadata mirrors the published latest.json. Either "version"
// or a "tag" (with optional leading v) names the release.
type latestMetadata struct {
	Version    string `json:"version"`
	Tag        string `json:"tag"`
	ReleaseURL string `json:"release_url"`
}

// Result describes the outcome of a successful update check.
type Result struct {
	UpdateAvailable bool   `json:"update_available"`
	CurrentVersion  string `json:"current_version"`
	LatestVersion   string `json:"latest_version"`
	ReleaseURL      string `json:"release_url,omitempty"`
}

// Message renders the result the way the CLI prints it.
func (r *Result) Message() string {
	if !r.UpdateAvailable {
		return fmt.Sprintf("up to date: %s", r.CurrentVersion)
	}
	msg := fmt.Sprintf("new version available: %s (current: %s)", r.LatestVersion, r.CurrentVersion)
	if r.ReleaseURL != "" {
		msg += fmt.Sprintf("\nrelease: %s", r.ReleaseURL)
	}
	return msg
}

// Check fetches url and compares the advertised release against
// currentVersion.
func Check(url, currentVersion string) (*Result, error) {
	meta, err := fetchLatest(url)
	if err != nil {
		return nil, fmt.Errorf("check failed: %w", err)
	}

	latest := strings.TrimSpace(meta.Version)
	if latest == "" {
		latest = strings.TrimPrefix(strings.TrimSpace(meta.Tag), "v")
	}

	current, err := semver.NewVersion(currentVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid current version %q: %w", currentVersion, err)
	}
	latestVer, err := semver.NewVersion(latest)
	if err != nil {
		return nil, fmt.Errorf("invalid latest version %q: %w", latest, err)
	}

	return &Result{
		UpdateAvailable: latestVer.GreaterThan(current),
		CurrentVersion:  current.String(),
		LatestVersion:   latestVer.String(),
		ReleaseURL:      strings.TrimSpace(meta.ReleaseURL),
	}, nil
}

func fetchLatest(url string) (*latestMetadata, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var meta latestMetadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("invalid metadata format: %w", err)
	}
	return &meta, nil
}
