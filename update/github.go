package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"vbagx/internal"
	"vbagx/internal/constants"

	"github.com/sonh/qs"
)

const (
	DefaultFeedURL = "https://api.github.com/repos/dborth/vbagx/releases"
	userAgent      = "VBAGX-Updater"
	releasesPage   = 20
)

var ErrNoRelease = errors.New("no releases found")

type GitHubRelease struct {
	TagName    string        `json:"tag_name"`
	Name       string        `json:"name"`
	Body       string        `json:"body"`
	Prerelease bool          `json:"prerelease"`
	Draft      bool          `json:"draft"`
	HTMLURL    string        `json:"html_url"`
	Assets     []GitHubAsset `json:"assets"`
}

type GitHubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
	ContentType        string `json:"content_type"`
}

type releaseQuery struct {
	PerPage int `qs:"per_page"`
	Page    int `qs:"page,omitempty"`
}

// FetchLatestRelease returns the newest release on the feed for channel.
// The stable channel skips prereleases; beta takes whichever is newest.
func FetchLatestRelease(ctx context.Context, feedURL string, channel internal.ReleaseChannel) (*GitHubRelease, error) {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}

	values, err := qs.NewEncoder().Values(releaseQuery{PerPage: releasesPage})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{Timeout: constants.DefaultHTTPTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch releases: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoRelease
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var releases []GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return pickRelease(releases, channel)
}

func pickRelease(releases []GitHubRelease, channel internal.ReleaseChannel) (*GitHubRelease, error) {
	var best *GitHubRelease
	for i := range releases {
		r := &releases[i]
		if r.Draft || (r.Prerelease && channel != internal.ReleaseChannelBeta) {
			continue
		}
		if _, err := ParseVersion(r.TagName); err != nil {
			continue
		}
		if best == nil || IsNewerVersion(best.TagName, r.TagName) {
			best = r
		}
	}
	if best == nil {
		return nil, ErrNoRelease
	}
	return best, nil
}

func (r *GitHubRelease) FindAsset(name string) *GitHubAsset {
	for i := range r.Assets {
		if r.Assets[i].Name == name {
			return &r.Assets[i]
		}
	}
	return nil
}
