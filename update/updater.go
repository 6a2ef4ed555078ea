package update

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"vbagx/internal"
	"vbagx/internal/constants"
	"vbagx/internal/fileutil"
	"vbagx/version"
)

var ErrNoAsset = errors.New("update binary not found")

type Info struct {
	CurrentVersion  string
	LatestVersion   string
	ReleaseNotes    string
	DownloadURL     string
	AssetSize       int64
	UpdateAvailable bool
}

// Reporter receives download progress. progress.Notifier implements it.
type Reporter interface {
	ShowProgress(msg string, done, total int64)
}

// CheckForUpdate looks up the newest release on channel and reports whether
// it is newer than the running build. Development builds never update.
func CheckForUpdate(ctx context.Context, feedURL string, channel internal.ReleaseChannel, assetName string) (*Info, error) {
	currentVersion := version.Get().Version
	if currentVersion == "dev" || channel == internal.ReleaseChannelOff {
		return &Info{CurrentVersion: currentVersion}, nil
	}

	release, err := FetchLatestRelease(ctx, feedURL, channel)
	if err != nil {
		return nil, fmt.Errorf("failed to check for updates: %w", err)
	}

	info := &Info{
		CurrentVersion: currentVersion,
		LatestVersion:  release.TagName,
		ReleaseNotes:   release.Body,
	}
	if !IsNewerVersion(currentVersion, release.TagName) {
		return info, nil
	}

	asset := release.FindAsset(assetName)
	if asset == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoAsset, assetName)
	}

	info.UpdateAvailable = true
	info.DownloadURL = asset.BrowserDownloadURL
	info.AssetSize = asset.Size
	return info, nil
}

// PerformUpdate downloads the binary at downloadURL and swaps it in for the
// running executable, keeping the old one until the swap succeeds.
func PerformUpdate(ctx context.Context, downloadURL string, r Reporter, msg string) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return install(ctx, downloadURL, execPath, r, msg)
}

func install(ctx context.Context, downloadURL, execPath string, r Reporter, msg string) error {
	tmpPath := execPath + ".new"
	oldPath := execPath + ".old"

	if err := download(ctx, downloadURL, tmpPath, r, msg); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to download update: %w", err)
	}

	if err := os.Chmod(tmpPath, 0755); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	os.Remove(oldPath)

	if err := os.Rename(execPath, oldPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to backup current binary: %w", err)
	}

	if err := os.Rename(tmpPath, execPath); err != nil {
		if rollbackErr := os.Rename(oldPath, execPath); rollbackErr != nil {
			return fmt.Errorf("failed to install update and rollback failed: install=%w, rollback=%v", err, rollbackErr)
		}
		return fmt.Errorf("failed to install update (rolled back): %w", err)
	}

	os.Remove(oldPath)
	return nil
}

func download(ctx context.Context, url, destPath string, r Reporter, msg string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{Timeout: constants.UpdaterTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	var report fileutil.ProgressFunc
	if r != nil {
		report = func(done, total int64) { r.ShowProgress(msg, done, total) }
	}
	return fileutil.WriteFileAtomic(destPath, resp.Body, resp.ContentLength, report)
}
