package update

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vbagx/internal"
)

func releaseServer(t *testing.T, releases []GitHubRelease, binary string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	mux.HandleFunc("/releases", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("per_page"); got != "20" {
			t.Errorf("per_page = %q", got)
		}
		for i := range releases {
			for j := range releases[i].Assets {
				releases[i].Assets[j].BrowserDownloadURL = srv.URL + "/download"
			}
		}
		json.NewEncoder(w).Encode(releases)
	})
	mux.HandleFunc("/download", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(binary))
	})
	t.Cleanup(srv.Close)
	return srv
}

var feed = []GitHubRelease{
	{TagName: "v2.3.0", Assets: []GitHubAsset{{Name: "vbagx"}}},
	{TagName: "v2.4.0-beta.1", Prerelease: true, Assets: []GitHubAsset{{Name: "vbagx"}}},
	{TagName: "v9.0.0", Draft: true},
	{TagName: "nightly"},
	{TagName: "v2.2.1", Assets: []GitHubAsset{{Name: "vbagx"}}},
}

func TestPickRelease(t *testing.T) {
	tests := []struct {
		channel internal.ReleaseChannel
		want    string
	}{
		{internal.ReleaseChannelStable, "v2.3.0"},
		{internal.ReleaseChannelBeta, "v2.4.0-beta.1"},
	}
	for _, tt := range tests {
		t.Run(string(tt.channel), func(t *testing.T) {
			got, err := pickRelease(feed, tt.channel)
			if err != nil {
				t.Fatal(err)
			}
			if got.TagName != tt.want {
				t.Errorf("pickRelease = %s, want %s", got.TagName, tt.want)
			}
		})
	}

	if _, err := pickRelease(feed[2:4], internal.ReleaseChannelStable); !errors.Is(err, ErrNoRelease) {
		t.Errorf("drafts only err = %v", err)
	}
}

func TestCheckForUpdate(t *testing.T) {
	srv := releaseServer(t, append([]GitHubRelease(nil), feed...), "")

	tests := []struct {
		current   string
		channel   internal.ReleaseChannel
		asset     string
		available bool
		wantErr   error
	}{
		{"2.2.1", internal.ReleaseChannelStable, "vbagx", true, nil},
		{"2.3.0", internal.ReleaseChannelStable, "vbagx", false, nil},
		{"2.3.0", internal.ReleaseChannelBeta, "vbagx", true, nil},
		{"2.2.1", internal.ReleaseChannelStable, "vbagx-arm64", false, ErrNoAsset},
		{"2.2.1", internal.ReleaseChannelOff, "vbagx", false, nil},
		{"dev", internal.ReleaseChannelBeta, "vbagx", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.current+"/"+string(tt.channel)+"/"+tt.asset, func(t *testing.T) {
			t.Setenv("VBAGX_VERSION", tt.current)
			info, err := CheckForUpdate(context.Background(), srv.URL+"/releases", tt.channel, tt.asset)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if info.UpdateAvailable != tt.available {
				t.Errorf("UpdateAvailable = %v, want %v", info.UpdateAvailable, tt.available)
			}
			if tt.available && !strings.HasSuffix(info.DownloadURL, "/download") {
				t.Errorf("DownloadURL = %q", info.DownloadURL)
			}
		})
	}
}

type recordingReporter struct {
	calls int
	last  int64
}

func (r *recordingReporter) ShowProgress(msg string, done, total int64) {
	r.calls++
	r.last = done
}

func TestInstallSwapsBinary(t *testing.T) {
	body := strings.Repeat("x", 300*1024)
	srv := releaseServer(t, nil, body)

	exe := filepath.Join(t.TempDir(), "vbagx")
	if err := os.WriteFile(exe, []byte("old"), 0755); err != nil {
		t.Fatal(err)
	}

	rep := &recordingReporter{}
	if err := install(context.Background(), srv.URL+"/download", exe, rep, "Updating"); err != nil {
		t.Fatalf("install: %v", err)
	}

	got, err := os.ReadFile(exe)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != body {
		t.Errorf("installed %d bytes, want %d", len(got), len(body))
	}
	if _, err := os.Stat(exe + ".old"); !os.IsNotExist(err) {
		t.Errorf("backup left behind: %v", err)
	}
	if rep.calls == 0 || rep.last != int64(len(body)) {
		t.Errorf("progress calls = %d, last = %d", rep.calls, rep.last)
	}
}

func TestInstallKeepsBinaryOnFailedDownload(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	exe := filepath.Join(t.TempDir(), "vbagx")
	os.WriteFile(exe, []byte("old"), 0755)

	if err := install(context.Background(), srv.URL, exe, nil, ""); err == nil {
		t.Fatal("install succeeded on 404")
	}
	if got, _ := os.ReadFile(exe); string(got) != "old" {
		t.Errorf("binary = %q after failed update", got)
	}
}

func TestAutoUpdateClaimsOnce(t *testing.T) {
	srv := releaseServer(t, append([]GitHubRelease(nil), feed...), "")
	t.Setenv("VBAGX_VERSION", "2.0.0")

	a := NewAutoUpdate(srv.URL+"/releases", internal.ReleaseChannelStable, "vbagx", nil)
	a.Start(context.Background())
	a.Wait()

	if a.IsRunning() || !a.UpdateAvailable() {
		t.Fatalf("running = %v, available = %v", a.IsRunning(), a.UpdateAvailable())
	}
	if info := a.UpdateInfo(); info == nil || info.LatestVersion != "v2.3.0" {
		t.Errorf("UpdateInfo = %+v", info)
	}
	if !a.Claim() || a.Claim() {
		t.Error("Claim should succeed exactly once")
	}
}
