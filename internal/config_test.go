package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vbagx/storage"
)

func TestLoadConfigFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	if err := os.WriteFile(path, []byte(`{"mounts":{"sd":"/media/sd","usb":"/media/usb","floppy":"/a"},"log_level":"DEBUG"}`), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.LogLevel != LogLevelDebug || c.Language != "en" || c.ReleaseChannel != ReleaseChannelStable {
		t.Errorf("config = %+v", c)
	}
	if c.WindowWidth != 640 || c.WindowHeight != 480 {
		t.Errorf("window = %dx%d", c.WindowWidth, c.WindowHeight)
	}

	roots, unknown := c.MountRoots()
	if roots[storage.MethodSD] != "/media/sd" || roots[storage.MethodUSB] != "/media/usb" || len(roots) != 2 {
		t.Errorf("roots = %v", roots)
	}
	if len(unknown) != 1 || unknown[0] != "floppy" {
		t.Errorf("unknown = %v", unknown)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	in := &Config{Language: "fr", ReleaseChannel: ReleaseChannelBeta, Wii: true}
	if err := SaveConfig(path, in); err != nil {
		t.Fatal(err)
	}
	out, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if out.Language != "fr" || out.ReleaseChannel != ReleaseChannelBeta || !out.Wii || out.LogLevel != LogLevelError {
		t.Errorf("round trip = %+v", out)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), ConfigFile))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}
