package version

import "testing"

func TestBuildInfoString(t *testing.T) {
	tests := []struct {
		info  BuildInfo
		short string
		full  string
	}{
		{BuildInfo{"dev", "unknown", "unknown"}, "dev", "dev"},
		{BuildInfo{"2.4.7", "unknown", "unknown"}, "v2.4.7", "v2.4.7"},
		{BuildInfo{"2.4.7", "0123456789abcdef", "2026-01-02"}, "v2.4.7", "v2.4.7 (0123456, 2026-01-02)"},
	}
	for _, tt := range tests {
		if got := tt.info.Short(); got != tt.short {
			t.Errorf("Short() = %q, want %q", got, tt.short)
		}
		if got := tt.info.String(); got != tt.full {
			t.Errorf("String() = %q, want %q", got, tt.full)
		}
	}
}

func TestGetOverride(t *testing.T) {
	t.Setenv("VBAGX_VERSION", "9.9.9")
	if got := Get().Version; got != "9.9.9" {
		t.Errorf("Version = %q", got)
	}
}
