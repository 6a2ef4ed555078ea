package environment

import "os"

const (
	modeVariable   = "ENVIRONMENT"
	configVariable = "VBAGX_CONFIG"
)

func IsDevelopment() bool {
	return os.Getenv(modeVariable) == "DEV"
}

// ConfigPath is the launcher config file, or fallback when VBAGX_CONFIG is
// unset.
func ConfigPath(fallback string) string {
	if p := os.Getenv(configVariable); p != "" {
		return p
	}
	return fallback
}
