package constants

import "time"

const (
	DefaultHTTPTimeout = 10 * time.Second
	UpdaterTimeout     = 10 * time.Minute
	UpdatePromptDelay  = 5 * time.Second // before asking to install a found update
)
