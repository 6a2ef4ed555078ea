package constants

// Process exit codes read by the launcher script to decide what runs next.
const (
	ExitCodeOK         = 0
	ExitCodeError      = 1
	ExitCodeSystemMenu = 100
	ExitCodePowerOff   = 101
	ExitCodeLoader     = 102
	ExitCodeReboot     = 103
	ExitCodeUpdated    = 110
)
