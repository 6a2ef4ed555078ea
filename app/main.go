package main

import (
	"fmt"
	"os"
	"time"

	"vbagx/internal/constants"
	"vbagx/menu"

	_ "github.com/BrandonKowalski/certifiable"
	"github.com/veandco/go-sdl2/sdl"
)

const exitFadeTimeout = 5 * time.Second

func main() {
	code := constants.ExitCodeOK
	sdl.Main(func() {
		code = run()
	})
	os.Exit(code)
}

func run() int {
	a, err := setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "vbagx:", err)
		if a != nil {
			a.cleanup()
		}
		return constants.ExitCodeError
	}
	defer a.cleanup()

	start := menu.ScreenGameSelection
	for {
		if err := a.dispatcher.Run(a.session, start); err != nil {
			a.logger.Error("Menu failed", "error", err)
			return constants.ExitCodeError
		}
		if a.session.Exiting() {
			break
		}
		a.play()
		if a.session.Exiting() {
			break
		}
		start = menu.ScreenGame
	}

	// The dispatcher leaves the GUI halted. Let it run the fade out.
	a.ctrl.Resume()
	select {
	case <-a.ctrl.Done():
	case <-time.After(exitFadeTimeout):
		a.logger.Warn("Menu did not finish its exit in time")
	}
	return a.exitCode()
}
