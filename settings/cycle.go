package settings

import (
	"math"

	"vbagx/storage"
)

// Normalize steps methods off values the platform cannot use. Like the
// settings page it runs once per tick, each rule moving at most one step.
func Normalize(p *Preferences, caps Capabilities) {
	if !caps.USB {
		if p.LoadMethod == storage.MethodUSB {
			p.LoadMethod++
		}
		if p.SaveMethod == storage.MethodUSB {
			p.SaveMethod++
		}
	}

	if p.SaveMethod == storage.MethodDVD {
		p.SaveMethod++
	}

	if !caps.DVDLoad && p.LoadMethod == storage.MethodDVD {
		p.LoadMethod++
	}

	if !caps.SMB {
		if p.LoadMethod == storage.MethodSMB {
			p.LoadMethod++
		}
		if p.SaveMethod == storage.MethodSMB {
			p.SaveMethod++
		}
	}

	if !caps.MemoryCardSave {
		if p.SaveMethod == storage.MethodMCSlotA {
			p.SaveMethod++
		}
		if p.SaveMethod == storage.MethodMCSlotB {
			p.SaveMethod++
		}
	}

	if p.LoadMethod > storage.LastLoadMethod || p.LoadMethod < 0 {
		p.LoadMethod = storage.MethodAuto
	}
	if p.SaveMethod > storage.LastSaveMethod || p.SaveMethod < 0 {
		p.SaveMethod = storage.MethodAuto
	}
}

func NextAutoLoad(v AutoLoad) AutoLoad {
	if v++; v > AutoLoadSnapshot {
		return AutoLoadOff
	}
	return v
}

func NextAutoSave(v AutoSave) AutoSave {
	if v++; v > AutoSaveBoth {
		return AutoSaveOff
	}
	return v
}

func NextExitAction(v ExitAction, caps Capabilities) ExitAction {
	v++
	if caps.Wii {
		if v > ExitLoader {
			return ExitAuto
		}
		return v
	}
	if v > ExitGCReboot {
		return ExitGCLoader
	}
	return v
}

// NextVolume steps by ten, wrapping to mute past full volume.
func NextVolume(v int) int {
	if v += 10; v > 100 {
		return 0
	}
	return v
}

// NextRender wraps to Filtered, never back to Original.
func NextRender(v RenderMode) RenderMode {
	if v++; v > RenderUnfiltered {
		return RenderFiltered
	}
	return v
}

func NextScaling(v Scaling, caps Capabilities) Scaling {
	v++
	if v > ScalingWidescreen || (v == ScalingWidescreen && !caps.Widescreen) {
		return ScalingAspect
	}
	return v
}

func NextVideoMode(v VideoMode) VideoMode {
	if v++; v > VideoPAL60 {
		return VideoAuto
	}
	return v
}

// StepZoom adds delta to the zoom level, clamped to the supported range and
// rounded to the step so repeated presses do not drift.
func StepZoom(zoom, delta float64) float64 {
	z := math.Round((zoom+delta)*zoomScale) / zoomScale
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}
