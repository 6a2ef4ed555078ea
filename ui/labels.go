package ui

import (
	"fmt"

	"vbagx/settings"
	"vbagx/storage"
)

func methodLabel(m storage.Method) string {
	switch m {
	case storage.MethodAuto:
		return tr("method_auto", "Auto Detect")
	case storage.MethodSD:
		return "SD"
	case storage.MethodUSB:
		return "USB"
	case storage.MethodDVD:
		return "DVD"
	case storage.MethodSMB:
		return tr("method_smb", "Network")
	case storage.MethodMCSlotA:
		return tr("method_mca", "MC Slot A")
	case storage.MethodMCSlotB:
		return tr("method_mcb", "MC Slot B")
	}
	return m.String()
}

func autoLoadLabel(v settings.AutoLoad) string {
	switch v {
	case settings.AutoLoadSRAM:
		return "SRAM"
	case settings.AutoLoadSnapshot:
		return tr("snapshot", "Snapshot")
	}
	return tr("off", "Off")
}

func autoSaveLabel(v settings.AutoSave) string {
	switch v {
	case settings.AutoSaveSRAM:
		return "SRAM"
	case settings.AutoSaveSnapshot:
		return tr("snapshot", "Snapshot")
	case settings.AutoSaveBoth:
		return tr("both", "Both")
	}
	return tr("off", "Off")
}

func exitActionLabel(v settings.ExitAction, caps settings.Capabilities) string {
	if !caps.Wii {
		if v == settings.ExitGCReboot {
			return tr("exit_reboot", "Reboot")
		}
		return tr("exit_loader", "Return to Loader")
	}
	switch v {
	case settings.ExitSystemMenu:
		return tr("exit_system_menu", "Return to Wii Menu")
	case settings.ExitPowerOff:
		return tr("exit_power_off", "Power off Wii")
	case settings.ExitLoader:
		return tr("exit_loader", "Return to Loader")
	}
	return tr("exit_auto", "Auto")
}

func volumeLabel(v int) string {
	if v <= 0 {
		return tr("mute", "Mute")
	}
	return fmt.Sprintf("%d%%", v)
}

func enabledLabel(v bool) string {
	if v {
		return tr("enabled", "Enabled")
	}
	return tr("disabled", "Disabled")
}

func renderLabel(v settings.RenderMode) string {
	switch v {
	case settings.RenderOriginal:
		return tr("render_original", "Original")
	case settings.RenderUnfiltered:
		return tr("render_unfiltered", "Unfiltered")
	}
	return tr("render_filtered", "Filtered")
}

func scalingLabel(v settings.Scaling) string {
	switch v {
	case settings.ScalingPartial:
		return tr("scaling_partial", "Partial Stretch")
	case settings.ScalingStretch:
		return tr("scaling_stretch", "Stretch to Fit")
	case settings.ScalingWidescreen:
		return tr("scaling_widescreen", "16:9 Correction")
	}
	return tr("scaling_aspect", "Maintain Aspect Ratio")
}

func videoModeLabel(v settings.VideoMode) string {
	switch v {
	case settings.VideoNTSC:
		return "NTSC (480i)"
	case settings.VideoProgressive:
		return tr("video_progressive", "Progressive (480p)")
	case settings.VideoPAL50:
		return "PAL (50Hz)"
	case settings.VideoPAL60:
		return "PAL (60Hz)"
	}
	return tr("video_auto", "Automatic (Recommended)")
}

func zoomLabel(z float64) string {
	return fmt.Sprintf("%.2f%%", z*100)
}

func shiftLabel(x, y int) string {
	return fmt.Sprintf("%d, %d", x, y)
}

// hidden renders an empty password as nothing and anything else as stars.
func hidden(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}
