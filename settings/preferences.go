package settings

import (
	"vbagx/mapping"
	"vbagx/storage"
)

type AutoLoad int

const (
	AutoLoadOff AutoLoad = iota
	AutoLoadSRAM
	AutoLoadSnapshot
)

type AutoSave int

const (
	AutoSaveOff AutoSave = iota
	AutoSaveSRAM
	AutoSaveSnapshot
	AutoSaveBoth
)

// ExitAction is what the menu's Exit button does. On platforms without a
// Wii system menu only ExitLoader and ExitReboot apply.
type ExitAction int

const (
	ExitAuto ExitAction = iota
	ExitSystemMenu
	ExitPowerOff
	ExitLoader
)

const (
	ExitGCLoader ExitAction = iota
	ExitGCReboot
)

type RenderMode int

const (
	RenderOriginal RenderMode = iota
	RenderFiltered
	RenderUnfiltered
)

type Scaling int

const (
	ScalingAspect Scaling = iota
	ScalingPartial
	ScalingStretch
	ScalingWidescreen
)

type VideoMode int

const (
	VideoAuto VideoMode = iota
	VideoNTSC
	VideoProgressive
	VideoPAL50
	VideoPAL60
)

const (
	MinZoom  = 0.5
	MaxZoom  = 2.0
	ZoomStep = 0.01

	zoomScale = 100
)

// Maximum lengths of the strings edited on the on-screen keyboard.
const (
	FolderMaxLen   = 30
	SMBIPMaxLen    = 16
	SMBShareMaxLen = 20
	SMBUserMaxLen  = 20
	SMBPassMaxLen  = 20
)

// Preferences are the user's emulator settings. The value is copied freely;
// screens edit a copy and write it back when the page closes.
type Preferences struct {
	LoadMethod  storage.Method
	SaveMethod  storage.Method
	LoadFolder  string
	SaveFolder  string
	CheatFolder string
	AutoLoad    AutoLoad
	AutoSave    AutoSave
	VerifySaves bool

	ExitAction         ExitAction
	WiimoteOrientation bool
	MusicVolume        int
	SFXVolume          int
	Rumble             bool
	WiiControls        bool

	Render    RenderMode
	Scaling   Scaling
	ZoomLevel float64
	XShift    int
	YShift    int
	VideoMode VideoMode
	Colorize  bool

	SMBIP       string
	SMBShare    string
	SMBUser     string
	SMBPassword string

	Buttons mapping.Maps
}

// Capabilities describe what the host platform supports.
type Capabilities struct {
	USB            bool
	DVDLoad        bool
	SMB            bool
	MemoryCardSave bool
	Widescreen     bool
	// Wii selects the Wii exit actions, Wiimote options and menu audio.
	Wii     bool
	Network bool
}

func Defaults() Preferences {
	return Preferences{
		LoadMethod:  storage.MethodAuto,
		SaveMethod:  storage.MethodAuto,
		LoadFolder:  "/vbagx/roms",
		SaveFolder:  "/vbagx/saves",
		CheatFolder: "/vbagx/cheats",
		AutoLoad:    AutoLoadSRAM,
		AutoSave:    AutoSaveSRAM,
		VerifySaves: false,

		ExitAction:  ExitAuto,
		MusicVolume: 40,
		SFXVolume:   40,
		Rumble:      true,

		Render:    RenderFiltered,
		Scaling:   ScalingAspect,
		ZoomLevel: 1.0,
		VideoMode: VideoAuto,

		Buttons: mapping.DefaultMaps(),
	}
}
