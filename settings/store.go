package settings

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"vbagx/internal/fileutil"
	"vbagx/mapping"
	"vbagx/storage"

	"github.com/beevik/etree"
)

const (
	FileName = "settings.xml"

	fileElement       = "file"
	sectionElement    = "section"
	settingElement    = "setting"
	controllerElement = "controller"
	buttonElement     = "button"

	formatVersion = "1"
)

// Store persists Preferences as XML at a fixed path.
type Store struct {
	path   string
	logger *slog.Logger
}

func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

func (s *Store) Path() string {
	return s.path
}

type field struct {
	section string
	name    string
	get     func(p *Preferences) string
	set     func(p *Preferences, v string) error
}

func stringField(section, name string, ptr func(p *Preferences) *string) field {
	return field{
		section: section,
		name:    name,
		get:     func(p *Preferences) string { return *ptr(p) },
		set:     func(p *Preferences, v string) error { *ptr(p) = v; return nil },
	}
}

func boolField(section, name string, ptr func(p *Preferences) *bool) field {
	return field{
		section: section,
		name:    name,
		get:     func(p *Preferences) string { return strconv.FormatBool(*ptr(p)) },
		set: func(p *Preferences, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			*ptr(p) = b
			return nil
		},
	}
}

func intField[T ~int](section, name string, ptr func(p *Preferences) *T) field {
	return field{
		section: section,
		name:    name,
		get:     func(p *Preferences) string { return strconv.Itoa(int(*ptr(p))) },
		set: func(p *Preferences, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			*ptr(p) = T(n)
			return nil
		},
	}
}

func methodField(section, name string, ptr func(p *Preferences) *storage.Method) field {
	return field{
		section: section,
		name:    name,
		get:     func(p *Preferences) string { return ptr(p).String() },
		set: func(p *Preferences, v string) error {
			m, ok := storage.ParseMethod(v)
			if !ok {
				return fmt.Errorf("unknown method %q", v)
			}
			*ptr(p) = m
			return nil
		},
	}
}

var fields = []field{
	methodField("File", "LoadMethod", func(p *Preferences) *storage.Method { return &p.LoadMethod }),
	methodField("File", "SaveMethod", func(p *Preferences) *storage.Method { return &p.SaveMethod }),
	stringField("File", "LoadFolder", func(p *Preferences) *string { return &p.LoadFolder }),
	stringField("File", "SaveFolder", func(p *Preferences) *string { return &p.SaveFolder }),
	stringField("File", "CheatFolder", func(p *Preferences) *string { return &p.CheatFolder }),
	intField("File", "AutoLoad", func(p *Preferences) *AutoLoad { return &p.AutoLoad }),
	intField("File", "AutoSave", func(p *Preferences) *AutoSave { return &p.AutoSave }),
	boolField("File", "VerifySaves", func(p *Preferences) *bool { return &p.VerifySaves }),

	intField("Menu", "ExitAction", func(p *Preferences) *ExitAction { return &p.ExitAction }),
	boolField("Menu", "WiimoteOrientation", func(p *Preferences) *bool { return &p.WiimoteOrientation }),
	intField("Menu", "MusicVolume", func(p *Preferences) *int { return &p.MusicVolume }),
	intField("Menu", "SFXVolume", func(p *Preferences) *int { return &p.SFXVolume }),
	boolField("Menu", "Rumble", func(p *Preferences) *bool { return &p.Rumble }),

	boolField("Controls", "WiiControls", func(p *Preferences) *bool { return &p.WiiControls }),

	intField("Video", "Render", func(p *Preferences) *RenderMode { return &p.Render }),
	intField("Video", "Scaling", func(p *Preferences) *Scaling { return &p.Scaling }),
	{
		section: "Video",
		name:    "ZoomLevel",
		get:     func(p *Preferences) string { return strconv.FormatFloat(p.ZoomLevel, 'f', 2, 64) },
		set: func(p *Preferences, v string) error {
			z, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			p.ZoomLevel = StepZoom(z, 0)
			return nil
		},
	},
	intField("Video", "XShift", func(p *Preferences) *int { return &p.XShift }),
	intField("Video", "YShift", func(p *Preferences) *int { return &p.YShift }),
	intField("Video", "VideoMode", func(p *Preferences) *VideoMode { return &p.VideoMode }),
	boolField("Video", "Colorize", func(p *Preferences) *bool { return &p.Colorize }),

	stringField("Network", "SMBIP", func(p *Preferences) *string { return &p.SMBIP }),
	stringField("Network", "SMBShare", func(p *Preferences) *string { return &p.SMBShare }),
	stringField("Network", "SMBUser", func(p *Preferences) *string { return &p.SMBUser }),
	stringField("Network", "SMBPassword", func(p *Preferences) *string { return &p.SMBPassword }),
}

// Load reads the stored preferences on top of the defaults. When an error
// is returned the defaults are returned with it.
func (s *Store) Load() (Preferences, error) {
	p := Defaults()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return p, fmt.Errorf("reading preferences: %w", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return Defaults(), fmt.Errorf("parsing preferences: %w", err)
	}
	root := doc.SelectElement(fileElement)
	if root == nil {
		return Defaults(), fmt.Errorf("parsing preferences: missing <%s> element", fileElement)
	}

	values := make(map[string]string)
	for _, sec := range root.SelectElements(sectionElement) {
		secName := sec.SelectAttrValue("name", "")
		for _, el := range sec.SelectElements(settingElement) {
			values[secName+"/"+el.SelectAttrValue("name", "")] = el.SelectAttrValue("value", "")
		}
		for _, ctrl := range sec.SelectElements(controllerElement) {
			s.readController(&p, ctrl)
		}
	}

	for _, f := range fields {
		v, ok := values[f.section+"/"+f.name]
		if !ok {
			continue
		}
		if err := f.set(&p, v); err != nil {
			s.logger.Warn("Ignoring invalid preference", "section", f.section, "name", f.name, "value", v, "error", err)
		}
	}

	return p, nil
}

func (s *Store) readController(p *Preferences, ctrl *etree.Element) {
	kind, ok := mapping.ParseKind(ctrl.SelectAttrValue("name", ""))
	if !ok {
		return
	}
	for _, btn := range ctrl.SelectElements(buttonElement) {
		name := btn.SelectAttrValue("name", "")
		code, err := strconv.ParseUint(btn.SelectAttrValue("code", ""), 0, 32)
		if err != nil {
			s.logger.Warn("Ignoring invalid button mapping", "controller", kind.Key(), "button", name, "error", err)
			continue
		}
		for i, gba := range mapping.GBAButtonNames {
			if gba == name {
				p.Buttons[kind][i] = uint32(code)
			}
		}
	}
}

func (s *Store) Save(p Preferences) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(fileElement)
	root.CreateAttr("app", "vbagx")
	root.CreateAttr("version", formatVersion)

	sections := make(map[string]*etree.Element)
	for _, f := range fields {
		sec, ok := sections[f.section]
		if !ok {
			sec = root.CreateElement(sectionElement)
			sec.CreateAttr("name", f.section)
			sections[f.section] = sec
		}
		el := sec.CreateElement(settingElement)
		el.CreateAttr("name", f.name)
		el.CreateAttr("value", f.get(&p))
	}

	controls := sections["Controls"]
	for k := mapping.Kind(0); k < mapping.KindCount; k++ {
		ctrl := controls.CreateElement(controllerElement)
		ctrl.CreateAttr("name", k.Key())
		for i, code := range p.Buttons[k] {
			btn := ctrl.CreateElement(buttonElement)
			btn.CreateAttr("name", mapping.GBAButtonNames[i])
			btn.CreateAttr("code", fmt.Sprintf("0x%x", code))
		}
	}

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, bytes.NewReader(data), int64(len(data)), nil); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	s.logger.Debug("Saved preferences", "path", s.path)
	return nil
}
