package ui

import (
	"path"
	"strconv"

	"vbagx/gui"
	"vbagx/library"
	"vbagx/menu"
	"vbagx/saves"
	"vbagx/storage"
)

// GameSavesScreen lists the saves of the loaded game, either to restore one
// or to write a new or existing slot.
type GameSavesScreen struct {
	save bool
}

func NewGameLoadScreen() *GameSavesScreen {
	return &GameSavesScreen{}
}

func NewGameSaveScreen() *GameSavesScreen {
	return &GameSavesScreen{save: true}
}

func (sc *GameSavesScreen) Draw(s *menu.Session) menu.Screen {
	prefs := s.Prefs()
	method, err := s.Mounts.ResolveSave(prefs.SaveMethod)
	if err != nil {
		s.Log().Warn("No save device", "method", prefs.SaveMethod, "error", err)
		s.Prompt.Error(tr("no_save_device", "Unable to locate a save device!"))
		return menu.ScreenGame
	}

	folder, rom := prefs.SaveFolder, s.Browser.ROMName()
	list, err := s.Saves.List(method, folder, rom)
	if err != nil {
		s.Log().Error("Could not list saves", "method", method, "folder", folder, "error", err)
		s.Prompt.Error(tr("save_folder_inaccessible", "Unable to open the save folder."))
		return menu.ScreenGame
	}
	if !sc.save && list.Len() == 0 {
		s.Prompt.Info(tr("no_saves", "No game saves found."))
		return menu.ScreenGame
	}

	title := tr("load_game", "Load Game")
	if sc.save {
		title = tr("save_game", "Save Game")
	}
	p := newPage("saves", title).withBack().withClose()

	browser := gui.NewSaveBrowser("saves.list", listW, listH)
	browser.SetAlignment(gui.AlignCenter, gui.AlignTop)
	browser.SetPosition(0, 108)
	entries, selected := sc.entries(s, method, folder, rom, &list)
	browser.SetEntries(entries, selected)
	p.add(browser)

	att := p.show(s)
	defer att.Release()

	return poll(s, func() (menu.Screen, bool) {
		if tag := browser.Clicked(); tag != gui.SaveNone {
			if next, done := sc.pick(s, method, folder, rom, &list, tag); done {
				return next, true
			}
		}
		switch {
		case p.backClicked():
			return menu.ScreenGame, true
		case p.closeClicked():
			return menu.ScreenExit, true
		}
		return menu.ScreenNone, false
	})
}

func (sc *GameSavesScreen) entries(s *menu.Session, method storage.Method, folder, rom string, list *saves.List) ([]gui.SaveEntry, int) {
	var entries []gui.SaveEntry
	if sc.save {
		entries = append(entries,
			gui.SaveEntry{Label: tr("new_sram", "New SRAM"), Tag: gui.SaveNewSRAM},
			gui.SaveEntry{Label: tr("new_snapshot", "New Snapshot"), Tag: gui.SaveNewSnapshot})
	}

	var last library.Slot
	haveLast := false
	if s.Library != nil {
		slot, ok, err := s.Library.LastSlot(rom)
		if err != nil {
			s.Log().Warn("Could not read last save slot", "rom", rom, "error", err)
		}
		last, haveLast = slot, ok
	}

	selected := 0
	for i, f := range list.Files {
		e := gui.SaveEntry{Label: slotLabel(f), Tag: i}
		if !f.ModTime.IsZero() && !method.MemoryCard() {
			e.Date = f.ModTime.Format("Mon Jan 02")
			e.Time = f.ModTime.Format("03:04 PM")
		}
		img, err := s.Saves.Preview(method, folder, f)
		if err != nil {
			s.Log().Debug("No snapshot preview", "file", f.Name, "error", err)
		} else if img != nil {
			e.Preview = gui.NewImageData(img)
		}
		if haveLast && last.Kind == f.Kind && last.Slot == f.Slot {
			selected = len(entries)
		}
		entries = append(entries, e)
	}
	return entries, selected
}

// pick acts on a clicked entry. done is false when the screen stays up.
func (sc *GameSavesScreen) pick(s *menu.Session, method storage.Method, folder, rom string, list *saves.List, tag int) (menu.Screen, bool) {
	if !sc.save {
		f := list.Files[tag]
		err := s.Saves.Load(method, path.Join(folder, f.Name), f.Kind, false)
		if f.Kind == saves.KindSRAM {
			s.Core.Reset()
		}
		if err != nil {
			s.Log().Error("Load failed", "file", f.Name, "error", err)
			s.Prompt.Error(tr("load_failed", "Unable to load the save file."))
			return menu.ScreenNone, false
		}
		return menu.ScreenExit, true
	}

	var kind saves.Kind
	var slot int
	var err error
	switch tag {
	case gui.SaveNewSRAM, gui.SaveNewSnapshot:
		kind = saves.KindSRAM
		if tag == gui.SaveNewSnapshot {
			kind = saves.KindSnapshot
		}
		free, ok := list.FirstFree(kind)
		if !ok {
			s.Log().Info("No free save slot", "kind", kind)
			return menu.ScreenNone, false
		}
		slot = free
		_, err = s.Saves.SaveNew(method, folder, rom, list, kind, false)
	default:
		f := list.Files[tag]
		kind, slot = f.Kind, f.Slot
		err = s.Saves.Save(method, path.Join(folder, f.Name), kind, false)
	}

	if err != nil {
		s.Log().Error("Save failed", "kind", kind, "slot", slot, "error", err)
		s.Prompt.Error(saveFailed(kind))
	} else {
		recordSave(s, rom, kind, slot)
	}
	return menu.ScreenGameSave, true
}

func slotLabel(f saves.File) string {
	kind := "SRAM"
	if f.Kind == saves.KindSnapshot {
		kind = tr("snapshot", "Snapshot")
	}
	if f.Slot == 0 {
		return kind + " " + tr("auto", "Auto")
	}
	return kind + " " + strconv.Itoa(f.Slot)
}
