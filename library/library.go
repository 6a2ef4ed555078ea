// Package library records which games were played and which save slot was
// used last, so the menus can preselect them.
package library

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"vbagx/saves"

	_ "modernc.org/sqlite"
)

const DefaultFile = "library.db"

var ErrClosed = errors.New("library is closed")

type Error struct {
	Op  string
	ROM string
	Err error
}

func (e *Error) Error() string {
	if e.ROM != "" {
		return fmt.Sprintf("library %s [%s]: %v", e.Op, e.ROM, e.Err)
	}
	return fmt.Sprintf("library %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, rom string, err error) *Error {
	return &Error{Op: op, ROM: rom, Err: err}
}

type Play struct {
	ROM        string
	Count      int
	LastPlayed time.Time
}

type Slot struct {
	Kind    saves.Kind
	Slot    int
	SavedAt time.Time
}

type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	logger *slog.Logger
}

func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, newError("open", "", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, newError("open", "", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, newError("open", "", err)
	}

	logger.Debug("Library opened", "path", path)
	return &Store{db: db, path: path, logger: logger}, nil
}

func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) RecordPlay(rom string, at time.Time) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return newError("record play", rom, ErrClosed)
	}

	_, err := s.db.Exec(`
		INSERT INTO plays (rom, play_count, last_played) VALUES (?, 1, ?)
		ON CONFLICT(rom) DO UPDATE SET play_count = play_count + 1, last_played = excluded.last_played
	`, rom, formatTime(at))
	if err != nil {
		return newError("record play", rom, err)
	}
	return nil
}

// LastPlayed reports when rom was last started, and false if never.
func (s *Store) LastPlayed(rom string) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return time.Time{}, false, newError("last played", rom, ErrClosed)
	}

	var at string
	err := s.db.QueryRow(`SELECT last_played FROM plays WHERE rom = ?`, rom).Scan(&at)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, newError("last played", rom, err)
	}
	return parseTime(at), true, nil
}

// Recent returns up to limit games, most recently played first.
func (s *Store) Recent(limit int) ([]Play, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, newError("recent", "", ErrClosed)
	}

	rows, err := s.db.Query(`SELECT rom, play_count, last_played FROM plays ORDER BY last_played DESC, rom LIMIT ?`, limit)
	if err != nil {
		return nil, newError("recent", "", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var at string
		if err := rows.Scan(&p.ROM, &p.Count, &at); err != nil {
			return nil, newError("recent", "", err)
		}
		p.LastPlayed = parseTime(at)
		plays = append(plays, p)
	}
	if err := rows.Err(); err != nil {
		return nil, newError("recent", "", err)
	}
	return plays, nil
}

func (s *Store) RecordSave(rom string, kind saves.Kind, slot int, at time.Time) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return newError("record save", rom, ErrClosed)
	}

	_, err := s.db.Exec(`
		INSERT INTO last_saves (rom, kind, slot, saved_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(rom) DO UPDATE SET kind = excluded.kind, slot = excluded.slot, saved_at = excluded.saved_at
	`, rom, int(kind), slot, formatTime(at))
	if err != nil {
		return newError("record save", rom, err)
	}
	return nil
}

// LastSlot returns the slot rom was last saved to.
func (s *Store) LastSlot(rom string) (Slot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return Slot{}, false, newError("last slot", rom, ErrClosed)
	}

	var slot Slot
	var kind int
	var at string
	err := s.db.QueryRow(`SELECT kind, slot, saved_at FROM last_saves WHERE rom = ?`, rom).Scan(&kind, &slot.Slot, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return Slot{}, false, nil
	}
	if err != nil {
		return Slot{}, false, newError("last slot", rom, err)
	}
	slot.Kind = saves.Kind(kind)
	slot.SavedAt = parseTime(at)
	return slot, true, nil
}
