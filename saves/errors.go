package saves

import (
	"errors"
	"fmt"
)

var (
	ErrNoSlot      = errors.New("no free save slot")
	ErrNoData      = errors.New("no data to save")
	ErrVerify      = errors.New("saved data does not match")
	ErrUnsupported = errors.New("save kind not supported")
)

// Error describes a failed save transfer.
type Error struct {
	Op   string // "load" or "save"
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s [%s]: %v", e.Op, e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, kind Kind, path string, err error) *Error {
	return &Error{Op: op, Kind: kind, Path: path, Err: err}
}
