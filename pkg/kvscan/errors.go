package kvscan

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrKeyNotFound    = errors.New("kvscan: key not found")
	ErrFileUnreadable = errors.New("kvscan: file unreadable")
)

// FileUnreadableError is returned when the info file can not be opened or read.
type FileUnreadableError struct {
	Path string
	Err  error
}

func (e *FileUnreadableError) Error() string {
	return fmt.Sprintf("kvscan: couldn't read \"%s\": %s", e.Path, e.Err)
}

func (e *FileUnreadableError) Unwrap() error {
	return e.Err
}

func (e *FileUnreadableError) Is(target error) bool {
	return target == ErrFileUnreadable
}
