package storage

import (
	"errors"
	"fmt"
)

// ErrPersistence marks a mutation that was applied in memory but could not be written to disk.
var ErrPersistence = errors.New("database not persisted")

// PersistError carries the cause of a failed database write.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist database %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrPersistence and the underlying cause to errors.Is/As.
func (e *PersistError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}
