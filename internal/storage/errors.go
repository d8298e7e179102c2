package storage

import (
	"errors"
	"fmt"
)

// ErrNotArray is wrapped by a StorageError when a collection's content is not
// a JSON array.
var ErrNotArray = errors.New("content is not a JSON array")

// ErrDuplicateKey is returned by AppendUnique when a record with the same key
// is already stored.
var ErrDuplicateKey = errors.New("duplicate key")

// StorageError reports a failure to read, decode or write a collection.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err wraps a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
