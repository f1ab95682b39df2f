package database

import "fmt"

// StorageErrorKind tells which stage of a storage operation failed.
type StorageErrorKind int

const (
	OpenFailed StorageErrorKind = iota
	WriteFailed
	ReadFailed
)

func (k StorageErrorKind) String() string {
	switch k {
	case OpenFailed:
		return "open_failed"
	case WriteFailed:
		return "write_failed"
	case ReadFailed:
		return "read_failed"
	default:
		return "unknown"
	}
}

// StorageError wraps errors that occur while opening, writing or reading the store.
type StorageError struct {
	Kind    StorageErrorKind
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s, %s): %v", e.Backend, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
