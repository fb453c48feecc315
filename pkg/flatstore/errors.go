package flatstore

import (
	"errors"
	"fmt"
)

// Sentinel errors. The structured error types below match them with errors.Is.
var (
	ErrTruncated          = errors.New("store truncated")
	ErrAllocation         = errors.New("store too large to load")
	ErrBadMagic           = errors.New("not a store file")
	ErrUnsupportedVersion = errors.New("unsupported store format version")
	ErrRecordSizeMismatch = errors.New("record size mismatch")
	ErrTrailingData       = errors.New("trailing bytes after last record")
	ErrInvalidRecordSize  = errors.New("invalid record size")
	ErrStoreClosed        = errors.New("store is closed")
	ErrIndexOutOfRange    = errors.New("record index out of range")
	ErrStoreFull          = errors.New("store is full")
)

// OpenError reports a store file that could not be opened, created or read.
type OpenError struct {
	Op    string // "mkdir", "open", "stat", "read", "write" or "close"
	Path  string
	Cause error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("%s store %s: %v", e.Op, e.Path, e.Cause)
}

func (e *OpenError) Unwrap() error {
	return e.Cause
}

// TruncatedStoreError reports a file holding fewer records than its header
// declares, or too few bytes for the header itself.
type TruncatedStoreError struct {
	Path     string
	Declared uint32 // records declared by the header
	Present  uint32 // complete records actually in the file
	Size     int64  // file size in bytes
}

func (e *TruncatedStoreError) Error() string {
	if e.Size < HeaderSize {
		return fmt.Sprintf("store %s truncated: %d byte file is shorter than the %d byte header",
			e.Path, e.Size, HeaderSize)
	}
	return fmt.Sprintf("store %s truncated: header declares %d records, file holds %d",
		e.Path, e.Declared, e.Present)
}

func (e *TruncatedStoreError) Is(target error) bool {
	return target == ErrTruncated
}

// AllocationError reports a record array larger than the load limit.
type AllocationError struct {
	Path      string
	Requested uint64
	Limit     int64
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("store %s: %d record bytes exceed the %d byte load limit",
		e.Path, e.Requested, e.Limit)
}

func (e *AllocationError) Is(target error) bool {
	return target == ErrAllocation
}

// FormatError reports a file that is not a valid store for the requested
// record layout: wrong magic, unknown version, wrong record size, trailing
// bytes, or a record the codec rejects.
type FormatError struct {
	Path  string
	Cause error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Path, e.Cause)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// IsCorrupt reports whether err means the file content cannot be trusted.
// Callers that prefer to rebuild rather than fail can Reset the file.
func IsCorrupt(err error) bool {
	var fe *FormatError
	return errors.Is(err, ErrTruncated) || errors.As(err, &fe)
}

// loadStatus maps a load error to its metric label.
func loadStatus(err error) string {
	var (
		oe *OpenError
		fe *FormatError
	)
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrTruncated):
		return "truncated"
	case errors.Is(err, ErrAllocation):
		return "allocation_error"
	case errors.As(err, &fe):
		return "format_error"
	case errors.As(err, &oe):
		return "open_error"
	default:
		return "error"
	}
}
