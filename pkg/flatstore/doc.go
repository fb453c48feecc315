// Package flatstore persists fixed-size records in a single flat file.
//
// A store file is a 16 byte header followed by a contiguous array of records
// of one type:
//
//	offset 0  magic       [4]byte "LCHS"
//	offset 4  version     uint16
//	offset 6  reserved    uint16
//	offset 8  recordSize  uint32
//	offset 12 entryCount  uint32
//	offset 16 entries[entryCount], recordSize bytes each
//
// All integers are little-endian on every platform. A zero-length file is a
// valid empty store, so a missing file is simply created on first open.
//
// The whole file is read into memory when a store is opened and written back
// wholesale by Flush, which replaces the file through a temporary file and a
// rename. There is no locking: a store file must have exactly one writer, and
// keeping it that way is the job of the application that owns the file.
package flatstore
