package flatstore

import (
	"fmt"
	"math"
	"os"

	"github.com/dd0wney/cluso-launcher/pkg/logging"
)

// Codec converts one record to and from its fixed-size on-disk form.
// Encode receives a zeroed slice of exactly RecordSize bytes.
type Codec[T any] interface {
	RecordSize() int
	Encode(dst []byte, rec *T) error
	Decode(src []byte, rec *T) error
}

// Store is a loaded store file: the open handle plus the decoded records in
// insertion order. A Store is not safe for concurrent use.
type Store[T any] struct {
	path    string
	file    *os.File
	codec   Codec[T]
	records []T
	opts    *options
	dirty   bool
	closed  bool
}

// Open loads the store at path, creating an empty one if it does not exist,
// and decodes every record with codec. Errors are those of Load, plus a
// *FormatError for records the codec rejects.
func Open[T any](path string, codec Codec[T], opts ...Option) (*Store[T], error) {
	o := newOptions(path, opts)

	f, img, err := load(path, codec.RecordSize(), o)
	if err != nil {
		return nil, err
	}

	records := make([]T, img.Len())
	for i := range records {
		if err := codec.Decode(img.Record(i), &records[i]); err != nil {
			f.Close()
			return nil, &FormatError{Path: path, Cause: fmt.Errorf("record %d: %w", i, err)}
		}
	}

	return &Store[T]{
		path:    path,
		file:    f,
		codec:   codec,
		records: records,
		opts:    o,
	}, nil
}

// Path returns the file the store was opened from.
func (s *Store[T]) Path() string {
	return s.path
}

// Name returns the store label used in logs and metrics.
func (s *Store[T]) Name() string {
	return s.opts.name
}

// Header describes the store as it would be written by Flush.
func (s *Store[T]) Header() Header {
	return NewHeader(s.codec.RecordSize(), len(s.records))
}

// EntryCount returns the number of records.
func (s *Store[T]) EntryCount() uint32 {
	return uint32(len(s.records))
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	return len(s.records)
}

// Records returns the record array in insertion order. Elements may be
// modified in place; call MarkDirty so Close writes them back.
func (s *Store[T]) Records() []T {
	return s.records
}

// Get returns a pointer to record i for in-place reads and edits.
func (s *Store[T]) Get(i int) (*T, error) {
	if s.closed {
		return nil, ErrStoreClosed
	}
	if i < 0 || i >= len(s.records) {
		return nil, fmt.Errorf("%w: %d (store holds %d)", ErrIndexOutOfRange, i, len(s.records))
	}
	return &s.records[i], nil
}

// Find scans forward in insertion order and returns the index of the first
// record match accepts. The bool is false when nothing matches, which is not
// an error.
func (s *Store[T]) Find(match func(*T) bool) (int, bool) {
	for i := range s.records {
		if match(&s.records[i]) {
			s.recordLookup(true)
			return i, true
		}
	}
	s.recordLookup(false)
	return -1, false
}

func (s *Store[T]) recordLookup(found bool) {
	if s.opts.metrics != nil {
		s.opts.metrics.RecordLookup(s.opts.name, found)
	}
}

// Dirty reports whether the in-memory records differ from the file.
func (s *Store[T]) Dirty() bool {
	return s.dirty
}

// MarkDirty flags records edited through Get or Records for write-back.
func (s *Store[T]) MarkDirty() {
	s.dirty = true
}

// Append adds records at the end. Every record is encoded first, so a record
// the codec rejects leaves the store unchanged.
func (s *Store[T]) Append(recs ...T) error {
	if s.closed {
		return ErrStoreClosed
	}
	if err := s.fits(len(s.records) + len(recs)); err != nil {
		return err
	}
	for i := range recs {
		if err := s.check(&recs[i]); err != nil {
			return fmt.Errorf("append record %d: %w", i, err)
		}
	}
	s.records = append(s.records, recs...)
	s.dirty = true
	return nil
}

// Set replaces record i.
func (s *Store[T]) Set(i int, rec T) error {
	if s.closed {
		return ErrStoreClosed
	}
	if i < 0 || i >= len(s.records) {
		return fmt.Errorf("%w: %d (store holds %d)", ErrIndexOutOfRange, i, len(s.records))
	}
	if err := s.check(&rec); err != nil {
		return fmt.Errorf("set record %d: %w", i, err)
	}
	s.records[i] = rec
	s.dirty = true
	return nil
}

// Truncate drops every record from index n on.
func (s *Store[T]) Truncate(n int) error {
	if s.closed {
		return ErrStoreClosed
	}
	if n < 0 || n > len(s.records) {
		return fmt.Errorf("%w: %d (store holds %d)", ErrIndexOutOfRange, n, len(s.records))
	}
	if n == len(s.records) {
		return nil
	}
	clear(s.records[n:])
	s.records = s.records[:n]
	s.dirty = true
	return nil
}

// fits reports whether n records stay within what Load accepts: the uint32
// entry count and the byte limit the store was opened with.
func (s *Store[T]) fits(n int) error {
	if uint64(n) > math.MaxUint32 {
		return fmt.Errorf("%w: %d records exceed the entry count limit", ErrStoreFull, n)
	}
	size := uint64(n) * uint64(s.codec.RecordSize())
	if size > uint64(s.opts.maxBytes) {
		return fmt.Errorf("%w: %d record bytes exceed the %d byte load limit", ErrStoreFull, size, s.opts.maxBytes)
	}
	return nil
}

func (s *Store[T]) check(rec *T) error {
	buf := make([]byte, s.codec.RecordSize())
	return s.codec.Encode(buf, rec)
}

func (s *Store[T]) logger() logging.Logger {
	return s.opts.logger
}
