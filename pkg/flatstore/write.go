package flatstore

import (
	"fmt"

	"github.com/dd0wney/cluso-launcher/pkg/logging"
)

// Encode renders the header and every record exactly as Flush writes them.
func (s *Store[T]) Encode() ([]byte, error) {
	size := s.codec.RecordSize()
	buf := make([]byte, HeaderSize+len(s.records)*size)
	EncodeHeader(buf, s.Header())

	for i := range s.records {
		off := HeaderSize + i*size
		if err := s.codec.Encode(buf[off:off+size], &s.records[i]); err != nil {
			return nil, fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return buf, nil
}

// Flush writes the header and the full record array back to the file. The
// file is replaced through a temporary file and a rename, so a crash leaves
// either the previous or the new contents, never a mix.
func (s *Store[T]) Flush() error {
	if s.closed {
		return ErrStoreClosed
	}
	if err := s.fits(len(s.records)); err != nil {
		s.recordFlush("error")
		return fmt.Errorf("store %s: %w", s.path, err)
	}

	data, err := s.Encode()
	if err != nil {
		s.recordFlush("error")
		return &FormatError{Path: s.path, Cause: err}
	}

	f, err := replaceFile(s.path, data, s.file)
	s.file = f
	if err != nil {
		s.recordFlush("error")
		s.logger().Error("store flush failed", logging.Path(s.path), logging.Error(err))
		return &OpenError{Op: "write", Path: s.path, Cause: err}
	}

	s.dirty = false
	s.recordFlush("success")
	if s.opts.metrics != nil {
		s.opts.metrics.SetStoreSize(s.opts.name, len(s.records), int64(len(data)))
	}
	s.logger().Debug("store flushed",
		logging.Path(s.path),
		logging.Records(len(s.records)),
		logging.Int64("bytes", int64(len(data))),
	)
	return nil
}

func (s *Store[T]) recordFlush(status string) {
	if s.opts.metrics != nil {
		s.opts.metrics.RecordFlush(s.opts.name, status)
	}
}

// Close writes back pending changes and releases the file handle.
func (s *Store[T]) Close() error {
	if s.closed {
		return ErrStoreClosed
	}

	var flushErr error
	if s.dirty {
		flushErr = s.Flush()
	}
	s.closed = true

	if s.file == nil {
		return flushErr
	}
	closeErr := s.file.Close()
	s.file = nil
	if flushErr != nil {
		return flushErr
	}
	if closeErr != nil {
		return &OpenError{Op: "close", Path: s.path, Cause: closeErr}
	}
	return nil
}
