package flatstore

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/dd0wney/cluso-launcher/pkg/logging"
)

// Load opens or creates the store file at path and reads it whole. It returns
// the open read-write handle, the header and record bytes, or a typed error:
// *OpenError, *TruncatedStoreError, *AllocationError or *FormatError. A missing
// or zero-length file loads as an empty image. On error no handle is returned.
func Load(path string, recordSize int, opts ...Option) (*os.File, Image, error) {
	return load(path, recordSize, newOptions(path, opts))
}

func load(path string, recordSize int, o *options) (*os.File, Image, error) {
	start := time.Now()
	timer := logging.StartTimer(o.logger, "store loaded", logging.Path(path), logging.RecordSize(recordSize))

	f, img, err := loadFile(path, recordSize, o)
	if o.metrics != nil {
		o.metrics.RecordLoad(o.name, loadStatus(err), time.Since(start))
	}
	if err != nil {
		timer.EndError(err)
		if IsCorrupt(err) && o.metrics != nil {
			o.metrics.RecordCorruption(o.name, loadStatus(err))
		}
		return nil, Image{}, err
	}

	timer.End(logging.Records(img.Len()))
	if o.metrics != nil {
		o.metrics.SetStoreSize(o.name, img.Len(), HeaderSize+int64(len(img.Data)))
	}
	return f, img, nil
}

func loadFile(path string, recordSize int, o *options) (*os.File, Image, error) {
	if recordSize <= 0 || uint64(recordSize) > math.MaxUint32 {
		return nil, Image{}, &FormatError{Path: path, Cause: fmt.Errorf("%w: %d", ErrInvalidRecordSize, recordSize)}
	}

	f, created, err := openOrCreate(path)
	if err != nil {
		return nil, Image{}, err
	}
	if created {
		o.logger.Debug("created empty store", logging.Path(path))
	}

	img, err := readImage(f, path, recordSize, o.maxBytes)
	if err != nil {
		f.Close()
		return nil, Image{}, err
	}
	return f, img, nil
}

// readImage validates the header against the file size before allocating, so
// a corrupt entry count is reported as truncation rather than a huge
// allocation.
func readImage(f *os.File, path string, recordSize int, maxBytes int64) (Image, error) {
	info, err := f.Stat()
	if err != nil {
		return Image{}, &OpenError{Op: "stat", Path: path, Cause: err}
	}
	size := info.Size()

	if size == 0 {
		return Image{Header: NewHeader(recordSize, 0)}, nil
	}
	if size < HeaderSize {
		return Image{}, &TruncatedStoreError{Path: path, Size: size}
	}

	var raw [HeaderSize]byte
	if _, err := f.ReadAt(raw[:], 0); err != nil {
		return Image{}, &OpenError{Op: "read", Path: path, Cause: err}
	}
	h, err := DecodeHeader(raw[:])
	if err != nil {
		return Image{}, &FormatError{Path: path, Cause: err}
	}
	if int(h.RecordSize) != recordSize {
		return Image{}, &FormatError{
			Path:  path,
			Cause: fmt.Errorf("%w: file has %d byte records, caller expects %d", ErrRecordSizeMismatch, h.RecordSize, recordSize),
		}
	}

	available := uint64(size - HeaderSize)
	declared := h.DataSize()
	if available < declared {
		return Image{}, &TruncatedStoreError{
			Path:     path,
			Declared: h.EntryCount,
			Present:  uint32(available / uint64(recordSize)),
			Size:     size,
		}
	}
	if available > declared {
		return Image{}, &FormatError{
			Path:  path,
			Cause: fmt.Errorf("%w: %d bytes", ErrTrailingData, available-declared),
		}
	}
	if declared > uint64(maxBytes) || declared > math.MaxInt {
		return Image{}, &AllocationError{Path: path, Requested: declared, Limit: maxBytes}
	}

	data := make([]byte, declared)
	n, err := f.ReadAt(data, HeaderSize)
	if err != nil && !(errors.Is(err, io.EOF) && uint64(n) == declared) {
		if errors.Is(err, io.EOF) {
			// The file shrank between Stat and ReadAt.
			return Image{}, &TruncatedStoreError{
				Path:     path,
				Declared: h.EntryCount,
				Present:  uint32(n / recordSize),
				Size:     HeaderSize + int64(n),
			}
		}
		return Image{}, &OpenError{Op: "read", Path: path, Cause: err}
	}

	return Image{Header: h, Data: data}, nil
}
