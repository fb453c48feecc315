package flatstore

import (
	"encoding/binary"
	"fmt"
)

const (
	// Magic identifies a launcher store file.
	Magic = "LCHS"

	// FormatVersion is the current file format version.
	FormatVersion uint16 = 1

	// HeaderSize is the fixed size of the file header in bytes.
	HeaderSize = 16

	// DefaultMaxBytes caps the record array a single load will allocate.
	DefaultMaxBytes int64 = 256 << 20
)

// Header is the persisted store header.
type Header struct {
	Magic      [4]byte
	Version    uint16
	Reserved   uint16
	RecordSize uint32
	EntryCount uint32
}

// NewHeader returns a current-version header for the given record layout.
func NewHeader(recordSize int, entryCount int) Header {
	h := Header{
		Version:    FormatVersion,
		RecordSize: uint32(recordSize),
		EntryCount: uint32(entryCount),
	}
	copy(h.Magic[:], Magic)
	return h
}

// DataSize is the number of record bytes the header declares.
func (h Header) DataSize() uint64 {
	return uint64(h.EntryCount) * uint64(h.RecordSize)
}

// EncodeHeader writes h into the first HeaderSize bytes of dst.
func EncodeHeader(dst []byte, h Header) {
	_ = dst[HeaderSize-1]
	copy(dst[0:4], h.Magic[:])
	binary.LittleEndian.PutUint16(dst[4:6], h.Version)
	binary.LittleEndian.PutUint16(dst[6:8], h.Reserved)
	binary.LittleEndian.PutUint32(dst[8:12], h.RecordSize)
	binary.LittleEndian.PutUint32(dst[12:16], h.EntryCount)
}

// DecodeHeader reads a header from src and checks its magic and version.
func DecodeHeader(src []byte) (Header, error) {
	if len(src) < HeaderSize {
		return Header{}, fmt.Errorf("header needs %d bytes, got %d", HeaderSize, len(src))
	}

	var h Header
	copy(h.Magic[:], src[0:4])
	h.Version = binary.LittleEndian.Uint16(src[4:6])
	h.Reserved = binary.LittleEndian.Uint16(src[6:8])
	h.RecordSize = binary.LittleEndian.Uint32(src[8:12])
	h.EntryCount = binary.LittleEndian.Uint32(src[12:16])

	if string(h.Magic[:]) != Magic {
		return h, fmt.Errorf("%w: %q", ErrBadMagic, h.Magic[:])
	}
	if h.Version != FormatVersion {
		return h, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	return h, nil
}

// Image is a loaded store file: its header and the raw record bytes, exactly
// EntryCount*RecordSize of them.
type Image struct {
	Header Header
	Data   []byte
}

// Len returns the number of records in the image.
func (img Image) Len() int {
	return int(img.Header.EntryCount)
}

// Record returns the bytes of record i. It panics if i is out of range.
func (img Image) Record(i int) []byte {
	size := int(img.Header.RecordSize)
	return img.Data[i*size : (i+1)*size]
}
