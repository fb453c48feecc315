package records

import (
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Signature is a caller-computed identity or content value used as a lookup key.
type Signature uint32

func (s Signature) String() string {
	return fmt.Sprintf("%08x", uint32(s))
}

// ParseSignature accepts decimal or 0x-prefixed hexadecimal.
func ParseSignature(s string) (Signature, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid signature %q: %w", s, err)
	}
	return Signature(v), nil
}

func fold(sum uint64) Signature {
	return Signature(uint32(sum) ^ uint32(sum>>32))
}

// PathSignature identifies a scanned path. The path is cleaned first so
// "roms/snes/../snes/a.sfc" and "roms/snes/a.sfc" agree.
func PathSignature(absPath string) Signature {
	return fold(xxhash.Sum64String(filepath.Clean(absPath)))
}

// NameSignature identifies a string such as an emulator configuration name.
func NameSignature(name string) Signature {
	return fold(xxhash.Sum64String(name))
}

// StatHash is the cheap contents hash: it changes whenever the file size or
// modification time does, without reading the file.
func StatHash(size int64, modTime time.Time) Signature {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(size))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(modTime.UnixNano()))
	return fold(xxhash.Sum64(buf[:]))
}

// ContentsHash hashes everything read from r.
func ContentsHash(r io.Reader) (Signature, error) {
	d := xxhash.New()
	if _, err := io.Copy(d, r); err != nil {
		return 0, err
	}
	return fold(d.Sum64()), nil
}
