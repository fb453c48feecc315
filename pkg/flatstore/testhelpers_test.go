package flatstore

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// pair is the record type the store tests run against.
type pair struct {
	Key   uint32
	Value uint32
}

const rejectKey = 0xdeadbeef

var errRejected = errors.New("rejected key")

type pairCodec struct{}

func (pairCodec) RecordSize() int { return 8 }

func (pairCodec) Encode(dst []byte, p *pair) error {
	if p.Key == rejectKey {
		return errRejected
	}
	binary.LittleEndian.PutUint32(dst[0:4], p.Key)
	binary.LittleEndian.PutUint32(dst[4:8], p.Value)
	return nil
}

func (pairCodec) Decode(src []byte, p *pair) error {
	p.Key = binary.LittleEndian.Uint32(src[0:4])
	p.Value = binary.LittleEndian.Uint32(src[4:8])
	return nil
}

func testStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "pairs.db")
}

// testStore opens a pair store at a fresh path and closes it on cleanup.
func testStore(t *testing.T, opts ...Option) *Store[pair] {
	t.Helper()

	s, err := Open[pair](testStorePath(t), pairCodec{}, opts...)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil && !errors.Is(err, ErrStoreClosed) {
			t.Logf("Warning: Close() failed during cleanup: %v", err)
		}
	})
	return s
}

// writeRawStore writes a header declaring declared records of recordSize
// bytes, followed by body, bypassing the store.
func writeRawStore(t *testing.T, path string, recordSize int, declared uint32, body []byte) {
	t.Helper()

	buf := make([]byte, HeaderSize, HeaderSize+len(body))
	h := NewHeader(recordSize, 0)
	h.EntryCount = declared
	EncodeHeader(buf, h)
	buf = append(buf, body...)

	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("Failed to write raw store: %v", err)
	}
}

func makePairs(n int) []pair {
	out := make([]pair, n)
	for i := range out {
		out[i] = pair{Key: uint32(i * 10), Value: uint32(i*7 + 1)}
	}
	return out
}
