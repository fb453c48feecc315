package records

import (
	"encoding/binary"

	"github.com/dd0wney/cluso-launcher/pkg/flatstore"
)

// PathInfoSize is the encoded size of a PathInfo.
const PathInfoSize = 8

// PathInfo caches what the scanner last saw at a path, so an unchanged file
// is not hashed again.
type PathInfo struct {
	Signature    Signature // PathSignature of the absolute path
	ContentsHash Signature // StatHash or ContentsHash of the file
}

// PathInfoCodec encodes PathInfo records.
type PathInfoCodec struct{}

func (PathInfoCodec) RecordSize() int { return PathInfoSize }

func (PathInfoCodec) Encode(dst []byte, p *PathInfo) error {
	binary.LittleEndian.PutUint32(dst[0:4], uint32(p.Signature))
	binary.LittleEndian.PutUint32(dst[4:8], uint32(p.ContentsHash))
	return nil
}

func (PathInfoCodec) Decode(src []byte, p *PathInfo) error {
	p.Signature = Signature(binary.LittleEndian.Uint32(src[0:4]))
	p.ContentsHash = Signature(binary.LittleEndian.Uint32(src[4:8]))
	return nil
}

// PathStore is a loaded path-signature store.
type PathStore = flatstore.Store[PathInfo]

// OpenPaths opens or creates the path-signature store at path.
func OpenPaths(path string, opts ...flatstore.Option) (*PathStore, error) {
	return flatstore.Open[PathInfo](path, PathInfoCodec{}, opts...)
}
