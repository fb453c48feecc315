package records

import (
	"encoding/binary"

	"github.com/dd0wney/cluso-launcher/pkg/flatstore"
)

// Fixed widths of the LaunchTarget string fields, terminating zero included.
const (
	NameWidth     = 256
	FileNameWidth = 256
	MaxPath       = 4096
	PlatformWidth = 256
)

// Byte offsets of the LaunchTarget fields.
const (
	offTargetSignature = 0
	offRomSignature    = offTargetSignature + 4
	offName            = offRomSignature + 4
	offFileName        = offName + NameWidth
	offPath            = offFileName + FileNameWidth
	offPlatform        = offPath + MaxPath

	// LaunchTargetSize is the encoded size of a LaunchTarget.
	LaunchTargetSize = offPlatform + PlatformWidth
)

// LaunchTarget is one playable entry: which emulator configuration
// (TargetSignature) runs which scanned ROM (RomSignature), plus what the
// launcher shows and needs to start it.
type LaunchTarget struct {
	TargetSignature Signature
	RomSignature    Signature
	Name            string
	FileName        string
	Path            string
	Platform        string
}

// NewLaunchTarget builds a target and checks that every string fits its field.
func NewLaunchTarget(target, rom Signature, name, fileName, path, platform string) (LaunchTarget, error) {
	t := LaunchTarget{
		TargetSignature: target,
		RomSignature:    rom,
		Name:            name,
		FileName:        fileName,
		Path:            path,
		Platform:        platform,
	}
	var scratch [LaunchTargetSize]byte
	if err := (LaunchTargetCodec{}).Encode(scratch[:], &t); err != nil {
		return LaunchTarget{}, err
	}
	return t, nil
}

// LaunchTargetCodec encodes LaunchTarget records.
type LaunchTargetCodec struct{}

func (LaunchTargetCodec) RecordSize() int { return LaunchTargetSize }

func (LaunchTargetCodec) Encode(dst []byte, t *LaunchTarget) error {
	binary.LittleEndian.PutUint32(dst[offTargetSignature:], uint32(t.TargetSignature))
	binary.LittleEndian.PutUint32(dst[offRomSignature:], uint32(t.RomSignature))
	if err := putFixed(dst[offName:offFileName], "name", t.Name); err != nil {
		return err
	}
	if err := putFixed(dst[offFileName:offPath], "file name", t.FileName); err != nil {
		return err
	}
	if err := putFixed(dst[offPath:offPlatform], "path", t.Path); err != nil {
		return err
	}
	return putFixed(dst[offPlatform:LaunchTargetSize], "platform", t.Platform)
}

func (LaunchTargetCodec) Decode(src []byte, t *LaunchTarget) error {
	t.TargetSignature = Signature(binary.LittleEndian.Uint32(src[offTargetSignature:]))
	t.RomSignature = Signature(binary.LittleEndian.Uint32(src[offRomSignature:]))
	fields := []struct {
		dst  *string
		name string
		src  []byte
	}{
		{&t.Name, "name", src[offName:offFileName]},
		{&t.FileName, "file name", src[offFileName:offPath]},
		{&t.Path, "path", src[offPath:offPlatform]},
		{&t.Platform, "platform", src[offPlatform:LaunchTargetSize]},
	}
	for _, f := range fields {
		v, err := getFixed(f.src, f.name)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

// TargetStore is a loaded launch-target store.
type TargetStore = flatstore.Store[LaunchTarget]

// OpenTargets opens or creates the launch-target store at path.
func OpenTargets(path string, opts ...flatstore.Option) (*TargetStore, error) {
	return flatstore.Open[LaunchTarget](path, LaunchTargetCodec{}, opts...)
}
