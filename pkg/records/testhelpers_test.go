package records

import (
	"path/filepath"
	"testing"
)

func testTargetStore(t *testing.T, targets ...LaunchTarget) *TargetStore {
	t.Helper()

	s, err := OpenTargets(filepath.Join(t.TempDir(), "targets.db"))
	if err != nil {
		t.Fatalf("Failed to open target store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Append(targets...); err != nil {
		t.Fatalf("Failed to append targets: %v", err)
	}
	return s
}

func testPathStore(t *testing.T, infos ...PathInfo) *PathStore {
	t.Helper()

	s, err := OpenPaths(filepath.Join(t.TempDir(), "paths.db"))
	if err != nil {
		t.Fatalf("Failed to open path store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Append(infos...); err != nil {
		t.Fatalf("Failed to append path infos: %v", err)
	}
	return s
}

func target(targetSig, romSig Signature, name string) LaunchTarget {
	return LaunchTarget{
		TargetSignature: targetSig,
		RomSignature:    romSig,
		Name:            name,
		FileName:        name + ".sfc",
		Path:            "/roms/snes/" + name + ".sfc",
		Platform:        "snes",
	}
}
