package records

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// SignatureKind selects which LaunchTarget signature a lookup compares.
type SignatureKind int

const (
	TargetKind SignatureKind = iota
	RomKind
)

func (k SignatureKind) String() string {
	switch k {
	case TargetKind:
		return "target"
	case RomKind:
		return "rom"
	default:
		return fmt.Sprintf("SignatureKind(%d)", int(k))
	}
}

// All lookups scan forward in insertion order and return the first match.
// A false result means not found, which is an ordinary outcome.

// FindByTargetSignature returns the index of the first target with the given
// emulator configuration signature.
func FindByTargetSignature(s *TargetStore, sig Signature) (int, bool) {
	return s.Find(func(t *LaunchTarget) bool { return t.TargetSignature == sig })
}

// FindByRomSignature returns the index of the first target for the given ROM.
func FindByRomSignature(s *TargetStore, sig Signature) (int, bool) {
	return s.Find(func(t *LaunchTarget) bool { return t.RomSignature == sig })
}

// FindBySignature dispatches on kind. Unknown kinds never match.
func FindBySignature(s *TargetStore, kind SignatureKind, sig Signature) (int, bool) {
	switch kind {
	case TargetKind:
		return FindByTargetSignature(s, sig)
	case RomKind:
		return FindByRomSignature(s, sig)
	default:
		return -1, false
	}
}

// FindByName returns the first target whose name contains query. Matching is
// case-sensitive and there is no ranking: "Game" finds whichever matching
// target was stored first.
func FindByName(s *TargetStore, query string) (int, bool) {
	return s.Find(func(t *LaunchTarget) bool { return strings.Contains(t.Name, query) })
}

// MatchNames returns the indexes of every target whose name matches the glob
// pattern, in insertion order.
func MatchNames(s *TargetStore, pattern string) ([]int, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid name pattern %q: %w", pattern, err)
	}

	var matches []int
	for i, t := range s.Records() {
		if g.Match(t.Name) {
			matches = append(matches, i)
		}
	}
	return matches, nil
}

// FindPath returns the index of the PathInfo with the given path signature.
func FindPath(s *PathStore, sig Signature) (int, bool) {
	return s.Find(func(p *PathInfo) bool { return p.Signature == sig })
}

// PathChanged reports whether the file identified by sig needs rescanning:
// either it was never recorded or its contents hash differs.
func PathChanged(s *PathStore, sig, contentsHash Signature) bool {
	i, ok := FindPath(s, sig)
	if !ok {
		return true
	}
	return s.Records()[i].ContentsHash != contentsHash
}

// RecordPath stores the contents hash for sig, updating the existing entry in
// place or appending a new one. It reports whether anything changed.
func RecordPath(s *PathStore, sig, contentsHash Signature) (bool, error) {
	if i, ok := FindPath(s, sig); ok {
		if s.Records()[i].ContentsHash == contentsHash {
			return false, nil
		}
		return true, s.Set(i, PathInfo{Signature: sig, ContentsHash: contentsHash})
	}
	return true, s.Append(PathInfo{Signature: sig, ContentsHash: contentsHash})
}
