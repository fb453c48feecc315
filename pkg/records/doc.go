// Package records defines the two record kinds kept in launcher store files,
// PathInfo and LaunchTarget, their fixed-size encodings, the signatures that
// identify them, and lookups over loaded stores.
//
// Signatures are computed by whoever produces the records (the ROM scanner
// and the emulator resolver). The store never computes or checks them and
// does not enforce uniqueness. PathSignature, NameSignature, StatHash and
// ContentsHash are the reference derivations those producers share.
package records
