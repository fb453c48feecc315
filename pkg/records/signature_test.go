package records

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathSignature(t *testing.T) {
	a := PathSignature("/roms/snes/a.sfc")

	assert.Equal(t, a, PathSignature("/roms/snes/a.sfc"), "deterministic")
	assert.Equal(t, a, PathSignature("/roms/snes/../snes/a.sfc"), "paths are cleaned")
	assert.NotEqual(t, a, PathSignature("/roms/snes/b.sfc"))
}

func TestNameSignature(t *testing.T) {
	assert.Equal(t, NameSignature("snes9x"), NameSignature("snes9x"))
	assert.NotEqual(t, NameSignature("snes9x"), NameSignature("bsnes"))
}

func TestStatHash(t *testing.T) {
	mtime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	base := StatHash(1024, mtime)
	assert.Equal(t, base, StatHash(1024, mtime))
	assert.NotEqual(t, base, StatHash(1025, mtime), "size change")
	assert.NotEqual(t, base, StatHash(1024, mtime.Add(time.Second)), "mtime change")
}

func TestContentsHash(t *testing.T) {
	h1, err := ContentsHash(strings.NewReader("rom bytes"))
	require.NoError(t, err)
	h2, err := ContentsHash(strings.NewReader("rom bytes"))
	require.NoError(t, err)
	h3, err := ContentsHash(strings.NewReader("rom bytez"))
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}

func TestParseSignature(t *testing.T) {
	tests := []struct {
		input   string
		want    Signature
		wantErr bool
	}{
		{"20", 20, false},
		{"0x14", 20, false},
		{"0xffffffff", 0xffffffff, false},
		{"0x100000000", 0, true},
		{"zelda", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSignature(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignatureString(t *testing.T) {
	assert.Equal(t, "0000001f", Signature(0x1f).String())
	assert.Equal(t, "cafebabe", Signature(0xcafebabe).String())
}
