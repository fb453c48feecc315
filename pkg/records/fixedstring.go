package records

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFieldTooLong      = errors.New("string does not fit its fixed-width field")
	ErrFieldContainsNUL  = errors.New("string contains a NUL byte")
	ErrFieldUnterminated = errors.New("fixed-width field has no terminating zero")
)

// putFixed writes s zero-padded into dst. One byte is always left for the
// terminating zero, so the longest storable string is len(dst)-1 bytes.
func putFixed(dst []byte, field, s string) error {
	if len(s) >= len(dst) {
		return fmt.Errorf("%s: %w (%d bytes, max %d)", field, ErrFieldTooLong, len(s), len(dst)-1)
	}
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("%s: %w", field, ErrFieldContainsNUL)
	}
	n := copy(dst, s)
	clear(dst[n:])
	return nil
}

// getFixed reads a zero-padded string, stopping at the first zero byte. A
// field without one was not written by putFixed and is rejected.
func getFixed(src []byte, field string) (string, error) {
	i := bytes.IndexByte(src, 0)
	if i < 0 {
		return "", fmt.Errorf("%s: %w", field, ErrFieldUnterminated)
	}
	return string(src[:i]), nil
}
