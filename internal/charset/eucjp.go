package charset

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// ErrInvalidSequence is returned by EUCJP.DecodeStrict for input that does
// not decode cleanly.
var ErrInvalidSequence = errors.New("charset: invalid EUC-JP sequence")

// EUCJP decodes EUC-JP bytes without substitution. The zero value is ready
// to use and safe for concurrent use.
type EUCJP struct{}

// DecodeStrict decodes b as EUC-JP. Any byte sequence the decoder would
// replace with U+FFFD is an error rather than a replacement.
func (EUCJP) DecodeStrict(b []byte) (string, error) {
	if len(b) == 0 {
		return "", fmt.Errorf("%w: empty input", ErrInvalidSequence)
	}

	out, _, err := transform.Bytes(japanese.EUCJP.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("%w: % x: %v", ErrInvalidSequence, b, err)
	}
	if len(out) == 0 || !utf8.Valid(out) || bytes.ContainsRune(out, utf8.RuneError) {
		return "", fmt.Errorf("%w: % x", ErrInvalidSequence, b)
	}

	return string(out), nil
}
