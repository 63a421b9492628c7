package krad

import (
	"fmt"

	"github.com/heartmarshall/kanjirad/internal/charset"
	"github.com/heartmarshall/kanjirad/internal/domain"
)

// CodepointTable maps a 16-bit legacy code to a character.
type CodepointTable interface {
	Lookup(code uint16) (rune, bool)
}

// MultibyteDecoder decodes a legacy multibyte sequence without
// substituting invalid input.
type MultibyteDecoder interface {
	DecodeStrict(b []byte) (string, error)
}

// tokenKind selects the decoding rule for a raw token.
type tokenKind uint8

const (
	kindUnsupported tokenKind = iota
	kindLegacyCode            // 2 bytes, big-endian code looked up in a CodepointTable
	kindMultibyte             // 3 bytes, strict multibyte decode
)

// kindByLen is the dispatch table; an index past its end is unsupported.
var kindByLen = [...]tokenKind{
	2: kindLegacyCode,
	3: kindMultibyte,
}

func classify(n int) tokenKind {
	if n < 0 || n >= len(kindByLen) {
		return kindUnsupported
	}
	return kindByLen[n]
}

func (k tokenKind) String() string {
	switch k {
	case kindLegacyCode:
		return "legacy-code"
	case kindMultibyte:
		return "multibyte"
	default:
		return "unsupported"
	}
}

// DecodeError reports a token that could not be turned into text.
// Kind is one of domain.ErrUnmappedLegacyCode,
// domain.ErrInvalidMultibyteSequence or domain.ErrUnsupportedTokenLength.
type DecodeError struct {
	Kind  error
	Token []byte // copy of the raw bytes
	Code  uint16 // set for 2-byte tokens
	Line  int    // 1-based; 0 when decoded outside a file parse
	Err   error  // collaborator failure, if any
}

func (e *DecodeError) Error() string {
	var detail string
	switch e.Kind {
	case domain.ErrUnmappedLegacyCode:
		detail = fmt.Sprintf("code 0x%04X", e.Code)
	default:
		detail = fmt.Sprintf("token % X (%d bytes)", e.Token, len(e.Token))
	}
	if e.Line > 0 {
		return fmt.Sprintf("krad: decode: line %d: %s: %v", e.Line, detail, e.Kind)
	}
	return fmt.Sprintf("krad: decode: %s: %v", detail, e.Kind)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Decoder turns raw tokens into text. It holds no mutable state and is
// safe for concurrent use when its collaborators are.
type Decoder struct {
	table     CodepointTable
	multibyte MultibyteDecoder
}

// NewDecoder creates a Decoder over the given collaborators.
func NewDecoder(table CodepointTable, multibyte MultibyteDecoder) *Decoder {
	return &Decoder{table: table, multibyte: multibyte}
}

// DefaultDecoder decodes with the JIS X 0208 table and strict EUC-JP.
func DefaultDecoder() *Decoder {
	return NewDecoder(charset.JISX0208{}, charset.EUCJP{})
}

// Decode resolves a single raw token.
func (d *Decoder) Decode(token []byte) (string, error) {
	s, _, err := d.decode(token)
	return s, err
}

func (d *Decoder) decode(token []byte) (string, tokenKind, error) {
	kind := classify(len(token))
	switch kind {
	case kindLegacyCode:
		code := uint16(token[0])<<8 | uint16(token[1])
		r, ok := d.table.Lookup(code)
		if !ok {
			return "", kind, &DecodeError{Kind: domain.ErrUnmappedLegacyCode, Token: clone(token), Code: code}
		}
		return string(r), kind, nil

	case kindMultibyte:
		s, err := d.multibyte.DecodeStrict(token)
		if err != nil {
			return "", kind, &DecodeError{Kind: domain.ErrInvalidMultibyteSequence, Token: clone(token), Err: err}
		}
		return s, kind, nil

	default:
		return "", kind, &DecodeError{Kind: domain.ErrUnsupportedTokenLength, Token: clone(token)}
	}
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
