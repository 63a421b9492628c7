package charset

import (
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const (
	eucLow  = 0xa1
	eucHigh = 0xfe
	rowLen  = eucHigh - eucLow + 1 // 94
)

// jisx0208Table holds the JIS X 0208 character set arranged by ku and ten,
// addressed through the high-bit (EUC) form of each byte.
type jisx0208Table struct {
	// data[ku][ten] is the BMP code point at that zone and position, or 0.
	data [rowLen][rowLen]uint16
	size int
	once sync.Once
}

var jisx0208 jisx0208Table

// JISX0208 is the legacy 2-byte codepoint table. The zero value is ready
// to use; the table is built on first lookup.
type JISX0208 struct{}

// Lookup returns the character for a big-endian EUC-JP code such as 0xB0A1.
// Codes outside 0xA1A1–0xFEFE and unassigned positions report false.
func (JISX0208) Lookup(code uint16) (rune, bool) {
	jisx0208.once.Do(jisx0208.build)

	hi, lo := byte(code>>8), byte(code)
	if hi < eucLow || hi > eucHigh || lo < eucLow || lo > eucHigh {
		return 0, false
	}
	u := jisx0208.data[hi-eucLow][lo-eucLow]
	if u == 0 {
		return 0, false
	}
	return rune(u), true
}

// Len returns the number of assigned codes in the table.
func (JISX0208) Len() int {
	jisx0208.once.Do(jisx0208.build)
	return jisx0208.size
}

func (t *jisx0208Table) build() {
	dec := japanese.EUCJP.NewDecoder()
	var pair [2]byte
	for ku := range rowLen {
		for ten := range rowLen {
			pair[0], pair[1] = byte(eucLow+ku), byte(eucLow+ten)
			out, _, err := transform.Bytes(dec, pair[:])
			if err != nil {
				continue
			}
			r, size := utf8.DecodeRune(out)
			if size != len(out) || r == utf8.RuneError || r > 0xffff {
				continue
			}
			t.data[ku][ten] = uint16(r)
			t.size++
		}
	}
}
