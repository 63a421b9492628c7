// Package charset supplies the two legacy Japanese decoders a KRADFILE
// needs: a static JIS X 0208 codepoint table keyed by the EUC-JP form of
// the code, and a strict EUC-JP decoder for 3-byte JIS X 0212 sequences.
//
// Both are backed by golang.org/x/text/encoding/japanese.
package charset
