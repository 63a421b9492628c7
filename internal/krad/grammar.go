package krad

import (
	"bytes"
	"fmt"

	"github.com/heartmarshall/kanjirad/internal/domain"
)

const (
	newline       = '\n'
	commentMarker = '#'
	radicalDelim  = ' '
)

// separator sits between the kanji field and the radical fields.
var separator = []byte(" : ")

// Span is a half-open byte range [Start, End) into the parsed buffer.
// It never owns bytes; resolve it with Bytes while the buffer is alive.
type Span struct {
	Start int
	End   int
}

// Len returns the span width in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Bytes returns the slice of buf the span refers to.
func (s Span) Bytes(buf []byte) []byte { return buf[s.Start:s.End:s.End] }

// RawRecord is one undecoded data line.
type RawRecord struct {
	Line     int // 1-based
	Kanji    Span
	Radicals []Span
}

// GrammarError reports input that does not match the line/record grammar.
type GrammarError struct {
	Line   int // 1-based; 0 when the error is not tied to a line
	Offset int // byte offset of the line start
	Reason string
}

func (e *GrammarError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("krad: grammar: %s", e.Reason)
	}
	return fmt.Sprintf("krad: grammar: line %d (offset %d): %s", e.Line, e.Offset, e.Reason)
}

func (e *GrammarError) Unwrap() error { return domain.ErrGrammar }

// lineStats counts what the grammar saw.
type lineStats struct {
	total    int
	comments int
}

// ParseGrammar splits buf into raw records, skipping comment lines.
// Every line, the last included, must end with a newline.
func ParseGrammar(buf []byte) ([]RawRecord, error) {
	records, _, err := parseGrammar(buf)
	return records, err
}

func parseGrammar(buf []byte) ([]RawRecord, lineStats, error) {
	var stats lineStats
	if len(buf) == 0 {
		return nil, stats, &GrammarError{Reason: "empty input"}
	}

	// One record per newline is an upper bound.
	records := make([]RawRecord, 0, bytes.Count(buf, []byte{newline}))

	for pos := 0; pos < len(buf); {
		stats.total++
		lineNo := stats.total

		n := bytes.IndexByte(buf[pos:], newline)
		if n < 0 {
			return nil, stats, &GrammarError{Line: lineNo, Offset: pos, Reason: "missing line terminator"}
		}
		start, end := pos, pos+n
		pos = end + 1

		if buf[start] == commentMarker {
			stats.comments++
			continue
		}

		rec, reason := parseDataLine(buf, start, end)
		if reason != "" {
			return nil, stats, &GrammarError{Line: lineNo, Offset: start, Reason: reason}
		}
		rec.Line = lineNo
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, stats, &GrammarError{Reason: "no records (input holds only comment lines)"}
	}

	return records, stats, nil
}

// parseDataLine matches `kanji " : " radical (" " radical)*` over
// buf[start:end]. A non-empty reason means the line does not match.
func parseDataLine(buf []byte, start, end int) (RawRecord, string) {
	line := buf[start:end]

	sep := bytes.Index(line, separator)
	if sep < 0 {
		return RawRecord{}, "missing separator \" : \""
	}
	if sep == 0 {
		return RawRecord{}, "empty kanji field"
	}
	if bytes.IndexByte(line[:sep], radicalDelim) >= 0 {
		return RawRecord{}, "kanji field contains a space"
	}

	rec := RawRecord{Kanji: Span{Start: start, End: start + sep}}

	fieldStart := start + sep + len(separator)
	for i := fieldStart; ; i++ {
		if i < end && buf[i] != radicalDelim {
			continue
		}
		if i == fieldStart {
			return RawRecord{}, fmt.Sprintf("empty radical field at column %d", i-start+1)
		}
		rec.Radicals = append(rec.Radicals, Span{Start: fieldStart, End: i})
		if i == end {
			break
		}
		fieldStart = i + 1
	}

	return rec, ""
}
