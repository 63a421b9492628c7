package krad

import (
	"errors"
	"testing"

	"github.com/heartmarshall/kanjirad/internal/domain"
)

func spanText(buf []byte, s Span) string { return string(s.Bytes(buf)) }

func TestParseGrammar_SingleLine(t *testing.T) {
	buf := []byte("AB : CD EF GHI\n")

	records, err := ParseGrammar(buf)
	if err != nil {
		t.Fatalf("ParseGrammar returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Line != 1 {
		t.Errorf("Line: got %d, want 1", rec.Line)
	}
	if rec.Kanji != (Span{Start: 0, End: 2}) {
		t.Errorf("Kanji span: got %+v, want {0 2}", rec.Kanji)
	}

	want := []string{"CD", "EF", "GHI"}
	if len(rec.Radicals) != len(want) {
		t.Fatalf("expected %d radicals, got %d", len(want), len(rec.Radicals))
	}
	for i, w := range want {
		if got := spanText(buf, rec.Radicals[i]); got != w {
			t.Errorf("radical[%d]: got %q, want %q", i, got, w)
		}
	}
}

func TestParseGrammar_Comments(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantKanji   []string
		wantLines   []int
		wantTotal   int
		wantComment int
	}{
		{
			name:        "leading comment",
			input:       "# note\nAB : CD\n",
			wantKanji:   []string{"AB"},
			wantLines:   []int{2},
			wantTotal:   2,
			wantComment: 1,
		},
		{
			name:        "consecutive leading comments",
			input:       "# one\n# two\n#\nAB : CD\n",
			wantKanji:   []string{"AB"},
			wantLines:   []int{4},
			wantTotal:   4,
			wantComment: 3,
		},
		{
			name:        "comments between records",
			input:       "AB : CD\n# x\n# y\nEF : GH\n# z\nIJ : KL\n",
			wantKanji:   []string{"AB", "EF", "IJ"},
			wantLines:   []int{1, 4, 6},
			wantTotal:   6,
			wantComment: 3,
		},
		{
			name:        "trailing comment suffix",
			input:       "AB : CD\n# end\n# really\n",
			wantKanji:   []string{"AB"},
			wantLines:   []int{1},
			wantTotal:   3,
			wantComment: 2,
		},
		{
			name:        "comment containing separator",
			input:       "# AB : CD\nEF : GH\n",
			wantKanji:   []string{"EF"},
			wantLines:   []int{2},
			wantTotal:   2,
			wantComment: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := []byte(tt.input)
			records, stats, err := parseGrammar(buf)
			if err != nil {
				t.Fatalf("parseGrammar returned error: %v", err)
			}
			if len(records) != len(tt.wantKanji) {
				t.Fatalf("expected %d records, got %d", len(tt.wantKanji), len(records))
			}
			for i, rec := range records {
				if got := spanText(buf, rec.Kanji); got != tt.wantKanji[i] {
					t.Errorf("record[%d] kanji: got %q, want %q", i, got, tt.wantKanji[i])
				}
				if rec.Line != tt.wantLines[i] {
					t.Errorf("record[%d] line: got %d, want %d", i, rec.Line, tt.wantLines[i])
				}
			}
			if stats.total != tt.wantTotal {
				t.Errorf("total lines: got %d, want %d", stats.total, tt.wantTotal)
			}
			if stats.comments != tt.wantComment {
				t.Errorf("comment lines: got %d, want %d", stats.comments, tt.wantComment)
			}
		})
	}
}

func TestParseGrammar_DuplicateRadicalsKept(t *testing.T) {
	buf := []byte("AB : CD CD CD\n")

	records, err := ParseGrammar(buf)
	if err != nil {
		t.Fatalf("ParseGrammar returned error: %v", err)
	}
	if n := len(records[0].Radicals); n != 3 {
		t.Fatalf("expected 3 radicals, got %d", n)
	}
	for i, s := range records[0].Radicals {
		if got := spanText(buf, s); got != "CD" {
			t.Errorf("radical[%d]: got %q, want %q", i, got, "CD")
		}
	}
}

func TestParseGrammar_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{"empty input", "", 0},
		{"only comments", "# a\n# b\n", 0},
		{"missing trailing newline", "AB : CD", 1},
		{"missing trailing newline after comment", "AB : CD\n# end", 2},
		{"missing separator", "AB CD\n", 1},
		{"separator without spaces", "AB:CD\n", 1},
		{"empty kanji field", " : CD\n", 1},
		{"kanji field with space", "A B : CD\n", 1},
		{"empty radical field", "AB : \n", 1},
		{"double space between radicals", "AB : CD  EF\n", 1},
		{"trailing space", "AB : CD \n", 1},
		{"blank line", "AB : CD\n\nEF : GH\n", 2},
		{"error after comments", "# a\n# b\nAB\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseGrammar([]byte(tt.input))
			if err == nil {
				t.Fatalf("expected error, got %d records", len(records))
			}
			if records != nil {
				t.Errorf("expected nil records on error, got %d", len(records))
			}
			if !errors.Is(err, domain.ErrGrammar) {
				t.Errorf("error should wrap domain.ErrGrammar, got %v", err)
			}
			var gerr *GrammarError
			if !errors.As(err, &gerr) {
				t.Fatalf("expected *GrammarError, got %T", err)
			}
			if gerr.Line != tt.wantLine {
				t.Errorf("Line: got %d, want %d", gerr.Line, tt.wantLine)
			}
		})
	}
}

func TestGrammarError_Message(t *testing.T) {
	err := &GrammarError{Line: 3, Offset: 17, Reason: "missing separator"}
	if got, want := err.Error(), "krad: grammar: line 3 (offset 17): missing separator"; got != want {
		t.Errorf("Error(): got %q, want %q", got, want)
	}

	err = &GrammarError{Reason: "empty input"}
	if got, want := err.Error(), "krad: grammar: empty input"; got != want {
		t.Errorf("Error(): got %q, want %q", got, want)
	}
}

func TestSpan_BytesDoesNotAllowOverwrite(t *testing.T) {
	buf := []byte("AB : CD\n")
	s := Span{Start: 0, End: 2}

	b := s.Bytes(buf)
	b = append(b, 'X')
	if string(buf) != "AB : CD\n" {
		t.Errorf("append through span modified the buffer: %q", buf)
	}
	if s.Len() != 2 {
		t.Errorf("Len: got %d, want 2", s.Len())
	}
	_ = b
}
