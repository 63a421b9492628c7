// Package krad parses KRADFILE kanji decomposition dictionaries.
// Pure function: file path or byte buffer in, domain structs out.
// No database dependencies, no logging.
//
// The format is EUC-JP text, one kanji per line:
//
//	<kanji> " : " <radical> [" " <radical>]... "\n"
//
// with "#" comment lines anywhere. A 2-byte token is a JIS X 0208 code and
// a 3-byte token a JIS X 0212 sequence. Any malformed line or token fails
// the whole parse.
package krad

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/kanjirad/internal/domain"
)

// ParseResult holds the decoded dictionary in file order.
type ParseResult struct {
	Decompositions []domain.Decomposition
	Stats          Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines      int
	CommentLines    int
	Records         int
	Radicals        int
	LegacyTokens    int
	MultibyteTokens int
}

// Option configures a Parser.
type Option func(*Parser)

// WithDecoder replaces the default JIS X 0208 / EUC-JP decoder.
func WithDecoder(d *Decoder) Option {
	return func(p *Parser) {
		if d != nil {
			p.dec = d
		}
	}
}

// WithWorkers decodes records on up to n goroutines. Values below 2 keep
// decoding sequential.
func WithWorkers(n int) Option {
	return func(p *Parser) {
		p.workers = max(n, 1)
	}
}

// Parser runs the grammar and the token decoder over whole buffers.
// A Parser has no per-call state and may be shared.
type Parser struct {
	dec     *Decoder
	workers int
}

// NewParser creates a Parser. Without options it decodes sequentially
// with DefaultDecoder.
func NewParser(opts ...Option) *Parser {
	p := &Parser{dec: DefaultDecoder(), workers: 1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse reads a KRADFILE and returns its decompositions.
func Parse(filePath string) (ParseResult, error) {
	return defaultParser.ParseFile(filePath)
}

// ParseBytes parses an in-memory KRADFILE.
func ParseBytes(buf []byte) (ParseResult, error) {
	return defaultParser.Parse(buf)
}

// ParseFile reads filePath to completion and parses it.
func (p *Parser) ParseFile(filePath string) (ParseResult, error) {
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("read file: %w", err)
	}
	return p.Parse(buf)
}

// Parse decodes every record in buf. Either all records are returned or
// the first failure in file order is.
func (p *Parser) Parse(buf []byte) (ParseResult, error) {
	raw, lines, err := parseGrammar(buf)
	if err != nil {
		return ParseResult{}, err
	}

	out := make([]domain.Decomposition, len(raw))
	var counts tokenCounts
	if p.workers > 1 && len(raw) > 1 {
		counts, err = p.decodeParallel(buf, raw, out)
	} else {
		counts, err = p.decodeRange(buf, raw, out)
	}
	if err != nil {
		return ParseResult{}, err
	}

	return ParseResult{
		Decompositions: out,
		Stats: Stats{
			TotalLines:      lines.total,
			CommentLines:    lines.comments,
			Records:         len(out),
			Radicals:        counts.radicals,
			LegacyTokens:    counts.legacy,
			MultibyteTokens: counts.multibyte,
		},
	}, nil
}

type tokenCounts struct {
	radicals  int
	legacy    int
	multibyte int
}

func (c *tokenCounts) add(o tokenCounts) {
	c.radicals += o.radicals
	c.legacy += o.legacy
	c.multibyte += o.multibyte
}

func (c *tokenCounts) count(k tokenKind) {
	switch k {
	case kindLegacyCode:
		c.legacy++
	case kindMultibyte:
		c.multibyte++
	}
}

// decodeRange decodes raw[i] into out[i], stopping at the first failure.
func (p *Parser) decodeRange(buf []byte, raw []RawRecord, out []domain.Decomposition) (tokenCounts, error) {
	var counts tokenCounts
	for i, rec := range raw {
		kanji, kind, err := p.dec.decode(rec.Kanji.Bytes(buf))
		if err != nil {
			return counts, withLine(err, rec.Line)
		}
		counts.count(kind)

		radicals := make([]string, len(rec.Radicals))
		for j, span := range rec.Radicals {
			r, kind, err := p.dec.decode(span.Bytes(buf))
			if err != nil {
				return counts, withLine(err, rec.Line)
			}
			counts.count(kind)
			radicals[j] = r
		}
		counts.radicals += len(radicals)

		out[i] = domain.Decomposition{Kanji: kanji, Radicals: radicals}
	}
	return counts, nil
}

// decodeParallel splits raw into contiguous chunks, one per worker. The
// returned error is the one from the earliest failing chunk, which is the
// error sequential decoding would have returned.
func (p *Parser) decodeParallel(buf []byte, raw []RawRecord, out []domain.Decomposition) (tokenCounts, error) {
	chunks := min(p.workers, len(raw))
	size := (len(raw) + chunks - 1) / chunks

	counts := make([]tokenCounts, chunks)
	errs := make([]error, chunks)

	var g errgroup.Group
	g.SetLimit(p.workers)
	for c := range chunks {
		lo := c * size
		hi := min(lo+size, len(raw))
		if lo >= hi {
			break
		}
		g.Go(func() error {
			counts[c], errs[c] = p.decodeRange(buf, raw[lo:hi], out[lo:hi])
			return errs[c]
		})
	}

	var total tokenCounts
	if err := g.Wait(); err != nil {
		for _, e := range errs {
			if e != nil {
				return total, e
			}
		}
		return total, err
	}
	for _, c := range counts {
		total.add(c)
	}
	return total, nil
}

func withLine(err error, line int) error {
	var de *DecodeError
	if errors.As(err, &de) {
		de.Line = line
	}
	return err
}
