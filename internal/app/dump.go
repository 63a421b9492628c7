package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/heartmarshall/kanjirad/internal/domain"
	"github.com/heartmarshall/kanjirad/internal/krad"
)

// DumpOptions controls Dump.
type DumpOptions struct {
	Path    string
	Workers int
	// Radical, when set, keeps only decompositions that contain it.
	Radical string
}

// Dump parses a KRADFILE and writes one "kanji<TAB>radicals" line per record
// to w, radicals separated by single spaces, in file order. Nothing is
// written when parsing fails.
func Dump(ctx context.Context, log *slog.Logger, w io.Writer, opts DumpOptions) (krad.Stats, error) {
	log.Info("dumping kradfile",
		slog.String("version", BuildVersion()),
		slog.String("path", opts.Path),
		slog.Int("workers", opts.Workers),
	)

	res, err := krad.NewParser(krad.WithWorkers(opts.Workers)).ParseFile(opts.Path)
	if err != nil {
		return krad.Stats{}, fmt.Errorf("parse %s: %w", opts.Path, err)
	}

	bw := bufio.NewWriter(w)
	written := 0
	for _, d := range res.Decompositions {
		if err := ctx.Err(); err != nil {
			return krad.Stats{}, err
		}
		if opts.Radical != "" && !d.HasRadical(opts.Radical) {
			continue
		}
		if err := writeDecomposition(bw, d); err != nil {
			return krad.Stats{}, fmt.Errorf("write: %w", err)
		}
		written++
	}
	if err := bw.Flush(); err != nil {
		return krad.Stats{}, fmt.Errorf("flush: %w", err)
	}

	log.Info("kradfile dumped",
		slog.Int("records", res.Stats.Records),
		slog.Int("written", written),
		slog.Int("legacy_tokens", res.Stats.LegacyTokens),
		slog.Int("multibyte_tokens", res.Stats.MultibyteTokens),
	)
	return res.Stats, nil
}

func writeDecomposition(w *bufio.Writer, d domain.Decomposition) error {
	_, err := fmt.Fprintf(w, "%s\t%s\n", d.Kanji, strings.Join(d.Radicals, " "))
	return err
}
