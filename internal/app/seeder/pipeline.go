package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/kanjirad/internal/domain"
	"github.com/heartmarshall/kanjirad/internal/krad"
)

// ErrNoInput is returned by Run when no KRADFILE path is configured.
var ErrNoInput = errors.New("krad path not configured")

// PhaseResult holds the outcome of a pipeline run.
type PhaseResult struct {
	Parsed   int
	Upserted int
	Skipped  int
	Stored   int
	Stats    krad.Stats
	Duration time.Duration
}

// Pipeline parses a KRADFILE and upserts its decompositions in batches.
type Pipeline struct {
	log  *slog.Logger
	repo DecompositionRepo
	tx   TxRunner
	cfg  Config
}

// NewPipeline creates a new Pipeline. tx may be nil, in which case batches
// are written without a surrounding transaction.
func NewPipeline(log *slog.Logger, repo DecompositionRepo, tx TxRunner, cfg Config) *Pipeline {
	return &Pipeline{log: log, repo: repo, tx: tx, cfg: cfg}
}

// Run parses the configured file and, unless DryRun is set, stores every
// decomposition. A parse failure writes nothing. With a TxRunner the whole
// upsert is a single transaction.
func (p *Pipeline) Run(ctx context.Context) (PhaseResult, error) {
	start := time.Now()

	if p.cfg.KradPath == "" {
		return PhaseResult{}, ErrNoInput
	}

	parser := krad.NewParser(krad.WithWorkers(p.cfg.DecodeWorkers))
	res, err := parser.ParseFile(p.cfg.KradPath)
	if err != nil {
		return PhaseResult{}, fmt.Errorf("parse %s: %w", p.cfg.KradPath, err)
	}

	result := PhaseResult{Parsed: len(res.Decompositions), Stats: res.Stats}
	p.log.Info("kradfile parsed",
		slog.String("path", p.cfg.KradPath),
		slog.Int("records", res.Stats.Records),
		slog.Int("radicals", res.Stats.Radicals),
		slog.Int("total_lines", res.Stats.TotalLines),
		slog.Int("comment_lines", res.Stats.CommentLines),
		slog.Int("legacy_tokens", res.Stats.LegacyTokens),
		slog.Int("multibyte_tokens", res.Stats.MultibyteTokens),
	)

	if p.cfg.DryRun {
		result.Skipped = result.Parsed
		result.Duration = time.Since(start)
		return result, nil
	}

	store := func(ctx context.Context) error {
		n, err := batchProcess(res.Decompositions, p.cfg.BatchSize, func(offset int, batch []domain.Decomposition) (int, error) {
			return p.repo.BulkUpsert(ctx, batch, offset)
		})
		result.Upserted = n
		return err
	}
	if p.tx != nil {
		err = p.tx.RunInTx(ctx, store)
	} else {
		err = store(ctx)
	}
	if err != nil {
		return PhaseResult{}, fmt.Errorf("upsert decompositions: %w", err)
	}

	stored, err := p.repo.Count(ctx)
	if err != nil {
		return PhaseResult{}, fmt.Errorf("count decompositions: %w", err)
	}
	result.Stored = stored
	result.Duration = time.Since(start)

	p.log.Info("decompositions stored",
		slog.Int("upserted", result.Upserted),
		slog.Int("stored", result.Stored),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

// batchProcess calls fn for consecutive chunks of items, passing the index
// of each chunk's first element. Stops at the first error.
func batchProcess[T any](items []T, batchSize int, fn func(offset int, batch []T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(i, items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
