// Package seeder loads a KRADFILE and stores its decompositions.
package seeder

import (
	"context"

	"github.com/heartmarshall/kanjirad/internal/domain"
)

// DecompositionRepo is the storage contract consumed by the pipeline.
// Implemented by decomposition.Repo.
type DecompositionRepo interface {
	// BulkUpsert writes decs keyed by kanji; offset is the file position of decs[0].
	BulkUpsert(ctx context.Context, decs []domain.Decomposition, offset int) (int, error)
	Count(ctx context.Context) (int, error)
}

// TxRunner runs fn in a transaction. Implemented by postgres.TxManager.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
