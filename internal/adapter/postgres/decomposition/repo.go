// Package decomposition implements the kanji decomposition repository using PostgreSQL.
// Writes go through pgx.Batch; reads are built with squirrel.
package decomposition

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/kanjirad/internal/adapter/postgres"
	"github.com/heartmarshall/kanjirad/internal/domain"
)

const (
	table  = "kanji_decompositions"
	entity = "decomposition"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Record is a stored decomposition with its row id and file position.
type Record struct {
	ID       uuid.UUID
	Position int
	domain.Decomposition
}

// Repo provides kanji decomposition persistence.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new decomposition repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// BulkUpsert writes decompositions in a single batch, keyed by kanji. An
// existing row keeps its id and takes the new radicals and position.
// offset is the file position of decs[0]. Returns the number of affected rows.
func (r *Repo) BulkUpsert(ctx context.Context, decs []domain.Decomposition, offset int) (int, error) {
	if len(decs) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for i, d := range decs {
		if err := d.Validate(); err != nil {
			return 0, fmt.Errorf("%s at position %d: %w", entity, offset+i, err)
		}
		batch.Queue(
			`INSERT INTO kanji_decompositions (id, kanji, radicals, position)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (kanji) DO UPDATE
			 SET radicals = EXCLUDED.radicals, position = EXCLUDED.position, updated_at = now()`,
			uuid.New(), d.Kanji, d.Radicals, offset+i,
		)
	}

	return r.sendBatchExec(ctx, batch)
}

// GetByKanji returns the decomposition of kanji, or domain.ErrNotFound.
func (r *Repo) GetByKanji(ctx context.Context, kanji string) (Record, error) {
	query, args, err := builder.
		Select("id", "kanji", "radicals", "position").
		From(table).
		Where(sq.Eq{"kanji": kanji}).
		ToSql()
	if err != nil {
		return Record{}, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rec, err := scanRecord(q.QueryRow(ctx, query, args...))
	if err != nil {
		return Record{}, postgres.MapError(err, entity, kanji)
	}
	return rec, nil
}

// ListByRadical returns every decomposition containing radical, in file order.
func (r *Repo) ListByRadical(ctx context.Context, radical string) ([]Record, error) {
	query, args, err := builder.
		Select("id", "kanji", "radicals", "position").
		From(table).
		Where(sq.Expr("radicals @> ARRAY[?]::text[]", radical)).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "radical", radical)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", entity, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "radical", radical)
	}
	return out, nil
}

// Count returns the number of stored decompositions.
func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := builder.Select("count(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var n int
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", entity, err)
	}
	return n, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.Kanji, &rec.Radicals, &rec.Position)
	return rec, err
}

// sendBatchExec sends a pgx.Batch and counts affected rows from Exec results.
func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var affected int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return affected, fmt.Errorf("batch exec: %w", err)
		}
		affected += int(tag.RowsAffected())
	}

	return affected, nil
}
