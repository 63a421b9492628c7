package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/kanjirad/internal/adapter/postgres"
	"github.com/heartmarshall/kanjirad/internal/adapter/postgres/testhelper"
)

func kanjiExists(t *testing.T, pool *pgxpool.Pool, kanji string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM kanji_decompositions WHERE kanji = $1)`,
		kanji,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("kanjiExists query: %v", err)
	}
	return exists
}

func insertRow(ctx context.Context, pool *pgxpool.Pool, kanji string) error {
	q := postgres.QuerierFromCtx(ctx, pool)
	_, err := q.Exec(ctx,
		`INSERT INTO kanji_decompositions (id, kanji, radicals, position) VALUES ($1, $2, $3, 0)`,
		uuid.New(), kanji, []string{"一"},
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertRow(ctx, pool, "亜")
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !kanjiExists(t, pool, "亜") {
		t.Fatal("expected row to exist after committed transaction")
	}
}

func TestRunInTx_Rollback(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	sentinel := errors.New("abort")
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertRow(ctx, pool, "林"); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("RunInTx error = %v, want %v", err, sentinel)
	}

	if kanjiExists(t, pool, "林") {
		t.Fatal("expected row to be rolled back")
	}
}

func TestRunInTx_PanicRollsBack(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
			if err := insertRow(ctx, pool, "森"); err != nil {
				return err
			}
			panic("boom")
		})
	}()

	if kanjiExists(t, pool, "森") {
		t.Fatal("expected row to be rolled back after panic")
	}
}

func TestRunInTx_Nested(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if !postgres.InTx(ctx) {
			t.Error("expected ctx to carry a transaction")
		}
		return tm.RunInTx(ctx, func(context.Context) error { return nil })
	})
	if !errors.Is(err, postgres.ErrNestedTx) {
		t.Fatalf("RunInTx error = %v, want ErrNestedTx", err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	pool := testhelper.SetupTestDB(t)

	n, err := postgres.MigratePool(context.Background(), pool)
	if err != nil {
		t.Fatalf("MigratePool: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no pending migrations, applied %d", n)
	}
}
