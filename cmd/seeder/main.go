// Command seeder loads a KRADFILE and stores its kanji decompositions in
// PostgreSQL. It is intended to be run offline against a migrated database.
//
// Flags:
//
//	--krad           path to the KRADFILE (overrides SEEDER_KRAD_PATH)
//	--dry-run        parse the file without writing to DB
//	--seeder-config  path to seeder YAML config file
//	--workers        decode workers (overrides SEEDER_DECODE_WORKERS)
//	--migrate        apply embedded migrations before seeding
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/kanjirad/internal/adapter/postgres"
	"github.com/heartmarshall/kanjirad/internal/adapter/postgres/decomposition"
	"github.com/heartmarshall/kanjirad/internal/app"
	"github.com/heartmarshall/kanjirad/internal/app/seeder"
	"github.com/heartmarshall/kanjirad/internal/config"
)

// Compile-time interface assertions.
var (
	_ seeder.DecompositionRepo = (*decomposition.Repo)(nil)
	_ seeder.TxRunner          = (*postgres.TxManager)(nil)
)

func main() {
	kradFlag := flag.String("krad", "", "path to the KRADFILE")
	dryRunFlag := flag.Bool("dry-run", false, "parse the file without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	workersFlag := flag.Int("workers", 0, "decode workers (0 keeps the configured value)")
	migrateFlag := flag.Bool("migrate", false, "apply embedded migrations before seeding")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *kradFlag != "" {
		seederCfg.KradPath = *kradFlag
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}
	if *workersFlag > 0 {
		seederCfg.DecodeWorkers = *workersFlag
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var (
		repo seeder.DecompositionRepo
		txm  seeder.TxRunner
	)
	if !seederCfg.DryRun {
		pool, err := postgres.NewPool(ctx, appCfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		if *migrateFlag {
			n, err := postgres.MigratePool(ctx, pool)
			if err != nil {
				logger.Error("apply migrations", slog.String("error", err.Error()))
				os.Exit(1)
			}
			logger.Info("migrations applied", slog.Int("count", n))
		}

		repo = decomposition.New(pool)
		txm = postgres.NewTxManager(pool)
	}

	pipeline := seeder.NewPipeline(logger, repo, txm, *seederCfg)
	res, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully",
		slog.Int("parsed", res.Parsed),
		slog.Int("upserted", res.Upserted),
		slog.Bool("dry_run", seederCfg.DryRun),
		slog.Duration("duration", res.Duration),
	)
}
