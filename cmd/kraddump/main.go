// Command kraddump parses a KRADFILE and prints its decompositions as UTF-8,
// one "kanji<TAB>radicals" line per record. It needs no database.
//
// Usage:
//
//	kraddump [--workers N] [--radical R] <kradfile>
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/heartmarshall/kanjirad/internal/app"
	"github.com/heartmarshall/kanjirad/internal/config"
)

func main() {
	workersFlag := flag.Int("workers", 1, "decode workers")
	radicalFlag := flag.String("radical", "", "only print kanji containing this radical")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: kraddump [--workers N] [--radical R] <kradfile>")
		os.Exit(2)
	}

	logCfg, err := config.LoadLog()
	if err != nil {
		log.Fatalf("load log config: %v", err)
	}
	logger := app.NewLogger(logCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = app.Dump(ctx, logger, os.Stdout, app.DumpOptions{
		Path:    flag.Arg(0),
		Workers: *workersFlag,
		Radical: *radicalFlag,
	})
	if err != nil {
		logger.Error("dump failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
