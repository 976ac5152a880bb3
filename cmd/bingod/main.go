// Command bingod hosts the bingo engine over HTTP. It wires a bbolt state
// store (or an in-memory one), the reference in-memory ledger and a
// persistent event journal into one registry.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"okinoko-bingo/bingo"
	"okinoko-bingo/host"
	"okinoko-bingo/journal"
	"okinoko-bingo/ledger"
	"okinoko-bingo/sdk"
	"okinoko-bingo/store"
)

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[BINGOD] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}

func run(ctx context.Context, cfg Config) error {
	var st sdk.StateStore
	if cfg.StatePath != "" {
		bolt, err := store.OpenBolt(cfg.StatePath)
		if err != nil {
			return err
		}
		defer bolt.Close()
		st = bolt
	} else {
		st = store.NewMemory()
	}

	events, err := journal.NewStore(st)
	if err != nil {
		return err
	}

	lm := ledger.NewMemory()
	reg, err := bingo.New(bingo.Config{
		Admin:  sdk.Address(cfg.Admin),
		Escrow: sdk.Address(cfg.Escrow),
		Ledger: lm,
		Events: events,
		Store:  st,
		Now:    func() uint64 { return uint64(time.Now().Unix()) },
	})
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	host.RegisterHandlers(mux, reg)
	host.RegisterFaucet(mux, lm, sdk.Address(cfg.Admin))

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
