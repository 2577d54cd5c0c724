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

	"github.com/lao-tseu-is-alive/go-swarm-shape/internal/summary"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	csvPath := flag.String("csv", "data.csv", "CSV file receiving run summaries")
	staticDir := flag.String("static", "", "directory served at / (empty = none)")
	flag.Parse()

	logger := golog.New(golog.InfoLevel, os.Stdout)

	store, err := summary.OpenStore(*csvPath)
	if err != nil {
		log.Fatalf("failed to open summary csv: %v", err)
	}
	defer store.Close()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           summary.NewServeMux(summary.NewHandler(store, logger), *staticDir),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("summary server listening on %s, writing %s", *addr, store.Path())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("shutdown: %v", err)
	}
}
