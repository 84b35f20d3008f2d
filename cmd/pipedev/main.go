// File: cmd/pipedev/main.go
// Package main
// Pipe device served over WebSocket: one connection, one session, one channel.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flags "github.com/jessevdk/go-flags"

	"github.com/momentics/hioload-pipe/adapters"
	"github.com/momentics/hioload-pipe/device"
	"github.com/momentics/hioload-pipe/internal/logging"
	"github.com/momentics/hioload-pipe/server"
)

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	lvl, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		log.Fatalf("invalid --log-level: %v", err)
	}
	logging.SetLevel(lvl)
	if opts.LogJSON {
		logging.SetFormat(os.Stderr, logging.FormatJSON)
	}

	cfg := device.DefaultConfig()
	cfg.MaxSize = opts.MaxSize
	cfg.UseMmap = opts.Mmap
	cfg.WorkerCPU = opts.CPU

	ctrl := adapters.NewControlAdapter()
	dev := device.New(cfg, ctrl)

	var srvOpts []server.Option
	if origins := opts.origins(); len(origins) > 0 {
		srvOpts = append(srvOpts, server.WithAllowedOrigins(origins...))
	}

	mux := http.NewServeMux()
	mux.Handle(opts.Path, server.New(dev, srvOpts...))
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		writeStats(w, ctrl.Stats())
	})

	srv := &http.Server{Addr: opts.Addr, Handler: mux}
	go func() {
		log.Printf("pipe device listening on %s%s", opts.Addr, opts.Path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("pipe device stopped")
}
