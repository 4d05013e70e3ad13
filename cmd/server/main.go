package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"collabboard.dev/internal/board"
	"collabboard.dev/internal/config"
	"collabboard.dev/internal/journal"
	"collabboard.dev/internal/protocol"
	"collabboard.dev/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", "", "http listen address (overrides config)")
		configPath = flag.String("config", "", "path to config yaml (optional)")
		journalDir = flag.String("journal", "", "event journal directory (overrides config; empty disables)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cfg := config.Defaults()
	if p := strings.TrimSpace(*configPath); p != "" {
		var err error
		cfg, err = config.Load(p)
		if err != nil {
			logger.Fatalf("load config: %v", err)
		}
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *journalDir != "" {
		cfg.JournalDir = *journalDir
	}

	store := board.NewStore(cfg.Board.SeedBoard(nil), nil)

	var jrnl board.Journal
	if dir := strings.TrimSpace(cfg.JournalDir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Fatalf("journal dir: %v", err)
		}
		ej := journal.New(dir)
		defer ej.Close()
		jrnl = ej
		logger.Printf("journaling events to %s", dir)
	}

	hub, err := board.NewHub(store, logger, jrnl)
	if err != nil {
		logger.Fatalf("hub: %v", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	if envBool("CB_ENABLE_PPROF_HTTP", false) {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	mux.HandleFunc("/v1/ws", ws.NewServer(hub, logger).Handler())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s (protocol %s)", cfg.Addr, protocol.Version)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

func envBool(name string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
