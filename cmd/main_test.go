package main

import (
	"context"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/guttosm/goldpulse/config"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	// Give server a moment to start
	time.Sleep(50 * time.Millisecond)

	// Shutdown quickly with short timeout and no-op cleanup
	_, cancel := context.WithCancel(context.Background())
	go func() {
		// trigger gracefulShutdown select by simulating signal via closing after a brief delay
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	// We cannot send OS signals easily here; instead, directly call Shutdown to simulate graceful flow.
	// Verify it doesn't panic and completes.
	shutdownCtx, c := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer c()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	// Use a server that responds immediately
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{}, 1)
	go func() {
		ctx := context.Background()
		gracefulShutdown(ctx, srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	// Send SIGTERM to current process
	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
		// success
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

func TestApplyFlags(t *testing.T) {
	base := config.Config{
		Fetch:  config.FetchConfig{StartDate: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)},
		Export: config.ExportConfig{Path: "gold_prices.xml"},
	}

	cases := []struct {
		name          string
		start, export string
		wantStart     time.Time
		wantExport    string
		wantErr       bool
	}{
		{name: "no overrides", wantStart: base.Fetch.StartDate, wantExport: "gold_prices.xml"},
		{name: "start and export", start: "2021-06-01", export: "out/prices.xlsx", wantStart: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), wantExport: "out/prices.xlsx"},
		{name: "bad start", start: "01/06/2021", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			err := applyFlags(&cfg, tc.start, tc.export)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !cfg.Fetch.StartDate.Equal(tc.wantStart) || cfg.Export.Path != tc.wantExport {
				t.Fatalf("got start=%v export=%q", cfg.Fetch.StartDate, cfg.Export.Path)
			}
		})
	}
}
