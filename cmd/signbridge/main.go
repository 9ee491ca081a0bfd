package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"

	"github.com/ayusman/signbridge/internal/app"
	"github.com/ayusman/signbridge/internal/config"
	"github.com/ayusman/signbridge/internal/detector"
	"github.com/ayusman/signbridge/internal/server"
	"github.com/ayusman/signbridge/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	fmt.Println("SignBridge - Sign to Text")

	if err := run(*configPath); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Log.Dir != "" {
		w, err := openLogFile(cfg.Log.Dir)
		if err != nil {
			return fmt.Errorf("failed to open log directory: %w", err)
		}
		defer w.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, w))
	}

	pool, err := detector.NewMediaPipePool(cfg.DetectorConfig(), cfg.Detector.Workers)
	if err != nil {
		return fmt.Errorf("failed to start hand detector: %w", err)
	}

	// The journal is optional; recognition works without it.
	var st *store.Store
	if cfg.History.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0755); err != nil {
			pool.Close()
			return fmt.Errorf("failed to create history directory: %w", err)
		}
		st, err = store.New(cfg.History.Path)
		if err != nil {
			pool.Close()
			return fmt.Errorf("failed to initialize store: %w", err)
		}
		defer st.Close()
		log.Printf("Recording detections to: %s", cfg.History.Path)
	}

	a, err := app.New(app.Config{Detector: pool, Store: st})
	if err != nil {
		pool.Close()
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer a.Close()

	if cfg.Server.StaticDir != "" {
		fmt.Printf("Serving static files from: %s\n", cfg.Server.StaticDir)
	}

	handler := server.New(server.Config{
		StaticDir:     cfg.Server.StaticDir,
		App:           a,
		AllowedOrigin: cfg.Server.AllowedOrigin,
	})
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		fmt.Printf("Starting server on %s\n", cfg.Server.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	// Streams are hijacked connections; finish them before the detector closes.
	handler.CloseStreams()

	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// openLogFile returns a daily rotated log in dir, keeping a week of files.
func openLogFile(dir string) (*rotatelogs.RotateLogs, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return rotatelogs.New(
		filepath.Join(dir, "signbridge.%Y%m%d.log"),
		rotatelogs.WithLinkName(filepath.Join(dir, "signbridge.log")),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
}
