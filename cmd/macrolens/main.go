package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"MacroLens/internal/collector"
	"MacroLens/internal/config"
	"MacroLens/internal/dashboard"
	"MacroLens/internal/model"
	"MacroLens/internal/report"
	"MacroLens/internal/scheduler"
	"MacroLens/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MacroLens starting...")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.FRED.Mock {
		fetcher = &collector.MockFetcher{}
	} else {
		ff := collector.NewFREDFetcher(cfg.FRED.BaseURL, cfg.FRED.APIKey, cfg.Proxy)
		if !ff.Configured() {
			log.Println("[WARN] FRED_API_KEY not set, charts will be empty")
		}
		fetcher = ff
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	indicators := model.WithWindow(model.DefaultIndicators(), cfg.FRED.WindowYears)
	ctrl := dashboard.NewController(collector.NewCollector(fetcher), indicators)
	defer ctrl.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl.Load(ctx)
	fmt.Print(report.FormatSnapshot(ctrl.Snapshot()))

	if cfg.Schedule.RefreshCron == "" && cfg.Server.Addr == "" {
		return
	}

	if cfg.Schedule.RefreshCron != "" {
		sched := scheduler.NewScheduler(ctx, ctrl)
		if err := sched.RegisterRefresh(cfg.Schedule.RefreshCron); err != nil {
			log.Fatalf("[FATAL] register refresh: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	var httpSrv *http.Server
	if cfg.Server.Addr != "" {
		httpSrv = server.New(ctx, ctrl).HTTPServer(cfg.Server.Addr)
		go func() {
			log.Printf("[INFO] serving indicators on %s", cfg.Server.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[ERROR] http server: %v", err)
				cancel()
			}
		}()
	}

	log.Println("[INFO] MacroLens is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-ctx.Done():
	}

	if httpSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[ERROR] http shutdown: %v", err)
		}
		shutdownCancel()
	}
	ctrl.Close()
	cancel()
	log.Printf("[INFO] MacroLens stopped (%s)", report.Staleness(ctrl.Snapshot(), time.Now()))
}
