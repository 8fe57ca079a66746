package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/squeakyapp/squeaky/internal/clock"
	"github.com/squeakyapp/squeaky/internal/config"
	"github.com/squeakyapp/squeaky/internal/database"
	"github.com/squeakyapp/squeaky/internal/jobs"
	"github.com/squeakyapp/squeaky/internal/logging"
	"github.com/squeakyapp/squeaky/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.Setup(cfg.LogLevel)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	clk := clock.System{}
	srv := server.New(db, clk, logger)

	jobInterval, err := time.ParseDuration(cfg.JobInterval)
	if err != nil {
		log.Fatalf("invalid job interval %q: %v", cfg.JobInterval, err)
	}
	scheduler := jobs.NewScheduler(srv.UserStore(), srv.InviteStore(), clk, jobInterval, logger.With("component", "jobs"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	scheduler.Start(ctx)
	defer scheduler.Stop()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Squeaky running at http://localhost:%s\n", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
