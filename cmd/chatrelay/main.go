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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Muskan2320/Realtime-AI-backend/internal/config"
	"github.com/Muskan2320/Realtime-AI-backend/internal/llm"
	"github.com/Muskan2320/Realtime-AI-backend/internal/relay"
	"github.com/Muskan2320/Realtime-AI-backend/internal/store"
	"github.com/Muskan2320/Realtime-AI-backend/internal/summary"
	"github.com/Muskan2320/Realtime-AI-backend/internal/tasks"
	"github.com/Muskan2320/Realtime-AI-backend/internal/ws"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	log.Printf("Starting chat relay...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Model: %s", cfg.Model)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize generation client
	gen := llm.NewGenerator(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.Model)

	// Initialize summarization pool
	pool, err := tasks.NewPool(cfg.SummaryWorkers)
	if err != nil {
		log.Fatalf("Failed to initialize task pool: %v", err)
	}
	defer pool.Release()

	summarizer := summary.New(db, gen)
	schedule := func(sessionID string) {
		pool.Submit("summarize "+sessionID, func() error {
			return summarizer.Run(context.Background(), sessionID)
		})
	}

	// Initialize WebSocket server
	registry := relay.NewRegistry()
	wsServer := ws.NewServer(cfg, db, gen, registry, schedule)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.GET("/ws/session", wsServer.HandleSession)
	e.GET("/healthz", wsServer.HandleHealth)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down chat relay...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Chat relay stopped")
}
