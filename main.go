package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"
)

const version = "1.0.0"

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	archive, err = openArchive(cfg.Database.URL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "database error: %v\n", err)
		os.Exit(1)
	}
	defer archive.Close()
	if archive.Enabled() {
		logInfo("🗄️  Match archive enabled")
	} else {
		logInfo("🗄️  Match archive disabled (no DATABASE_URL)")
	}

	initWorld(cfg)

	go feedHub.Run()
	stop := make(chan struct{})
	go runMatchEngine(stop)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(newRouter())

	fmt.Printf("🚀 Openfoot Manager v%s starting on port %s\n", version, cfg.Server.Port)
	fmt.Printf("🏥 Health Check: %s/api/v1/health\n", cfg.Server.BaseURL)
	fmt.Printf("⚽ Live Matches: %s/api/v1/matches\n", cfg.Server.BaseURL)
	fmt.Printf("📡 Live Feed:    ws://0.0.0.0:%s/ws\n", cfg.Server.Port)

	server := &http.Server{Addr: ":" + cfg.Server.Port, Handler: handler}
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		close(stop)
		server.Close()
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
	logInfo("👋 Shutdown complete")
}
