package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/synesenom/dl/server"
	"github.com/synesenom/dl/svgdom"
)

// ============================================================
// Conversion Service
// ============================================================

func main() {
	cfg := server.LoadConfig()

	svgdom.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app := server.New(cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting conversion service on %s (env: %s, angles: %s, strict: %v)",
		addr, cfg.Environment, cfg.AngleUnit, cfg.Strict)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
