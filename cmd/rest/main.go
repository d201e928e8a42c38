package main

import (
	"context"
	"log"

	"doc-chat-shell/internal/bootstrap"
	"doc-chat-shell/internal/config"
	"doc-chat-shell/internal/server"
	"doc-chat-shell/internal/tracer"

	"github.com/fatih/color"
)

func main() {
	// 1. Initialize Tracer (env-gated, no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Coordinator...")
		if err := container.Coordinator.Run(context.Background()); err != nil {
			log.Printf("Background Coordinator Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	color.Green("✅ Shell is running on http://localhost:%s", cfg.App.Port)
	log.Fatal(srv.Run())
}
