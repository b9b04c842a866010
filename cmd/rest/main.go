package main

import (
	"context"
	"log"

	"pdf-hint-be/internal/bootstrap"
	"pdf-hint-be/internal/config"
	"pdf-hint-be/internal/server"
	"pdf-hint-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.EventBus.Close()
	defer container.Logger.Sync()

	// 3. Initial Knowledge Load
	report, err := container.KnowledgeService.Refresh(context.Background())
	if err != nil {
		log.Printf("Warning: initial knowledge load failed: %v", err)
	} else {
		log.Printf("Knowledge loaded: %d documents, %d skipped", report.Succeeded, len(report.Skipped))
	}

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
