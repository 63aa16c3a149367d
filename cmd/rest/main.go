package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"support-chatbot-be/internal/bootstrap"
	"support-chatbot-be/internal/config"
	"support-chatbot-be/internal/server"
	"support-chatbot-be/internal/tracer"
	"support-chatbot-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// Tracer is a no-op unless OTEL_ENABLED=true
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Initialize Database. The file backend keeps sessions when it is unavailable.
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Printf("[WARN] Database unavailable, sessions are kept in files only: %v", err)
		gormDB = nil
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	// 4. Start Background Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
