package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codebenders/internal/bootstrap"
	"codebenders/internal/config"
	"codebenders/internal/pkg/logger"
	"codebenders/internal/server"
	"codebenders/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Tracing
	shutdownTracer := tracer.InitTracer(ctx, cfg.App.OtelEnabled, cfg.App.OtelEndpoint, "codebenders-api", sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg, sysLogger)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer container.Close()

	// 4. Start Background Services
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("start mail consumer: %v", err)
	}

	if cfg.Auth.SeedUserEmail != "" {
		err := container.AuthService.SeedUser(ctx, cfg.Auth.SeedUserEmail, cfg.Auth.SeedUserPassword, cfg.Auth.SeedUserName, cfg.Auth.SeedUserIsAdmin)
		if err != nil {
			sysLogger.Warn("seed", "Failed to seed user", map[string]interface{}{"error": err.Error()})
		} else {
			sysLogger.Info("seed", "Seed user ready", map[string]interface{}{"email": cfg.Auth.SeedUserEmail})
		}
	}

	// 5. Run Server
	srv := server.New(cfg, container)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	select {
	case err := <-errCh:
		log.Fatalf("server: %v", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sysLogger.Error("server", "Shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
