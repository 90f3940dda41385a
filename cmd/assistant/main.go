package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ai-legalassist-core/internal/bootstrap"
	"ai-legalassist-core/internal/config"
	"ai-legalassist-core/internal/service"
	"ai-legalassist-core/pkg/database"

	"github.com/fatih/color"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Initialize Database
	gormDB, err := database.NewGormDB(cfg.Database.Path)
	if err != nil {
		log.Panicf("Unable to open local store: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		log.Panicf("Unable to migrate local store: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	color.Cyan("🔍 Legal assistant core starting")

	// 4. Start Background Services
	container.ReachabilityService.Start(ctx)
	container.ClipboardService.Start(ctx)

	go func() {
		log.Println("Background: Starting Sync Consumer...")
		if err := container.SyncService.Consume(ctx); err != nil {
			log.Printf("Background Sync Consumer Error: %v", err)
		}
	}()

	// Best-effort catalog warmup. Offline start keeps the built-in catalog.
	if err := container.CatalogService.Refresh(ctx); err != nil {
		color.Yellow("Catalog refresh failed, using built-in catalog: %v", err)
	} else {
		color.Green("Catalog refreshed from backend")
	}

	// 5. Start the Context Engine
	if err := container.ContextService.Start(ctx); err != nil {
		if errors.Is(err, service.ErrPermissionNotGranted) {
			color.Red("Accessibility permission not granted; context detection disabled.")
			color.Red("Grant access in System Settings > Privacy & Security > Accessibility, then restart.")
		} else {
			log.Fatalf("Unable to start context engine: %v", err)
		}
	} else {
		color.Green("Context engine running (tick %s)", cfg.Detection.TickInterval)
	}

	<-ctx.Done()

	log.Println("Shutting down...")
	container.ContextService.Stop()
	container.ClipboardService.Stop()
	container.ReachabilityService.Stop()
	container.PubSub.Close()
	container.Logger.Sync()
}
