package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/essence-sheet/internal/config"
	"github.com/KirkDiggler/essence-sheet/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := services.NewProvider(ctx, &services.ProviderConfig{Config: cfg})
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	runErr := provider.Store.Load(ctx)
	if runErr == nil {
		a := &app{ctx: ctx, provider: provider, exportDir: cfg.Export.Dir, out: os.Stdout}
		runErr = a.run(os.Args[1:])
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := provider.Close(closeCtx); err != nil {
		log.Printf("Failed to save all changes: %v", err)
		if runErr == nil {
			runErr = err
		}
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		cancel()
		stop()
		os.Exit(exitCode(runErr))
	}
}
