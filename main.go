package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shandysiswandi/gosecret/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	application := app.New()                  // Initialize the application
	code := application.Run(ctx, os.Args[1:]) // Run the command line
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	application.Stop(shutdownCtx) // Flush telemetry and close resources
	cancel()

	os.Exit(code)
}
