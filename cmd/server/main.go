// Command server runs the confession board HTTP API.
//
// Configuration is read from CONFIG_PATH (fallback ./config.yaml) and
// environment variables. The process stops on SIGINT or SIGTERM after a
// graceful drain.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/whisperboard/backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
