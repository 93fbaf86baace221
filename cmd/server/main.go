package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telco_dash/internal/api"
	"telco_dash/internal/app/authmode"
	"telco_dash/internal/common/security"
	"telco_dash/internal/platform/config"
)

// adminBootstrapper is satisfied by both auth implementations; the
// reconciliation runs once, at startup.
type adminBootstrapper interface {
	EnsureAdmin(ctx context.Context) error
}

func main() {
	// 1. Load Configuration
	config.Load()

	// 2. Initialize JWT
	security.InitJWT()

	// 3. Select the auth implementation for this process
	auth, err := authmode.Select(config.AppConfig)
	if err != nil {
		log.Fatalf("Auth setup failed: %v", err)
	}

	// 4. Bootstrap the demo admin account
	if b, ok := auth.(adminBootstrapper); ok {
		if err := b.EnsureAdmin(context.Background()); err != nil {
			log.Fatalf("Admin bootstrap failed: %v", err)
		}
	}

	// 5. Router & HTTP Server
	router := api.NewRouter(auth)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 6. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Auth server listening on http://localhost:%s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
