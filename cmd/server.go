package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

// shutdownGrace bounds drain time on SIGTERM. Webhook deliveries in
// flight get to finish persisting before the process exits; the
// provider retries anything cut off.
const shutdownGrace = 15 * time.Second

// APIServer starts the HTTP server on the given port and blocks until
// shutdown completes.
func APIServer(route *chi.Mux, port string) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           route,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("Server running on http://localhost%s\n", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal("Server error:", err)
	case sig := <-stop:
		fmt.Printf("Received %s, shutting down\n", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Shutdown error:", err)
	}
}
