// Command bindery-server runs the web interface. It serves the rename
// preview UI and API, keeps the preview fresh with scheduled and
// watcher-triggered scans, and records applied batches for undo.

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tmalloy/bindery/internal/api"
	"github.com/tmalloy/bindery/internal/core"
	"github.com/tmalloy/bindery/internal/jobs"
	"github.com/tmalloy/bindery/internal/library"
)

const appVersion = "0.2.1"

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize the core application components
	app, err := core.New(appVersion)
	if err != nil {
		log.Fatalf("Fatal error during application setup: %v", err)
	}
	defer app.Close()

	// Scans only produce previews; renames happen through the API.
	app.JobManager().Register("library-scan", library.RunScanJob)

	// Initial scan on startup so the first page load has data.
	log.Println("Performing initial library scan...")
	if err := app.JobManager().RunJob("library-scan", app); err != nil {
		log.Printf("Warning: initial library scan failed: %v", err)
	}

	// Periodic rescans in the background.
	jobs.StartJobs(app)

	// Rescan when files appear in or leave the library directory.
	watcher := library.NewWatcherService(app)
	if err := watcher.Start(); err != nil {
		log.Printf("Warning: could not watch library directory: %v", err)
	} else {
		defer watcher.Stop()
	}

	// Setup the API server
	server := api.NewServer(app)
	addr := fmt.Sprintf(":%d", app.Config().Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	// --- Graceful Shutdown ---
	// Start the server in a goroutine so it doesn't block.
	go func() {
		log.Printf("Starting web server on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %v", err)
		}
	}()

	// Wait for an interrupt signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a context with a timeout to allow existing connections to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Attempt a graceful shutdown.
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
