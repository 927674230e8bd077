package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/diewo77/desk-invoicer/httpx"
	"github.com/diewo77/desk-invoicer/internal/config"
	"github.com/diewo77/desk-invoicer/internal/store"
	"github.com/diewo77/desk-invoicer/internal/viewer"
	"github.com/diewo77/desk-invoicer/view"
	"github.com/joho/godotenv"
)

var reopenFlag = flag.String("reopen", "", "Re-render and open a stored invoice by number, then exit")

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()
	view.SetDev(cfg.App.Dev)

	store.EnsureDir(cfg.Storage.DataDir)
	store.EnsureDir(cfg.Storage.OutputDir)

	profile, err := config.LoadProfile(cfg.App.CompanyProfile)
	if err != nil {
		log.Printf("[WARN] using built-in company profile: %v", err)
	}

	app := NewApp(cfg, profile, opener(cfg.App.OpenViewer))

	if *reopenFlag != "" {
		res, err := app.Invoices.Reopen(*reopenFlag)
		if err != nil {
			log.Fatalf("Reopen failed: %v", err)
		}
		fmt.Println(res.Path)
		return
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      withLogging(app),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}

	go func() {
		log.Printf("Server starting on %s (data=%s, dev=%v)", srv.Addr, cfg.Storage.DataDir, cfg.App.Dev)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	if err := opener(cfg.App.OpenBrowser).Open(cfg.Server.URL()); err != nil {
		log.Printf("[WARN] could not open browser, visit %s: %v", cfg.Server.URL(), err)
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}

func opener(enabled bool) viewer.Opener {
	if enabled {
		return viewer.NewSystem()
	}
	return viewer.Noop{}
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRecover turns a panicking request into a 500 and keeps the server up.
func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Printf("[ERROR] panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
