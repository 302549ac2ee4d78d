// Package main API.
//
// pdfdesk provides a REST API for inspecting and editing PDF files.
//
//	Schemes: http
//	BasePath: /
//	Version: 1.0.0
//	Host: localhost:8080
//
//	Consumes:
//	- application/json
//	- multipart/form-data
//
//	Produces:
//	- application/json
//	- application/pdf
//
// swagger:meta
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"pdfdesk/internal/server"
)

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

func gracefulShutdown(apiServer *http.Server, log *logrus.Logger, done chan bool, cleanupFunc func()) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")

	// The server gets 5 seconds to finish the requests it is handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	if cleanupFunc != nil {
		log.Info("cleaning directories")
		cleanupFunc()
	}

	log.Info("server exiting")

	done <- true
}

// cleanupManagedDirs empties the upload and result directories. Stored files
// only make sense while the process that issued their tokens can serve them.
func cleanupManagedDirs() {
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	resultDir := os.Getenv("RESULT_DIR")
	if resultDir == "" {
		resultDir = "results"
	}
	for _, dir := range []string{uploadDir, resultDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				_ = os.Remove(filepath.Join(dir, entry.Name()))
			}
		}
	}
}

func main() {
	log := newLogger()

	// Start from clean managed directories
	cleanupManagedDirs()

	log.Info("starting server")

	srv := server.NewServer(log)

	done := make(chan bool, 1)

	go gracefulShutdown(srv, log, done, cleanupManagedDirs)

	err := srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("http server error")
	}

	<-done
	log.Info("graceful shutdown complete")
}
