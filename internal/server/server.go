// Package server provides the HTTP server setup for pdfdesk.
//
// NewServer creates and configures the HTTP server, the managed upload and
// result directories, and the retention sweeper that removes stored files
// once they age past the configured window.
//
// Usage:
//
//	server := server.NewServer(log)
//	server.ListenAndServe()
//
// See internal/server/routes.go for route registration.
package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"pdfdesk/internal/engine"
	"pdfdesk/internal/storage"
)

// defaultMaxUploadSize bounds a single uploaded file when MAX_UPLOAD_SIZE is
// not set.
const defaultMaxUploadSize = 25 * 1024 * 1024

// defaultRetentionMinutes is how long stored files live when
// RETENTION_MINUTES is not set.
const defaultRetentionMinutes = 60

type Server struct {
	port          int
	Uploads       *storage.Resolver
	Results       *storage.Resolver
	Engine        engine.Engine
	MaxUploadSize int64
	Retention     time.Duration
	Log           *logrus.Logger

	uploadDir string
	resultDir string
}

func NewServer(log *logrus.Logger) *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}
	uploadDir := envOr("UPLOAD_DIR", "uploads")
	resultDir := envOr("RESULT_DIR", "results")

	maxUpload := int64(defaultMaxUploadSize)
	if v, err := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64); err == nil && v > 0 {
		maxUpload = v
	}
	retention := time.Duration(defaultRetentionMinutes) * time.Minute
	if v, err := strconv.Atoi(os.Getenv("RETENTION_MINUTES")); err == nil && v > 0 {
		retention = time.Duration(v) * time.Minute
	}

	uploads, err := storage.New(uploadDir)
	if err != nil {
		log.WithError(err).Fatal("cannot prepare upload directory")
	}
	results, err := storage.New(resultDir)
	if err != nil {
		log.WithError(err).Fatal("cannot prepare result directory")
	}

	srv := &Server{
		port:          port,
		Uploads:       uploads,
		Results:       results,
		Engine:        engine.New(),
		MaxUploadSize: maxUpload,
		Retention:     retention,
		Log:           log,
		uploadDir:     uploadDir,
		resultDir:     resultDir,
	}

	// Sweep goroutine for expired files
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			srv.sweepExpired()
		}
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", srv.port),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return server
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// sweepExpired removes stored files older than the retention window from
// both managed directories.
func (s *Server) sweepExpired() {
	cutoff := time.Now().Add(-s.Retention)
	for _, dir := range []string{s.uploadDir, s.resultDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.Log.WithError(err).WithField("dir", dir).Warn("sweep failed")
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			if info.ModTime().Before(cutoff) {
				if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
					s.Log.WithError(err).WithField("file", e.Name()).Warn("sweep remove failed")
					continue
				}
				s.Log.WithField("file", e.Name()).Debug("expired file removed")
			}
		}
	}
}
