// Package server sets up the HTTP server and registers API routes for pdfdesk.
//
// RegisterRoutes returns an http.Handler with all PDF operation endpoints.
//
// Expected outputs:
// - All API endpoints are available under /api
// - CORS and logging middleware are enabled
//
// See README.md for endpoint details and integration examples.
package server

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pdfdesk/docs"
	"pdfdesk/internal/handlers"
)

// Only allow requests from localhost to /swagger/*
func localhostOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, _ := net.SplitHostPort(r.RemoteAddr)
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.With(localhostOnly).Get("/swagger/*", httpSwagger.WrapHandler)
	h := handlers.NewAPIHandler(s.Engine, s.Uploads, s.Results, s.MaxUploadSize, s.Log)
	r.Route("/api", func(api chi.Router) {
		api.Post("/extract-info", h.ExtractInfo)
		api.Post("/delete_pages", h.DeletePages)
		api.Post("/merge", h.MergeFiles)
		api.Post("/insert_pdf", h.InsertPDF)
		api.Post("/compress", h.CompressPDF)
		api.Post("/split", h.SplitPDF)
		api.Post("/reorder-pages", h.ReorderPages)
		api.Post("/sign", h.SignPDF)
		api.Post("/protect", h.ProtectPDF)
		api.Post("/unprotect", h.UnprotectPDF)
		api.Get("/download/{token}", h.DownloadFile)
	})

	return r
}
