// Package handlers provides HTTP handlers for the PDF operations API.
//
// Every act endpoint follows the same shape: resolve the source document
// (previously issued token or fresh upload), run one engine operation into
// a freshly assigned result file, and answer with JSON naming the result
// token for download. Source files are read-only, so repeating an operation
// against the same token always works.
//
// All handlers are designed to be used with the chi router.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"pdfdesk/internal/engine"
	"pdfdesk/internal/storage"
	"pdfdesk/internal/upload"
)

// mergeBodyFactor bounds a merge request body relative to the single-file
// upload ceiling, since a merge carries several files in one request.
const mergeBodyFactor = 10

type APIHandler struct {
	Engine        engine.Engine
	Uploads       *storage.Resolver
	Results       *storage.Resolver
	MaxUploadSize int64

	ingest *upload.Ingestor
	log    *logrus.Logger
}

func NewAPIHandler(eng engine.Engine, uploads, results *storage.Resolver, maxUploadSize int64, log *logrus.Logger) *APIHandler {
	return &APIHandler{
		Engine:        eng,
		Uploads:       uploads,
		Results:       results,
		MaxUploadSize: maxUploadSize,
		ingest:        upload.NewIngestor(uploads, maxUploadSize),
		log:           log,
	}
}

// errMalformedForm marks request bodies that cannot be parsed as a form.
var errMalformedForm = errors.New("malformed form data")

// parseRequest bounds the body and parses the form. Token-only calls may
// arrive urlencoded instead of multipart, which is fine.
func (h *APIHandler) parseRequest(w http.ResponseWriter, r *http.Request, maxBody int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	err := r.ParseMultipartForm(maxBody)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return fmt.Errorf("%w: request body exceeds %d bytes", upload.ErrTooLarge, mbe.Limit)
	}
	return fmt.Errorf("%w: %v", errMalformedForm, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, extra map[string]any) {
	body := map[string]any{"error": msg}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, status, body)
}

// fail maps an error onto the API taxonomy: validation and structural
// problems are the caller's fault (400), an unresolved token is 404, and
// everything else is an infrastructure failure (500).
func (h *APIHandler) fail(w http.ResponseWriter, err error) {
	var pre *engine.PageRangeError
	switch {
	case errors.As(err, &pre):
		writeError(w, http.StatusBadRequest, pre.Error(), map[string]any{"total_pages": pre.Total})
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "File not found. The upload may have expired.", nil)
	case errors.Is(err, upload.ErrMissingFile),
		errors.Is(err, upload.ErrEmptyFile),
		errors.Is(err, upload.ErrInvalidExtension),
		errors.Is(err, upload.ErrContentMismatch),
		errors.Is(err, upload.ErrTooLarge),
		errors.Is(err, engine.ErrEmptySelection),
		errors.Is(err, engine.ErrEmptyInput),
		errors.Is(err, engine.ErrRemovesAllPages),
		errors.Is(err, engine.ErrCorrupt),
		errors.Is(err, errMalformedForm):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		h.log.WithError(err).Error("operation failed")
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
	}
}
