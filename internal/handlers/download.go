package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pdfdesk/internal/storage"
)

// DownloadFile godoc
// @Summary      Download an operation result
// @Description  Streams a previously produced result file as an attachment
// @Tags         download
// @Produce      application/pdf
// @Param        token  path  string  true  "Result token returned by an operation"
// @Success      200  {file}    file                    "PDF file download"
// @Failure      404  {object}  map[string]interface{}  "Unknown or expired token"
// @Router       /api/download/{token} [get]
func (h *APIHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	path, err := h.Results.Resolve(token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "File not found. It may have expired.", nil)
			return
		}
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", token))
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}
