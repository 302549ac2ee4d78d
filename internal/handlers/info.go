package handlers

import (
	"encoding/base64"
	"net/http"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"pdfdesk/internal/engine"
	"pdfdesk/internal/upload"
)

type documentInfo struct {
	Filename          string            `json:"filename"`
	OriginalName      string            `json:"original_name"`
	FileSize          int64             `json:"file_size"`
	FileSizeFormatted string            `json:"file_size_formatted"`
	PageCount         int               `json:"page_count"`
	Metadata          engine.Metadata   `json:"metadata"`
	PagesInfo         []engine.PageInfo `json:"pages_info"`
	PDFBase64         string            `json:"pdf_base64,omitempty"`
}

// ExtractInfo godoc
// @Summary      Upload a PDF and extract document information
// @Description  Stores the uploaded PDF and returns its page count, metadata and per-page geometry along with a token for follow-up operations
// @Tags         info
// @Accept       multipart/form-data
// @Produce      json
// @Param        file                 formData  file    true   "PDF file"
// @Param        include_pdf_content  formData  string  false  "Set to true to embed the stored PDF as base64"
// @Success      200  {object}  map[string]interface{}  "{ success: true, info: object }"
// @Failure      400  {object}  map[string]interface{}  "Invalid upload"
// @Router       /api/extract-info [post]
func (h *APIHandler) ExtractInfo(w http.ResponseWriter, r *http.Request) {
	if err := h.parseRequest(w, r, h.MaxUploadSize); err != nil {
		h.fail(w, err)
		return
	}
	desc, err := h.ingest.IngestForm(r, "file", upload.PDFExtensions)
	if err != nil {
		h.fail(w, err)
		return
	}

	doc, err := h.Engine.Inspect(desc.Path)
	if err != nil {
		// The magic-byte sniff admits files the parser later rejects.
		// Drop those so the token never resolves to a broken document.
		h.Uploads.Release(desc.Token)
		h.fail(w, err)
		return
	}

	info := documentInfo{
		Filename:          desc.Token,
		OriginalName:      desc.OriginalName,
		FileSize:          desc.Size,
		FileSizeFormatted: humanize.Bytes(uint64(desc.Size)),
		PageCount:         doc.PageCount,
		Metadata:          doc.Metadata,
		PagesInfo:         doc.Pages,
	}

	if parseBoolField(r.FormValue("include_pdf_content")) {
		raw, err := os.ReadFile(desc.Path)
		if err != nil {
			h.fail(w, err)
			return
		}
		info.PDFBase64 = base64.StdEncoding.EncodeToString(raw)
	}

	h.log.WithFields(logrus.Fields{
		"token": desc.Token,
		"pages": doc.PageCount,
		"size":  desc.Size,
	}).Info("document ingested")

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "info": info})
}
