package handlers

import (
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// CompressPDF godoc
// @Summary      Compress a PDF
// @Description  Rewrites the document with optimized structure and streams and reports the size change
// @Tags         compress
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    false  "PDF file (omit when filename is given)"
// @Param        filename  formData  string  false  "Token from a previous upload"
// @Success      200  {object}  map[string]interface{}  "{ success: true, result_filename: string, ... }"
// @Failure      400  {object}  map[string]interface{}  "Invalid upload"
// @Failure      404  {object}  map[string]interface{}  "Unknown token"
// @Router       /api/compress [post]
func (h *APIHandler) CompressPDF(w http.ResponseWriter, r *http.Request) {
	if err := h.parseRequest(w, r, h.MaxUploadSize); err != nil {
		h.fail(w, err)
		return
	}
	src, err := h.resolveSource(r, "file", "filename")
	if err != nil {
		h.fail(w, err)
		return
	}

	outToken, outPath, err := h.Results.Assign(src.OriginalName, "compressed")
	if err != nil {
		h.fail(w, err)
		return
	}
	res, err := h.Engine.Optimize(src.Path, outPath)
	if err != nil {
		h.Results.Release(outToken)
		h.fail(w, err)
		return
	}

	reduction := res.OriginalSize - res.NewSize
	var percent float64
	if res.OriginalSize > 0 {
		percent = float64(reduction) / float64(res.OriginalSize) * 100
	}

	h.log.WithFields(logrus.Fields{
		"source": src.Token,
		"before": res.OriginalSize,
		"after":  res.NewSize,
		"output": outToken,
	}).Info("document compressed")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":                   true,
		"result_filename":           outToken,
		"original_filename":         src.OriginalName,
		"original_size":             res.OriginalSize,
		"original_size_formatted":   humanize.Bytes(uint64(res.OriginalSize)),
		"compressed_size":           res.NewSize,
		"compressed_size_formatted": humanize.Bytes(uint64(res.NewSize)),
		"reduction":                 reduction,
		"reduction_percent":         percent,
	})
}
