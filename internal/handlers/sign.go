package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"pdfdesk/internal/upload"
)

func parseFloatField(s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}

// SignPDF godoc
// @Summary      Place a signature image on a PDF
// @Description  Stamps a PNG or JPEG signature onto one page at the given coordinates
// @Tags         signature
// @Accept       multipart/form-data
// @Produce      json
// @Param        file       formData  file    false  "PDF file (omit when filename is given)"
// @Param        filename   formData  string  false  "Token from a previous upload"
// @Param        signature  formData  file    true   "Signature image (PNG/JPEG)"
// @Param        page       formData  string  true   "1-based page number"
// @Param        x          formData  string  false  "Horizontal offset in points"
// @Param        y          formData  string  false  "Vertical offset in points"
// @Param        scale      formData  string  false  "Signature scale factor, default 1.0"
// @Success      200  {object}  map[string]interface{}  "{ success: true, output_filename: string, ... }"
// @Failure      400  {object}  map[string]interface{}  "Invalid image, page or upload"
// @Failure      404  {object}  map[string]interface{}  "Unknown token"
// @Router       /api/sign [post]
func (h *APIHandler) SignPDF(w http.ResponseWriter, r *http.Request) {
	if err := h.parseRequest(w, r, h.MaxUploadSize*2); err != nil {
		h.fail(w, err)
		return
	}
	src, err := h.resolveSource(r, "file", "filename")
	if err != nil {
		h.fail(w, err)
		return
	}
	sig, err := h.ingest.IngestForm(r, "signature", upload.ImageExtensions)
	if err != nil {
		h.fail(w, err)
		return
	}

	page, err := strconv.Atoi(strings.TrimSpace(r.FormValue("page")))
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "Page must be a positive integer", nil)
		return
	}
	x, err := parseFloatField(r.FormValue("x"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate", nil)
		return
	}
	y, err := parseFloatField(r.FormValue("y"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate", nil)
		return
	}
	scale, err := parseFloatField(r.FormValue("scale"), 1.0)
	if err != nil || scale <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid scale factor", nil)
		return
	}

	outToken, outPath, err := h.Results.Assign(src.OriginalName, "signed")
	if err != nil {
		h.fail(w, err)
		return
	}
	if err := h.Engine.Stamp(src.Path, sig.Path, page, x, y, scale, outPath); err != nil {
		h.Results.Release(outToken)
		h.fail(w, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"source": src.Token,
		"page":   page,
		"output": outToken,
	}).Info("document signed")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"output_filename":   outToken,
		"original_filename": src.OriginalName,
		"page":              page,
	})
}

// ProtectPDF godoc
// @Summary      Password-protect a PDF
// @Description  Encrypts the document with the given password
// @Tags         security
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    false  "PDF file (omit when filename is given)"
// @Param        filename  formData  string  false  "Token from a previous upload"
// @Param        password  formData  string  true   "Password to set"
// @Success      200  {object}  map[string]interface{}  "{ success: true, output_filename: string, protected: true }"
// @Failure      400  {object}  map[string]interface{}  "Missing password or invalid upload"
// @Failure      404  {object}  map[string]interface{}  "Unknown token"
// @Router       /api/protect [post]
func (h *APIHandler) ProtectPDF(w http.ResponseWriter, r *http.Request) {
	if err := h.parseRequest(w, r, h.MaxUploadSize); err != nil {
		h.fail(w, err)
		return
	}
	src, err := h.resolveSource(r, "file", "filename")
	if err != nil {
		h.fail(w, err)
		return
	}
	password := r.FormValue("password")
	if password == "" {
		writeError(w, http.StatusBadRequest, "Password is required", nil)
		return
	}

	outToken, outPath, err := h.Results.Assign(src.OriginalName, "protected")
	if err != nil {
		h.fail(w, err)
		return
	}
	if err := h.Engine.Encrypt(src.Path, outPath, password); err != nil {
		h.Results.Release(outToken)
		h.fail(w, err)
		return
	}

	h.log.WithField("output", outToken).Info("document protected")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"output_filename": outToken,
		"protected":       true,
	})
}

// UnprotectPDF godoc
// @Summary      Remove password protection from a PDF
// @Description  Decrypts the document using the given password
// @Tags         security
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    false  "PDF file (omit when filename is given)"
// @Param        filename  formData  string  false  "Token from a previous upload"
// @Param        password  formData  string  true   "Current password"
// @Success      200  {object}  map[string]interface{}  "{ success: true, output_filename: string, protected: false }"
// @Failure      400  {object}  map[string]interface{}  "Wrong password or invalid upload"
// @Failure      404  {object}  map[string]interface{}  "Unknown token"
// @Router       /api/unprotect [post]
func (h *APIHandler) UnprotectPDF(w http.ResponseWriter, r *http.Request) {
	if err := h.parseRequest(w, r, h.MaxUploadSize); err != nil {
		h.fail(w, err)
		return
	}
	src, err := h.resolveSource(r, "file", "filename")
	if err != nil {
		h.fail(w, err)
		return
	}
	password := r.FormValue("password")
	if password == "" {
		writeError(w, http.StatusBadRequest, "Password is required", nil)
		return
	}

	outToken, outPath, err := h.Results.Assign(src.OriginalName, "unprotected")
	if err != nil {
		h.fail(w, err)
		return
	}
	if err := h.Engine.Decrypt(src.Path, outPath, password); err != nil {
		h.Results.Release(outToken)
		writeError(w, http.StatusBadRequest, "Incorrect password or decryption failed", nil)
		return
	}

	h.log.WithField("output", outToken).Info("document unprotected")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"output_filename": outToken,
		"protected":       false,
	})
}
