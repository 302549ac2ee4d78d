package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// DeletePages godoc
// @Summary      Remove pages from a PDF
// @Description  Removes the listed pages from a PDF addressed by token or uploaded with the request
// @Tags         edit
// @Accept       multipart/form-data
// @Produce      json
// @Param        file             formData  file    false  "PDF file (omit when filename is given)"
// @Param        filename         formData  string  false  "Token from a previous upload"
// @Param        pages_to_remove  formData  string  true   "Comma separated 1-based page numbers, e.g. 1,3,5"
// @Success      200  {object}  map[string]interface{}  "{ success: true, output_filename: string, ... }"
// @Failure      400  {object}  map[string]interface{}  "Invalid pages or upload"
// @Failure      404  {object}  map[string]interface{}  "Unknown token"
// @Router       /api/delete_pages [post]
func (h *APIHandler) DeletePages(w http.ResponseWriter, r *http.Request) {
	if err := h.parseRequest(w, r, h.MaxUploadSize); err != nil {
		h.fail(w, err)
		return
	}
	src, err := h.resolveSource(r, "file", "filename")
	if err != nil {
		h.fail(w, err)
		return
	}

	spec := strings.TrimSpace(r.FormValue("pages_to_remove"))
	if spec == "" {
		writeError(w, http.StatusBadRequest, "No pages specified to remove", nil)
		return
	}
	pages, err := parsePageList(spec)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	outToken, outPath, err := h.Results.Assign(src.OriginalName, "deleted_pages")
	if err != nil {
		h.fail(w, err)
		return
	}
	res, err := h.Engine.RemovePages(src.Path, pages, outPath)
	if err != nil {
		h.Results.Release(outToken)
		h.fail(w, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"source":  src.Token,
		"removed": res.Removed,
		"output":  outToken,
	}).Info("pages removed")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"output_filename":   outToken,
		"original_filename": src.OriginalName,
		"pages_removed":     res.Removed,
		"total_pages":       res.TotalBefore,
		"new_page_count":    res.TotalAfter,
	})
}

// InsertPDF godoc
// @Summary      Insert one PDF into another
// @Description  Inserts every page of one PDF into another at a 1-based position; both inputs may be tokens or fresh uploads
// @Tags         edit
// @Accept       multipart/form-data
// @Produce      json
// @Param        base_file        formData  file    false  "Base PDF (omit when base_filename is given)"
// @Param        base_filename    formData  string  false  "Token of the base PDF"
// @Param        insert_file      formData  file    false  "PDF to insert (omit when insert_filename is given)"
// @Param        insert_filename  formData  string  false  "Token of the PDF to insert"
// @Param        position         formData  string  true   "1-based position; page_count+1 appends"
// @Success      200  {object}  map[string]interface{}  "{ success: true, output_filename: string, ... }"
// @Failure      400  {object}  map[string]interface{}  "Invalid position or upload"
// @Failure      404  {object}  map[string]interface{}  "Unknown token"
// @Router       /api/insert_pdf [post]
func (h *APIHandler) InsertPDF(w http.ResponseWriter, r *http.Request) {
	if err := h.parseRequest(w, r, h.MaxUploadSize*2); err != nil {
		h.fail(w, err)
		return
	}
	base, err := h.resolveSource(r, "base_file", "base_filename")
	if err != nil {
		h.fail(w, err)
		return
	}
	insert, err := h.resolveSource(r, "insert_file", "insert_filename")
	if err != nil {
		h.fail(w, err)
		return
	}

	position, err := strconv.Atoi(strings.TrimSpace(r.FormValue("position")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Position must be a valid integer", nil)
		return
	}
	if position < 1 {
		writeError(w, http.StatusBadRequest, "Position must be at least 1", nil)
		return
	}

	outToken, outPath, err := h.Results.Assign(base.OriginalName, "inserted")
	if err != nil {
		h.fail(w, err)
		return
	}
	res, err := h.Engine.InsertAt(base.Path, insert.Path, position, outPath)
	if err != nil {
		h.Results.Release(outToken)
		h.fail(w, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"base":     base.Token,
		"insert":   insert.Token,
		"position": res.Position,
		"output":   outToken,
	}).Info("document inserted")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":            true,
		"output_filename":    outToken,
		"base_page_count":    res.BasePages,
		"insert_page_count":  res.InsertPages,
		"insertion_position": res.Position,
		"new_page_count":     res.TotalPages,
	})
}

// SplitPDF godoc
// @Summary      Split a PDF into parts
// @Description  Extracts each requested page range into its own document; without ranges every page becomes one document
// @Tags         edit
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    false  "PDF file (omit when filename is given)"
// @Param        filename  formData  string  false  "Token from a previous upload"
// @Param        ranges    formData  string  false  "Comma separated ranges, e.g. 1-3,5,7-9"
// @Success      200  {object}  map[string]interface{}  "{ success: true, output_files: [...] }"
// @Failure      400  {object}  map[string]interface{}  "Invalid ranges or upload"
// @Failure      404  {object}  map[string]interface{}  "Unknown token"
// @Router       /api/split [post]
func (h *APIHandler) SplitPDF(w http.ResponseWriter, r *http.Request) {
	if err := h.parseRequest(w, r, h.MaxUploadSize); err != nil {
		h.fail(w, err)
		return
	}
	src, err := h.resolveSource(r, "file", "filename")
	if err != nil {
		h.fail(w, err)
		return
	}

	total, err := h.Engine.PageCount(src.Path)
	if err != nil {
		h.fail(w, err)
		return
	}

	var ranges []pageRange
	if spec := strings.TrimSpace(r.FormValue("ranges")); spec != "" {
		ranges, err = parseRanges(spec)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
	} else {
		for p := 1; p <= total; p++ {
			ranges = append(ranges, pageRange{Start: p, End: p})
		}
	}
	if len(ranges) == 0 {
		writeError(w, http.StatusBadRequest, "No page ranges specified", nil)
		return
	}

	type splitPart struct {
		Filename  string `json:"filename"`
		StartPage int    `json:"start_page"`
		EndPage   int    `json:"end_page"`
		PageCount int    `json:"page_count"`
	}
	parts := make([]splitPart, 0, len(ranges))
	tokens := make([]string, 0, len(ranges))
	release := func() {
		for _, t := range tokens {
			h.Results.Release(t)
		}
	}

	for i, rng := range ranges {
		outToken, outPath, err := h.Results.Assign(src.OriginalName, fmt.Sprintf("split_%d", i+1))
		if err != nil {
			release()
			h.fail(w, err)
			return
		}
		tokens = append(tokens, outToken)
		if err := h.Engine.ExtractRange(src.Path, rng.Start, rng.End, outPath); err != nil {
			release()
			h.fail(w, err)
			return
		}
		parts = append(parts, splitPart{
			Filename:  outToken,
			StartPage: rng.Start,
			EndPage:   rng.End,
			PageCount: rng.End - rng.Start + 1,
		})
	}

	h.log.WithFields(logrus.Fields{
		"source": src.Token,
		"parts":  len(parts),
	}).Info("document split")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"total_pages":  total,
		"split_count":  len(parts),
		"output_files": parts,
	})
}

// ReorderPages godoc
// @Summary      Reorder the pages of a PDF
// @Description  Writes a new document whose pages follow the given order
// @Tags         edit
// @Accept       multipart/form-data
// @Produce      json
// @Param        file       formData  file    false  "PDF file (omit when filename is given)"
// @Param        filename   formData  string  false  "Token from a previous upload"
// @Param        new_order  formData  string  true   "Comma separated 1-based page numbers"
// @Success      200  {object}  map[string]interface{}  "{ success: true, output_filename: string, ... }"
// @Failure      400  {object}  map[string]interface{}  "Invalid order or upload"
// @Failure      404  {object}  map[string]interface{}  "Unknown token"
// @Router       /api/reorder-pages [post]
func (h *APIHandler) ReorderPages(w http.ResponseWriter, r *http.Request) {
	if err := h.parseRequest(w, r, h.MaxUploadSize); err != nil {
		h.fail(w, err)
		return
	}
	src, err := h.resolveSource(r, "file", "filename")
	if err != nil {
		h.fail(w, err)
		return
	}

	spec := strings.TrimSpace(r.FormValue("new_order"))
	if spec == "" {
		writeError(w, http.StatusBadRequest, "No page order specified", nil)
		return
	}
	order, err := parsePageList(spec)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	outToken, outPath, err := h.Results.Assign(src.OriginalName, "reordered")
	if err != nil {
		h.fail(w, err)
		return
	}
	total, err := h.Engine.Reorder(src.Path, order, outPath)
	if err != nil {
		h.Results.Release(outToken)
		h.fail(w, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"source": src.Token,
		"output": outToken,
	}).Info("pages reordered")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"output_filename": outToken,
		"original_pages":  total,
		"new_order":       order,
	})
}
