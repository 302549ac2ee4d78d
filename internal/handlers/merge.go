package handlers

import (
	"net/http"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pdfdesk/internal/upload"
)

// mergeIngestWorkers caps concurrent ingestion of merge inputs.
const mergeIngestWorkers = 4

// MergeFiles godoc
// @Summary      Merge PDF files
// @Description  Merges the uploaded PDF files in submission order into a single document
// @Tags         merge
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Two or more PDF files"
// @Success      200  {object}  map[string]interface{}  "{ success: true, output_filename: string, ... }"
// @Failure      400  {object}  map[string]interface{}  "Fewer than two valid PDFs"
// @Router       /api/merge [post]
func (h *APIHandler) MergeFiles(w http.ResponseWriter, r *http.Request) {
	if err := h.parseRequest(w, r, h.MaxUploadSize*mergeBodyFactor); err != nil {
		h.fail(w, err)
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) < 2 {
		writeError(w, http.StatusBadRequest, "At least two PDF files are required for merging", nil)
		return
	}
	headers := r.MultipartForm.File["files"]

	// Ingest concurrently but keep submission order; invalid files are
	// skipped, only storage failures abort the request.
	descs := make([]*upload.Descriptor, len(headers))
	var g errgroup.Group
	g.SetLimit(mergeIngestWorkers)
	for i, hdr := range headers {
		i, hdr := i, hdr
		g.Go(func() error {
			f, err := hdr.Open()
			if err != nil {
				return err
			}
			defer f.Close()
			desc, err := h.ingest.Ingest(f, hdr, upload.PDFExtensions)
			if err != nil {
				if upload.IsValidationError(err) {
					h.log.WithError(err).WithField("name", hdr.Filename).Warn("skipping merge input")
					return nil
				}
				return err
			}
			descs[i] = desc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.fail(w, err)
		return
	}

	valid := descs[:0]
	for _, d := range descs {
		if d != nil {
			valid = append(valid, d)
		}
	}
	if len(valid) < 2 {
		for _, d := range valid {
			h.Uploads.Release(d.Token)
		}
		writeError(w, http.StatusBadRequest, "At least two valid PDF files are required for merging", nil)
		return
	}

	paths := make([]string, len(valid))
	for i, d := range valid {
		paths[i] = d.Path
	}

	outToken, outPath, err := h.Results.Assign("merged.pdf", "merged")
	if err != nil {
		h.fail(w, err)
		return
	}
	res, err := h.Engine.Merge(paths, outPath)
	if err != nil {
		h.Results.Release(outToken)
		h.fail(w, err)
		return
	}

	type mergedFile struct {
		Filename  string `json:"filename"`
		PageCount int    `json:"page_count"`
	}
	fileInfo := make([]mergedFile, len(valid))
	for i, d := range valid {
		fileInfo[i] = mergedFile{Filename: d.OriginalName, PageCount: res.InputPages[i]}
	}

	var outSize int64
	if st, err := os.Stat(outPath); err == nil {
		outSize = st.Size()
	}

	h.log.WithFields(logrus.Fields{
		"inputs": len(valid),
		"pages":  res.TotalPages,
		"output": outToken,
	}).Info("documents merged")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":               true,
		"output_filename":       outToken,
		"merged_files":          len(valid),
		"total_pages":           res.TotalPages,
		"file_info":             fileInfo,
		"output_size":           outSize,
		"output_size_formatted": humanize.Bytes(uint64(outSize)),
	})
}
