package upload

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfdesk/internal/pdftest"
	"pdfdesk/internal/storage"
)

func newIngestor(t *testing.T, maxSize int64) (*Ingestor, *storage.Resolver) {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return NewIngestor(store, maxSize), store
}

func formRequest(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	headers := req.MultipartForm.File[field]
	require.Len(t, headers, 1)
	return headers[0]
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestIngestPDF(t *testing.T) {
	ing, store := newIngestor(t, 0)
	content := pdftest.Render(pdftest.Doc{Pages: 2})

	hdr := formRequest(t, "file", "report.pdf", content)
	file, err := hdr.Open()
	require.NoError(t, err)
	defer file.Close()

	desc, err := ing.Ingest(file, hdr, PDFExtensions)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", desc.OriginalName)
	assert.Equal(t, int64(len(content)), desc.Size)

	path, err := store.Resolve(desc.Token)
	require.NoError(t, err)
	stored, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, stored, "stored bytes identical to the upload")
}

func TestIngestRejectsWrongExtension(t *testing.T) {
	ing, _ := newIngestor(t, 0)
	hdr := formRequest(t, "file", "report.docx", []byte("%PDF-1.4 nope"))
	file, err := hdr.Open()
	require.NoError(t, err)
	defer file.Close()

	_, err = ing.Ingest(file, hdr, PDFExtensions)
	assert.ErrorIs(t, err, ErrInvalidExtension)
}

func TestIngestExtensionCaseInsensitive(t *testing.T) {
	ing, _ := newIngestor(t, 0)
	hdr := formRequest(t, "file", "REPORT.PDF", pdftest.Render(pdftest.Doc{Pages: 1}))
	file, err := hdr.Open()
	require.NoError(t, err)
	defer file.Close()

	_, err = ing.Ingest(file, hdr, PDFExtensions)
	assert.NoError(t, err)
}

func TestIngestRejectsFakePDF(t *testing.T) {
	ing, store := newIngestor(t, 0)
	hdr := formRequest(t, "file", "fake.pdf", []byte("<html>not a pdf</html>"))
	file, err := hdr.Open()
	require.NoError(t, err)
	defer file.Close()

	_, err = ing.Ingest(file, hdr, PDFExtensions)
	assert.ErrorIs(t, err, ErrContentMismatch)

	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial file left behind")
}

func TestIngestRejectsEmptyFile(t *testing.T) {
	ing, _ := newIngestor(t, 0)
	hdr := formRequest(t, "file", "empty.pdf", nil)
	file, err := hdr.Open()
	require.NoError(t, err)
	defer file.Close()

	_, err = ing.Ingest(file, hdr, PDFExtensions)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestIngestRejectsOversize(t *testing.T) {
	ing, store := newIngestor(t, 64)
	content := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), 200)...)
	hdr := formRequest(t, "file", "big.pdf", content)
	file, err := hdr.Open()
	require.NoError(t, err)
	defer file.Close()

	_, err = ing.Ingest(file, hdr, PDFExtensions)
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIngestMissingFile(t *testing.T) {
	ing, _ := newIngestor(t, 0)
	_, err := ing.Ingest(nil, nil, PDFExtensions)
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestIngestSignatureImage(t *testing.T) {
	ing, _ := newIngestor(t, 0)
	hdr := formRequest(t, "signature", "sig.png", pngBytes(t))
	file, err := hdr.Open()
	require.NoError(t, err)
	defer file.Close()

	desc, err := ing.Ingest(file, hdr, ImageExtensions)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(desc.Token, "_sig.png"))
}

func TestIngestImageExtensionMismatch(t *testing.T) {
	ing, _ := newIngestor(t, 0)
	// PNG bytes under a .jpg name must be refused.
	hdr := formRequest(t, "signature", "sig.jpg", pngBytes(t))
	file, err := hdr.Open()
	require.NoError(t, err)
	defer file.Close()

	_, err = ing.Ingest(file, hdr, ImageExtensions)
	assert.ErrorIs(t, err, ErrContentMismatch)
}
