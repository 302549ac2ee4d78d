// Package upload validates incoming multipart files and persists them under
// storage tokens. Validation failures never leave a partial file behind, and
// a token never becomes resolvable before its bytes are fully written.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"pdfdesk/internal/storage"
)

var (
	ErrMissingFile      = errors.New("no file provided")
	ErrEmptyFile        = errors.New("file is empty")
	ErrInvalidExtension = errors.New("invalid file type")
	ErrContentMismatch  = errors.New("file content does not match its extension")
	ErrTooLarge         = errors.New("file exceeds the maximum upload size")
)

// IsValidationError reports whether err marks a rejected upload rather than
// a storage failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingFile) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrContentMismatch) ||
		errors.Is(err, ErrTooLarge)
}

// PDFExtensions is the default allow-list for document uploads.
var PDFExtensions = []string{".pdf"}

// ImageExtensions is the allow-list for signature image uploads.
var ImageExtensions = []string{".png", ".jpg", ".jpeg"}

var imageExtensionsByType = map[string][]string{
	"image/png":  {".png"},
	"image/jpeg": {".jpg", ".jpeg"},
}

// Descriptor describes one ingested file. Operation handlers treat it as a
// read-only view; the file itself belongs to the storage resolver.
type Descriptor struct {
	Token        string
	Path         string
	OriginalName string
	Size         int64
	CreatedAt    time.Time
}

// Ingestor validates and stores uploads into one managed directory.
type Ingestor struct {
	store   *storage.Resolver
	maxSize int64
}

func NewIngestor(store *storage.Resolver, maxSize int64) *Ingestor {
	return &Ingestor{store: store, maxSize: maxSize}
}

// IngestForm pulls the named multipart field out of the request and ingests
// it. A missing or unnamed field reports ErrMissingFile.
func (ing *Ingestor) IngestForm(r *http.Request, field string, allowed []string) (*Descriptor, error) {
	file, hdr, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q", ErrMissingFile, field)
	}
	defer file.Close()
	return ing.Ingest(file, hdr, allowed)
}

// Ingest validates the upload against the extension allow-list, sniffs the
// content, and writes it atomically under a fresh token.
func (ing *Ingestor) Ingest(file multipart.File, hdr *multipart.FileHeader, allowed []string) (*Descriptor, error) {
	if hdr == nil || hdr.Filename == "" {
		return nil, ErrMissingFile
	}
	if hdr.Size == 0 {
		return nil, ErrEmptyFile
	}
	if ing.maxSize > 0 && hdr.Size > ing.maxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, hdr.Size)
	}

	ext := strings.ToLower(filepath.Ext(hdr.Filename))
	if !slices.Contains(allowed, ext) {
		return nil, fmt.Errorf("%w: allowed: %s", ErrInvalidExtension, strings.Join(allowed, ", "))
	}

	if err := sniff(file, ext); err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	token, path, err := ing.store.Assign(hdr.Filename, "")
	if err != nil {
		return nil, err
	}

	size, err := ing.writeAtomic(file, path)
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		Token:        token,
		Path:         path,
		OriginalName: hdr.Filename,
		Size:         size,
		CreatedAt:    time.Now(),
	}, nil
}

// writeAtomic copies the stream to a temp file in the managed directory and
// renames it into place, so the token path either holds the complete file or
// nothing.
func (ing *Ingestor) writeAtomic(src io.Reader, path string) (int64, error) {
	tmp, err := os.CreateTemp(ing.store.Root(), ".ingest-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, src)
	if err != nil {
		tmp.Close()
		return 0, fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("flush upload: %w", err)
	}
	if ing.maxSize > 0 && size > ing.maxSize {
		return 0, fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}
	if size == 0 {
		return 0, ErrEmptyFile
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("publish upload: %w", err)
	}
	return size, nil
}

// sniff verifies the leading bytes match the declared extension: PDFs must
// carry the %PDF- magic, images must detect as a type whose extensions
// include the declared one.
func sniff(file multipart.File, ext string) error {
	header := make([]byte, 512)
	n, err := file.Read(header)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read upload header: %w", err)
	}
	header = header[:n]

	if ext == ".pdf" {
		if !bytes.HasPrefix(header, []byte("%PDF-")) {
			return fmt.Errorf("%w: missing PDF header", ErrContentMismatch)
		}
		return nil
	}

	contentType := http.DetectContentType(header)
	exts, ok := imageExtensionsByType[contentType]
	if !ok {
		return fmt.Errorf("%w: detected %s", ErrContentMismatch, contentType)
	}
	if !slices.Contains(exts, ext) {
		return fmt.Errorf("%w: %s content with %s extension", ErrContentMismatch, contentType, ext)
	}
	return nil
}
