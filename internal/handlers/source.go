package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"pdfdesk/internal/upload"
)

// source is a resolved input document: either a previously uploaded file
// addressed by token, or a fresh upload ingested by this request.
type source struct {
	Token        string
	Path         string
	OriginalName string
	Fresh        bool
}

// resolveSource implements the token-or-file rule shared by every act
// endpoint. A non-empty token field wins over an attached file; a token
// that does not resolve is an error, never a fallthrough to the file.
func (h *APIHandler) resolveSource(r *http.Request, fileField, tokenField string) (*source, error) {
	if token := strings.TrimSpace(r.FormValue(tokenField)); token != "" {
		path, err := h.Uploads.Resolve(token)
		if err != nil {
			return nil, err
		}
		return &source{Token: token, Path: path, OriginalName: originalNameFromToken(token)}, nil
	}
	desc, err := h.ingest.IngestForm(r, fileField, upload.PDFExtensions)
	if err != nil {
		return nil, err
	}
	return &source{Token: desc.Token, Path: desc.Path, OriginalName: desc.OriginalName, Fresh: true}, nil
}

var uuidSegment = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// originalNameFromToken recovers the sanitized upload name from a stored
// token of the form [prefix_]uuid_name. If the token does not carry a uuid
// segment the token itself is returned.
func originalNameFromToken(token string) string {
	parts := strings.Split(token, "_")
	for i, p := range parts {
		if uuidSegment.MatchString(p) && i+1 < len(parts) {
			return strings.Join(parts[i+1:], "_")
		}
	}
	return token
}
