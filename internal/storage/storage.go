// Package storage maps opaque file tokens to paths inside a managed directory.
//
// A token is issued once per stored file and stands in for that file across
// requests. Resolution is strictly confined to the managed root: a token can
// never name a path outside it, no matter what the client sends.
//
// Used by the upload ingestor to place new files and by API handlers to
// re-locate previously uploaded files and operation results.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Resolve for tokens that do not name a stored
// file, including tokens rejected for traversal attempts.
var ErrNotFound = errors.New("token does not resolve to a stored file")

// maxBaseLen bounds the sanitized original-name portion of a token so the
// full filename stays well under filesystem limits. The unique prefix is
// never truncated.
const maxBaseLen = 100

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	dotRuns     = regexp.MustCompile(`\.\.+`)
)

// Resolver manages a single directory of token-named files.
type Resolver struct {
	root string
}

// New creates the managed directory if needed and verifies it is writable.
func New(root string) (*Resolver, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", root, err)
	}
	probe, err := os.CreateTemp(root, ".probe-*")
	if err != nil {
		return nil, fmt.Errorf("storage root %s is not writable: %w", root, err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return &Resolver{root: root}, nil
}

// Root returns the managed directory.
func (r *Resolver) Root() string {
	return r.root
}

// Assign derives a collision-resistant token from originalName. The optional
// prefix tags operation outputs ("merged", "compressed", ...). The returned
// path is where the caller must place the file; nothing is created here.
func (r *Resolver) Assign(originalName, prefix string) (token, path string, err error) {
	base := SanitizeFilename(originalName)
	for {
		token = uuid.New().String() + "_" + base
		if prefix != "" {
			token = prefix + "_" + token
		}
		path = filepath.Join(r.root, token)
		// A UUID clash is not expected; the stat is cheap and keeps the
		// uniqueness contract unconditional under concurrent assigns.
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return token, path, nil
		} else if err != nil {
			return "", "", fmt.Errorf("probe %s: %w", path, err)
		}
	}
}

// Resolve returns the path a token was assigned, or ErrNotFound. Tokens
// containing separators or traversal sequences never resolve.
func (r *Resolver) Resolve(token string) (string, error) {
	if !validToken(token) {
		return "", ErrNotFound
	}
	path := filepath.Join(r.root, token)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", ErrNotFound
	}
	return path, nil
}

// Release deletes a token's file. Idempotent; a missing file is not an error.
func (r *Resolver) Release(token string) {
	if !validToken(token) {
		return
	}
	_ = os.Remove(filepath.Join(r.root, token))
}

func validToken(token string) bool {
	if token == "" || token == "." || token == ".." {
		return false
	}
	if strings.ContainsAny(token, `/\`) || strings.Contains(token, "..") {
		return false
	}
	// Base must round-trip: anything filepath would rewrite is hostile.
	return filepath.Base(token) == token && !filepath.IsAbs(token)
}

// SanitizeFilename reduces a client-supplied name to a filesystem-safe base
// name. Empty or fully-unsafe names fall back to a default, and long names
// are truncated with their extension preserved.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	safe := unsafeChars.ReplaceAllString(base, "_")
	// Dot runs would read as traversal sequences and make Resolve refuse
	// the very token Assign issued.
	safe = dotRuns.ReplaceAllString(safe, ".")
	safe = strings.Trim(safe, "._")
	if safe == "" {
		safe = "document.pdf"
	}
	if len(safe) > maxBaseLen {
		ext := filepath.Ext(safe)
		if len(ext) > 10 {
			ext = ""
		}
		safe = safe[:maxBaseLen-len(ext)] + ext
	}
	return safe
}
