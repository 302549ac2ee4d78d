// Package engine wraps the PDF libraries behind the capability surface the
// handlers depend on. Structural edits (remove, merge, insert, reorder,
// optimize, stamp, encrypt) go through pdfcpu; document inspection (page
// geometry, metadata, text/image presence) goes through ledongthuc/pdf.
//
// Every operation reads its input and writes a distinct output path; inputs
// are never modified in place.
package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt wraps parser failures on unreadable documents.
	ErrCorrupt = errors.New("document cannot be read")

	// ErrEmptySelection is returned when an operation receives no pages.
	ErrEmptySelection = errors.New("no pages selected")

	// ErrEmptyInput is returned when merge receives fewer than two inputs.
	ErrEmptyInput = errors.New("at least two input files are required")

	// ErrRemovesAllPages rejects a selection covering the whole document.
	ErrRemovesAllPages = errors.New("selection would remove every page")
)

// PageRangeError reports requested pages that fall outside [1, Total].
type PageRangeError struct {
	Pages []int
	Total int
}

func (e *PageRangeError) Error() string {
	return fmt.Sprintf("Invalid page numbers: %v. PDF has %d pages.", e.Pages, e.Total)
}

// Metadata mirrors the document information dictionary. Date fields carry the
// raw PDF date strings (e.g. "D:20240101120000Z").
type Metadata struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	Subject      string `json:"subject"`
	Producer     string `json:"producer"`
	CreationDate string `json:"creation_date"`
	ModDate      string `json:"mod_date"`
}

// PageInfo describes one page of an inspected document.
type PageInfo struct {
	PageNumber int     `json:"page_number"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Rotation   int     `json:"rotation"`
	HasImages  bool    `json:"has_images"`
	HasText    bool    `json:"has_text"`
}

// DocumentInfo is the full read-only analysis of a document.
type DocumentInfo struct {
	PageCount int        `json:"page_count"`
	Metadata  Metadata   `json:"metadata"`
	Pages     []PageInfo `json:"pages_info"`
}

// RemoveResult reports a page removal.
type RemoveResult struct {
	Removed     []int
	TotalBefore int
	TotalAfter  int
}

// MergeResult reports a merge. InputPages holds the page count of each input
// in submission order.
type MergeResult struct {
	TotalPages int
	InputPages []int
}

// InsertResult reports an insertion.
type InsertResult struct {
	BasePages   int
	InsertPages int
	Position    int
	TotalPages  int
}

// OptimizeResult reports a compression pass.
type OptimizeResult struct {
	OriginalSize int64
	NewSize      int64
}

// Engine is the capability surface the HTTP layer programs against.
type Engine interface {
	PageCount(path string) (int, error)
	Inspect(path string) (*DocumentInfo, error)
	RemovePages(path string, pages []int, outPath string) (*RemoveResult, error)
	Merge(paths []string, outPath string) (*MergeResult, error)
	InsertAt(basePath, insertPath string, position int, outPath string) (*InsertResult, error)
	ExtractRange(path string, start, end int, outPath string) error
	Reorder(path string, order []int, outPath string) (int, error)
	Optimize(path, outPath string) (*OptimizeResult, error)
	Stamp(path, imagePath string, page int, x, y, scale float64, outPath string) error
	Encrypt(path, outPath, password string) error
	Decrypt(path, outPath, password string) error
}

// New returns the pdfcpu-backed engine.
func New() Engine {
	return &pdfcpuEngine{}
}
