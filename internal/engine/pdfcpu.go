package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

type pdfcpuEngine struct{}

func (e *pdfcpuEngine) PageCount(path string) (int, error) {
	n, err := pdfapi.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return n, nil
}

func (e *pdfcpuEngine) RemovePages(path string, pages []int, outPath string) (*RemoveResult, error) {
	if len(pages) == 0 {
		return nil, ErrEmptySelection
	}

	total, err := e.PageCount(path)
	if err != nil {
		return nil, err
	}

	selection := normalizePages(pages)
	if bad := outOfRange(selection, total); len(bad) > 0 {
		return nil, &PageRangeError{Pages: bad, Total: total}
	}
	if len(selection) == total {
		return nil, ErrRemovesAllPages
	}

	if err := pdfapi.RemovePagesFile(path, outPath, pageStrings(selection), model.NewDefaultConfiguration()); err != nil {
		os.Remove(outPath)
		return nil, fmt.Errorf("remove pages: %w", err)
	}

	return &RemoveResult{
		Removed:     selection,
		TotalBefore: total,
		TotalAfter:  total - len(selection),
	}, nil
}

func (e *pdfcpuEngine) Merge(paths []string, outPath string) (*MergeResult, error) {
	if len(paths) < 2 {
		return nil, ErrEmptyInput
	}

	inputPages := make([]int, len(paths))
	for i, p := range paths {
		n, err := e.PageCount(p)
		if err != nil {
			return nil, err
		}
		inputPages[i] = n
	}

	if err := pdfapi.MergeCreateFile(paths, outPath, false, model.NewDefaultConfiguration()); err != nil {
		os.Remove(outPath)
		return nil, fmt.Errorf("merge: %w", err)
	}

	total, err := e.PageCount(outPath)
	if err != nil {
		return nil, err
	}
	return &MergeResult{TotalPages: total, InputPages: inputPages}, nil
}

// InsertAt splices insertPath into basePath before the given 1-based
// position; position total+1 appends. pdfcpu has no direct splice, so the
// base is trimmed into front and back parts and the three pieces merged.
func (e *pdfcpuEngine) InsertAt(basePath, insertPath string, position int, outPath string) (*InsertResult, error) {
	basePages, err := e.PageCount(basePath)
	if err != nil {
		return nil, err
	}
	insertPages, err := e.PageCount(insertPath)
	if err != nil {
		return nil, err
	}
	if position < 1 || position > basePages+1 {
		return nil, &PageRangeError{Pages: []int{position}, Total: basePages}
	}

	tmpDir, err := os.MkdirTemp("", "pdfdesk-insert-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	conf := model.NewDefaultConfiguration()
	parts := make([]string, 0, 3)

	if position > 1 {
		front := filepath.Join(tmpDir, "front.pdf")
		sel := []string{fmt.Sprintf("1-%d", position-1)}
		if err := pdfapi.TrimFile(basePath, front, sel, conf); err != nil {
			return nil, fmt.Errorf("trim front: %w", err)
		}
		parts = append(parts, front)
	}
	parts = append(parts, insertPath)
	if position <= basePages {
		back := filepath.Join(tmpDir, "back.pdf")
		sel := []string{fmt.Sprintf("%d-%d", position, basePages)}
		if err := pdfapi.TrimFile(basePath, back, sel, conf); err != nil {
			return nil, fmt.Errorf("trim back: %w", err)
		}
		parts = append(parts, back)
	}

	if err := pdfapi.MergeCreateFile(parts, outPath, false, conf); err != nil {
		os.Remove(outPath)
		return nil, fmt.Errorf("merge parts: %w", err)
	}

	return &InsertResult{
		BasePages:   basePages,
		InsertPages: insertPages,
		Position:    position,
		TotalPages:  basePages + insertPages,
	}, nil
}

func (e *pdfcpuEngine) ExtractRange(path string, start, end int, outPath string) error {
	total, err := e.PageCount(path)
	if err != nil {
		return err
	}
	if start < 1 || end > total || start > end {
		return &PageRangeError{Pages: []int{start, end}, Total: total}
	}
	sel := []string{fmt.Sprintf("%d-%d", start, end)}
	if err := pdfapi.TrimFile(path, outPath, sel, model.NewDefaultConfiguration()); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("extract pages %d-%d: %w", start, end, err)
	}
	return nil
}

func (e *pdfcpuEngine) Reorder(path string, order []int, outPath string) (int, error) {
	if len(order) == 0 {
		return 0, ErrEmptySelection
	}
	total, err := e.PageCount(path)
	if err != nil {
		return 0, err
	}
	if bad := outOfRange(order, total); len(bad) > 0 {
		return 0, &PageRangeError{Pages: bad, Total: total}
	}
	if err := pdfapi.CollectFile(path, outPath, pageStrings(order), model.NewDefaultConfiguration()); err != nil {
		os.Remove(outPath)
		return 0, fmt.Errorf("reorder: %w", err)
	}
	return total, nil
}

func (e *pdfcpuEngine) Optimize(path, outPath string) (*OptimizeResult, error) {
	before, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if err := pdfapi.OptimizeFile(path, outPath, model.NewDefaultConfiguration()); err != nil {
		os.Remove(outPath)
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	after, err := os.Stat(outPath)
	if err != nil {
		return nil, fmt.Errorf("stat output: %w", err)
	}
	return &OptimizeResult{OriginalSize: before.Size(), NewSize: after.Size()}, nil
}

// Stamp places an image onto one page at absolute coordinates. The input is
// first copied to outPath because pdfcpu applies watermarks in place.
func (e *pdfcpuEngine) Stamp(path, imagePath string, page int, x, y, scale float64, outPath string) error {
	total, err := e.PageCount(path)
	if err != nil {
		return err
	}
	if page < 1 || page > total {
		return &PageRangeError{Pages: []int{page}, Total: total}
	}

	if err := copyFile(path, outPath); err != nil {
		return fmt.Errorf("copy document: %w", err)
	}

	// pos:full gives absolute positioning, rot:0 no rotation, op:1 opaque.
	desc := fmt.Sprintf("scale:%.2f, pos:full, rot:0, op:1", scale)
	wm, err := pdfcpu.ParseImageWatermarkDetails(imagePath, desc, true, types.POINTS)
	if err != nil {
		os.Remove(outPath)
		return fmt.Errorf("parse image watermark: %w", err)
	}
	wm.Dx = x
	wm.Dy = y

	pages := []string{strconv.Itoa(page)}
	if err := pdfapi.AddWatermarksFile(outPath, "", pages, wm, model.NewDefaultConfiguration()); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("apply stamp: %w", err)
	}
	return nil
}

func (e *pdfcpuEngine) Encrypt(path, outPath, password string) error {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password
	if err := pdfapi.EncryptFile(path, outPath, conf); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("encrypt: %w", err)
	}
	return nil
}

func (e *pdfcpuEngine) Decrypt(path, outPath, password string) error {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password
	if err := pdfapi.DecryptFile(path, outPath, conf); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("decrypt: %w", err)
	}
	return nil
}

// normalizePages sorts and deduplicates a 1-based page selection.
func normalizePages(pages []int) []int {
	seen := make(map[int]bool, len(pages))
	out := make([]int, 0, len(pages))
	for _, p := range pages {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Ints(out)
	return out
}

func outOfRange(pages []int, total int) []int {
	var bad []int
	for _, p := range pages {
		if p < 1 || p > total {
			bad = append(bad, p)
		}
	}
	return bad
}

func pageStrings(pages []int) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = strconv.Itoa(p)
	}
	return out
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
