package engine

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Inspect walks every page of a document and returns its geometry, the
// info-dictionary metadata, and whether each page carries text or images.
// Only the embedded text layer counts as text; scanned pages report images.
func (e *pdfcpuEngine) Inspect(path string) (*DocumentInfo, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer f.Close()

	info := &DocumentInfo{
		PageCount: r.NumPage(),
		Metadata:  readMetadata(r),
	}

	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= info.PageCount; i++ {
		p := r.Page(i)
		page := PageInfo{PageNumber: i}
		if !p.V.IsNull() {
			page.Width, page.Height = pageBox(p.V)
			page.Rotation = pageRotation(p.V)
			page.HasImages = pageHasImages(p)
			page.HasText = strings.TrimSpace(pageText(p, fonts)) != ""
		}
		info.Pages = append(info.Pages, page)
	}
	return info, nil
}

func readMetadata(r *pdf.Reader) Metadata {
	defer func() { recover() }()
	dict := r.Trailer().Key("Info")
	if dict.IsNull() {
		return Metadata{}
	}
	return Metadata{
		Title:        dict.Key("Title").Text(),
		Author:       dict.Key("Author").Text(),
		Subject:      dict.Key("Subject").Text(),
		Producer:     dict.Key("Producer").Text(),
		CreationDate: dict.Key("CreationDate").Text(),
		ModDate:      dict.Key("ModDate").Text(),
	}
}

// pageBox resolves the MediaBox, walking up the page tree for inherited
// values, and returns the page width and height in points.
func pageBox(v pdf.Value) (w, h float64) {
	for dict := v; !dict.IsNull(); dict = dict.Key("Parent") {
		box := dict.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			w = box.Index(2).Float64() - box.Index(0).Float64()
			h = box.Index(3).Float64() - box.Index(1).Float64()
			return w, h
		}
	}
	return 0, 0
}

func pageRotation(v pdf.Value) int {
	for dict := v; !dict.IsNull(); dict = dict.Key("Parent") {
		rot := dict.Key("Rotate")
		if rot.Kind() == pdf.Integer {
			return int(rot.Int64())
		}
	}
	return 0
}

func pageHasImages(p pdf.Page) (found bool) {
	defer func() { recover() }()
	xobjects := p.Resources().Key("XObject")
	if xobjects.Kind() != pdf.Dict {
		return false
	}
	for _, name := range xobjects.Keys() {
		if xobjects.Key(name).Key("Subtype").Name() == "Image" {
			return true
		}
	}
	return false
}

// pageText extracts the page's text layer. ledongthuc/pdf panics on some
// malformed content streams, so extraction failures degrade to "no text".
func pageText(p pdf.Page, fonts map[string]*pdf.Font) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	for _, name := range p.Fonts() {
		if _, ok := fonts[name]; !ok {
			f := p.Font(name)
			fonts[name] = &f
		}
	}
	text, err := p.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return text
}
