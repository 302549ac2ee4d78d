// Package pdftest generates small, standards-valid PDF files for tests.
// The writer tracks byte offsets so the emitted cross-reference table is
// exact, which keeps strict parsers happy.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Doc describes a fixture document.
type Doc struct {
	Pages  int
	Rotate map[int]int // 1-based page number -> /Rotate value
	Text   bool        // give each page a one-line text content stream
	Label  string      // text prefix per page, default "Page"
	Title  string
	Author string
}

// Write renders doc to path.
func Write(t *testing.T, path string, doc Doc) {
	t.Helper()
	if doc.Pages < 1 {
		t.Fatalf("pdftest: document needs at least one page, got %d", doc.Pages)
	}
	if err := os.WriteFile(path, Render(doc), 0644); err != nil {
		t.Fatalf("pdftest: write %s: %v", path, err)
	}
}

// WriteFile creates an n-page document named name under dir and returns its
// full path.
func WriteFile(t *testing.T, dir, name string, pages int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	Write(t, path, Doc{Pages: pages})
	return path
}

// Render produces the document bytes.
func Render(doc Doc) []byte {
	n := doc.Pages

	// Object numbering: 1 catalog, 2 page tree, 3..2+n pages, then the
	// shared font and per-page content streams when text is requested,
	// then the info dictionary when metadata is set.
	fontObj := 0
	firstContentObj := 0
	if doc.Text {
		fontObj = 2 + n + 1
		firstContentObj = fontObj + 1
	}
	infoObj := 0
	if doc.Title != "" || doc.Author != "" {
		infoObj = 2 + n + 1
		if doc.Text {
			infoObj = firstContentObj + n
		}
	}

	var buf bytes.Buffer
	offsets := map[int]int{}
	obj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	obj(1, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := ""
	for i := 1; i <= n; i++ {
		kids += fmt.Sprintf("%d 0 R ", 2+i)
	}
	obj(2, fmt.Sprintf("<< /Type /Pages /Kids [ %s] /Count %d >>", kids, n))

	for i := 1; i <= n; i++ {
		body := "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792]"
		if rot, ok := doc.Rotate[i]; ok {
			body += fmt.Sprintf(" /Rotate %d", rot)
		}
		if doc.Text {
			body += fmt.Sprintf(" /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R", fontObj, firstContentObj+i-1)
		} else {
			body += " /Resources << >>"
		}
		body += " >>"
		obj(2+i, body)
	}

	if doc.Text {
		label := doc.Label
		if label == "" {
			label = "Page"
		}
		obj(fontObj, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
		for i := 1; i <= n; i++ {
			stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s %d) Tj ET", label, i)
			body := fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream)
			obj(firstContentObj+i-1, body)
		}
	}

	if infoObj > 0 {
		body := "<<"
		if doc.Title != "" {
			body += fmt.Sprintf(" /Title (%s)", doc.Title)
		}
		if doc.Author != "" {
			body += fmt.Sprintf(" /Author (%s)", doc.Author)
		}
		body += " >>"
		obj(infoObj, body)
	}

	lastObj := 2 + n
	if doc.Text {
		lastObj = firstContentObj + n - 1
	}
	if infoObj > lastObj {
		lastObj = infoObj
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", lastObj+1)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= lastObj; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	buf.WriteString("trailer\n")
	fmt.Fprintf(&buf, "<< /Size %d /Root 1 0 R", lastObj+1)
	if infoObj > 0 {
		fmt.Fprintf(&buf, " /Info %d 0 R", infoObj)
	}
	buf.WriteString(" >>\n")
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefOffset)

	return buf.Bytes()
}
