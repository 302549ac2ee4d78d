package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfdesk/internal/engine"
	"pdfdesk/internal/pdftest"
	"pdfdesk/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	uploads, err := storage.New(t.TempDir())
	require.NoError(t, err)
	results, err := storage.New(t.TempDir())
	require.NoError(t, err)

	s := &Server{
		Uploads:       uploads,
		Results:       results,
		Engine:        engine.New(),
		MaxUploadSize: 25 * 1024 * 1024,
		Retention:     time.Hour,
		Log:           log,
	}
	ts := httptest.NewServer(s.RegisterRoutes())
	t.Cleanup(ts.Close)
	return ts
}

type formFile struct {
	field string
	name  string
	data  []byte
}

func postForm(t *testing.T, url string, fields map[string]string, files ...formFile) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// uploadFixture pushes a generated document through /api/extract-info and
// returns the issued token along with the exact uploaded bytes.
func uploadFixture(t *testing.T, ts *httptest.Server, pages int) (string, []byte) {
	t.Helper()
	raw := pdftest.Render(pdftest.Doc{Pages: pages})
	resp := postForm(t, ts.URL+"/api/extract-info", nil, formFile{"file", "fixture.pdf", raw})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	info, ok := body["info"].(map[string]any)
	require.True(t, ok, "missing info object")
	token, _ := info["filename"].(string)
	require.NotEmpty(t, token)
	require.EqualValues(t, pages, info["page_count"])
	return token, raw
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestExtractInfoIssuesReusableToken(t *testing.T) {
	ts := newTestServer(t)
	token, _ := uploadFixture(t, ts, 10)

	// The token serves repeated operations without re-uploading.
	for _, spec := range []string{"1,3,5", "2"} {
		resp := postForm(t, ts.URL+"/api/delete_pages", map[string]string{
			"filename":        token,
			"pages_to_remove": spec,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, true, body["success"])
		assert.EqualValues(t, 10, body["total_pages"])
	}
}

func TestExtractInfoRoundTripContent(t *testing.T) {
	ts := newTestServer(t)
	raw := pdftest.Render(pdftest.Doc{Pages: 3, Title: "Quarterly Report"})

	resp := postForm(t, ts.URL+"/api/extract-info",
		map[string]string{"include_pdf_content": "true"},
		formFile{"file", "report.pdf", raw})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	info := body["info"].(map[string]any)

	decoded, err := base64.StdEncoding.DecodeString(info["pdf_base64"].(string))
	require.NoError(t, err)
	assert.Equal(t, raw, decoded, "stored bytes must match the upload exactly")

	meta := info["metadata"].(map[string]any)
	assert.Equal(t, "Quarterly Report", meta["title"])
}

func TestExtractInfoRejectsFakePDF(t *testing.T) {
	ts := newTestServer(t)
	resp := postForm(t, ts.URL+"/api/extract-info", nil,
		formFile{"file", "fake.pdf", []byte("just text pretending")})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["error"])
}

func TestDeletePagesFreshUpload(t *testing.T) {
	ts := newTestServer(t)
	raw := pdftest.Render(pdftest.Doc{Pages: 5})

	resp := postForm(t, ts.URL+"/api/delete_pages",
		map[string]string{"pages_to_remove": "2,4"},
		formFile{"file", "doc.pdf", raw})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 3, body["new_page_count"])
	assert.Equal(t, []any{float64(2), float64(4)}, body["pages_removed"].([]any))
}

func TestDeletePagesOutOfRange(t *testing.T) {
	ts := newTestServer(t)
	token, _ := uploadFixture(t, ts, 10)

	resp := postForm(t, ts.URL+"/api/delete_pages", map[string]string{
		"filename":        token,
		"pages_to_remove": "1,20",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Contains(t, body["error"], "Invalid page numbers: [20]")
	assert.EqualValues(t, 10, body["total_pages"])
}

func TestDeletePagesUnknownToken(t *testing.T) {
	ts := newTestServer(t)
	resp := postForm(t, ts.URL+"/api/delete_pages", map[string]string{
		"filename":        "no-such-token.pdf",
		"pages_to_remove": "1",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTokenTraversalRejected(t *testing.T) {
	ts := newTestServer(t)
	for _, token := range []string{"../secret.pdf", "/etc/passwd", "a/../../b.pdf"} {
		resp := postForm(t, ts.URL+"/api/delete_pages", map[string]string{
			"filename":        token,
			"pages_to_remove": "1",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "token %q", token)
		resp.Body.Close()
	}
}

func TestMergeAndDownload(t *testing.T) {
	ts := newTestServer(t)
	a := pdftest.Render(pdftest.Doc{Pages: 2})
	b := pdftest.Render(pdftest.Doc{Pages: 3})

	resp := postForm(t, ts.URL+"/api/merge", nil,
		formFile{"files", "a.pdf", a},
		formFile{"files", "b.pdf", b})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 5, body["total_pages"])
	assert.EqualValues(t, 2, body["merged_files"])

	fileInfo := body["file_info"].([]any)
	require.Len(t, fileInfo, 2)
	first := fileInfo[0].(map[string]any)
	second := fileInfo[1].(map[string]any)
	assert.Equal(t, "a.pdf", first["filename"])
	assert.EqualValues(t, 2, first["page_count"])
	assert.Equal(t, "b.pdf", second["filename"])
	assert.EqualValues(t, 3, second["page_count"])

	outToken := body["output_filename"].(string)
	dl, err := http.Get(ts.URL + "/api/download/" + outToken)
	require.NoError(t, err)
	defer dl.Body.Close()
	require.Equal(t, http.StatusOK, dl.StatusCode)
	assert.Equal(t, "application/pdf", dl.Header.Get("Content-Type"))
	raw, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))
}

func TestMergeRequiresTwoFiles(t *testing.T) {
	ts := newTestServer(t)
	resp := postForm(t, ts.URL+"/api/merge", nil,
		formFile{"files", "only.pdf", pdftest.Render(pdftest.Doc{Pages: 1})})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMergeSkipsInvalidInputs(t *testing.T) {
	ts := newTestServer(t)
	resp := postForm(t, ts.URL+"/api/merge", nil,
		formFile{"files", "a.pdf", pdftest.Render(pdftest.Doc{Pages: 1})},
		formFile{"files", "junk.pdf", []byte("not a pdf")},
		formFile{"files", "b.pdf", pdftest.Render(pdftest.Doc{Pages: 1})})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 2, body["merged_files"])
	assert.EqualValues(t, 2, body["total_pages"])
}

func TestInsertPDFByToken(t *testing.T) {
	ts := newTestServer(t)
	baseToken, _ := uploadFixture(t, ts, 4)
	insert := pdftest.Render(pdftest.Doc{Pages: 2})

	resp := postForm(t, ts.URL+"/api/insert_pdf",
		map[string]string{"base_filename": baseToken, "position": "3"},
		formFile{"insert_file", "insert.pdf", insert})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 6, body["new_page_count"])
	assert.EqualValues(t, 3, body["insertion_position"])
}

func TestInsertPDFPositionOutOfRange(t *testing.T) {
	ts := newTestServer(t)
	baseToken, _ := uploadFixture(t, ts, 4)
	insert := pdftest.Render(pdftest.Doc{Pages: 1})

	// Position 6 exceeds page_count+1 on a 4-page document.
	resp := postForm(t, ts.URL+"/api/insert_pdf",
		map[string]string{"base_filename": baseToken, "position": "6"},
		formFile{"insert_file", "insert.pdf", insert})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCompressEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token, _ := uploadFixture(t, ts, 6)

	resp := postForm(t, ts.URL+"/api/compress", map[string]string{"filename": token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["result_filename"])
	assert.NotZero(t, body["compressed_size"])
}

func TestSplitEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token, _ := uploadFixture(t, ts, 4)

	resp := postForm(t, ts.URL+"/api/split", map[string]string{
		"filename": token,
		"ranges":   "1-2,3-4",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 2, body["split_count"])
	parts := body["output_files"].([]any)
	require.Len(t, parts, 2)
	first := parts[0].(map[string]any)
	assert.EqualValues(t, 2, first["page_count"])
}

func TestReorderEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token, _ := uploadFixture(t, ts, 3)

	resp := postForm(t, ts.URL+"/api/reorder-pages", map[string]string{
		"filename":  token,
		"new_order": "3,2,1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["output_filename"])
}

func TestSignEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token, _ := uploadFixture(t, ts, 2)

	resp := postForm(t, ts.URL+"/api/sign",
		map[string]string{
			"filename": token,
			"page":     "1",
			"x":        "100",
			"y":        "150",
			"scale":    "0.5",
		},
		formFile{"signature", "sig.png", pngBytes(t)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["output_filename"])
	assert.EqualValues(t, 1, body["page"])
}

func TestProtectAndUnprotect(t *testing.T) {
	ts := newTestServer(t)
	token, _ := uploadFixture(t, ts, 2)

	resp := postForm(t, ts.URL+"/api/protect", map[string]string{
		"filename": token,
		"password": "sekrit",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	outToken := body["output_filename"].(string)

	dl, err := http.Get(ts.URL + "/api/download/" + outToken)
	require.NoError(t, err)
	protected, err := io.ReadAll(dl.Body)
	dl.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, dl.StatusCode)

	t.Run("wrong password", func(t *testing.T) {
		resp := postForm(t, ts.URL+"/api/unprotect",
			map[string]string{"password": "wrong"},
			formFile{"file", "protected.pdf", protected})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("correct password", func(t *testing.T) {
		resp := postForm(t, ts.URL+"/api/unprotect",
			map[string]string{"password": "sekrit"},
			formFile{"file", "protected.pdf", protected})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, false, body["protected"])
	})
}

func TestDownloadUnknownToken(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/download/never-issued.pdf")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMissingPagesParameter(t *testing.T) {
	ts := newTestServer(t)
	token, _ := uploadFixture(t, ts, 3)

	resp := postForm(t, ts.URL+"/api/delete_pages", map[string]string{"filename": token})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "No pages specified to remove", body["error"])
}

func TestMalformedMultipartBody(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/delete_pages",
		strings.NewReader("this is not a multipart body"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=deadbeef")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	msg, _ := body["error"].(string)
	assert.Contains(t, msg, "malformed form data")
	assert.NotContains(t, msg, "maximum upload size", "a bad body is not a size problem")
}

func TestMergeAdditivity(t *testing.T) {
	ts := newTestServer(t)
	counts := []int{1, 2, 3, 4}
	files := make([]formFile, len(counts))
	want := 0
	for i, n := range counts {
		files[i] = formFile{"files", fmt.Sprintf("f%d.pdf", i), pdftest.Render(pdftest.Doc{Pages: n})}
		want += n
	}

	resp := postForm(t, ts.URL+"/api/merge", nil, files...)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, want, body["total_pages"])
}
