package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-scorer/internal/extractor/extractortest"
	"github.com/insightdelivered/statement-scorer/internal/metrics"
	"github.com/insightdelivered/statement-scorer/internal/models"
	"github.com/insightdelivered/statement-scorer/internal/statement"
	"github.com/insightdelivered/statement-scorer/internal/upload"
	"github.com/insightdelivered/statement-scorer/internal/writer"
)

func twoPageSource() *extractortest.Source {
	return &extractortest.Source{Pages: [][]models.RawTableBlock{
		extractortest.Ledger([2]string{"CASH_IN", "100"}, [2]string{"CASH_OUT", "50"}),
		extractortest.Ledger([2]string{"CASH_IN", "30"}),
	}}
}

func setupTestApp(t *testing.T, src *extractortest.Source, opts Options) (*fiber.App, string) {
	t.Helper()
	dir := t.TempDir()
	h := &Handler{
		Processor: statement.NewService(src, statement.Options{Workers: 2, Metrics: opts.Metrics}),
		Store:     upload.Store{Dir: dir},
		Version:   "test",
	}
	return NewApp(h, opts), dir
}

func uploadRequest(t *testing.T, field, contentType string, body []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="statement.pdf"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/processScore?save_format=csv", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp files left behind")
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := setupTestApp(t, twoPageSource(), Options{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(headerRequestID))
	health := decode[HealthResponse](t, resp)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "test", health.Version)
}

func TestProcessScore(t *testing.T) {
	app, dir := setupTestApp(t, twoPageSource(), Options{})

	resp, err := app.Test(uploadRequest(t, "statement", "application/pdf", []byte("%PDF-1.7")), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	got := decode[ScoreResponse](t, resp)
	assert.Equal(t, "Statement processed successfully", got.Message)
	assert.Equal(t, 180.0, got.Data.Total)
	assert.Equal(t, []float64{100, 30}, got.Data.AllCashIn)
	assert.Equal(t, []float64{50}, got.Data.AllCashOut)
	assert.Equal(t, 65.0, got.Data.MeanCashIn)
	assert.Equal(t, 50.0, got.Data.MeanCashOut)
	assert.Equal(t, 100.0, got.Data.MaxCashIn)
	assert.Equal(t, 30.0, got.Data.MinCashIn)
	assert.Equal(t, 30.0, got.Data.ModalCashIn)
	assert.Equal(t, 2, got.Data.Pages)
	assert.Empty(t, got.Data.FailedPages)

	assertEmptyDir(t, dir)
}

func TestProcessScore_PageFailureStillSucceeds(t *testing.T) {
	src := twoPageSource()
	src.Pages = append([][]models.RawTableBlock{nil}, src.Pages...)
	src.Errs = map[int]error{0: errors.New("unreadable page")}
	app, dir := setupTestApp(t, src, Options{})

	resp, err := app.Test(uploadRequest(t, "statement", "application/pdf", []byte("%PDF")), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	got := decode[ScoreResponse](t, resp)
	assert.Equal(t, 180.0, got.Data.Total)
	assert.Equal(t, 3, got.Data.Pages)
	assert.Equal(t, []writer.FailedPage{{Page: 0, Error: "unreadable page"}}, got.Data.FailedPages)
	assertEmptyDir(t, dir)
}

func TestProcessScore_EmptyStatistics(t *testing.T) {
	app, _ := setupTestApp(t, &extractortest.Source{}, Options{})

	resp, err := app.Test(uploadRequest(t, "statement", "application/pdf", []byte("%PDF")), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"all_cash_in":[]`)
	assert.Contains(t, string(body), `"mean_cash_out":0`)
	assert.Contains(t, string(body), `"failed_pages":[]`)
}

func TestProcessScore_MissingFile(t *testing.T) {
	app, dir := setupTestApp(t, twoPageSource(), Options{})

	tests := []struct {
		name string
		req  *http.Request
	}{
		{name: "wrong field", req: uploadRequest(t, "file", "application/pdf", []byte("%PDF"))},
		{name: "not multipart", req: httptest.NewRequest(http.MethodPost, "/api/processScore", strings.NewReader("{}"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(tt.req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "File is missing. Please upload a PDF file.", decode[ErrorResponse](t, resp).Detail)
		})
	}
	assertEmptyDir(t, dir)
}

func TestProcessScore_RejectsNonPDF(t *testing.T) {
	src := twoPageSource()
	app, dir := setupTestApp(t, src, Options{})

	resp, err := app.Test(uploadRequest(t, "statement", "text/plain", []byte("hello")), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid file type. Only PDF files are allowed.", decode[ErrorResponse](t, resp).Detail)
	assert.Equal(t, 0, src.Calls())
	assertEmptyDir(t, dir)
}

func TestProcessScore_FatalError(t *testing.T) {
	app, dir := setupTestApp(t, &extractortest.Source{CountErr: errors.New("malformed PDF")}, Options{})

	resp, err := app.Test(uploadRequest(t, "statement", "application/pdf", []byte("junk")), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "fatal processing error: malformed PDF", decode[ErrorResponse](t, resp).Detail)
	assertEmptyDir(t, dir)
}

func TestProcessScore_RateLimited(t *testing.T) {
	app, _ := setupTestApp(t, twoPageSource(), Options{RateLimitPerSecond: 0.001, RateLimitBurst: 1})

	first, err := app.Test(uploadRequest(t, "statement", "application/pdf", []byte("%PDF")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, first.StatusCode)

	second, err := app.Test(uploadRequest(t, "statement", "application/pdf", []byte("%PDF")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, second.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := metrics.New()
	app, _ := setupTestApp(t, twoPageSource(), Options{Metrics: rec})

	_, err := app.Test(uploadRequest(t, "statement", "application/pdf", []byte("%PDF")), -1)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `statement_pages_total{outcome="ok"} 2`)
	assert.Contains(t, string(body), `statement_requests_total{status="ok"} 1`)
}

func TestMetricsEndpoint_Disabled(t *testing.T) {
	app, _ := setupTestApp(t, twoPageSource(), Options{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Cannot GET /metrics", decode[ErrorResponse](t, resp).Detail)
}
