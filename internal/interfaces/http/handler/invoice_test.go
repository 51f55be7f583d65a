package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	invoiceapp "github.com/kirana/pdf-invoice-api/internal/application/invoice"
	"github.com/kirana/pdf-invoice-api/internal/infrastructure/render"
	"github.com/kirana/pdf-invoice-api/internal/infrastructure/storage"
	"github.com/kirana/pdf-invoice-api/internal/interfaces/http/router"
)

type stubRenderer struct {
	output []byte
	err    error
}

func (r *stubRenderer) Render(_ context.Context, _ *render.Request) (*render.Result, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &render.Result{PDFData: r.output, RenderDuration: time.Millisecond}, nil
}

func (r *stubRenderer) Close() error { return nil }

type stubShortener struct {
	short string
	err   error
}

func (s stubShortener) Shorten(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.short, nil
}

func setupTestRouter(t *testing.T, renderer render.PDFRenderer, short stubShortener) (*gin.Engine, *storage.InvoiceStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewInvoiceStore(&storage.InvoiceStoreConfig{
		OutputDir:     t.TempDir(),
		PublicBaseURL: "http://0.0.0.0:8090",
	})
	require.NoError(t, err)

	engine, err := invoiceapp.NewTemplateEngine()
	require.NoError(t, err)

	service := invoiceapp.NewService(engine, renderer, store, short, zap.NewNop())

	ginEngine := gin.New()
	router.NewRouter(ginEngine).
		Register(NewHealthHandler()).
		Register(NewInvoiceHandler(service, store)).
		Setup()

	return ginEngine, store
}

func TestHealthHandler(t *testing.T) {
	engine, _ := setupTestRouter(t, &stubRenderer{output: []byte("%PDF")}, stubShortener{short: "x"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"pdf-invoice-api"}`, w.Body.String())
}

func TestInvoiceHandler_Generate(t *testing.T) {
	t.Run("end to end", func(t *testing.T) {
		engine, store := setupTestRouter(t,
			&stubRenderer{output: []byte("%PDF-1.4 content")},
			stubShortener{short: "https://tinyurl.com/abc"})

		body := `{
			"invoice_number": "INV-42",
			"items": [{"name": "Rice 5kg", "qty": 2, "unit": "kg", "price": 250}],
			"total_amount": 500
		}`

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/invoice/generate", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "INV-42", resp["invoice_number"])
		assert.Equal(t, "INV-42.pdf", resp["filename"])
		assert.Equal(t, "https://tinyurl.com/abc", resp["pdf_url"])
		assert.Equal(t, "http://0.0.0.0:8090/invoices/INV-42.pdf", resp["original_url"])

		info, err := os.Stat(filepath.Join(store.Dir(), "INV-42.pdf"))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	})

	t.Run("shortener failure still succeeds", func(t *testing.T) {
		engine, _ := setupTestRouter(t,
			&stubRenderer{output: []byte("%PDF")},
			stubShortener{err: errors.New("network down")})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/invoice/generate",
			bytes.NewBufferString(`{"invoice_number":"INV-7","items":[]}`))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, resp["original_url"], resp["pdf_url"])
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		engine, _ := setupTestRouter(t, &stubRenderer{output: []byte("%PDF")}, stubShortener{short: "x"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/invoice/generate",
			bytes.NewBufferString(`{"items": not-json`))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "error")
	})

	t.Run("renderer failure is a 500 with error body", func(t *testing.T) {
		engine, _ := setupTestRouter(t,
			&stubRenderer{err: errors.New("chrome launch failed")},
			stubShortener{short: "x"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/invoice/generate",
			bytes.NewBufferString(`{"invoice_number":"INV-9","items":[]}`))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Failed to generate invoice", resp["error"])
		assert.Contains(t, resp["message"], "chrome launch failed")
	})
}

func TestInvoiceHandler_ServePDF(t *testing.T) {
	t.Run("streams a stored PDF", func(t *testing.T) {
		engine, store := setupTestRouter(t, &stubRenderer{output: []byte("%PDF")}, stubShortener{short: "x"})

		_, err := store.Store(context.Background(), "INV-42.pdf", []byte("%PDF-1.4 stored"))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/invoices/INV-42.pdf", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, "%PDF-1.4 stored", w.Body.String())
	})

	t.Run("unknown file is a 404", func(t *testing.T) {
		engine, _ := setupTestRouter(t, &stubRenderer{output: []byte("%PDF")}, stubShortener{short: "x"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/invoices/missing.pdf", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
