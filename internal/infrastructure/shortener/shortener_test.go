package shortener

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTinyURLShortener_Shorten(t *testing.T) {
	t.Run("returns trimmed body on success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "http://0.0.0.0:8090/invoices/INV-42.pdf", r.URL.Query().Get("url"))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("https://tinyurl.com/abc123\n"))
		}))
		defer srv.Close()

		s := NewTinyURLShortener(&TinyURLConfig{Endpoint: srv.URL})
		short, err := s.Shorten(context.Background(), "http://0.0.0.0:8090/invoices/INV-42.pdf")
		require.NoError(t, err)
		assert.Equal(t, "https://tinyurl.com/abc123", short)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		s := NewTinyURLShortener(&TinyURLConfig{Endpoint: srv.URL})
		_, err := s.Shorten(context.Background(), "http://example.com/x.pdf")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("transport failure is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused from here on

		s := NewTinyURLShortener(&TinyURLConfig{Endpoint: srv.URL, Timeout: time.Second})
		_, err := s.Shorten(context.Background(), "http://example.com/x.pdf")
		assert.Error(t, err)
	})

	t.Run("empty body is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		s := NewTinyURLShortener(&TinyURLConfig{Endpoint: srv.URL})
		_, err := s.Shorten(context.Background(), "http://example.com/x.pdf")
		assert.Error(t, err)
	})

	t.Run("empty input is an error", func(t *testing.T) {
		s := NewTinyURLShortener(nil)
		_, err := s.Shorten(context.Background(), "")
		assert.Error(t, err)
	})
}

func TestNoopShortener(t *testing.T) {
	short, err := NoopShortener{}.Shorten(context.Background(), "http://example.com/x.pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/x.pdf", short)
}
