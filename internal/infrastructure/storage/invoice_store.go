package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kirana/pdf-invoice-api/internal/domain/shared"
)

// InvoiceStoreConfig contains configuration for the invoice PDF store
type InvoiceStoreConfig struct {
	// OutputDir is the flat directory PDFs are written to
	OutputDir string
	// PublicBaseURL is the URL prefix the artifacts are reachable under;
	// the static path /invoices/<filename> is appended to it
	PublicBaseURL string
	// Logger for operations
	Logger *zap.Logger
}

// StoreResult describes a persisted PDF
type StoreResult struct {
	// Filename is the flat file name, e.g. "INV-42.pdf"
	Filename string
	// Path is the absolute path on disk
	Path string
	// URL is the direct public URL for the PDF
	URL string
	// Size is the file size in bytes
	Size int64
}

// InvoiceStore persists rendered invoice PDFs in one flat directory. There is
// no index or metadata: existence and freshness are derived purely from the
// filesystem. Same-name writes overwrite (last writer wins).
type InvoiceStore struct {
	dir     string
	baseURL string
	logger  *zap.Logger

	// remove is swapped out in tests to simulate deletion failures
	remove func(string) error
}

// NewInvoiceStore creates the store and its output directory (idempotent)
func NewInvoiceStore(config *InvoiceStoreConfig) (*InvoiceStore, error) {
	if config == nil {
		config = &InvoiceStoreConfig{}
	}
	if config.OutputDir == "" {
		config.OutputDir = "public/invoices"
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return nil, shared.WrapDomainError(shared.ErrCodeStorageFailed,
			fmt.Sprintf("failed to create output directory: %s", config.OutputDir), err)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &InvoiceStore{
		dir:     config.OutputDir,
		baseURL: strings.TrimRight(config.PublicBaseURL, "/"),
		logger:  logger,
		remove:  os.Remove,
	}, nil
}

// Store writes (or overwrites) a PDF under the given filename
func (s *InvoiceStore) Store(ctx context.Context, filename string, pdfData []byte) (*StoreResult, error) {
	select {
	case <-ctx.Done():
		return nil, shared.WrapDomainError(shared.ErrCodeStorageFailed, "operation cancelled", ctx.Err())
	default:
	}

	if err := validateFilename(filename); err != nil {
		return nil, err
	}
	if len(pdfData) == 0 {
		return nil, shared.NewDomainError(shared.ErrCodeStorageFailed, "PDF data is empty")
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, pdfData, 0644); err != nil {
		return nil, shared.WrapDomainError(shared.ErrCodeStorageFailed, "failed to write PDF file", err)
	}

	url := s.URL(filename)

	s.logger.Info("PDF stored",
		zap.String("path", path),
		zap.Int("size", len(pdfData)),
		zap.String("url", url))

	return &StoreResult{
		Filename: filename,
		Path:     path,
		URL:      url,
		Size:     int64(len(pdfData)),
	}, nil
}

// Open returns a reader for a previously stored PDF
func (s *InvoiceStore) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, shared.WrapDomainError(shared.ErrCodeStorageFailed, "operation cancelled", ctx.Err())
	default:
	}

	if err := validateFilename(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, shared.WrapDomainError(shared.ErrCodeNotFound, "PDF not found", err)
		}
		return nil, shared.WrapDomainError(shared.ErrCodeStorageFailed, "failed to open PDF file", err)
	}

	return file, nil
}

// CleanupOlderThan removes PDFs whose modification time is older than age.
// A deletion failure on one file does not stop the rest of the sweep; it is
// logged and counted.
func (s *InvoiceStore) CleanupOlderThan(ctx context.Context, age time.Duration) (deleted, failed int, err error) {
	cutoff := time.Now().Add(-age)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, 0, shared.WrapDomainError(shared.ErrCodeStorageFailed, "failed to read output directory", err)
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return deleted, failed, ctx.Err()
		default:
		}

		if entry.IsDir() || filepath.Ext(entry.Name()) != ".pdf" {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			s.logger.Warn("failed to stat PDF during cleanup",
				zap.String("file", entry.Name()), zap.Error(err))
			failed++
			continue
		}

		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := s.remove(filepath.Join(s.dir, entry.Name())); err != nil {
			s.logger.Warn("failed to delete old PDF",
				zap.String("file", entry.Name()), zap.Error(err))
			failed++
			continue
		}

		deleted++
		s.logger.Debug("deleted old PDF", zap.String("file", entry.Name()))
	}

	return deleted, failed, nil
}

// URL returns the direct public URL for a stored PDF
func (s *InvoiceStore) URL(filename string) string {
	return fmt.Sprintf("%s/invoices/%s", s.baseURL, filename)
}

// Dir returns the output directory the store writes to
func (s *InvoiceStore) Dir() string {
	return s.dir
}

// validateFilename rejects anything that could escape the flat directory
func validateFilename(filename string) error {
	if filename == "" {
		return shared.NewDomainError(shared.ErrCodeStorageFailed, "filename is empty")
	}
	if strings.ContainsAny(filename, `/\`) || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return shared.NewDomainError(shared.ErrCodeStorageFailed, "invalid filename")
	}
	return nil
}
