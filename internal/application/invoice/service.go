package invoice

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kirana/pdf-invoice-api/internal/infrastructure/render"
	"github.com/kirana/pdf-invoice-api/internal/infrastructure/shortener"
	"github.com/kirana/pdf-invoice-api/internal/infrastructure/storage"
)

// Service orchestrates invoice PDF generation: defaults, template, render,
// store, shorten.
type Service struct {
	engine    *TemplateEngine
	renderer  render.PDFRenderer
	store     *storage.InvoiceStore
	shortener shortener.Shortener
	logger    *zap.Logger

	now func() time.Time
}

// NewService creates an invoice service
func NewService(
	engine *TemplateEngine,
	renderer render.PDFRenderer,
	store *storage.InvoiceStore,
	short shortener.Shortener,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if short == nil {
		short = shortener.NoopShortener{}
	}
	return &Service{
		engine:    engine,
		renderer:  renderer,
		store:     store,
		shortener: short,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate renders the invoice to PDF, stores it under its deterministic
// filename and returns the public URLs. Shortening is best effort: when it
// fails the long URL is returned and the failure only logged.
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	inv := req.ToDomain()
	inv.ApplyDefaults(s.now())

	// Totals are rendered as given. A mismatch against the recomputed line
	// total is worth a log line but is not this service's call to reject.
	if lineTotal := inv.LineTotal(); !lineTotal.Equal(inv.Subtotal) {
		s.logger.Warn("Subtotal does not match line items",
			zap.String("invoice_number", inv.Number),
			zap.String("subtotal", inv.Subtotal.String()),
			zap.String("line_total", lineTotal.String()),
		)
	}

	html, err := s.engine.RenderInvoice(ctx, inv)
	if err != nil {
		return nil, err
	}

	rendered, err := s.renderer.Render(ctx, &render.Request{
		HTML:  html,
		Title: "Invoice " + inv.Number,
	})
	if err != nil {
		return nil, err
	}

	stored, err := s.store.Store(ctx, inv.Filename(), rendered.PDFData)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Invoice PDF generated",
		zap.String("invoice_number", inv.Number),
		zap.String("filename", stored.Filename),
		zap.Int64("size_bytes", stored.Size),
		zap.Duration("render_duration", rendered.RenderDuration),
	)

	originalURL := stored.URL
	pdfURL := originalURL
	if short, err := s.shortener.Shorten(ctx, originalURL); err != nil {
		s.logger.Warn("URL shortening failed, falling back to long URL",
			zap.String("invoice_number", inv.Number),
			zap.Error(err),
		)
	} else {
		pdfURL = short
	}

	return &GenerateResult{
		InvoiceNumber: inv.Number,
		PDFURL:        pdfURL,
		OriginalURL:   originalURL,
		Filename:      stored.Filename,
	}, nil
}
