package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	invoiceapp "github.com/kirana/pdf-invoice-api/internal/application/invoice"
	"github.com/kirana/pdf-invoice-api/internal/domain/shared"
	"github.com/kirana/pdf-invoice-api/internal/infrastructure/logger"
	"github.com/kirana/pdf-invoice-api/internal/infrastructure/storage"
	"github.com/kirana/pdf-invoice-api/internal/interfaces/http/dto"
)

// InvoiceHandler handles invoice generation and PDF serving
type InvoiceHandler struct {
	service *invoiceapp.Service
	store   *storage.InvoiceStore
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(service *invoiceapp.Service, store *storage.InvoiceStore) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		store:   store,
	}
}

// Generate renders an invoice to PDF and returns its public URLs
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req invoiceapp.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body", err.Error()))
		return
	}

	result, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		logger.GetGinLogger(c).Error("Invoice generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to generate invoice", err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.GenerateResponse{
		Success:       true,
		InvoiceNumber: result.InvoiceNumber,
		PDFURL:        result.PDFURL,
		OriginalURL:   result.OriginalURL,
		Filename:      result.Filename,
		Message:       "Invoice PDF generated successfully",
	})
}

// ServePDF streams a previously generated PDF
func (h *InvoiceHandler) ServePDF(c *gin.Context) {
	filename := c.Param("filename")

	reader, err := h.store.Open(c.Request.Context(), filename)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shared.ErrCodeNotFound {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("Not found", "no such invoice PDF"))
			return
		}
		logger.GetGinLogger(c).Error("Failed to open PDF", zap.String("filename", filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to serve invoice", err.Error()))
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.GetGinLogger(c).Warn("PDF stream interrupted", zap.String("filename", filename), zap.Error(err))
	}
}

// RegisterRoutes registers the invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/api/invoice/generate", h.Generate)
	rg.GET("/invoices/:filename", h.ServePDF)
}
