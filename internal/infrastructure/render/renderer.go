package render

import (
	"context"
	"time"
)

// A4 paper dimensions and the fixed invoice margin, in millimeters.
const (
	A4WidthMM  = 210.0
	A4HeightMM = 297.0

	DefaultMarginMM = 10.0
)

// Request contains the parameters for rendering HTML to PDF
type Request struct {
	// HTML content to render
	HTML string
	// Title for the PDF document metadata
	Title string
	// MarginMM is the uniform page margin in millimeters (0 means the
	// default 10mm)
	MarginMM float64
	// Timeout overrides the renderer's default timeout
	Timeout time.Duration
}

// Result contains the output from PDF rendering
type Result struct {
	// PDFData is the raw PDF file content
	PDFData []byte
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// PDFRenderer defines the interface for rendering HTML to PDF
type PDFRenderer interface {
	// Render converts HTML content to a PDF document
	Render(ctx context.Context, req *Request) (*Result, error)
	// Close releases any resources held by the renderer
	Close() error
}

// mmToInches converts millimeters to inches (Chrome print params use inches)
func mmToInches(mm float64) float64 {
	return mm / 25.4
}
