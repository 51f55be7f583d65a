package dto

// HealthResponse is the liveness probe body. It reports process liveness
// only; renderer state is deliberately not consulted.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// GenerateResponse is the success body for invoice generation. PDFURL is the
// shortened URL when shortening succeeded, otherwise it equals OriginalURL.
type GenerateResponse struct {
	Success       bool   `json:"success"`
	InvoiceNumber string `json:"invoice_number"`
	PDFURL        string `json:"pdf_url"`
	OriginalURL   string `json:"original_url"`
	Filename      string `json:"filename"`
	Message       string `json:"message"`
}

// ErrorResponse is the body for every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(errText, message string) ErrorResponse {
	return ErrorResponse{
		Error:   errText,
		Message: message,
	}
}
