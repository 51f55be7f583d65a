package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a new domain error wrapping an underlying cause
func WrapDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Error codes for invoice generation failures. All of them collapse to a
// single HTTP 500 at the interface boundary; the codes exist so logs and
// in-process callers can tell which stage failed.
const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeTemplateFailed = "TEMPLATE_FAILED"
	ErrCodeRenderFailed   = "RENDER_FAILED"
	ErrCodeRenderTimeout  = "RENDER_TIMEOUT"
	ErrCodeStorageFailed  = "STORAGE_FAILED"
	ErrCodeShortenFailed  = "SHORTEN_FAILED"
	ErrCodeNotFound       = "NOT_FOUND"
)

// Common domain errors
var (
	ErrNotFound     = NewDomainError(ErrCodeNotFound, "Resource not found")
	ErrInvalidInput = NewDomainError(ErrCodeInvalidInput, "Invalid input provided")
)
