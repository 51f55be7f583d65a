package shortener

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/kirana/pdf-invoice-api/internal/domain/shared"
)

// Shortener produces a more shareable form of a URL. Implementations may
// fail; the caller decides the fallback policy.
type Shortener interface {
	Shorten(ctx context.Context, longURL string) (string, error)
}

// TinyURLConfig contains configuration for the TinyURL client
type TinyURLConfig struct {
	// Endpoint is the create API, default https://tinyurl.com/api-create.php
	Endpoint string
	// Timeout bounds the outbound call
	Timeout time.Duration
	// Logger for operations
	Logger *zap.Logger
}

// TinyURLShortener shortens URLs through the TinyURL create API
type TinyURLShortener struct {
	client   *resty.Client
	endpoint string
	logger   *zap.Logger
}

// NewTinyURLShortener creates a TinyURL-backed shortener
func NewTinyURLShortener(config *TinyURLConfig) *TinyURLShortener {
	if config == nil {
		config = &TinyURLConfig{}
	}
	if config.Endpoint == "" {
		config.Endpoint = "https://tinyurl.com/api-create.php"
	}
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New().
		SetTimeout(config.Timeout).
		SetRetryCount(0)

	return &TinyURLShortener{
		client:   client,
		endpoint: config.Endpoint,
		logger:   logger,
	}
}

// Shorten calls the create API and returns the shortened URL as plain text
func (s *TinyURLShortener) Shorten(ctx context.Context, longURL string) (string, error) {
	if longURL == "" {
		return "", shared.NewDomainError(shared.ErrCodeShortenFailed, "URL is empty")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("url", longURL).
		Get(s.endpoint)
	if err != nil {
		return "", shared.WrapDomainError(shared.ErrCodeShortenFailed, "shorten request failed", err)
	}
	if !resp.IsSuccess() {
		return "", shared.NewDomainError(shared.ErrCodeShortenFailed,
			fmt.Sprintf("shortener returned status %d", resp.StatusCode()))
	}

	short := strings.TrimSpace(string(resp.Body()))
	if short == "" {
		return "", shared.NewDomainError(shared.ErrCodeShortenFailed, "shortener returned empty body")
	}

	s.logger.Debug("URL shortened",
		zap.String("long_url", longURL),
		zap.String("short_url", short))

	return short, nil
}

// NoopShortener returns the input URL unchanged. Used when shortening is
// disabled in config.
type NoopShortener struct{}

// Shorten returns the long URL as-is
func (NoopShortener) Shorten(_ context.Context, longURL string) (string, error) {
	return longURL, nil
}

var (
	_ Shortener = (*TinyURLShortener)(nil)
	_ Shortener = NoopShortener{}
)
