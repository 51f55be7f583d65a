package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Invoice   InvoiceConfig
	Render    RenderConfig
	Shortener ShortenerConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Host string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	CORSAllowOrigins []string
}

// InvoiceConfig holds invoice artifact settings
type InvoiceConfig struct {
	// OutputDir is the flat directory rendered PDFs are written to
	OutputDir string
	// PublicBaseURL is the externally reachable base for direct PDF links.
	// A reverse proxy usually exposes the static path on a different port
	// than the service itself listens on.
	PublicBaseURL string
	// Retention is how long a rendered PDF is kept before the sweep
	// deletes it
	Retention time.Duration
	// SweepInterval is how often the retention sweep runs
	SweepInterval time.Duration
}

// RenderConfig holds headless-Chrome rendering settings
type RenderConfig struct {
	Timeout   time.Duration
	Headless  bool
	NoSandbox bool
	// RemoteURL points at an already-running Chrome instance; empty means
	// launch a local one
	RemoteURL string
}

// ShortenerConfig holds URL shortener settings
type ShortenerConfig struct {
	Enabled  bool
	Endpoint string
	Timeout  time.Duration
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with INVOICE_ prefix (e.g., INVOICE_APP_PORT)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("INVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bool defaults have to be registered with viper so an unset key does
	// not silently read as false.
	v.SetDefault("render.headless", true)
	v.SetDefault("shortener.enabled", true)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Host: v.GetString("app.host"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
		},
		Invoice: InvoiceConfig{
			OutputDir:     v.GetString("invoice.output_dir"),
			PublicBaseURL: v.GetString("invoice.public_base_url"),
			Retention:     v.GetDuration("invoice.retention"),
			SweepInterval: v.GetDuration("invoice.sweep_interval"),
		},
		Render: RenderConfig{
			Timeout:   v.GetDuration("render.timeout"),
			Headless:  v.GetBool("render.headless"),
			NoSandbox: v.GetBool("render.no_sandbox"),
			RemoteURL: v.GetString("render.remote_url"),
		},
		Shortener: ShortenerConfig{
			Enabled:  v.GetBool("shortener.enabled"),
			Endpoint: v.GetString("shortener.endpoint"),
			Timeout:  v.GetDuration("shortener.timeout"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "pdf-invoice-api"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Host == "" {
		cfg.App.Host = "0.0.0.0"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "3001"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// PDF rendering can legitimately take a while
		cfg.HTTP.WriteTimeout = 60 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.Invoice.OutputDir == "" {
		cfg.Invoice.OutputDir = "public/invoices"
	}
	if cfg.Invoice.PublicBaseURL == "" {
		// The deployment's reverse proxy exposes the static path on 8090
		cfg.Invoice.PublicBaseURL = fmt.Sprintf("http://%s:8090", cfg.App.Host)
	}
	if cfg.Invoice.Retention == 0 {
		cfg.Invoice.Retention = 7 * 24 * time.Hour
	}
	if cfg.Invoice.SweepInterval == 0 {
		cfg.Invoice.SweepInterval = 24 * time.Hour
	}
	if cfg.Render.Timeout == 0 {
		cfg.Render.Timeout = 30 * time.Second
	}
	if cfg.Shortener.Endpoint == "" {
		cfg.Shortener.Endpoint = "https://tinyurl.com/api-create.php"
	}
	if cfg.Shortener.Timeout == 0 {
		cfg.Shortener.Timeout = 5 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if _, err := url.Parse(c.Invoice.PublicBaseURL); err != nil {
		return fmt.Errorf("invoice.public_base_url is not a valid URL: %w", err)
	}
	if c.Invoice.Retention < 0 {
		return fmt.Errorf("invoice.retention cannot be negative")
	}
	if c.Invoice.SweepInterval <= 0 {
		return fmt.Errorf("invoice.sweep_interval must be positive")
	}
	if c.Render.Timeout <= 0 {
		return fmt.Errorf("render.timeout must be positive")
	}
	if c.App.Env == "production" {
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}
	return nil
}

// ListenAddr returns the host:port the HTTP server binds to
func (c *Config) ListenAddr() string {
	return c.App.Host + ":" + c.App.Port
}
