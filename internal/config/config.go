// Package config loads docmatch configuration.
//
// Values come from three layers, highest precedence first:
//  1. Environment variables (DOCMATCH_INGEST_PDF_DIR -> ingest.pdf_dir)
//  2. A TOML file (~/.docmatch/config.toml unless a path is given)
//  3. Defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "DOCMATCH_"

// FileName is the name of the config file inside the config directory.
const FileName = "config.toml"

// Report archive kinds.
const (
	ArchiveNone = "none"
	ArchiveFile = "file"
	ArchiveS3   = "s3"
)

// Config is the complete docmatch configuration.
type Config struct {
	Storage StorageConfig `koanf:"storage"`
	Ingest  IngestConfig  `koanf:"ingest"`
	Search  SearchConfig  `koanf:"search"`
	PDF     PDFConfig     `koanf:"pdf"`
	Report  ReportConfig  `koanf:"report"`
	HTTP    HTTPConfig    `koanf:"http"`
	Log     LogConfig     `koanf:"log"`
}

// StorageConfig locates the database.
type StorageConfig struct {
	// DataDir holds docmatch.db. Empty means ~/.docmatch/data.
	DataDir string `koanf:"data_dir"`
}

// IngestConfig controls scanning and live watching.
type IngestConfig struct {
	PDFDir             string        `koanf:"pdf_dir"`
	ClientID           int64         `koanf:"client_id"`
	Watch              bool          `koanf:"watch"`
	Debounce           time.Duration `koanf:"debounce"`
	MaxEventsPerSecond float64       `koanf:"max_events_per_second"`
	RescanInterval     time.Duration `koanf:"rescan_interval"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout"`
}

// SearchConfig controls candidate ranking.
type SearchConfig struct {
	Limit int `koanf:"limit"`
}

// PDFConfig selects the text extraction tool and the clean-up steps run
// over its output.
type PDFConfig struct {
	Tool          string   `koanf:"tool"`
	Processors    []string `koanf:"processors"`
	MaxBlankLines int      `koanf:"max_blank_lines"`
}

// ReportConfig controls rendering and archiving of reports.
type ReportConfig struct {
	TemplateDir string `koanf:"template_dir"`
	Archive     string `koanf:"archive"`
	OutputDir   string `koanf:"output_dir"`

	S3Bucket    string `koanf:"s3_bucket"`
	S3Region    string `koanf:"s3_region"`
	S3Endpoint  string `koanf:"s3_endpoint"`
	S3AccessKey string `koanf:"s3_access_key"`
	S3SecretKey string `koanf:"s3_secret_key"`
	S3Prefix    string `koanf:"s3_prefix"`
}

// HTTPConfig is the listen address of the HTTP API.
type HTTPConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// Addr returns host:port.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Ingest: IngestConfig{
			PDFDir:          "pdfs",
			ClientID:        1,
			Watch:           true,
			Debounce:        500 * time.Millisecond,
			RescanInterval:  time.Hour,
			ShutdownTimeout: 10 * time.Second,
		},
		Search: SearchConfig{Limit: domain.DefaultCandidateLimit},
		PDF: PDFConfig{
			Tool:          "pdftotext",
			Processors:    []string{"whitespace", "dehyphenate"},
			MaxBlankLines: 1,
		},
		Report: ReportConfig{
			Archive:   ArchiveFile,
			OutputDir: "reports",
			S3Region:  "us-east-1",
			S3Prefix:  "reports/",
		},
		HTTP: HTTPConfig{Host: "127.0.0.1", Port: 8080},
		Log:  LogConfig{Level: "info", Format: "auto"},
	}
}

// DefaultPath returns ~/.docmatch/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".docmatch", FileName), nil
}

// Load reads the config file at path, applies environment overrides and
// validates the result. An empty path loads the default file. A missing
// default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	k := koanf.New(".")

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// envKey maps DOCMATCH_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Ingest.PDFDir) == "" {
		errs = append(errs, errors.New("ingest.pdf_dir is required"))
	}
	if c.Ingest.ClientID <= 0 {
		errs = append(errs, fmt.Errorf("ingest.client_id must be positive, got %d", c.Ingest.ClientID))
	}
	if c.Ingest.Debounce < 0 {
		errs = append(errs, errors.New("ingest.debounce cannot be negative"))
	}
	if c.Ingest.MaxEventsPerSecond < 0 {
		errs = append(errs, errors.New("ingest.max_events_per_second cannot be negative"))
	}
	if c.Ingest.RescanInterval < 0 {
		errs = append(errs, errors.New("ingest.rescan_interval cannot be negative"))
	}
	if c.Ingest.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("ingest.shutdown_timeout must be positive"))
	}

	if c.Search.Limit < 1 || c.Search.Limit > 100 {
		errs = append(errs, fmt.Errorf("search.limit must be between 1 and 100, got %d", c.Search.Limit))
	}
	if strings.TrimSpace(c.PDF.Tool) == "" {
		errs = append(errs, errors.New("pdf.tool is required"))
	}
	if c.PDF.MaxBlankLines < 0 {
		errs = append(errs, errors.New("pdf.max_blank_lines must not be negative"))
	}

	switch c.Report.Archive {
	case "", ArchiveNone:
	case ArchiveFile:
		if c.Report.OutputDir == "" {
			errs = append(errs, errors.New("report.output_dir is required for the file archive"))
		}
	case ArchiveS3:
		if c.Report.S3Bucket == "" {
			errs = append(errs, errors.New("report.s3_bucket is required for the s3 archive"))
		}
	default:
		errs = append(errs, fmt.Errorf("report.archive must be none, file or s3, got %q", c.Report.Archive))
	}

	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port out of range: %d", c.HTTP.Port))
	}

	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "auto", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be auto, console or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
