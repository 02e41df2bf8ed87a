package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml/v2"
)

// Write saves cfg as TOML at path, creating the directory if needed.
// Existing files are left untouched unless overwrite is set.
func Write(path string, cfg Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	data, err := Encode(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Encode renders cfg as a TOML document.
func Encode(cfg Config) ([]byte, error) {
	return toml.Parser().Marshal(cfg.toMap())
}

// toMap mirrors the koanf key layout, with durations as strings.
func (c Config) toMap() map[string]any {
	return map[string]any{
		"storage": map[string]any{
			"data_dir": c.Storage.DataDir,
		},
		"ingest": map[string]any{
			"pdf_dir":               c.Ingest.PDFDir,
			"client_id":             c.Ingest.ClientID,
			"watch":                 c.Ingest.Watch,
			"debounce":              c.Ingest.Debounce.String(),
			"max_events_per_second": c.Ingest.MaxEventsPerSecond,
			"rescan_interval":       c.Ingest.RescanInterval.String(),
			"shutdown_timeout":      c.Ingest.ShutdownTimeout.String(),
		},
		"search": map[string]any{
			"limit": c.Search.Limit,
		},
		"pdf": map[string]any{
			"tool":            c.PDF.Tool,
			"processors":      c.PDF.Processors,
			"max_blank_lines": c.PDF.MaxBlankLines,
		},
		"report": map[string]any{
			"template_dir":  c.Report.TemplateDir,
			"archive":       c.Report.Archive,
			"output_dir":    c.Report.OutputDir,
			"s3_bucket":     c.Report.S3Bucket,
			"s3_region":     c.Report.S3Region,
			"s3_endpoint":   c.Report.S3Endpoint,
			"s3_access_key": c.Report.S3AccessKey,
			"s3_secret_key": c.Report.S3SecretKey,
			"s3_prefix":     c.Report.S3Prefix,
		},
		"http": map[string]any{
			"host": c.HTTP.Host,
			"port": c.HTTP.Port,
		},
		"log": map[string]any{
			"level":  c.Log.Level,
			"format": c.Log.Format,
		},
	}
}
