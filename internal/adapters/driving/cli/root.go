// Package cli provides the docmatch command line interface.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docmatch/internal/core/ports/driving"
	"github.com/custodia-labs/docmatch/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

var (
	cfgFile string
	verbose bool
)

// Runtime runs the long-lived parts of docmatch: the HTTP API, the live
// watcher and the background rescan.
type Runtime interface {
	Serve(ctx context.Context) error
}

// Services holds the driving ports the commands call.
type Services struct {
	Ingest   driving.IngestService
	Match    driving.MatchService
	Report   driving.ReportService
	Document driving.DocumentService
	Audit    driving.AuditService
	Rules    driving.RuleService
	Runtime  Runtime
}

// Loader builds the services from the config file at path.
// The returned function releases them.
type Loader func(ctx context.Context, path string) (*Services, func() error, error)

var (
	loader        Loader
	svc           *Services
	closeServices func() error
)

var rootCmd = &cobra.Command{
	Use:   "docmatch",
	Short: "Match device descriptions against regulatory PDFs",
	Long: `docmatch ingests regulatory PDF summaries from a directory, extracts
structured fields with configurable rules and ranks documents against
free-text device descriptions. Confirmed matches produce an audited report.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ~/.docmatch/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}

// SetLoader configures how services are built on first use.
func SetLoader(l Loader) {
	loader = l
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command and releases any services it opened.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeServices != nil {
		if cerr := closeServices(); cerr != nil {
			logger.Warn("closing services: %v", cerr)
		}
		closeServices = nil
	}
	return err
}

// services returns the configured services, loading them on first use.
func services(cmd *cobra.Command) (*Services, error) {
	if svc != nil {
		return svc, nil
	}
	if loader == nil {
		return nil, errors.New("services not configured")
	}
	s, closer, err := loader(cmd.Context(), cfgFile)
	if err != nil {
		return nil, err
	}
	svc, closeServices = s, closer
	return svc, nil
}
