// Package app wires the docmatch adapters and services together.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/custodia-labs/docmatch/internal/adapters/driven/archive"
	"github.com/custodia-labs/docmatch/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/docmatch/internal/adapters/driven/metrics"
	"github.com/custodia-labs/docmatch/internal/adapters/driven/pdftext"
	"github.com/custodia-labs/docmatch/internal/adapters/driven/render"
	"github.com/custodia-labs/docmatch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docmatch/internal/adapters/driving/cli"
	httpapi "github.com/custodia-labs/docmatch/internal/adapters/driving/http"
	"github.com/custodia-labs/docmatch/internal/config"
	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
	"github.com/custodia-labs/docmatch/internal/core/services"
	"github.com/custodia-labs/docmatch/internal/logger"
	"github.com/custodia-labs/docmatch/internal/postprocessors"
	"github.com/custodia-labs/docmatch/internal/postprocessors/whitespace"
)

// Option customises how New builds the application.
type Option func(*options)

type options struct {
	extractor driven.TextExtractor
	files     driven.FileSource
}

// WithTextExtractor replaces the pdftotext extractor.
func WithTextExtractor(e driven.TextExtractor) Option {
	return func(o *options) { o.extractor = e }
}

// WithFileSource replaces the local filesystem source.
func WithFileSource(f driven.FileSource) Option {
	return func(o *options) { o.files = f }
}

// App holds the wired services and the long-running components.
type App struct {
	cfg     *config.Config
	store   *sqlite.Store
	metrics *metrics.Metrics
	pdf     *pdftext.Extractor

	Audit    *services.AuditService
	Ingest   *services.IngestService
	Match    *services.MatchService
	Report   *services.ReportService
	Document *services.DocumentService
	Rules    *services.RuleService

	watcher   *services.Watcher
	scheduler *services.Scheduler
	http      *httpapi.Server

	closeOnce sync.Once
}

// New opens the store and wires every service from cfg.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if err := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		return nil, err
	}

	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	a, err := build(ctx, cfg, store, o)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return a, nil
}

func build(ctx context.Context, cfg *config.Config, store *sqlite.Store, o *options) (*App, error) {
	clientID := cfg.Ingest.ClientID

	rules, err := store.RuleStore().ListRules(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("loading extraction rules: %w", err)
	}
	if len(rules) == 0 {
		logger.Warn("No extraction rules for client %d; every ingest will fail", clientID)
	}
	engine, err := services.CompileRules(rules)
	if err != nil {
		return nil, fmt.Errorf("compiling extraction rules: %w", err)
	}

	files := o.files
	if files == nil {
		files = filesystem.New()
	}
	var pdf *pdftext.Extractor
	extractor := o.extractor
	if extractor == nil {
		pdf = pdftext.New(cfg.PDF.Tool)
		extractor = pdf
	}
	pipeline, err := newPipeline(cfg.PDF)
	if err != nil {
		return nil, err
	}
	extractor = postprocessors.Wrap(extractor, pipeline)

	renderer, err := render.New(cfg.Report.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("loading report templates: %w", err)
	}
	reportArchive, err := newArchive(ctx, cfg.Report)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	a := &App{cfg: cfg, store: store, metrics: m, pdf: pdf}

	a.Audit = services.NewAuditService(store.AuditStore())
	a.Ingest = services.NewIngestService(
		services.IngestConfig{Root: cfg.Ingest.PDFDir, ClientID: clientID},
		engine,
		store.DocumentStore(),
		store.RuleStore(),
		files,
		extractor,
		a.Audit,
		m,
	)
	a.Match = services.NewMatchService(
		services.MatchConfig{ClientID: clientID, CandidateLimit: cfg.Search.Limit},
		store.SearchEngine(),
		store.DocumentStore(),
		store.MatchStore(),
		a.Audit,
		m,
	)
	a.Report = services.NewReportService(
		services.ReportConfig{ClientID: clientID},
		store.MatchStore(),
		store.DocumentStore(),
		renderer,
		reportArchive,
		a.Audit,
		m,
	)
	a.Document = services.NewDocumentService(clientID, store.DocumentStore())
	a.Rules = services.NewRuleService(clientID, store.RuleStore(), store.RuleWriter(), a.Ingest)

	a.watcher = services.NewWatcher(services.WatcherConfig{
		Root:                a.Ingest.Root(),
		Debounce:            cfg.Ingest.Debounce,
		MaxIngestsPerSecond: cfg.Ingest.MaxEventsPerSecond,
	}, files, a.Ingest)
	a.scheduler = services.NewScheduler(
		domain.RescanSchedulerConfig(cfg.Ingest.RescanInterval),
		store.SchedulerStore(),
		a.Ingest,
	)

	a.http, err = httpapi.NewServer(&httpapi.Ports{
		Ingest:   a.Ingest,
		Match:    a.Match,
		Report:   a.Report,
		Document: a.Document,
		Audit:    a.Audit,
	}, logger.L(), &httpapi.Config{
		Host:    cfg.HTTP.Host,
		Port:    cfg.HTTP.Port,
		Metrics: m.Handler(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating http server: %w", err)
	}

	return a, nil
}

// newPipeline builds the text clean-up steps named in cfg.
func newPipeline(cfg config.PDFConfig) (*postprocessors.Pipeline, error) {
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := registry.BuildPipeline(cfg.Processors, map[string]map[string]any{
		whitespace.Name: {"max_blank_lines": cfg.MaxBlankLines},
	})
	if err != nil {
		return nil, fmt.Errorf("building text pipeline: %w", err)
	}
	logger.Debug("Text pipeline: %v", pipeline.Names())
	return pipeline, nil
}

// newArchive returns the configured report archive, or nil when reports
// are not archived.
func newArchive(ctx context.Context, cfg config.ReportConfig) (driven.ReportArchive, error) {
	switch cfg.Archive {
	case config.ArchiveFile:
		return archive.NewFileArchive(cfg.OutputDir), nil
	case config.ArchiveS3:
		s3, err := archive.NewS3Archive(ctx, archive.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    cfg.S3Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("creating s3 archive: %w", err)
		}
		return s3, nil
	default:
		return nil, nil
	}
}

// Serve runs an initial scan, then the watcher, the rescan scheduler and
// the HTTP API until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	if a.pdf != nil {
		if err := a.pdf.CheckAvailable(); err != nil {
			logger.Warn("%v\n%s", err, pdftext.InstallInstructions())
		}
	}

	if _, err := a.Ingest.IngestAll(ctx); err != nil {
		logger.Warn("Initial scan failed: %v", err)
	}

	if a.cfg.Ingest.Watch {
		// A fresh install has no PDF directory yet; watch an empty one.
		if err := os.MkdirAll(a.Ingest.Root(), 0750); err != nil {
			return fmt.Errorf("creating %s: %w", a.Ingest.Root(), err)
		}
		if err := a.watcher.Start(ctx); err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
	}

	var wg sync.WaitGroup
	if a.cfg.Ingest.RescanInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("Scheduler stopped: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- a.http.Start() }()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Ingest.ShutdownTimeout)
	defer cancel()

	var errs []error
	if serveErr != nil {
		errs = append(errs, fmt.Errorf("http server: %w", serveErr))
	} else if err := a.http.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := a.watcher.Stop(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	_ = a.scheduler.Stop()
	wg.Wait()

	logger.Info("Shutdown complete")
	return errors.Join(errs...)
}

// Close releases the store. It is safe to call more than once.
func (a *App) Close() error {
	var err error
	a.closeOnce.Do(func() {
		err = a.store.Close()
		_ = logger.Sync()
	})
	return err
}

// Services adapts the app to the CLI's driving ports.
func (a *App) Services() *cli.Services {
	return &cli.Services{
		Ingest:   a.Ingest,
		Match:    a.Match,
		Report:   a.Report,
		Document: a.Document,
		Audit:    a.Audit,
		Rules:    a.Rules,
		Runtime:  a,
	}
}

// Loader loads the config file at path and builds the app for the CLI.
func Loader(ctx context.Context, path string) (*cli.Services, func() error, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	a, err := New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return a.Services(), a.Close, nil
}
