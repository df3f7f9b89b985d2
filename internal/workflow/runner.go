package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"napsync/internal/config"
	"napsync/internal/exporter"
	"napsync/internal/model"
	"napsync/internal/parser"
	"napsync/internal/reconcile"
	"napsync/internal/release"
	"napsync/internal/store"
)

// Event progress event, for console display
type Event struct {
	Type      string    `json:"type"` // start/info/progress/done/error
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Runner runs the NAP update and cluster release workflows. Each call is one
// independent invocation with its own run id and region cache.
type Runner struct {
	cfg       *config.AppConfig
	connector *store.Connector
	logger    *zap.Logger

	// Now clock of both workflows; time.Now when nil
	Now func() time.Time
	// OnEvent receives progress events; may be nil
	OnEvent func(Event)
}

// NewRunner creates a runner for cfg
func NewRunner(cfg *config.AppConfig, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:       cfg,
		connector: store.NewConnector(cfg.Database, logger),
		logger:    logger,
		Now:       time.Now,
	}
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *Runner) emit(typ, format string, args ...interface{}) {
	if r.OnEvent == nil {
		return
	}
	r.OnEvent(Event{Type: typ, Message: fmt.Sprintf(format, args...), Timestamp: time.Now()})
}

func (r *Runner) runLogger(workflow string) *zap.Logger {
	return r.logger.With(zap.String("workflow", workflow), zap.String("run_id", uuid.NewString()))
}

// NapUpdate reads the Naps sheet, finds the codes missing from inv_naps and
// exports them. A result without ExportPath means nothing was missing.
func (r *Runner) NapUpdate(ctx context.Context) (*reconcile.Result, error) {
	logger := r.runLogger("naps")
	start := time.Now()
	r.emit("start", "Validating NAPs of %s", r.cfg.Data.Workbook)

	file, err := parser.OpenWorkbook(r.cfg.Data.Workbook)
	if err != nil {
		return nil, r.fail(logger, err)
	}
	defer file.Close()

	sheet, err := parser.NewNapParser(file, logger).ParseSheet(r.cfg.Data.NapsSheet)
	if err != nil {
		return nil, r.fail(logger, err)
	}
	r.emit("info", "%d NAP rows read from %q", len(sheet.Records), r.cfg.Data.NapsSheet)

	defaults, err := parser.SheetRegionZone(file, r.cfg.Data.ReleaseSheet)
	if err != nil {
		logger.Warn("Sheet region and zone unavailable", zap.String("sheet", r.cfg.Data.ReleaseSheet), zap.Error(err))
		defaults = model.UnknownRegionZone()
	}

	exp := exporter.NewNapExporter(r.cfg.Output.NapsDir)
	exp.Now = r.now
	exp.Progress = func(ev exporter.ProgressEvent) {
		r.emit("progress", "%3d%% %s", ev.Percent(), ev)
	}

	engine := reconcile.NewEngine(r.connector, exp, defaults, logger)
	engine.Now = r.now
	result, err := engine.Run(ctx, sheet.Records)
	if err != nil {
		return nil, r.fail(logger, err)
	}

	if result.ExportPath == "" {
		r.emit("done", "All NAP codes of the sheet are present in the database")
	} else {
		r.emit("done", "%d missing NAPs written to %s", len(result.Missing), result.ExportPath)
	}
	logger.Info("NAP update finished", zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

// ClusterRelease reads the release sheet and writes either the existence report
// or the release request of its cluster.
func (r *Runner) ClusterRelease(ctx context.Context) (*release.Outcome, error) {
	logger := r.runLogger("release")
	r.emit("start", "Reading release data from %s", r.cfg.Data.Workbook)

	file, err := parser.OpenWorkbook(r.cfg.Data.Workbook)
	if err != nil {
		return nil, r.fail(logger, err)
	}
	defer file.Close()

	cc, err := parser.NewReleaseParser(file, logger).ParseClusterContext(r.cfg.Data.ReleaseSheet)
	if err != nil {
		return nil, r.fail(logger, err)
	}
	logger = logger.With(zap.String("cluster", cc.Cluster))

	engine := release.NewEngine(r.connector, release.Options{
		OutputDir:     r.cfg.Output.ReleaseDir,
		DefaultCanton: r.cfg.Release.DefaultCanton,
		RecipientsDir: r.cfg.Release.RecipientsDir,
	}, logger)
	engine.Now = r.now

	outcome, err := engine.Run(ctx, cc)
	if err != nil {
		return nil, r.fail(logger, err)
	}

	if outcome.Exists {
		r.emit("done", "Cluster %s has %d records; existence report written to %s", cc.Cluster, outcome.StoredRows, outcome.Path)
	} else {
		r.emit("done", "Cluster %s is new; release request written to %s", cc.Cluster, outcome.Path)
	}
	return outcome, nil
}

func (r *Runner) fail(logger *zap.Logger, err error) error {
	logger.Error("Workflow failed", zap.Error(err))
	r.emit("error", "%s", Describe(err))
	return err
}

// Describe one-line user message for a workflow error
func Describe(err error) string {
	var missing *parser.ColumnMissingError
	switch {
	case errors.As(err, &missing):
		return fmt.Sprintf("Column %q is missing from sheet %q", missing.Column, missing.Sheet)
	case errors.Is(err, parser.ErrWorkbookNotFound):
		return "Workbook not found: " + err.Error()
	case errors.Is(err, parser.ErrSheetNotFound), errors.Is(err, parser.ErrSheetEmpty):
		return "Workbook sheet problem: " + err.Error()
	case errors.Is(err, config.ErrConfigMissing), errors.Is(err, config.ErrConfigMalformed):
		return "Configuration problem: " + err.Error()
	case errors.Is(err, store.ErrConnection):
		return "Could not connect to the database: " + err.Error()
	case errors.Is(err, store.ErrQuery):
		return "Database query failed: " + err.Error()
	default:
		return err.Error()
	}
}
