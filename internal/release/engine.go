package release

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"napsync/internal/exporter"
	"napsync/internal/model"
	"napsync/internal/store"
)

// Defaults for synthesized release rows
const (
	DefaultCanton = "SAMBORONDON"
	DefaultKind   = "N/A"
)

// Options engine settings
type Options struct {
	OutputDir     string
	DefaultCanton string
	RecipientsDir string
}

// Outcome result of one release run
type Outcome struct {
	Cluster    string
	Exists     bool
	StoredRows int
	Row        model.ClusterRow // pending row when Exists, otherwise the release row
	Path       string
	Recipients string
}

// Engine decides between the existence report and the release request of a cluster.
type Engine struct {
	connector *store.Connector
	opts      Options
	logger    *zap.Logger

	// Now release date and id seed; time.Now when nil
	Now func() time.Time
}

// NewEngine creates an engine
func NewEngine(connector *store.Connector, opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DefaultCanton == "" {
		opts.DefaultCanton = DefaultCanton
	}
	return &Engine{connector: connector, opts: opts, logger: logger, Now: time.Now}
}

// Run writes alcance_<cluster>.xlsx when the cluster already has clusters rows,
// otherwise liberacion_<cluster>.xlsx. Each database step uses its own connection.
func (e *Engine) Run(ctx context.Context, cc model.ClusterContext) (*Outcome, error) {
	out := &Outcome{Cluster: cc.Cluster}
	out.Recipients = e.recipients(cc.Region)

	exists, err := e.clusterExists(ctx, cc.Cluster)
	if err != nil {
		return nil, err
	}
	out.Exists = exists

	today := e.now()
	if !exists {
		e.logger.Info("Cluster not found, generating release request", zap.String("cluster", cc.Cluster))
		out.Row = e.releaseRow(cc, today)
		out.Path = exporter.ReleasePath(e.opts.OutputDir, cc.Cluster)
		if err := exporter.WriteRelease(out.Path, out.Row); err != nil {
			return nil, fmt.Errorf("write release request: %w", err)
		}
		return out, nil
	}

	rows, err := e.clusterRows(ctx, cc.Cluster)
	if err != nil {
		return nil, err
	}
	out.StoredRows = len(rows)
	e.logger.Info("Cluster found, generating existence report",
		zap.String("cluster", cc.Cluster), zap.Int("rows", len(rows)))

	out.Row = e.pendingRow(cc, rows, today)
	out.Path = exporter.ScopePath(e.opts.OutputDir, cc.Cluster)
	if err := exporter.WriteScope(out.Path, rows, out.Row); err != nil {
		return nil, fmt.Errorf("write existence report: %w", err)
	}
	return out, nil
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Engine) clusterExists(ctx context.Context, name string) (bool, error) {
	st, err := e.connector.Open(ctx)
	if err != nil {
		return false, err
	}
	defer st.Close()
	return st.ClusterExists(ctx, name)
}

func (e *Engine) clusterRows(ctx context.Context, name string) ([]model.ClusterRow, error) {
	st, err := e.connector.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.ClustersByName(ctx, name)
}

func (e *Engine) recipients(region string) string {
	if e.opts.RecipientsDir == "" {
		return ""
	}
	text, err := LoadRecipients(e.opts.RecipientsDir, region)
	if err != nil {
		e.logger.Warn("Recipients not loaded", zap.String("region", region), zap.Error(err))
		return ""
	}
	return text
}

// releaseRow the single row of a release request, built from the sheet aggregates.
func (e *Engine) releaseRow(cc model.ClusterContext, today time.Time) model.ClusterRow {
	day := today
	corp := today
	return model.ClusterRow{
		ID:              ClusterID(today, cc.Cluster),
		Hostname:        cc.Hostname,
		Name:            cc.Cluster,
		CoverageZone:    cc.Zone,
		Canton:          e.opts.DefaultCanton,
		Capacity:        cc.Capacity(),
		ReleaseDate:     &day,
		CoverageType:    cc.CoverageType,
		Region:          cc.Region,
		Parish:          cc.Parish,
		Observation:     fmt.Sprintf("Feeder: %s, Hub: %s", cc.Feeder, cc.Hub),
		NetworkType:     cc.NetworkType,
		CorpReleaseDate: &corp,
		Kind:            DefaultKind,
		ZoneType:        cc.ZoneType,
	}
}

// pendingRow context aggregates minus the stored rows. Descriptive columns come
// from the most recent stored row; tipo_zona always comes from the sheet.
func (e *Engine) pendingRow(cc model.ClusterContext, rows []model.ClusterRow, today time.Time) model.ClusterRow {
	if len(rows) == 0 {
		return e.releaseRow(cc, today)
	}

	last := rows[len(rows)-1]
	pending := cc.Capacity().Sub(model.SumCapacity(rows))
	day := today
	corp := today
	return model.ClusterRow{
		ID:              ClusterID(today, cc.Cluster),
		Hostname:        last.Hostname,
		Name:            last.Name,
		CoverageZone:    last.CoverageZone,
		Canton:          last.Canton,
		Capacity:        pending,
		ReleaseDate:     &day,
		CoverageType:    last.CoverageType,
		Region:          last.Region,
		Parish:          last.Parish,
		Observation:     fmt.Sprintf("%s - Pendiente: %s Home Passes", last.Observation, pending.HomePasses.String()),
		NetworkType:     last.NetworkType,
		CorpReleaseDate: &corp,
		Kind:            last.Kind,
		ZoneType:        cc.ZoneType,
	}
}
