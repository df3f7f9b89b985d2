package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"napsync/internal/model"
	"napsync/internal/parser"
	"napsync/internal/region"
	"napsync/internal/store"
)

// Exporter writes the enriched records and returns the artifact path.
// *exporter.NapExporter implements it.
type Exporter interface {
	Export(records []model.EnrichedNapRecord) (string, error)
}

// Result outcome of one reconciliation
type Result struct {
	SourceCount int
	Duplicates  int
	StoredCount int
	Missing     []model.EnrichedNapRecord
	ExportPath  string
}

// Engine finds NAP codes of the sheet that inv_naps lacks and exports them.
type Engine struct {
	connector     *store.Connector
	exporter      Exporter
	sheetDefaults model.RegionZone
	logger        *zap.Logger

	// Now release date of exported records; time.Now when nil
	Now func() time.Time
}

// NewEngine creates an engine. sheetDefaults are the workbook-wide region/zone.
func NewEngine(connector *store.Connector, exporter Exporter, sheetDefaults model.RegionZone, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		connector:     connector,
		exporter:      exporter,
		sheetDefaults: sheetDefaults,
		logger:        logger,
		Now:           time.Now,
	}
}

// Run reconciles records against inv_naps. One connection serves the code lookup
// and the region/zone lookups, and is closed before returning. When nothing is
// missing no artifact is written and Result.ExportPath is empty.
func (e *Engine) Run(ctx context.Context, records []model.NapRecord) (*Result, error) {
	codes, duplicates := SourceCodes(records)
	result := &Result{SourceCount: len(codes), Duplicates: duplicates}
	if duplicates > 0 {
		e.logger.Warn("Duplicate NAP codes in sheet, keeping first occurrence", zap.Int("duplicates", duplicates))
	}
	if len(codes) == 0 {
		e.logger.Info("No NAP codes to reconcile")
		return result, nil
	}

	st, err := e.connector.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	stored, err := storedCodes(ctx, st, codes)
	if err != nil {
		return nil, err
	}
	result.StoredCount = len(stored)

	missing := Diff(codes, stored)
	e.logger.Info("NAP codes compared",
		zap.Int("source", len(codes)),
		zap.Int("stored", len(stored)),
		zap.Int("missing", len(missing)))
	if len(missing) == 0 {
		return result, nil
	}

	resolver := region.NewResolver(e.sheetDefaults, st, e.logger)
	result.Missing = e.enrich(ctx, firstByCode(records, missing), resolver)

	path, err := e.exporter.Export(result.Missing)
	if err != nil {
		return nil, fmt.Errorf("export missing naps: %w", err)
	}
	result.ExportPath = path
	e.logger.Info("Missing NAPs exported", zap.String("path", path), zap.Int("records", len(result.Missing)))
	return result, nil
}

func storedCodes(ctx context.Context, st *store.Store, codes []string) ([]string, error) {
	var stored []string
	for _, batch := range chunks(codes, BatchSize) {
		found, err := st.NapCodesIn(ctx, batch)
		if err != nil {
			return nil, err
		}
		stored = append(stored, found...)
	}
	return stored, nil
}

// firstByCode first record of each missing code, in missing order
func firstByCode(records []model.NapRecord, missing []string) []model.NapRecord {
	first := make(map[string]model.NapRecord, len(missing))
	for _, r := range records {
		if _, ok := first[r.Code]; !ok {
			first[r.Code] = r
		}
	}
	out := make([]model.NapRecord, 0, len(missing))
	for _, code := range missing {
		out = append(out, first[code])
	}
	return out
}

func (e *Engine) enrich(ctx context.Context, records []model.NapRecord, resolver *region.Resolver) []model.EnrichedNapRecord {
	today := e.Now()
	out := make([]model.EnrichedNapRecord, 0, len(records))
	for start := 0; start < len(records); start += BatchSize {
		end := min(start+BatchSize, len(records))
		for _, r := range records[start:end] {
			rz := resolver.Resolve(ctx, r.Cluster)
			coords, lat, lon := parser.FormatCoordinates(r.Latitude, r.Longitude)
			out = append(out, model.EnrichedNapRecord{
				NapRecord:        r,
				Region:           rz.Region,
				Zone:             rz.Zone,
				ReleaseDate:      today,
				Coordinates:      coords,
				LatitudeDisplay:  lat,
				LongitudeDisplay: lon,
			})
		}
		e.logger.Debug("Enrichment batch assembled", zap.Int("from", start), zap.Int("to", end))
	}
	return out
}
