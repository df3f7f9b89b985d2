package exporter

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"napsync/internal/model"
)

// NapSheet sheet name of the NAP gap workbook
const NapSheet = "Naps"

// NapColumns header of the NAP gap workbook, in order
var NapColumns = []string{
	"hub", "cluster", "olt", "frame", "slot", "puerto", "nap", "puertos_nap",
	"coordenadas", "fecha_de_liberacion", "region", "zona", "latitud", "longitud",
}

// ReleaseDateLayout fecha_de_liberacion cell format
const ReleaseDateLayout = "02/01/2006"

// ErrNothingToExport Export was called without records
var ErrNothingToExport = errors.New("no records to export")

const progressEvery = 500

// NapExporter writes missing NAPs to <Dir>/Inventario_Naps_YYYY-MM-DD.xlsx
type NapExporter struct {
	Dir      string
	Now      func() time.Time
	Progress func(ProgressEvent)
}

// NewNapExporter creates an exporter writing into dir
func NewNapExporter(dir string) *NapExporter {
	return &NapExporter{Dir: dir, Now: time.Now}
}

// FileName artifact name for day
func FileName(day time.Time) string {
	return "Inventario_Naps_" + day.Format("2006-01-02") + ".xlsx"
}

// Export writes records in order and returns the artifact path. A same-day
// artifact is overwritten.
func (e *NapExporter) Export(records []model.EnrichedNapRecord) (string, error) {
	if len(records) == 0 {
		return "", ErrNothingToExport
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	path := filepath.Join(e.Dir, FileName(now()))

	f, err := newWorkbook(NapSheet)
	if err != nil {
		return "", err
	}
	defer f.Close()

	total := len(records)
	e.report(ProgressEvent{Stage: StageHeader, Total: total})
	if err := writeRow(f, NapSheet, 1, headerValues(NapColumns)); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	if err := boldRow(f, NapSheet, 1, len(NapColumns)); err != nil {
		return "", fmt.Errorf("style header: %w", err)
	}

	for i, r := range records {
		if err := writeRow(f, NapSheet, i+2, napRowValues(r)); err != nil {
			return "", fmt.Errorf("write nap %s: %w", r.Code, err)
		}
		if written := i + 1; written%progressEvery == 0 || written == total {
			e.report(ProgressEvent{Stage: StageRows, Written: written, Total: total})
		}
	}

	e.report(ProgressEvent{Stage: StageSave, Written: total, Total: total, Path: path})
	if err := saveWorkbook(f, path); err != nil {
		return "", err
	}
	e.report(ProgressEvent{Stage: StageDone, Written: total, Total: total, Path: path})
	return path, nil
}

func napRowValues(r model.EnrichedNapRecord) []interface{} {
	return []interface{}{
		r.Hub,
		r.Cluster,
		r.OLT,
		r.Frame,
		r.Slot,
		r.Port,
		r.Code,
		r.PortCount,
		r.Coordinates,
		r.ReleaseDate.Format(ReleaseDateLayout),
		r.Region,
		r.Zone,
		r.LatitudeDisplay,
		r.LongitudeDisplay,
	}
}
