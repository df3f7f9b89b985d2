package exporter

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"napsync/internal/model"
)

const (
	// ScopeSheet sheet of the existence report
	ScopeSheet = "Resultados"
	// ReleaseSheet sheet of the release request
	ReleaseSheet = "Liberación"

	// PendingComment note attached to the pending totals row
	PendingComment = "Valores pendientes: Variables globales menos los registros existentes."
	commentAuthor  = "Sistema"

	dateLayout = "2006-01-02"
)

// ScopePath <dir>/alcance_<cluster>.xlsx
func ScopePath(dir, cluster string) string {
	return filepath.Join(dir, "alcance_"+SafeFileName(cluster)+".xlsx")
}

// ReleasePath <dir>/liberacion_<cluster>.xlsx
func ReleasePath(dir, cluster string) string {
	return filepath.Join(dir, "liberacion_"+SafeFileName(cluster)+".xlsx")
}

// WriteScope writes the stored rows followed by the bold pending row, which carries
// PendingComment on its first cell.
func WriteScope(path string, rows []model.ClusterRow, pending model.ClusterRow) error {
	f, err := newWorkbook(ScopeSheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writeClusterRows(f, ScopeSheet, append(append([]model.ClusterRow{}, rows...), pending)); err != nil {
		return err
	}

	last := len(rows) + 2
	if err := boldRow(f, ScopeSheet, last, len(model.ClusterColumns)); err != nil {
		return fmt.Errorf("style pending row: %w", err)
	}
	cell, _ := excelize.CoordinatesToCellName(1, last)
	err = f.AddComment(ScopeSheet, excelize.Comment{
		Cell:      cell,
		Author:    commentAuthor,
		Paragraph: []excelize.RichTextRun{{Text: PendingComment}},
	})
	if err != nil {
		return fmt.Errorf("add pending comment: %w", err)
	}

	return saveWorkbook(f, path)
}

// WriteRelease writes the single release request row under a bold header.
func WriteRelease(path string, row model.ClusterRow) error {
	f, err := newWorkbook(ReleaseSheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writeClusterRows(f, ReleaseSheet, []model.ClusterRow{row}); err != nil {
		return err
	}
	return saveWorkbook(f, path)
}

func writeClusterRows(f *excelize.File, sheet string, rows []model.ClusterRow) error {
	if err := writeRow(f, sheet, 1, headerValues(model.ClusterColumns)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := boldRow(f, sheet, 1, len(model.ClusterColumns)); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	for i, r := range rows {
		if err := writeRow(f, sheet, i+2, clusterRowValues(r)); err != nil {
			return fmt.Errorf("write cluster row %s: %w", r.ID, err)
		}
	}
	return nil
}

// clusterRowValues r in model.ClusterColumns order
func clusterRowValues(r model.ClusterRow) []interface{} {
	c := r.Capacity
	return []interface{}{
		r.ID, r.Hostname, r.Name, r.CoverageZone, r.Canton,
		decimalValue(c.EnabledPorts), decimalValue(c.ReleasedHPs), decimalValue(c.HomePasses),
		decimalValue(c.BusinessPasses), dateValue(r.ReleaseDate), decimalValue(c.HPHorizontalRes),
		decimalValue(c.HPHorizontalCom), decimalValue(c.HPVerticalRes), decimalValue(c.HPVerticalCom),
		decimalValue(c.BuildingsRes), decimalValue(c.BuildingsCom), decimalValue(c.LotsRes), r.CoverageType,
		r.Region, r.Parish, r.Observation, r.NetworkType,
		dateValue(r.CorpReleaseDate), r.Kind, r.ZoneType,
	}
}

func dateValue(t *time.Time) interface{} {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
