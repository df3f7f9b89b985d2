package exporter

import (
	"fmt"
	"path/filepath"
)

// ExportStage step of a NAP export
type ExportStage string

const (
	StageHeader ExportStage = "header"
	StageRows   ExportStage = "rows"
	StageSave   ExportStage = "save"
	StageDone   ExportStage = "done"
)

// ProgressEvent rows written so far out of Total; Path is set once saving starts.
type ProgressEvent struct {
	Stage   ExportStage
	Written int
	Total   int
	Path    string
}

// Percent rows account for 0-90, saving for the rest.
func (e ProgressEvent) Percent() int {
	switch e.Stage {
	case StageSave:
		return 95
	case StageDone:
		return 100
	}
	if e.Total <= 0 {
		return 0
	}
	return e.Written * 90 / e.Total
}

func (e ProgressEvent) String() string {
	switch e.Stage {
	case StageSave, StageDone:
		return fmt.Sprintf("%s %s (%d NAPs)", e.Stage, filepath.Base(e.Path), e.Total)
	}
	return fmt.Sprintf("%s %d/%d", e.Stage, e.Written, e.Total)
}

func (e *NapExporter) report(ev ProgressEvent) {
	if e.Progress != nil {
		e.Progress(ev)
	}
}
