package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"napsync/internal/model"
)

// Naps sheet columns
const (
	ColNapCode   = "CODIGO_NAP"
	ColHub       = "HUB"
	ColCluster   = "CLUSTER"
	ColOLT       = "OLT"
	ColFrame     = "FRAME"
	ColSlot      = "SLOT"
	ColPort      = "PUERTO"
	ColPortCount = "# PUERTOS NAP"
	ColLatitude  = "LATITUD"
	ColLongitude = "LONGITUD"
)

// NapColumns expected columns of the Naps sheet
var NapColumns = columns(
	ColNapCode, ColHub, ColCluster, ColOLT, ColFrame,
	ColSlot, ColPort, ColPortCount, ColLatitude, ColLongitude,
)

// OpenWorkbook opens an xlsx file; a missing path is ErrWorkbookNotFound.
func OpenWorkbook(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrWorkbookNotFound, path)
		}
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return f, nil
}

// NapSheet parse result of the Naps sheet
type NapSheet struct {
	Records        []model.NapRecord
	MissingColumns []*ColumnMissingError
	SkippedRows    int // rows without a NAP code
}

// NapParser Naps sheet parser
type NapParser struct {
	file   *excelize.File
	logger *zap.Logger
}

// NewNapParser creates a parser; a nil logger discards output.
func NewNapParser(file *excelize.File, logger *zap.Logger) *NapParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NapParser{file: file, logger: logger}
}

// ParseSheet reads every row with a non-empty NAP code, in sheet order.
// Missing columns are logged and degrade their fields to defaults.
func (p *NapParser) ParseSheet(sheetName string) (*NapSheet, error) {
	rows, err := readSheet(p.file, sheetName)
	if err != nil {
		return nil, err
	}

	headers := rows[0]
	p.logger.Debug("Naps sheet columns", zap.String("sheet", sheetName), zap.Strings("columns", headers))

	cols := ResolveColumns(sheetName, headers, NapColumns)
	result := &NapSheet{MissingColumns: cols.MissingErrors()}
	for _, missing := range result.MissingColumns {
		p.logger.Warn("Expected column not found, using defaults",
			zap.String("sheet", sheetName),
			zap.String("column", missing.Column))
	}

	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		record, ok := p.parseNapRow(rows[rowIdx], cols, rowIdx+1)
		if !ok {
			result.SkippedRows++
			continue
		}
		result.Records = append(result.Records, record)
	}

	p.logger.Info("Naps sheet parsed",
		zap.String("sheet", sheetName),
		zap.Int("records", len(result.Records)),
		zap.Int("skipped", result.SkippedRows))
	return result, nil
}

// parseNapRow parses one row; ok is false when the NAP code is blank.
// The code keeps its cell text verbatim, inv_naps is matched on the exact string.
func (p *NapParser) parseNapRow(row []string, cols ColumnMap, rowNo int) (model.NapRecord, bool) {
	code := cols.RawCell(row, ColNapCode)
	if strings.TrimSpace(code) == "" {
		return model.NapRecord{}, false
	}

	record := model.NapRecord{
		Code:    code,
		Hub:     textOrUnknown(cols.Cell(row, ColHub)),
		Cluster: textOrUnknown(cols.Cell(row, ColCluster)),
		OLT:     textOrUnknown(cols.Cell(row, ColOLT)),
		RowNo:   rowNo,
	}
	record.Frame = p.intField(cols, row, ColFrame, code)
	record.Slot = p.intField(cols, row, ColSlot, code)
	record.Port = p.intField(cols, row, ColPort, code)
	record.PortCount = p.intField(cols, row, ColPortCount, code)
	record.Latitude = p.coordinateField(cols, row, ColLatitude, code)
	record.Longitude = p.coordinateField(cols, row, ColLongitude, code)

	return record, true
}

func (p *NapParser) intField(cols ColumnMap, row []string, col, code string) int {
	raw := cols.Cell(row, col)
	if raw == "" {
		return 0
	}
	v, ok := parseInt(raw)
	if !ok {
		p.logger.Debug("Invalid integer, using 0",
			zap.String("nap", code), zap.String("column", col), zap.String("value", raw))
	}
	return v
}

func (p *NapParser) coordinateField(cols ColumnMap, row []string, col, code string) float64 {
	raw := cols.Cell(row, col)
	if raw == "" {
		return 0
	}
	if _, ok := parseNumber(raw); !ok {
		p.logger.Warn("Coordinate could not be converted",
			zap.String("nap", code), zap.String("column", col), zap.String("value", raw))
		return 0
	}
	v, _ := NormalizeCoordinate(raw)
	return v
}

// readSheet all rows with raw cell values; the first row is the header.
func readSheet(file *excelize.File, sheetName string) ([][]string, error) {
	idx, err := file.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}

	rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrSheetEmpty, sheetName)
	}
	return rows, nil
}

func textOrUnknown(s string) string {
	if s == "" {
		return model.Unknown
	}
	return s
}
