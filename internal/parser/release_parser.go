package parser

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"napsync/internal/model"
)

// Liberacion sheet columns
const (
	ColProvider           = "PROVEEDOR"
	ColHostname           = "HOSTNAME"
	ColNetworkType        = "TIPO DE RED"
	ColZoneType           = "TIPO DE ZONA"
	ColCoverageType       = "TIPO DE COBERTURA"
	ColRegion             = "REGIÓN"
	ColZone               = "ZONA"
	ColParish             = "PARROQUIA"
	ColFeeder             = "FEEDER"
	ColHorizontalRes      = "Horizontal Residencial (HPs)"
	ColHorizontalCom      = "Horizontal Comercial (HPs)"
	ColVerticalRes        = "Vertical Residencial (HPs)"
	ColVerticalCom        = "Vertical Comercial (HPs)"
	ColProjectedBuildings = "Cantidad de Edificios Proyectados"
	ColProjectedResHPs    = "Edif Resid Proyectados (HPs)"
	ColProjectedComHPs    = "Edif Comercial Proyectados (HPs)"
	ColLots               = "Solares"
	ColTotalHPs           = "HP'S TOTALES"
	ColEnabledPorts       = "PUERTOS HABILITADOS"
)

var regionColumn = Column{Name: ColRegion, Aliases: []string{"REGION"}}

// ReleaseColumns expected columns of the Liberacion sheet
var ReleaseColumns = append([]Column{
	{Name: ColHub}, {Name: ColProvider}, {Name: ColHostname}, {Name: ColNetworkType},
	{Name: ColZoneType}, {Name: ColCoverageType}, regionColumn, {Name: ColZone},
	{Name: ColParish}, {Name: ColFeeder}, {Name: ColCluster},
}, columns(
	ColHorizontalRes, ColHorizontalCom, ColVerticalRes, ColVerticalCom,
	ColProjectedBuildings, ColProjectedResHPs, ColProjectedComHPs,
	ColLots, ColTotalHPs, ColEnabledPorts,
)...)

// ReleaseParser Liberacion sheet parser
type ReleaseParser struct {
	file   *excelize.File
	logger *zap.Logger
}

// NewReleaseParser creates a parser; a nil logger discards output.
func NewReleaseParser(file *excelize.File, logger *zap.Logger) *ReleaseParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReleaseParser{file: file, logger: logger}
}

// ParseClusterContext reads the release aggregates from the first data row.
// CLUSTER is mandatory; every other column degrades to its default.
func (p *ReleaseParser) ParseClusterContext(sheetName string) (model.ClusterContext, error) {
	rows, err := readSheet(p.file, sheetName)
	if err != nil {
		return model.ClusterContext{}, err
	}

	cols := ResolveColumns(sheetName, rows[0], ReleaseColumns)
	for _, missing := range cols.MissingErrors() {
		if missing.Column == ColCluster {
			return model.ClusterContext{}, missing
		}
		p.logger.Warn("Expected column not found, using defaults",
			zap.String("sheet", sheetName),
			zap.String("column", missing.Column))
	}

	row := rows[1]
	ctx := model.ClusterContext{
		Hub:          textOrUnknown(cols.Cell(row, ColHub)),
		Provider:     textOrUnknown(cols.Cell(row, ColProvider)),
		Hostname:     textOrUnknown(cols.Cell(row, ColHostname)),
		NetworkType:  textOrUnknown(cols.Cell(row, ColNetworkType)),
		ZoneType:     textOrUnknown(cols.Cell(row, ColZoneType)),
		CoverageType: textOrUnknown(cols.Cell(row, ColCoverageType)),
		Region:       textOrUnknown(cols.Cell(row, ColRegion)),
		Zone:         textOrUnknown(cols.Cell(row, ColZone)),
		Parish:       textOrUnknown(cols.Cell(row, ColParish)),
		Feeder:       textOrUnknown(cols.Cell(row, ColFeeder)),
		Cluster:      cols.Cell(row, ColCluster),

		HorizontalResidentialHPs: p.number(cols, row, ColHorizontalRes),
		HorizontalCommercialHPs:  p.number(cols, row, ColHorizontalCom),
		VerticalResidentialHPs:   p.number(cols, row, ColVerticalRes),
		VerticalCommercialHPs:    p.number(cols, row, ColVerticalCom),
		ProjectedBuildings:       p.number(cols, row, ColProjectedBuildings),
		ProjectedResidentialHPs:  p.number(cols, row, ColProjectedResHPs),
		ProjectedCommercialHPs:   p.number(cols, row, ColProjectedComHPs),
		Lots:                     p.number(cols, row, ColLots),
		TotalHPs:                 p.number(cols, row, ColTotalHPs),
		EnabledPorts:             p.number(cols, row, ColEnabledPorts),
	}

	if ctx.Cluster == "" {
		return model.ClusterContext{}, fmt.Errorf("%w: %q has an empty %s value", ErrSheetEmpty, sheetName, ColCluster)
	}

	p.logger.Info("Release data read",
		zap.String("cluster", ctx.Cluster),
		zap.String("region", ctx.Region),
		zap.String("total_hps", ctx.TotalHPs.String()))
	return ctx, nil
}

func (p *ReleaseParser) number(cols ColumnMap, row []string, col string) decimal.Decimal {
	raw := cols.Cell(row, col)
	if raw == "" {
		return decimal.Zero
	}
	d, ok := parseNumber(raw)
	if !ok {
		p.logger.Warn("Invalid number, using 0", zap.String("column", col), zap.String("value", raw))
	}
	return d
}

// SheetRegionZone first non-empty REGIÓN and ZONA values of the sheet, taken
// independently of row. Unresolved values are model.Unknown.
func SheetRegionZone(file *excelize.File, sheetName string) (model.RegionZone, error) {
	rz := model.UnknownRegionZone()

	rows, err := readSheet(file, sheetName)
	if err != nil {
		return rz, err
	}

	cols := ResolveColumns(sheetName, rows[0], []Column{regionColumn, {Name: ColZone}})
	for _, row := range rows[1:] {
		if model.IsUnknown(rz.Region) {
			if v := cols.Cell(row, ColRegion); v != "" {
				rz.Region = v
			}
		}
		if model.IsUnknown(rz.Zone) {
			if v := cols.Cell(row, ColZone); v != "" {
				rz.Zone = v
			}
		}
		if rz.Complete() {
			break
		}
	}
	return rz, nil
}
