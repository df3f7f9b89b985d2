package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Capacity numeric columns of the clusters table.
type Capacity struct {
	EnabledPorts    decimal.Decimal `json:"puertos_habilitados"`
	ReleasedHPs     decimal.Decimal `json:"hps_liberadas"`
	HomePasses      decimal.Decimal `json:"home_passes"`
	BusinessPasses  decimal.Decimal `json:"business_passes"`
	HPHorizontalRes decimal.Decimal `json:"hp_horizontal_res"`
	HPHorizontalCom decimal.Decimal `json:"hp_horizontal_com"`
	HPVerticalRes   decimal.Decimal `json:"hp_vertical_res"`
	HPVerticalCom   decimal.Decimal `json:"hp_vertical_com"`
	BuildingsRes    decimal.Decimal `json:"edif_res"`
	BuildingsCom    decimal.Decimal `json:"edif_com"`
	LotsRes         decimal.Decimal `json:"solares_res"`
}

// Add column-wise sum.
func (c Capacity) Add(o Capacity) Capacity {
	return Capacity{
		EnabledPorts:    c.EnabledPorts.Add(o.EnabledPorts),
		ReleasedHPs:     c.ReleasedHPs.Add(o.ReleasedHPs),
		HomePasses:      c.HomePasses.Add(o.HomePasses),
		BusinessPasses:  c.BusinessPasses.Add(o.BusinessPasses),
		HPHorizontalRes: c.HPHorizontalRes.Add(o.HPHorizontalRes),
		HPHorizontalCom: c.HPHorizontalCom.Add(o.HPHorizontalCom),
		HPVerticalRes:   c.HPVerticalRes.Add(o.HPVerticalRes),
		HPVerticalCom:   c.HPVerticalCom.Add(o.HPVerticalCom),
		BuildingsRes:    c.BuildingsRes.Add(o.BuildingsRes),
		BuildingsCom:    c.BuildingsCom.Add(o.BuildingsCom),
		LotsRes:         c.LotsRes.Add(o.LotsRes),
	}
}

// Sub column-wise difference.
func (c Capacity) Sub(o Capacity) Capacity {
	return Capacity{
		EnabledPorts:    c.EnabledPorts.Sub(o.EnabledPorts),
		ReleasedHPs:     c.ReleasedHPs.Sub(o.ReleasedHPs),
		HomePasses:      c.HomePasses.Sub(o.HomePasses),
		BusinessPasses:  c.BusinessPasses.Sub(o.BusinessPasses),
		HPHorizontalRes: c.HPHorizontalRes.Sub(o.HPHorizontalRes),
		HPHorizontalCom: c.HPHorizontalCom.Sub(o.HPHorizontalCom),
		HPVerticalRes:   c.HPVerticalRes.Sub(o.HPVerticalRes),
		HPVerticalCom:   c.HPVerticalCom.Sub(o.HPVerticalCom),
		BuildingsRes:    c.BuildingsRes.Sub(o.BuildingsRes),
		BuildingsCom:    c.BuildingsCom.Sub(o.BuildingsCom),
		LotsRes:         c.LotsRes.Sub(o.LotsRes),
	}
}

// ClusterContext aggregate figures of one release request, read from the "Liberacion" sheet.
// Read-only once loaded.
type ClusterContext struct {
	Hub          string `json:"hub"`
	Provider     string `json:"provider"`
	Hostname     string `json:"hostname"`
	NetworkType  string `json:"networkType"`
	ZoneType     string `json:"zoneType"`
	CoverageType string `json:"coverageType"`
	Region       string `json:"region"`
	Zone         string `json:"zone"`
	Parish       string `json:"parish"`
	Feeder       string `json:"feeder"`
	Cluster      string `json:"cluster"`

	HorizontalResidentialHPs decimal.Decimal `json:"horizontalResidentialHPs"`
	HorizontalCommercialHPs  decimal.Decimal `json:"horizontalCommercialHPs"`
	VerticalResidentialHPs   decimal.Decimal `json:"verticalResidentialHPs"`
	VerticalCommercialHPs    decimal.Decimal `json:"verticalCommercialHPs"`
	ProjectedBuildings       decimal.Decimal `json:"projectedBuildings"`
	ProjectedResidentialHPs  decimal.Decimal `json:"projectedResidentialHPs"`
	ProjectedCommercialHPs   decimal.Decimal `json:"projectedCommercialHPs"`
	Lots                     decimal.Decimal `json:"lots"`
	TotalHPs                 decimal.Decimal `json:"totalHPs"`
	EnabledPorts             decimal.Decimal `json:"enabledPorts"`
}

// HomePassesTotal total HPs minus the commercial ones.
func (c ClusterContext) HomePassesTotal() decimal.Decimal {
	return c.TotalHPs.Sub(c.HorizontalCommercialHPs).Sub(c.VerticalCommercialHPs)
}

// BusinessPassesTotal horizontal plus vertical commercial HPs.
func (c ClusterContext) BusinessPassesTotal() decimal.Decimal {
	return c.HorizontalCommercialHPs.Add(c.VerticalCommercialHPs)
}

// Capacity the context aggregates laid out as clusters columns.
func (c ClusterContext) Capacity() Capacity {
	return Capacity{
		EnabledPorts:    c.EnabledPorts,
		ReleasedHPs:     c.TotalHPs,
		HomePasses:      c.HomePassesTotal(),
		BusinessPasses:  c.BusinessPassesTotal(),
		HPHorizontalRes: c.HorizontalResidentialHPs,
		HPHorizontalCom: c.HorizontalCommercialHPs,
		HPVerticalRes:   c.VerticalResidentialHPs,
		HPVerticalCom:   c.VerticalCommercialHPs,
		BuildingsRes:    c.ProjectedResidentialHPs,
		BuildingsCom:    c.ProjectedCommercialHPs,
		LotsRes:         c.Lots,
	}
}

// ClusterRow a persisted partial release from the clusters table. Never written back.
type ClusterRow struct {
	ID           string `json:"id"`
	Hostname     string `json:"hostname"`
	Name         string `json:"nombre"`
	CoverageZone string `json:"zona_cobertura"`
	Canton       string `json:"canton"`

	Capacity

	ReleaseDate     *time.Time `json:"fecha_liberacion"`
	CoverageType    string     `json:"tipo_cobertura"`
	Region          string     `json:"region"`
	Parish          string     `json:"parroquia"`
	Observation     string     `json:"observacion"`
	NetworkType     string     `json:"tipo_red"`
	CorpReleaseDate *time.Time `json:"fecha_liberacion_corp"`
	Kind            string     `json:"tipo"`
	ZoneType        string     `json:"tipo_zona"`
}

// ClusterColumns clusters columns in export order.
var ClusterColumns = []string{
	"id", "hostname", "nombre", "zona_cobertura", "canton",
	"puertos_habilitados", "hps_liberadas", "home_passes",
	"business_passes", "fecha_liberacion", "hp_horizontal_res",
	"hp_horizontal_com", "hp_vertical_res", "hp_vertical_com",
	"edif_res", "edif_com", "solares_res", "tipo_cobertura",
	"region", "parroquia", "observacion", "tipo_red",
	"fecha_liberacion_corp", "tipo", "tipo_zona",
}

// SumCapacity column-wise sum over rows.
func SumCapacity(rows []ClusterRow) Capacity {
	var total Capacity
	for _, r := range rows {
		total = total.Add(r.Capacity)
	}
	return total
}
