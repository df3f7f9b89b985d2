package model

import "time"

// Unknown placeholder for missing columns, empty cells and unresolved region/zone values.
const Unknown = "Sin dato"

// NoCoordinates marker written when a NAP lacks a usable latitude/longitude pair.
const NoCoordinates = "(Sin coordenadas)"

// NapRecord one populated row of the "Naps" sheet.
type NapRecord struct {
	Code      string  `json:"code"`
	Hub       string  `json:"hub"`
	Cluster   string  `json:"cluster"`
	OLT       string  `json:"olt"`
	Frame     int     `json:"frame"`
	Slot      int     `json:"slot"`
	Port      int     `json:"port"`
	PortCount int     `json:"portCount"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	RowNo int `json:"rowNo"` // 1-based sheet row, diagnostics only
}

// EnrichedNapRecord a NapRecord missing from inv_naps, ready for export.
type EnrichedNapRecord struct {
	NapRecord

	Region           string    `json:"region"`
	Zone             string    `json:"zone"`
	ReleaseDate      time.Time `json:"releaseDate"`
	Coordinates      string    `json:"coordinates"`
	LatitudeDisplay  string    `json:"latitudeDisplay"`
	LongitudeDisplay string    `json:"longitudeDisplay"`
}

// RegionZone region/zone pair of a cluster.
type RegionZone struct {
	Region string `json:"region"`
	Zone   string `json:"zone"`
}

// UnknownRegionZone both values set to the Unknown sentinel.
func UnknownRegionZone() RegionZone {
	return RegionZone{Region: Unknown, Zone: Unknown}
}

// Complete reports whether neither value is the sentinel.
func (rz RegionZone) Complete() bool {
	return !IsUnknown(rz.Region) && !IsUnknown(rz.Zone)
}

// IsUnknown reports whether v carries no information.
func IsUnknown(v string) bool {
	return v == "" || v == Unknown
}
