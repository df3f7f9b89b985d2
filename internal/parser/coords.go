package parser

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"napsync/internal/model"
)

// NormalizeCoordinate converts a latitude or longitude to float64.
// Accepts numbers, decimal.Decimal and strings using '.' or ',' as the decimal
// separator. ok is false for nil, empty, unparsable, NaN and zero values.
func NormalizeCoordinate(v interface{}) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case decimal.Decimal:
		f = x.InexactFloat64()
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
		if err != nil {
			return 0, false
		}
		f = d.InexactFloat64()
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return 0, false
	}
	return f, true
}

// HasCoordinates both values usable
func HasCoordinates(lat, lon float64) bool {
	_, latOK := NormalizeCoordinate(lat)
	_, lonOK := NormalizeCoordinate(lon)
	return latOK && lonOK
}

// FormatCoordinates renders "(lon, lat)" with 6 decimals and '.', plus ','-separated
// display values. A pair missing either value yields model.NoCoordinates and empty
// display values.
func FormatCoordinates(lat, lon float64) (coords, latDisplay, lonDisplay string) {
	if !HasCoordinates(lat, lon) {
		return model.NoCoordinates, "", ""
	}

	latText := decimal.NewFromFloat(lat).StringFixed(6)
	lonText := decimal.NewFromFloat(lon).StringFixed(6)

	coords = "(" + lonText + ", " + latText + ")"
	latDisplay = strings.Replace(latText, ".", ",", 1)
	lonDisplay = strings.Replace(lonText, ".", ",", 1)
	return coords, latDisplay, lonDisplay
}
