package parser

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

var (
	spaceRun = regexp.MustCompile(`\s+`)
	folder   = cases.Fold()
)

// NormalizeColumnName trims, collapses inner whitespace (including line breaks) to a
// single space and case-folds, so "Región" and " REGIÓN " compare equal.
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = spaceRun.ReplaceAllString(name, " ")
	return folder.String(name)
}

// cellText cell value with surrounding whitespace removed; "" past the end of row.
// NAP codes bypass it through ColumnMap.RawCell.
func cellText(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber parses "12", "12.0", "12,5" and " 7 ". ',' is a decimal separator.
func parseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// parseInt truncating integer conversion, 0 when empty or invalid
func parseInt(s string) (int, bool) {
	d, ok := parseNumber(s)
	if !ok {
		return 0, false
	}
	f := d.Truncate(0).InexactFloat64()
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
