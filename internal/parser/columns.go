package parser

// Column one expected logical column. Aliases are alternative exact spellings.
type Column struct {
	Name    string
	Aliases []string
}

// ColumnMap header positions of the expected columns of one sheet
type ColumnMap struct {
	sheet   string
	index   map[string]int
	missing []string
}

// ResolveColumns maps every expected column to its header position. Matching is
// exact after NormalizeColumnName; the first matching header wins. Columns that
// do not match are reported by Missing, in expected order.
func ResolveColumns(sheet string, headers []string, expected []Column) ColumnMap {
	positions := make(map[string]int, len(headers))
	for i, h := range headers {
		key := NormalizeColumnName(h)
		if key == "" {
			continue
		}
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	m := ColumnMap{sheet: sheet, index: make(map[string]int, len(expected))}
	for _, col := range expected {
		idx, ok := lookupColumn(positions, col)
		if !ok {
			m.missing = append(m.missing, col.Name)
			continue
		}
		m.index[col.Name] = idx
	}
	return m
}

func lookupColumn(positions map[string]int, col Column) (int, bool) {
	if idx, ok := positions[NormalizeColumnName(col.Name)]; ok {
		return idx, true
	}
	for _, alias := range col.Aliases {
		if idx, ok := positions[NormalizeColumnName(alias)]; ok {
			return idx, true
		}
	}
	return 0, false
}

// Index header position of a logical column
func (m ColumnMap) Index(name string) (int, bool) {
	idx, ok := m.index[name]
	return idx, ok
}

// Has reports whether the column was resolved
func (m ColumnMap) Has(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Cell trimmed value of a logical column in row; "" when the column is missing
// or the row is short.
func (m ColumnMap) Cell(row []string, name string) string {
	idx, ok := m.index[name]
	if !ok {
		return ""
	}
	return cellText(row, idx)
}

// RawCell untrimmed value of a logical column in row, for keys compared exactly.
func (m ColumnMap) RawCell(row []string, name string) string {
	idx, ok := m.index[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Missing expected columns absent from the header row
func (m ColumnMap) Missing() []string {
	return m.missing
}

// MissingErrors Missing as typed errors
func (m ColumnMap) MissingErrors() []*ColumnMissingError {
	out := make([]*ColumnMissingError, 0, len(m.missing))
	for _, name := range m.missing {
		out = append(out, &ColumnMissingError{Sheet: m.sheet, Column: name})
	}
	return out
}

func columns(names ...string) []Column {
	out := make([]Column, 0, len(names))
	for _, n := range names {
		out = append(out, Column{Name: n})
	}
	return out
}
