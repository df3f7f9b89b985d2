package reconcile

import "napsync/internal/model"

// BatchSize codes per IN query and records per enrichment batch
const BatchSize = 500

// SourceCodes distinct NAP codes of records in first-seen order, plus the number
// of duplicate rows dropped.
func SourceCodes(records []model.NapRecord) (codes []string, duplicates int) {
	seen := make(map[string]struct{}, len(records))
	codes = make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.Code]; ok {
			duplicates++
			continue
		}
		seen[r.Code] = struct{}{}
		codes = append(codes, r.Code)
	}
	return codes, duplicates
}

// Diff codes of source absent from stored, in source order, without duplicates.
// Comparison is exact.
func Diff(source, stored []string) []string {
	have := make(map[string]struct{}, len(stored))
	for _, s := range stored {
		have[s] = struct{}{}
	}

	var missing []string
	emitted := make(map[string]struct{})
	for _, c := range source {
		if _, ok := have[c]; ok {
			continue
		}
		if _, ok := emitted[c]; ok {
			continue
		}
		emitted[c] = struct{}{}
		missing = append(missing, c)
	}
	return missing
}

// chunks splits codes into slices of at most size elements
func chunks(codes []string, size int) [][]string {
	var out [][]string
	for len(codes) > size {
		out = append(out, codes[:size:size])
		codes = codes[size:]
	}
	if len(codes) > 0 {
		out = append(out, codes)
	}
	return out
}
