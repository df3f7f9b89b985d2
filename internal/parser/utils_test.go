package parser

import "testing"

func TestNormalizeColumnName(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		a, b string
	}{
		{"REGIÓN", " región "},
		{"# PUERTOS NAP", "#  puertos\nnap"},
		{"HP'S TOTALES", "hp's totales"},
		{"Horizontal Residencial (HPs)", "HORIZONTAL RESIDENCIAL (HPS)"},
	} {
		if NormalizeColumnName(tc.a) != NormalizeColumnName(tc.b) {
			t.Fatalf("%q and %q should normalize equal: %q vs %q",
				tc.a, tc.b, NormalizeColumnName(tc.a), NormalizeColumnName(tc.b))
		}
	}

	if NormalizeColumnName("REGIÓN") == NormalizeColumnName("REGION") {
		t.Fatalf("accents must be significant; aliases cover REGION")
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{"12": "12", "12.0": "12", "12,5": "12.5", " 7 ": "7", "-3,25": "-3.25"} {
		got, ok := parseNumber(in)
		if !ok {
			t.Fatalf("parseNumber(%q) not ok", in)
		}
		if got.String() != want {
			t.Fatalf("parseNumber(%q) want=%s got=%s", in, want, got.String())
		}
	}
	for _, in := range []string{"", "abc", "1.2.3"} {
		if _, ok := parseNumber(in); ok {
			t.Fatalf("parseNumber(%q) should fail", in)
		}
	}
}

func TestParseInt(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]int{"16": 16, "16.0": 16, "2,9": 2, "-4": -4} {
		got, ok := parseInt(in)
		if !ok || got != want {
			t.Fatalf("parseInt(%q) want=%d got=%d ok=%v", in, want, got, ok)
		}
	}
	if _, ok := parseInt("99999999999"); ok {
		t.Fatalf("out of range value should fail")
	}
	if got, ok := parseInt("x"); ok || got != 0 {
		t.Fatalf("invalid value want=0,false got=%d,%v", got, ok)
	}
}

func TestResolveColumns_FirstHeaderWins(t *testing.T) {
	t.Parallel()

	m := ResolveColumns("Naps", []string{"HUB", "", "hub", "Region"}, []Column{
		{Name: ColHub},
		regionColumn,
		{Name: ColOLT},
	})
	if idx, _ := m.Index(ColHub); idx != 0 {
		t.Fatalf("HUB index want=0 got=%d", idx)
	}
	if idx, ok := m.Index(ColRegion); !ok || idx != 3 {
		t.Fatalf("REGIÓN via alias want=3 got=%d ok=%v", idx, ok)
	}
	if got := m.Missing(); len(got) != 1 || got[0] != ColOLT {
		t.Fatalf("missing want=[OLT] got=%v", got)
	}
	if m.Cell([]string{"H"}, ColRegion) != "" {
		t.Fatalf("short row should yield empty cell")
	}
}
