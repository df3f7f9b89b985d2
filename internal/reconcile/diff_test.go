package reconcile

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"napsync/internal/model"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name   string
		source []string
		stored []string
		want   []string
	}{
		{"all stored", []string{"A", "B"}, []string{"B", "A"}, nil},
		{"none stored", []string{"A", "B"}, nil, []string{"A", "B"}},
		{"source order kept", []string{"C", "A", "B"}, []string{"A"}, []string{"C", "B"}},
		{"duplicates collapsed", []string{"A", "B", "A", "B"}, nil, []string{"A", "B"}},
		{"case sensitive", []string{"nap-1"}, []string{"NAP-1"}, []string{"nap-1"}},
		{"stored extras ignored", []string{"A"}, []string{"X", "Y"}, []string{"A"}},
		{"empty source", nil, []string{"A"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Diff(tt.source, tt.stored)); diff != "" {
				t.Fatalf("Diff mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiff_SetProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		source := randomCodes(rng, 40)
		stored := randomCodes(rng, 40)

		got := Diff(source, stored)

		storedSet := toSet(stored)
		seen := map[string]bool{}
		for _, c := range got {
			assert.False(t, seen[c], "duplicate %s", c)
			seen[c] = true
			assert.NotContains(t, storedSet, c)
			assert.Contains(t, source, c)
		}
		for _, c := range source {
			if _, ok := storedSet[c]; !ok {
				assert.True(t, seen[c], "missing %s", c)
			}
		}

		shuffled := append([]string(nil), stored...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, got, Diff(source, shuffled))
	}
}

func TestSourceCodes(t *testing.T) {
	codes, dups := SourceCodes([]model.NapRecord{{Code: "B"}, {Code: "A"}, {Code: "B"}, {Code: "C"}, {Code: "A"}})
	assert.Equal(t, []string{"B", "A", "C"}, codes)
	assert.Equal(t, 2, dups)
}

func TestChunks(t *testing.T) {
	codes := randomCodes(rand.New(rand.NewSource(1)), 1201)
	parts := chunks(codes, BatchSize)
	assert.Len(t, parts, 3)
	assert.Len(t, parts[0], 500)
	assert.Len(t, parts[2], 201)
	assert.Empty(t, chunks(nil, BatchSize))
}

func randomCodes(rng *rand.Rand, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("NAP-%03d", rng.Intn(60))
	}
	return out
}

func toSet(codes []string) map[string]struct{} {
	out := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		out[c] = struct{}{}
	}
	return out
}
