package region

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"napsync/internal/model"
)

type fakeLookup struct {
	rows  map[string]model.RegionZone
	err   error
	calls int
}

func (f *fakeLookup) RegionZoneByCluster(_ context.Context, cluster string) (model.RegionZone, bool, error) {
	f.calls++
	if f.err != nil {
		return model.UnknownRegionZone(), false, f.err
	}
	rz, ok := f.rows[cluster]
	if !ok {
		return model.UnknownRegionZone(), false, nil
	}
	return rz, true, nil
}

func TestResolve_SheetDefaultsWin(t *testing.T) {
	lookup := &fakeLookup{rows: map[string]model.RegionZone{"CL-7": {Region: "R2", Zone: "SUR"}}}
	r := NewResolver(model.RegionZone{Region: "R1", Zone: "NORTE"}, lookup, nil)

	assert.Equal(t, model.RegionZone{Region: "R1", Zone: "NORTE"}, r.Resolve(context.Background(), "CL-7"))
	assert.Zero(t, lookup.calls)
}

func TestResolve_FillsOnlyUnknownValues(t *testing.T) {
	lookup := &fakeLookup{rows: map[string]model.RegionZone{"CL-7": {Region: "R2", Zone: "SUR"}}}
	r := NewResolver(model.RegionZone{Region: "R1", Zone: model.Unknown}, lookup, nil)

	assert.Equal(t, model.RegionZone{Region: "R1", Zone: "SUR"}, r.Resolve(context.Background(), "CL-7"))
}

func TestResolve_Memoized(t *testing.T) {
	lookup := &fakeLookup{rows: map[string]model.RegionZone{"CL-7": {Region: "R2", Zone: "SUR"}}}
	r := NewResolver(model.UnknownRegionZone(), lookup, nil)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		assert.Equal(t, model.RegionZone{Region: "R2", Zone: "SUR"}, r.Resolve(ctx, "CL-7"))
	}
	assert.Equal(t, 1, lookup.calls)

	r.Resolve(ctx, "CL-8")
	assert.Equal(t, 2, lookup.calls)
}

func TestResolve_HeuristicWhenNoRow(t *testing.T) {
	lookup := &fakeLookup{}
	r := NewResolver(model.UnknownRegionZone(), lookup, nil)

	assert.Equal(t, model.RegionZone{Region: "R2", Zone: model.Unknown}, r.Resolve(context.Background(), "gye-r2-cl9"))
	assert.Equal(t, model.UnknownRegionZone(), r.Resolve(context.Background(), "CL-100"))
}

func TestResolve_DatabaseErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	lookup := &fakeLookup{err: errors.New("connection refused")}
	r := NewResolver(model.RegionZone{Zone: "NORTE"}, lookup, zap.New(core))

	assert.Equal(t, model.RegionZone{Region: "R1", Zone: "NORTE"}, r.Resolve(context.Background(), "GYE-R1-CL05"))
	assert.Equal(t, model.RegionZone{Region: model.Unknown, Zone: "NORTE"}, r.Resolve(context.Background(), "CL-100"))
	assert.Equal(t, 2, logs.Len())
}

func TestResolve_HeuristicWhenStoredRegionEmpty(t *testing.T) {
	lookup := &fakeLookup{rows: map[string]model.RegionZone{
		"GYE-R1-CL05": {Region: model.Unknown, Zone: "SUR"},
	}}
	r := NewResolver(model.UnknownRegionZone(), lookup, nil)

	assert.Equal(t, model.RegionZone{Region: "R1", Zone: "SUR"}, r.Resolve(context.Background(), "GYE-R1-CL05"))
}

func TestResolve_HeuristicWithoutLookup(t *testing.T) {
	r := NewResolver(model.UnknownRegionZone(), nil, nil)

	assert.Equal(t, model.RegionZone{Region: "R2", Zone: model.Unknown}, r.Resolve(context.Background(), "cl-r2-01"))
}

func TestRegionFromName(t *testing.T) {
	for name, want := range map[string]string{"R1-NORTE": "R1", "cl_r2_05": "R2", "CL-100": ""} {
		got, ok := RegionFromName(name)
		assert.Equal(t, want, got, name)
		assert.Equal(t, want != "", ok, name)
	}
}

func TestResolve_LogsCacheSize(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewResolver(model.RegionZone{Region: "R1", Zone: "NORTE"}, nil, zap.New(core))

	ctx := context.Background()
	r.Resolve(ctx, "CL-1")
	r.Resolve(ctx, "CL-2")
	r.Resolve(ctx, "CL-1")

	entries := logs.FilterMessage("Region and zone resolved").All()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[1].ContextMap()["cached_clusters"])
}
