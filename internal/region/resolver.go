package region

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"napsync/internal/model"
)

// Lookup database access used by the resolver. *store.Store implements it.
type Lookup interface {
	RegionZoneByCluster(ctx context.Context, cluster string) (model.RegionZone, bool, error)
}

// Resolver determines region and zone of a cluster.
//
// Sources, first wins per value:
//  1. sheet-wide defaults from the release sheet
//  2. any inv_naps row of the cluster, only for values still unknown
//  3. an "R1"/"R2" substring in the cluster name, for a region still unknown
//     after 1 and 2, including when the database lookup fails
type Resolver struct {
	defaults model.RegionZone
	lookup   Lookup
	cache    *Cache
	logger   *zap.Logger
}

// NewResolver creates a resolver with its own cache. lookup may be nil.
func NewResolver(sheetDefaults model.RegionZone, lookup Lookup, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sheetDefaults.Region == "" {
		sheetDefaults.Region = model.Unknown
	}
	if sheetDefaults.Zone == "" {
		sheetDefaults.Zone = model.Unknown
	}
	return &Resolver{
		defaults: sheetDefaults,
		lookup:   lookup,
		cache:    NewCache(),
		logger:   logger,
	}
}

// Resolve never fails: database errors are logged and the best known values returned.
func (r *Resolver) Resolve(ctx context.Context, cluster string) model.RegionZone {
	if rz, ok := r.cache.Get(cluster); ok {
		return rz
	}

	rz := r.defaults
	if !rz.Complete() {
		rz = r.fromDatabase(ctx, cluster, rz)
	}
	if model.IsUnknown(rz.Region) {
		if guess, ok := RegionFromName(cluster); ok {
			rz.Region = guess
		}
	}

	r.cache.Put(cluster, rz)
	r.logger.Debug("Region and zone resolved",
		zap.String("cluster", cluster),
		zap.String("region", rz.Region),
		zap.String("zone", rz.Zone),
		zap.Int("cached_clusters", r.cache.Len()))
	return rz
}

func (r *Resolver) fromDatabase(ctx context.Context, cluster string, rz model.RegionZone) model.RegionZone {
	if r.lookup == nil {
		return rz
	}

	stored, found, err := r.lookup.RegionZoneByCluster(ctx, cluster)
	if err != nil {
		r.logger.Error("Failed to read region and zone from database",
			zap.String("cluster", cluster), zap.Error(err))
		return rz
	}
	if !found {
		return rz
	}

	if model.IsUnknown(rz.Region) {
		rz.Region = stored.Region
	}
	if model.IsUnknown(rz.Zone) {
		rz.Zone = stored.Zone
	}
	return rz
}

// RegionFromName "R1" or "R2" when the cluster name contains it, case-insensitive.
func RegionFromName(cluster string) (string, bool) {
	upper := strings.ToUpper(cluster)
	switch {
	case strings.Contains(upper, "R1"):
		return "R1", true
	case strings.Contains(upper, "R2"):
		return "R2", true
	}
	return "", false
}
