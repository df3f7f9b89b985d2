package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"napsync/internal/model"
)

// NapCodesIn returns the subset of codes stored in inv_naps.nap (exact, case-sensitive).
// Callers bound len(codes); every code becomes one bind parameter.
func (s *Store) NapCodesIn(ctx context.Context, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	args := make([]interface{}, len(codes))
	for i, c := range codes {
		args[i] = c
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT nap FROM inv_naps WHERE nap IN ("+placeholders(1, len(codes))+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: select inv_naps codes: %w", ErrQuery, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var nap string
		if err := rows.Scan(&nap); err != nil {
			return nil, fmt.Errorf("%w: scan inv_naps code: %w", ErrQuery, err)
		}
		out = append(out, nap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate inv_naps codes: %w", ErrQuery, err)
	}
	return out, nil
}

// RegionZoneByCluster region/zona of any inv_naps row of the cluster.
// found is false when the cluster has no rows; empty columns come back as model.Unknown.
func (s *Store) RegionZoneByCluster(ctx context.Context, cluster string) (rz model.RegionZone, found bool, err error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var region, zona sql.NullString
	err = s.db.QueryRowContext(ctx,
		"SELECT region, zona FROM inv_naps WHERE cluster = $1 LIMIT 1", cluster,
	).Scan(&region, &zona)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UnknownRegionZone(), false, nil
		}
		return model.UnknownRegionZone(), false, fmt.Errorf("%w: select inv_naps region: %w", ErrQuery, err)
	}

	return model.RegionZone{
		Region: textOrUnknown(region),
		Zone:   textOrUnknown(zona),
	}, true, nil
}

func textOrUnknown(v sql.NullString) string {
	if !v.Valid || v.String == "" {
		return model.Unknown
	}
	return v.String
}
