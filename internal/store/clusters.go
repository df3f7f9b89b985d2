package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"napsync/internal/model"
)

// ClusterExists reports whether any clusters row has nombre = name (exact match).
func (s *Store) ClusterExists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var dummy int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM clusters WHERE nombre = $1 LIMIT 1", name).Scan(&dummy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%w: check cluster %q: %w", ErrQuery, name, err)
	}
	return true, nil
}

// ClustersByName all clusters rows of a cluster, oldest release first.
func (s *Store) ClustersByName(ctx context.Context, name string) ([]model.ClusterRow, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := "SELECT " + strings.Join(model.ClusterColumns, ", ") +
		" FROM clusters WHERE nombre = $1 ORDER BY fecha_liberacion, id"

	rows, err := s.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("%w: select clusters %q: %w", ErrQuery, name, err)
	}
	defer rows.Close()

	var out []model.ClusterRow
	for rows.Next() {
		r, err := scanClusterRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan clusters row: %w", ErrQuery, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate clusters rows: %w", ErrQuery, err)
	}
	return out, nil
}

func scanClusterRow(rows *sql.Rows) (model.ClusterRow, error) {
	var (
		id, hostname, nombre, zonaCobertura, canton sql.NullString
		tipoCobertura, region, parroquia            sql.NullString
		observacion, tipoRed, tipo, tipoZona        sql.NullString
		fecha, fechaCorp                            sql.NullTime

		puertos, hps, homePasses, businessPasses  decimal.NullDecimal
		hr, hc, vr, vc, edifRes, edifCom, solares decimal.NullDecimal
	)

	err := rows.Scan(
		&id, &hostname, &nombre, &zonaCobertura, &canton,
		&puertos, &hps, &homePasses,
		&businessPasses, &fecha, &hr,
		&hc, &vr, &vc,
		&edifRes, &edifCom, &solares, &tipoCobertura,
		&region, &parroquia, &observacion, &tipoRed,
		&fechaCorp, &tipo, &tipoZona,
	)
	if err != nil {
		return model.ClusterRow{}, err
	}

	return model.ClusterRow{
		ID:           id.String,
		Hostname:     hostname.String,
		Name:         nombre.String,
		CoverageZone: zonaCobertura.String,
		Canton:       canton.String,
		Capacity: model.Capacity{
			EnabledPorts:    decimalOrZero(puertos),
			ReleasedHPs:     decimalOrZero(hps),
			HomePasses:      decimalOrZero(homePasses),
			BusinessPasses:  decimalOrZero(businessPasses),
			HPHorizontalRes: decimalOrZero(hr),
			HPHorizontalCom: decimalOrZero(hc),
			HPVerticalRes:   decimalOrZero(vr),
			HPVerticalCom:   decimalOrZero(vc),
			BuildingsRes:    decimalOrZero(edifRes),
			BuildingsCom:    decimalOrZero(edifCom),
			LotsRes:         decimalOrZero(solares),
		},
		ReleaseDate:     timeOrNil(fecha),
		CoverageType:    tipoCobertura.String,
		Region:          region.String,
		Parish:          parroquia.String,
		Observation:     observacion.String,
		NetworkType:     tipoRed.String,
		CorpReleaseDate: timeOrNil(fechaCorp),
		Kind:            tipo.String,
		ZoneType:        tipoZona.String,
	}, nil
}

func decimalOrZero(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}

func timeOrNil(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
