// Package storetest seeds sqlite snapshots for tests.
package storetest

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"napsync/internal/model"
	"napsync/internal/store"
)

// Nap one inv_naps row
type Nap struct {
	Code    string
	Region  string
	Zone    string
	Cluster string
}

// NewSnapshot creates an empty sqlite snapshot in t.TempDir and returns its connector.
func NewSnapshot(t testing.TB) *store.Connector {
	t.Helper()

	conn := store.NewSQLiteConnector(filepath.Join(t.TempDir(), "snapshot.db"))
	st, err := conn.Open(context.Background())
	require.NoError(t, err)
	require.NoError(t, st.Close())
	return conn
}

// InsertNaps seeds inv_naps.
func InsertNaps(t testing.TB, conn *store.Connector, naps ...Nap) {
	t.Helper()

	st, err := conn.Open(context.Background())
	require.NoError(t, err)
	defer st.Close()

	for _, n := range naps {
		_, err := st.DB().Exec(
			"INSERT INTO inv_naps (nap, region, zona, cluster) VALUES ($1, $2, $3, $4)",
			n.Code, nullable(n.Region), nullable(n.Zone), nullable(n.Cluster),
		)
		require.NoError(t, err)
	}
}

// InsertClusters seeds clusters.
func InsertClusters(t testing.TB, conn *store.Connector, rows ...model.ClusterRow) {
	t.Helper()

	st, err := conn.Open(context.Background())
	require.NoError(t, err)
	defer st.Close()

	query := "INSERT INTO clusters (" + strings.Join(model.ClusterColumns, ", ") + ") VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(model.ClusterColumns)), ", ") + ")"

	for _, r := range rows {
		_, err := st.DB().Exec(query,
			r.ID, r.Hostname, r.Name, r.CoverageZone, r.Canton,
			r.EnabledPorts.String(), r.ReleasedHPs.String(), r.HomePasses.String(),
			r.BusinessPasses.String(), date(r.ReleaseDate), r.HPHorizontalRes.String(),
			r.HPHorizontalCom.String(), r.HPVerticalRes.String(), r.HPVerticalCom.String(),
			r.BuildingsRes.String(), r.BuildingsCom.String(), r.LotsRes.String(), r.CoverageType,
			r.Region, r.Parish, r.Observation, r.NetworkType,
			date(r.CorpReleaseDate), r.Kind, r.ZoneType,
		)
		require.NoError(t, err)
	}
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func date(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}
