package release

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"napsync/internal/exporter"
	"napsync/internal/model"
	"napsync/internal/store"
	"napsync/internal/store/storetest"
)

var today = time.Date(2026, 10, 16, 10, 0, 0, 0, time.Local)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func clusterContext() model.ClusterContext {
	return model.ClusterContext{
		Hub: "HUB-N", Provider: "ACME", Hostname: "olt-n-01", NetworkType: "GPON",
		ZoneType: "URBANA", CoverageType: "FTTH", Region: "R1", Zone: "NORTE",
		Parish: "TARQUI", Feeder: "F-12", Cluster: "CL-100",

		HorizontalResidentialHPs: d(100),
		HorizontalCommercialHPs:  d(20),
		VerticalResidentialHPs:   d(50),
		VerticalCommercialHPs:    d(30),
		ProjectedBuildings:       d(2),
		ProjectedResidentialHPs:  d(40),
		ProjectedCommercialHPs:   d(10),
		Lots:                     d(5),
		TotalHPs:                 d(300),
		EnabledPorts:             d(64),
	}
}

func newEngine(t *testing.T, conn *store.Connector) (*Engine, string) {
	t.Helper()
	root := t.TempDir()
	recipients := filepath.Join(root, "correos")
	require.NoError(t, os.MkdirAll(recipients, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(recipients, "Correo_R1.md"), []byte("- noc-r1@example.com\n"), 0644))

	out := filepath.Join(root, "generador")
	e := NewEngine(conn, Options{OutputDir: out, RecipientsDir: recipients}, nil)
	e.Now = func() time.Time { return today }
	return e, out
}

func TestEngine_ClusterAbsentWritesReleaseRequest(t *testing.T) {
	conn := storetest.NewSnapshot(t)
	e, out := newEngine(t, conn)

	outcome, err := e.Run(context.Background(), clusterContext())
	require.NoError(t, err)

	assert.False(t, outcome.Exists)
	assert.Equal(t, filepath.Join(out, "liberacion_CL-100.xlsx"), outcome.Path)
	assert.NoFileExists(t, filepath.Join(out, "alcance_CL-100.xlsx"))
	assert.Equal(t, "- noc-r1@example.com\n", outcome.Recipients)

	row := outcome.Row
	assert.Equal(t, ClusterID(today, "CL-100"), row.ID)
	assert.Equal(t, "SAMBORONDON", row.Canton)
	assert.Equal(t, "N/A", row.Kind)
	assert.Equal(t, "Feeder: F-12, Hub: HUB-N", row.Observation)
	assert.Equal(t, "NORTE", row.CoverageZone)
	assert.True(t, row.HomePasses.Equal(d(250)))
	assert.True(t, row.BusinessPasses.Equal(d(50)))
	assert.True(t, row.ReleasedHPs.Equal(d(300)))

	f, err := excelize.OpenFile(outcome.Path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(exporter.ReleaseSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CL-100", rows[1][2])
	assert.Equal(t, "250", rows[1][7])
	assert.Equal(t, "2026-10-16", rows[1][9])
}

func TestEngine_ClusterExistsWritesScope(t *testing.T) {
	conn := storetest.NewSnapshot(t)
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	storetest.InsertClusters(t, conn,
		model.ClusterRow{
			ID: "b", Name: "CL-100", Hostname: "olt-new", Canton: "DAULE", Region: "R1",
			Capacity:    model.Capacity{EnabledPorts: d(16), ReleasedHPs: d(100), HomePasses: d(80), BusinessPasses: d(20)},
			ReleaseDate: &mar, Observation: "segunda", Kind: "PARCIAL", ZoneType: "RURAL",
		},
		model.ClusterRow{
			ID: "a", Name: "CL-100", Hostname: "olt-old", Canton: "DAULE", Region: "R1",
			Capacity:    model.Capacity{EnabledPorts: d(8), ReleasedHPs: d(50), HomePasses: d(40), BusinessPasses: d(10)},
			ReleaseDate: &jan, Observation: "primera", Kind: "PARCIAL", ZoneType: "RURAL",
		},
		model.ClusterRow{ID: "z", Name: "CL-200", Capacity: model.Capacity{EnabledPorts: d(999)}},
	)
	e, out := newEngine(t, conn)

	outcome, err := e.Run(context.Background(), clusterContext())
	require.NoError(t, err)

	assert.True(t, outcome.Exists)
	assert.Equal(t, 2, outcome.StoredRows)
	assert.Equal(t, filepath.Join(out, "alcance_CL-100.xlsx"), outcome.Path)
	assert.NoFileExists(t, filepath.Join(out, "liberacion_CL-100.xlsx"))

	row := outcome.Row
	assert.True(t, row.EnabledPorts.Equal(d(40)), row.EnabledPorts.String())
	assert.True(t, row.ReleasedHPs.Equal(d(150)))
	assert.True(t, row.HomePasses.Equal(d(130)))
	assert.True(t, row.BusinessPasses.Equal(d(20)))
	assert.True(t, row.HPHorizontalRes.Equal(d(100)))
	assert.Equal(t, "olt-new", row.Hostname)
	assert.Equal(t, "DAULE", row.Canton)
	assert.Equal(t, "PARCIAL", row.Kind)
	assert.Equal(t, "URBANA", row.ZoneType)
	assert.Equal(t, "segunda - Pendiente: 130 Home Passes", row.Observation)
	assert.Equal(t, ClusterID(today, "CL-100"), row.ID)

	f, err := excelize.OpenFile(outcome.Path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(exporter.ScopeSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "a", rows[1][0])
	assert.Equal(t, "b", rows[2][0])
	assert.Equal(t, row.ID, rows[3][0])
}

func TestEngine_ConnectionFailure(t *testing.T) {
	e := NewEngine(store.NewSQLiteConnector(""), Options{OutputDir: t.TempDir()}, nil)

	_, err := e.Run(context.Background(), clusterContext())
	assert.True(t, errors.Is(err, store.ErrConnection), "got %v", err)
}

func TestLoadRecipients(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Correo_R2.md"), []byte("r2"), 0644))

	text, err := LoadRecipients(dir, "R2")
	require.NoError(t, err)
	assert.Equal(t, "r2", text)

	text, err = LoadRecipients(dir, model.Unknown)
	require.NoError(t, err)
	assert.Equal(t, "r2", text)

	_, err = LoadRecipients(dir, "R1")
	assert.ErrorIs(t, err, ErrRecipientsMissing)
}
