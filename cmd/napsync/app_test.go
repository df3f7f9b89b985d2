package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"napsync/internal/config"
	"napsync/internal/parser"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Data.Workbook = filepath.Join(root, "missing.xlsx")
	cfg.Output.NapsDir = filepath.Join(root, "Registros_Naps")
	cfg.Output.ReleaseDir = filepath.Join(root, "generador")
	cfg.Database.Driver = "sqlite3"
	cfg.Database.SQLitePath = filepath.Join(root, "snapshot.db")
	cfg.Log.Level = "error"

	path := filepath.Join(root, "config.toml")
	require.NoError(t, config.SaveConfig(cfg, path))
	return path
}

func TestMenu_HelpThenExit(t *testing.T) {
	var out bytes.Buffer
	a := newApp(strings.NewReader("3\n9\n4\n"), &out)

	require.NoError(t, a.Execute(context.Background(), []string{"--config", writeConfig(t)}))

	text := out.String()
	assert.Contains(t, text, "Cluster release")
	assert.Contains(t, text, "Invalid option")
	assert.Contains(t, text, "Goodbye.")
}

func TestMenu_WorkflowErrorReturnsToMenu(t *testing.T) {
	var out bytes.Buffer
	a := newApp(strings.NewReader("2\n4\n"), &out)

	require.NoError(t, a.Execute(context.Background(), []string{"--config", writeConfig(t)}))
	assert.Contains(t, out.String(), "Workbook not found")
	assert.Contains(t, out.String(), "Goodbye.")
}

func TestMenu_EOFExits(t *testing.T) {
	var out bytes.Buffer
	a := newApp(strings.NewReader(""), &out)
	assert.NoError(t, a.Execute(context.Background(), []string{"--config", writeConfig(t)}))
}

func TestNapsCommand_Error(t *testing.T) {
	var out bytes.Buffer
	a := newApp(strings.NewReader(""), &out)

	err := a.Execute(context.Background(), []string{"naps", "--config", writeConfig(t)})
	assert.ErrorIs(t, err, parser.ErrWorkbookNotFound)
}

func TestMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, writeFile(path, "[data\nworkbook ="))

	a := newApp(strings.NewReader(""), &bytes.Buffer{})
	err := a.Execute(context.Background(), []string{"release", "--config", path})
	assert.ErrorIs(t, err, config.ErrConfigMalformed)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
