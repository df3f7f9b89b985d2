package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrConfigMissing a required configuration file does not exist
	ErrConfigMissing = errors.New("config file missing")
	// ErrConfigMalformed a configuration file could not be decoded
	ErrConfigMalformed = errors.New("config file malformed")
)

// AppConfig application configuration
type AppConfig struct {
	Data     DataConfig     `toml:"data"`
	Output   OutputConfig   `toml:"output"`
	Database DatabaseConfig `toml:"database"`
	Release  ReleaseConfig  `toml:"release"`
	Log      LogConfig      `toml:"log"`
}

// DataConfig source workbook
type DataConfig struct {
	Workbook     string `toml:"workbook"`
	NapsSheet    string `toml:"naps_sheet"`
	ReleaseSheet string `toml:"release_sheet"`
}

// OutputConfig artifact directories
type OutputConfig struct {
	NapsDir    string `toml:"naps_dir"`
	ReleaseDir string `toml:"release_dir"`
}

// DatabaseConfig database connection settings
type DatabaseConfig struct {
	Driver         string   `toml:"driver"` // pgx | sqlite3
	Credentials    string   `toml:"credentials"`
	SQLitePath     string   `toml:"sqlite_path"`
	ConnectTimeout Duration `toml:"connect_timeout"`
	QueryTimeout   Duration `toml:"query_timeout"`
}

// ReleaseConfig release workflow defaults
type ReleaseConfig struct {
	DefaultCanton string `toml:"default_canton"`
	RecipientsDir string `toml:"recipients_dir"`
}

// LogConfig logging
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration time.Duration that reads "10s"-style strings from TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// LoadConfigInfo config load metadata
type LoadConfigInfo struct {
	Path  string
	Found bool
}

// DefaultConfig default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Data: DataConfig{
			Workbook:     filepath.Join("Data", "data.xlsx"),
			NapsSheet:    "Naps",
			ReleaseSheet: "Liberacion",
		},
		Output: OutputConfig{
			NapsDir:    "Registros_Naps",
			ReleaseDir: "generador",
		},
		Database: DatabaseConfig{
			Driver:         "pgx",
			Credentials:    filepath.Join("configuracion", "conexion.json"),
			ConnectTimeout: Duration{10 * time.Second},
			QueryTimeout:   Duration{30 * time.Second},
		},
		Release: ReleaseConfig{
			DefaultCanton: "SAMBORONDON",
			RecipientsDir: "correos",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// GetExeDir directory of the running executable
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath config.toml next to the executable, or in the working directory
// when the executable directory is unknown.
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo loads path (DefaultConfigPath when empty) over the defaults.
// A missing file is not an error: defaults are returned with info.Found=false.
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			config.applyEnvOverrides()
			return config, info, nil
		}
		return nil, info, err
	}
	info.Found = true

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, fmt.Errorf("%w: %s: %v", ErrConfigMalformed, path, err)
	}

	config.applyEnvOverrides()
	return config, info, nil
}

// LoadConfig loads configuration, see LoadConfigWithInfo.
func LoadConfig(path string) (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo(path)
	return config, err
}

// SaveConfig writes config to path as TOML.
func SaveConfig(config *AppConfig, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *AppConfig) applyEnvOverrides() {
	if v := os.Getenv("NAPSYNC_WORKBOOK"); v != "" {
		c.Data.Workbook = v
	}
	if v := os.Getenv("NAPSYNC_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("NAPSYNC_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
}

// EnsureOutputDirs creates the artifact directories.
func EnsureOutputDirs(config *AppConfig) error {
	for _, dir := range []string{config.Output.NapsDir, config.Output.ReleaseDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
