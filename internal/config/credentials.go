package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Credentials PostgreSQL connection parameters
type Credentials struct {
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password"`
	Host     string `json:"host"`
	Port     Port   `json:"port"`
}

type credentialsFile struct {
	PostgresSQL *Credentials `json:"PostgresSQL"`
}

// Port accepts both 5432 and "5432".
type Port int

// UnmarshalJSON implements json.Unmarshaler.
func (p *Port) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*p = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid port %q", s)
		}
		*p = Port(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = Port(n)
	return nil
}

// LoadCredentials reads the credentials JSON file. Values from .env files and the
// environment (NAPSYNC_DB_*) override the file.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var file credentialsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigMalformed, path, err)
	}
	if file.PostgresSQL == nil {
		return nil, fmt.Errorf("%w: %s: missing \"PostgresSQL\" section", ErrConfigMalformed, path)
	}

	creds := file.PostgresSQL
	loadEnvFiles()
	creds.applyEnvOverrides()

	if creds.Host == "" || creds.Database == "" {
		return nil, fmt.Errorf("%w: %s: host and database are required", ErrConfigMalformed, path)
	}
	if creds.Port == 0 {
		creds.Port = 5432
	}
	return creds, nil
}

// loadEnvFiles .env.local overrides .env; neither overrides the real environment.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func (c *Credentials) applyEnvOverrides() {
	if v := os.Getenv("NAPSYNC_DB_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("NAPSYNC_DB_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Port = Port(n)
		}
	}
	if v := os.Getenv("NAPSYNC_DB_NAME"); v != "" {
		c.Database = v
	}
	if v := os.Getenv("NAPSYNC_DB_USER"); v != "" {
		c.User = v
	}
	if v := os.Getenv("NAPSYNC_DB_PASSWORD"); v != "" {
		c.Password = v
	}
}

// DSN postgres:// URL for the pgx driver.
func (c *Credentials) DSN(connectTimeout time.Duration) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port))),
		Path:   "/" + c.Database,
	}
	if connectTimeout > 0 {
		secs := int(connectTimeout.Seconds())
		if secs < 1 {
			secs = 1
		}
		q := url.Values{}
		q.Set("connect_timeout", strconv.Itoa(secs))
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Redacted DSN without the password, for logs.
func (c *Credentials) Redacted() string {
	return fmt.Sprintf("%s@%s:%d/%s", c.User, c.Host, c.Port, c.Database)
}
