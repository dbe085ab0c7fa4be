package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activeAlerts/internal/apperrors"
)

func writeSettings(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const validJSON = `{
  "config": {
    "url": "https://dashboard.example.com",
    "user_name": "operator",
    "password": "s3cret",
    "output_path_format": "./out/{}.txt"
  }
}`

func TestLoadSettings_JSON(t *testing.T) {
	path := writeSettings(t, "config.json", validJSON)

	c, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "https://dashboard.example.com", c.URL)
	assert.Equal(t, "operator", c.UserName)
	assert.Equal(t, "s3cret", c.Password)
	assert.Equal(t, "./out/{}.txt", c.OutputPathFormat)
}

func TestLoadSettings_YAML(t *testing.T) {
	path := writeSettings(t, "config.yaml", `
config:
  url: https://dashboard.example.com
  user_name: operator
  password: s3cret
  output_path_format: /tmp/alerts/{}.csv
`)

	c, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/alerts/{}.csv", c.OutputPathFormat)
}

func TestLoadSettings_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{
			name:     "no section",
			body:     `{"other": {}}`,
			contains: `нет секции "config"`,
		},
		{
			name:     "missing fields",
			body:     `{"config": {"url": "https://x"}}`,
			contains: "user_name, password, output_path_format",
		},
		{
			name:     "no placeholder",
			body:     `{"config": {"url": "u", "user_name": "n", "password": "p", "output_path_format": "./out.txt"}}`,
			contains: "{}",
		},
		{
			name:     "broken file",
			body:     `{"config": [`,
			contains: "не удалось разобрать",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSettings(t, "config.json", tt.body)
			_, err := LoadSettings(path)
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindConfig))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConfig))
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeSettings(t, "config.json", validJSON)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("WAIT_TIMEOUT", "3s")
	t.Setenv("LOGIN_SETTLE", "2")
	t.Setenv("PAGE_SETTLE", "garbage")
	t.Setenv("PW_HEADLESS", "yes")
	t.Setenv("DB_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Timing.WaitTimeout)
	assert.Equal(t, 2*time.Second, cfg.Timing.LoginSettle)
	assert.Equal(t, 5*time.Second, cfg.Timing.PageSettle)
	assert.Equal(t, 5*time.Second, cfg.Timing.OpenSettle)
	assert.True(t, cfg.Browser.Headless)
	assert.False(t, cfg.Database.Enabled())
}

func TestDatabase_ConnectionStrings(t *testing.T) {
	db := Database{Host: "db", Port: "5432", Name: "alerts", User: "u", Password: "p"}
	assert.True(t, db.Enabled())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=alerts sslmode=disable", db.DSN())
	assert.Equal(t, "postgres://u:p@db:5432/alerts?sslmode=disable", db.URL())
}
