package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	require.NoError(t, LoadConfig(""))
	cfg := Config()
	assert.Equal(t, "8200", cfg.ServerPort)
	assert.Equal(t, "mediacatalog", cfg.DB.DBName)
	assert.Equal(t, 100, cfg.Import.BatchSize)
	assert.Equal(t, 30*time.Minute, cfg.TokenValidity())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
server_port = "9000"
handle_cors = false

[db]
host = "db.internal"
port = 5433
user = "catalog"
password = "secret"
dbname = "catalog_test"
sslmode = "require"

[auth]
token_secret = "0123456789abcdef0123456789abcdef"
token_validity = "2h"

[import]
batch_size = 250
default_csv_path = "/data/catalog.csv"
`)
	require.NoError(t, LoadConfig(path))
	t.Cleanup(func() { require.NoError(t, LoadConfig("")) })

	cfg := Config()
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.False(t, cfg.HandleCORS)
	assert.Equal(t, 2*time.Hour, cfg.TokenValidity())
	assert.Equal(t, 250, cfg.Import.BatchSize)
	assert.Equal(t,
		"host=db.internal port=5433 user=catalog password=secret dbname=catalog_test sslmode=require",
		cfg.DB.DSN())
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server_port = "9000"

[auth]
token_secret = "0123456789abcdef0123456789abcdef"
`)
	require.NoError(t, LoadConfig(path))
	t.Cleanup(func() { require.NoError(t, LoadConfig("")) })

	cfg := Config()
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "mediacatalog", cfg.DB.DBName)
	assert.Equal(t, 100, cfg.Import.BatchSize)
}

func TestLoadConfigRejectsShortSecret(t *testing.T) {
	path := writeConfigFile(t, `
[auth]
token_secret = "too-short"
`)
	assert.Error(t, LoadConfig(path))
}

func TestLoadConfigRejectsBadValidity(t *testing.T) {
	path := writeConfigFile(t, `
[auth]
token_secret = "0123456789abcdef0123456789abcdef"
token_validity = "soon"
`)
	assert.Error(t, LoadConfig(path))
}

func TestLoadConfigRejectsBadBatchSize(t *testing.T) {
	path := writeConfigFile(t, `
[auth]
token_secret = "0123456789abcdef0123456789abcdef"

[import]
batch_size = 0
`)
	assert.Error(t, LoadConfig(path))
}

func TestLoadConfigMissingFile(t *testing.T) {
	assert.Error(t, LoadConfig("/no/such/config.toml"))
}
