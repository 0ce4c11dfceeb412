package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port    int    `json:"port"`
	DbFile  string `json:"db_file"`
	ApiKey  string `json:"api_key"`
	Verbose bool   `json:"verbose"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
	// comments are allowed
	port: 8080,
	db_file: "data/words.db",
}`), 0o644))

	config, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, 8080, config.Port)
	require.Equal(t, "data/words.db", config.DbFile)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{port: 8080, db_file: "data/words.db"}`), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.local.json5"),
		[]byte(`{port: 9090, api_key: "local-secret"}`),
		0o644,
	))

	config, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, 9090, config.Port)
	require.Equal(t, "data/words.db", config.DbFile)
	require.Equal(t, "local-secret", config.ApiKey)
}

func TestReadConfigLocalOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.local.json5"),
		[]byte(`{port: 9090}`),
		0o644,
	))

	config, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, 9090, config.Port)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
