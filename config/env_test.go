package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/config"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadFrom(filepath.Join(dir, "missing.json"), filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, config.DriverMongo, cfg.DBDriver)
	assert.Equal(t, "db", cfg.MongoDB)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.False(t, cfg.MongoTransactions)
	assert.Equal(t, time.Duration(0), cfg.DashboardCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, int64(4<<20), cfg.MaxBodyBytes)
}

func TestLoadFrom_Precedence(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{"app_port":"9000","mongo_db":"from_json","mongo_transactions":true}`)
	envPath := writeFile(t, dir, ".env", "# comment\nMONGO_DB=\"from_env\"\nPRODUCT_IMAGES_BUCKET_NAME=images\n\nDASHBOARD_CACHE_TTL=30s\n")

	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("APP_ENV", "production")

	cfg, err := config.LoadFrom(jsonPath, envPath)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, "from_env", cfg.MongoDB)
	assert.True(t, cfg.MongoTransactions)
	assert.Equal(t, "images", cfg.S3.Bucket)
	assert.Equal(t, "eu-west-1", cfg.S3.Region)
	assert.Equal(t, 30*time.Second, cfg.DashboardCacheTTL)
	assert.True(t, cfg.IsProduction())
}

func TestLoadFrom_CanonicalBeatsAlias(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AWS_ACCESS_KEY_ID", "alias")
	t.Setenv("S3_KEY", "canonical")

	cfg, err := config.LoadFrom(filepath.Join(dir, "none.json"), filepath.Join(dir, "none.env"))
	require.NoError(t, err)
	assert.Equal(t, "canonical", cfg.S3.Key)
}

func TestLoadFrom_RejectsUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "postgres")

	_, err := config.LoadFrom(filepath.Join(dir, "none.json"), filepath.Join(dir, "none.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestLoadFrom_BadJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{not json`)

	_, err := config.LoadFrom(jsonPath, filepath.Join(dir, "none.env"))
	assert.Error(t, err)
}
