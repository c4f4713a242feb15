package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: test-catalog\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test-catalog", cfg.App.Name)
	assert.Equal(t, 8000, cfg.App.Port)
	assert.Equal(t, "/api", cfg.App.BasePath)
	assert.Equal(t, "db", cfg.Search.Engine)
	assert.Equal(t, "catalog.stream.changed", cfg.Kafka.Topic("stream_changed"))
	assert.Equal(t, "streams", cfg.Elasticsearch.IndexName("streams"))
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	path := writeConfig(t, "database:\n  host: db.internal\n  port: 5432\n")
	t.Setenv("SUNE_DATABASE_HOST", "override.internal")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "override.internal", cfg.Database.Host)
	assert.Contains(t, cfg.Database.DSN(), "host=override.internal port=5432")
}

func TestLoad_RejectsUnknownSearchEngine(t *testing.T) {
	path := writeConfig(t, "search:\n  engine: solr\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported search engine")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTopicFallsBackToKey(t *testing.T) {
	k := KafkaConfig{}
	assert.Equal(t, "stream_changed", k.Topic("stream_changed"))
}

func TestResolvePath(t *testing.T) {
	t.Setenv("SUNE_CONFIG", "")
	assert.Equal(t, DefaultPath, ResolvePath(""))

	t.Setenv("SUNE_CONFIG", "/etc/sune/config.yaml")
	assert.Equal(t, "/etc/sune/config.yaml", ResolvePath(""))
	assert.Equal(t, "local.yaml", ResolvePath("local.yaml"))
}
