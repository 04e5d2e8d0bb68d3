package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/revelaction/annotext/annotate"
	"github.com/revelaction/annotext/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "none.yaml"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, annotate.CollapsedCCProcessed, cfg.Build.Dependencies)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
build:
  dependencies: basic
  exclude_long_mentions: true
  long_mention_threshold: 8
  overlap_metric: intersection
log:
  level: debug
  json: true
storage:
  path: /tmp/docs.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, annotate.Basic, cfg.Build.Dependencies)
	assert.True(t, cfg.Build.ExcludeLongMentions)
	assert.Equal(t, 8, cfg.Build.LongMentionThreshold)
	assert.False(t, cfg.Build.ExcludeOrdinalNER)
	assert.Equal(t, annotate.MetricIntersection, cfg.Build.OverlapMetric)
	assert.Equal(t, logging.LevelDebug, cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "/tmp/docs.db", cfg.StoragePath())

	lc := cfg.Logging()
	assert.True(t, lc.JSONFormat)
	assert.Equal(t, logging.LevelDebug, lc.Level)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "log:\n  level: warn\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, logging.LevelWarn, cfg.Log.Level)
	assert.Equal(t, annotate.DefaultOptions(), cfg.Build)
	assert.Equal(t, DefaultStoragePath, cfg.Storage.Path)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "build:\n  dependencies: basic\n")
	t.Setenv(EnvDependencies, "collapsed")
	t.Setenv(EnvLogLevel, "ERROR")
	t.Setenv(EnvStorage, "/var/corpus")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, annotate.Collapsed, cfg.Build.Dependencies)
	assert.Equal(t, logging.LevelError, cfg.Log.Level)
	assert.Equal(t, "/var/corpus", cfg.Storage.Path)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "build: [oops"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "build:\n  dependencies: enhanced\n"))
	assert.ErrorIs(t, err, annotate.ErrConfig)

	_, err = Load(writeConfig(t, "log:\n  level: loud\n"))
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "corpus.db"), expandPath("~/corpus.db"))
	assert.Equal(t, "rel/corpus.db", expandPath("rel/corpus.db"))
}
