package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvdesk/pkg/config"
	"github.com/artem13815/cvdesk/pkg/cv"
)

func TestLoadSettingsLayers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cvdesk.yaml")
	require.NoError(t, os.WriteFile(file, []byte("database_url: postgres://file\nmax_cvs: 12\n"), 0o600))

	configFile = file
	t.Cleanup(func() { configFile = "" })

	s, err := loadSettings(viper.New(), config.Config{DatabaseURL: "postgres://env", MaxCVs: 30})
	require.NoError(t, err)
	assert.Equal(t, "postgres://file", s.DatabaseURL)
	assert.Equal(t, 12, s.MaxCVs)

	t.Setenv("CVDESK_MAX_CVS", "7")
	s, err = loadSettings(viper.New(), config.Config{})
	require.NoError(t, err)
	assert.Equal(t, 7, s.MaxCVs)
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := loadSettings(viper.New(), config.Config{DatabaseURL: "postgres://env"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://env", s.DatabaseURL)
	assert.Equal(t, cv.DefaultMaxCVs, s.MaxCVs)
}

func TestRenderers(t *testing.T) {
	out := renderStats(cv.Stats{TotalCVs: 3, ProcessedCVs: 2, TotalTags: 2, RemainingUploads: 27})
	assert.Contains(t, out, "Dashboard")
	assert.Contains(t, out, "27")

	out = renderFacets(cv.Facets{Tags: []string{"go", "java"}})
	assert.Contains(t, out, "go, java")
	assert.Contains(t, out, "-")
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCommand()
	for _, path := range [][]string{{"migrate"}, {"quota", "get"}, {"quota", "set"}, {"stats"}, {"facets"}, {"export"}, {"user", "admin"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestMigrateRejectsExtraArgs(t *testing.T) {
	root := newRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"migrate", "up", "down"})
	assert.Error(t, root.Execute())
}
