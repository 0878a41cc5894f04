package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AllFields(t *testing.T) {
	path := writeConfig(t, `store:
  driver: postgres
  path: sales.db
  dsn: postgres://app@localhost:5432/retail
  table: sales_2023
  auth: aws
  aws_region: eu-central-1
  google_instance: proj:region:inst

input:
  csv: data/sales.csv

output:
  dir: out
  analysis_chart: a.png
  additional_chart: b.png
  workbook: c.xlsx
  dpi: 150

timeout: 10m
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "sales.db", cfg.Store.Path)
	assert.Equal(t, "postgres://app@localhost:5432/retail", cfg.Store.DSN)
	assert.Equal(t, "sales_2023", cfg.Store.Table)
	assert.Equal(t, "aws", cfg.Store.Auth)
	assert.Equal(t, "eu-central-1", cfg.Store.AWSRegion)
	assert.Equal(t, "proj:region:inst", cfg.Store.GoogleInstance)
	assert.Equal(t, "data/sales.csv", cfg.Input.CSV)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "a.png", cfg.Output.AnalysisChart)
	assert.Equal(t, "b.png", cfg.Output.AdditionalChart)
	assert.Equal(t, "c.xlsx", cfg.Output.Workbook)
	assert.Equal(t, 150, cfg.Output.DPI)
	assert.Equal(t, "10m", cfg.Timeout)
}

func TestLoad_MinimalYAML(t *testing.T) {
	path := writeConfig(t, `output:
  dpi: 72
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "", cfg.Store.Driver)
	assert.Equal(t, "", cfg.Input.CSV)
	assert.Equal(t, 72, cfg.Output.DPI)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ConfigFileName))
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{{invalid"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_UnknownKey(t *testing.T) {
	cfg, err := Load(writeConfig(t, "store:\n  drvier: sqlite\n"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, ProjectConfig{}, *cfg)
}
