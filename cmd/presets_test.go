package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePresets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetPreset_Found(t *testing.T) {
	path := writePresets(t, `
version: "1"
presets:
  blocked:
    title: "blocked demo"
    variant: blocked-1-level
    m: 8
    n: 8
    k: 8
    block1: 4
`)
	p, err := GetPreset(path, "blocked")
	require.NoError(t, err)
	assert.Equal(t, Preset{
		Title:   "blocked demo",
		Variant: "blocked-1-level",
		M:       8,
		N:       8,
		K:       8,
		Block1:  4,
	}, p)
}

func TestGetPreset_UnknownName(t *testing.T) {
	path := writePresets(t, `
version: "1"
presets:
  naive:
    variant: naive
`)
	_, err := GetPreset(path, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `preset "missing" not found`)
}

func TestGetPreset_MissingFile(t *testing.T) {
	_, err := GetPreset(filepath.Join(t.TempDir(), "nope.yaml"), "naive")
	assert.Error(t, err)
}

func TestLoadPresets_RejectsUnknownFields(t *testing.T) {
	path := writePresets(t, `
version: "1"
presets:
  naive:
    varaint: naive
`)
	_, err := loadPresets(path)
	assert.Error(t, err)
}

func TestShippedPresetsParse(t *testing.T) {
	cfg, err := loadPresets(filepath.Join("..", "presets.yaml"))
	require.NoError(t, err)
	assert.Contains(t, cfg.Presets, "naive")
	assert.Contains(t, cfg.Presets, "transposed")
	assert.Contains(t, cfg.Presets, "blocked")
	assert.Contains(t, cfg.Presets, "blocked-two-level")

	for name, p := range cfg.Presets {
		assert.NotEmpty(t, p.Variant, "preset %s", name)
	}
}
