package main

import (
	"testing"

	"github.com/accu-org/accu-website/converter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetConfig(t *testing.T) {
	t.Run("legacy", func(t *testing.T) {
		cfg, err := presetConfig(presetLegacy)
		require.NoError(t, err)
		assert.Equal(t, converter.Config{}, cfg)
	})

	t.Run("empty defaults to legacy", func(t *testing.T) {
		cfg, err := presetConfig("")
		require.NoError(t, err)
		assert.Equal(t, converter.Config{}, cfg)
	})

	t.Run("modern", func(t *testing.T) {
		cfg, err := presetConfig(presetModern)
		require.NoError(t, err)
		assert.True(t, cfg.SimplifyTables)
		assert.True(t, cfg.DetectSourceLanguage)
		assert.True(t, cfg.IncludeBio)
		assert.Empty(t, cfg.ResolutionMode)
	})

	t.Run("html", func(t *testing.T) {
		cfg, err := presetConfig(" HTML ")
		require.NoError(t, err)
		assert.Equal(t, converter.FormatHTML, cfg.Format)
	})

	t.Run("strict", func(t *testing.T) {
		cfg, err := presetConfig(presetStrict)
		require.NoError(t, err)
		assert.Equal(t, converter.ResolutionStrict, cfg.ResolutionMode)
	})
}

func TestPresetConfigInvalid(t *testing.T) {
	_, err := presetConfig("unknown")
	require.Error(t, err)
	assert.Equal(t, `unknown preset "unknown" (allowed: legacy, modern, html, strict)`, err.Error())
}

func TestResolveConfigOverridesPreset(t *testing.T) {
	cfg, err := resolveConfig(convertOptions{
		Preset:    presetHTML,
		Title:     "T",
		Author:    "A",
		Summary:   "S",
		ImagesDir: "images",
		Format:    "ADOC",
		Strict:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "T", cfg.Title)
	assert.Equal(t, "A", cfg.Author)
	assert.Equal(t, "S", cfg.Summary)
	assert.Equal(t, "images", cfg.ImageDirectory)
	assert.Equal(t, converter.FormatAsciiDoc, cfg.Format)
	assert.True(t, cfg.IncludeBio)
	assert.Equal(t, converter.ResolutionStrict, cfg.ResolutionMode)
}

func TestResolveConfigFlagsOnlyEnable(t *testing.T) {
	cfg, err := resolveConfig(convertOptions{Preset: presetModern})
	require.NoError(t, err)
	assert.True(t, cfg.SimplifyTables)
	assert.True(t, cfg.DetectSourceLanguage)

	cfg, err = resolveConfig(convertOptions{SimplifyTables: true, DetectLanguage: true, Bio: true})
	require.NoError(t, err)
	assert.True(t, cfg.SimplifyTables)
	assert.True(t, cfg.DetectSourceLanguage)
	assert.True(t, cfg.IncludeBio)
}

func TestResolveConfigInvalidPreset(t *testing.T) {
	_, err := resolveConfig(convertOptions{Preset: "pandoc"})
	require.Error(t, err)
}
