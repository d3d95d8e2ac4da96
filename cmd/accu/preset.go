package main

import (
	"fmt"
	"strings"

	"github.com/accu-org/accu-website/converter"
)

const (
	presetLegacy = "legacy"
	presetModern = "modern"
	presetHTML   = "html"
	presetStrict = "strict"
)

// presetConfig returns the converter settings of a named preset. legacy
// reproduces the output of the old conversion scripts.
func presetConfig(preset string) (converter.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetLegacy:
		return converter.Config{}, nil
	case presetModern:
		return converter.Config{
			SimplifyTables:       true,
			DetectSourceLanguage: true,
			IncludeBio:           true,
		}, nil
	case presetHTML:
		return converter.Config{
			Format:     converter.FormatHTML,
			IncludeBio: true,
		}, nil
	case presetStrict:
		return converter.Config{
			SimplifyTables:       true,
			DetectSourceLanguage: true,
			IncludeBio:           true,
			ResolutionMode:       converter.ResolutionStrict,
		}, nil
	default:
		return converter.Config{}, fmt.Errorf("unknown preset %q (allowed: legacy, modern, html, strict)", preset)
	}
}

// convertOptions are the convert command settings after flag and config
// file resolution.
type convertOptions struct {
	Preset         string
	Dialect        string
	Title          string
	Author         string
	Summary        string
	Bio            bool
	ImagesDir      string
	Format         string
	SimplifyTables bool
	DetectLanguage bool
	Strict         bool
	OutDir         string
	CopyImagesFrom string
	Workers        int
}

// resolveConfig applies explicit options on top of the preset.
func resolveConfig(opts convertOptions) (converter.Config, error) {
	cfg, err := presetConfig(opts.Preset)
	if err != nil {
		return converter.Config{}, err
	}

	cfg.Title = opts.Title
	cfg.Author = opts.Author
	cfg.Summary = opts.Summary
	if opts.ImagesDir != "" {
		cfg.ImageDirectory = opts.ImagesDir
	}
	if opts.Format != "" {
		cfg.Format = converter.OutputFormat(strings.ToLower(opts.Format))
	}
	if opts.Bio {
		cfg.IncludeBio = true
	}
	if opts.SimplifyTables {
		cfg.SimplifyTables = true
	}
	if opts.DetectLanguage {
		cfg.DetectSourceLanguage = true
	}
	if opts.Strict {
		cfg.ResolutionMode = converter.ResolutionStrict
	}

	return cfg, nil
}
