package converter

import (
	"fmt"
	"path"
	"strings"
)

// OutputFormat controls how the article body is rendered.
type OutputFormat string

const (
	// FormatAsciiDoc converts the tree to AsciiDoc markup.
	FormatAsciiDoc OutputFormat = "adoc"
	// FormatHTML keeps the body as raw HTML inside an AsciiDoc passthrough block.
	FormatHTML OutputFormat = "html"
)

const (
	defaultImageDirectory    = ".."
	defaultSiteRoot          = "https://accu.org"
	defaultContentImagesRoot = "content/images/journals"
)

// Config holds all converter configuration options.
type Config struct {
	// Title, Author and Summary override values captured from the document.
	Title   string `json:"title,omitempty"`
	Author  string `json:"author,omitempty"`
	Summary string `json:"summary,omitempty"`

	// IncludeBio appends the captured author bio to the document.
	IncludeBio bool `json:"includeBio,omitempty"`

	// ImageDirectory is written to the :imagesdir: document attribute.
	ImageDirectory string `json:"imageDirectory,omitempty"`

	Format OutputFormat `json:"format,omitempty"`

	// SiteRoot is stripped from absolute image sources.
	SiteRoot string `json:"siteRoot,omitempty"`
	// ContentImagesRoot is the site-relative directory whose images get renamed.
	ContentImagesRoot string `json:"contentImagesRoot,omitempty"`
	// ImageStem names renamed images when the article has no title.
	ImageStem string `json:"imageStem,omitempty"`

	// SimplifyTables renders single-listing and single-image tables as titled blocks.
	SimplifyTables bool `json:"simplifyTables,omitempty"`
	// DetectSourceLanguage adds a language to [source] blocks when one can be guessed.
	DetectSourceLanguage bool `json:"detectSourceLanguage,omitempty"`

	// LinkHook rewrites regular link targets, e.g. legacy site links.
	LinkHook       LinkHook       `json:"-"`
	ResolutionMode ResolutionMode `json:"resolutionMode,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.ImageDirectory == "" {
		c.ImageDirectory = defaultImageDirectory
	}
	if c.Format == "" {
		c.Format = FormatAsciiDoc
	}
	if c.SiteRoot == "" {
		c.SiteRoot = defaultSiteRoot
	}
	if c.ContentImagesRoot == "" {
		c.ContentImagesRoot = defaultContentImagesRoot
	}
	if c.ResolutionMode == "" {
		c.ResolutionMode = ResolutionBestEffort
	}
	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.Format != FormatAsciiDoc && c.Format != FormatHTML {
		return fmt.Errorf("%w: format %q", ErrInvalidConfig, c.Format)
	}
	if c.ResolutionMode != ResolutionBestEffort && c.ResolutionMode != ResolutionStrict {
		return fmt.Errorf("%w: resolutionMode %q", ErrInvalidConfig, c.ResolutionMode)
	}
	if strings.ContainsAny(c.Title, "\n\r") {
		return fmt.Errorf("%w: title must be a single line", ErrInvalidConfig)
	}
	if strings.ContainsAny(c.Author, "\n\r") {
		return fmt.Errorf("%w: author must be a single line", ErrInvalidConfig)
	}
	if strings.ContainsAny(c.ImageDirectory, "\n\r") {
		return fmt.Errorf("%w: imageDirectory must be a single line", ErrInvalidConfig)
	}
	if c.SiteRoot != "" && !strings.Contains(c.SiteRoot, "://") {
		return fmt.Errorf("%w: siteRoot %q must be an absolute URL", ErrInvalidConfig, c.SiteRoot)
	}
	if root := strings.Trim(c.ContentImagesRoot, "/"); root != "" && path.Clean(root) != root {
		return fmt.Errorf("%w: contentImagesRoot %q must be a clean path", ErrInvalidConfig, c.ContentImagesRoot)
	}
	return nil
}
