package converter

import (
	"fmt"
	"path"
	"strings"
	"unicode"
)

// Rename is one entry of the image rename plan: copy Original to New.
type Rename struct {
	Original string `json:"original"`
	New      string `json:"new"`
}

// planImage resolves an image source to the name used in the output document.
// Images under the content images root get a deterministic new name derived from
// the article title and are recorded in the rename plan; anything else is
// returned as found.
func (s *state) planImage(src string) string {
	normalized := s.normalizeImagePath(src)

	root := strings.Trim(s.config.ContentImagesRoot, "/")
	if root == "" || !strings.HasPrefix(normalized, root+"/") {
		return normalized
	}

	stem := titleSlug(s.currentTitle())
	if stem == "" {
		stem = titleSlug(s.config.ImageStem)
	}

	s.imageCounter++
	name := fmt.Sprintf("%s_%d%s", stem, s.imageCounter, path.Ext(normalized))
	s.renames = append(s.renames, Rename{Original: normalized, New: name})
	return name
}

// normalizeImagePath strips the site root and the leading slash of
// site-absolute paths so known locations compare in one canonical form.
func (s *state) normalizeImagePath(src string) string {
	src = strings.TrimSpace(src)
	for _, root := range siteRootVariants(s.config.SiteRoot) {
		if rest, ok := strings.CutPrefix(src, root); ok && (rest == "" || strings.HasPrefix(rest, "/")) {
			src = rest
			break
		}
	}

	root := strings.Trim(s.config.ContentImagesRoot, "/")
	if root != "" && strings.HasPrefix(src, "/"+root+"/") {
		return strings.TrimPrefix(src, "/")
	}
	return src
}

// siteRootVariants expands a site root into its http/https and www variants.
func siteRootVariants(siteRoot string) []string {
	siteRoot = strings.TrimRight(strings.TrimSpace(siteRoot), "/")
	if siteRoot == "" {
		return nil
	}

	host := siteRoot
	for _, scheme := range []string{"https://", "http://"} {
		host = strings.TrimPrefix(host, scheme)
	}
	bare := strings.TrimPrefix(host, "www.")

	return []string{
		"https://" + bare,
		"http://" + bare,
		"https://www." + bare,
		"http://www." + bare,
		"//" + bare,
		"//www." + bare,
	}
}

// titleSlug lower-cases title, maps whitespace to '_' and drops everything
// that is not an ASCII letter or digit.
func titleSlug(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsSpace(r):
			sb.WriteByte('_')
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// convertImage converts an img element to a block image.
func (s *state) convertImage(node *Node) ([]item, error) {
	src, ok := node.Attr("src")
	if !ok || strings.TrimSpace(src) == "" {
		return nil, ErrImageMissingSrc
	}
	return []item{lineStart(), literal("image::" + s.planImage(src) + "[]\n"), swallow()}, nil
}

// currentTitle returns the configured title, falling back to the captured one.
func (s *state) currentTitle() string {
	if s.config.Title != "" {
		return s.config.Title
	}
	return s.title
}
