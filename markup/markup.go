// Package markup parses article sources into converter node trees.
package markup

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/accu-org/accu-website/converter"
)

// Dialect names an input markup language.
type Dialect string

const (
	DialectHTML     Dialect = "html"
	DialectXML      Dialect = "xml"
	DialectMarkdown Dialect = "markdown"
)

var (
	// ErrUnknownDialect is returned for dialect names and file extensions
	// that no parser handles.
	ErrUnknownDialect = errors.New("unknown markup dialect")
	// ErrMalformed wraps parser failures.
	ErrMalformed = errors.New("malformed markup")
)

// ParseDialect maps a dialect name to a Dialect. "md" and "htm" are accepted
// as aliases.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "html", "htm", "xhtml":
		return DialectHTML, nil
	case "xml":
		return DialectXML, nil
	case "markdown", "md":
		return DialectMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

// DialectFromPath picks the dialect from a file extension.
func DialectFromPath(path string) (Dialect, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownDialect, path)
	}
	dialect, err := ParseDialect(ext)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownDialect, path)
	}
	return dialect, nil
}

// Parse reads r in the given dialect.
func Parse(r io.Reader, dialect Dialect) (*converter.Node, error) {
	switch dialect {
	case DialectHTML:
		return ParseHTML(r)
	case DialectXML:
		return ParseXML(r)
	case DialectMarkdown:
		src, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read markdown: %w", err)
		}
		return ParseMarkdown(src), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
}

// newElement builds an element node, splitting the class attribute into Classes.
func newElement(name string, attrs map[string]string) *converter.Node {
	node := converter.Element(strings.ToLower(name), attrs)
	if class, ok := attrs["class"]; ok {
		node.Classes = strings.Fields(class)
	}
	return node
}
