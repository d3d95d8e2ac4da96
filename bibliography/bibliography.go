// Package bibliography reads the legacy journal bibliography format: records
// opened by "@Type{key", one "Key = value" field per line and closed by "}".
package bibliography

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/accu-org/accu-website/article"
)

// ErrSyntax is wrapped by every SyntaxError.
var ErrSyntax = errors.New("bibliography syntax error")

// SyntaxError reports a malformed line.
type SyntaxError struct {
	Line int
	Text string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

type record struct {
	line   int
	text   string
	meta   article.Metadata
	fields map[string]bool
}

// Parse reads all records from r.
func Parse(r io.Reader) ([]article.Metadata, error) {
	var (
		out     []article.Metadata
		current *record
		lineNo  int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		switch {
		case line == "" || strings.HasPrefix(line, "%") || strings.HasPrefix(line, "#"):
			continue

		case strings.HasPrefix(line, "@"):
			if current != nil {
				return nil, &SyntaxError{Line: lineNo, Text: raw, Msg: fmt.Sprintf("record opened inside record started on line %d", current.line)}
			}
			key, ok := openKey(line)
			if !ok {
				return nil, &SyntaxError{Line: lineNo, Text: raw, Msg: "malformed record header"}
			}
			current = &record{line: lineNo, text: raw, meta: article.Metadata{ID: key}, fields: map[string]bool{}}

		case line == "}":
			if current == nil {
				return nil, &SyntaxError{Line: lineNo, Text: raw, Msg: "unmatched closing brace"}
			}
			out = append(out, finish(current.meta))
			current = nil

		case current == nil:
			return nil, &SyntaxError{Line: lineNo, Text: raw, Msg: "text outside record"}

		default:
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				return nil, &SyntaxError{Line: lineNo, Text: raw, Msg: "missing '='"}
			}
			key = strings.ToLower(strings.TrimSpace(key))
			if key == "" {
				return nil, &SyntaxError{Line: lineNo, Text: raw, Msg: "missing key"}
			}
			if current.fields[key] {
				return nil, &SyntaxError{Line: lineNo, Text: raw, Msg: fmt.Sprintf("duplicate key %q", key)}
			}
			current.fields[key] = true
			set(&current.meta, key, cleanValue(value))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read bibliography: %w", err)
	}

	if current != nil {
		return nil, &SyntaxError{Line: current.line, Text: current.text, Msg: "unterminated record"}
	}
	return out, nil
}

// openKey returns the record key of a "@Type{key" header.
func openKey(line string) (string, bool) {
	kind, key, ok := strings.Cut(strings.TrimPrefix(line, "@"), "{")
	if !ok || strings.TrimSpace(kind) == "" {
		return "", false
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(key), ",")), true
}

// cleanValue drops a trailing comma and one layer of braces or quotes.
func cleanValue(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimSpace(strings.TrimSuffix(value, ","))
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '{' && last == '}') || (first == '"' && last == '"') {
			value = strings.TrimSpace(value[1 : len(value)-1])
		}
	}
	return value
}

func set(meta *article.Metadata, key, value string) {
	switch key {
	case "id":
		meta.ID = value
	case "title":
		meta.Title = value
	case "author":
		meta.Author = value
	case "journal":
		meta.Journal = article.NormalizeJournal(value)
	case "volume":
		meta.Volume = value
	case "number", "issue":
		meta.Issue = value
	case "year":
		meta.Year = value
	case "month":
		meta.Month = article.NormalizeMonth(value)
	case "pages":
		meta.Pages = value
	case "summary", "abstract":
		meta.Summary = value
	default:
		if meta.Extra == nil {
			meta.Extra = map[string]string{}
		}
		meta.Extra[key] = value
	}
}

// finish fills in the site path once journal, date and title are known.
func finish(meta article.Metadata) article.Metadata {
	if meta.Journal != "" && meta.Year != "" && meta.Title != "" {
		meta.Path = meta.SitePath()
	}
	return meta
}
