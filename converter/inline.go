package converter

import (
	"regexp"
	"strings"
)

// bibliographyIndexPattern matches the "[n] " index that starts a bibliography entry.
var bibliographyIndexPattern = regexp.MustCompile(`^\s*\[.+?\]\s*`)

// asciidocSpecialChars are escaped with an inline passthrough outside preformatted text.
const asciidocSpecialChars = "[+`_^~*"

// convertText converts a text run.
func (s *state) convertText(node *Node) []item {
	text := strings.ReplaceAll(node.Text, "\r", "")

	// Only the first text run of a bibliography entry carries the index.
	if s.inBibliographyReference && strings.TrimSpace(text) != "" {
		text = bibliographyIndexPattern.ReplaceAllString(text, "")
		s.inBibliographyReference = false
	}

	if text == "" {
		return nil
	}
	if s.inPreformatted {
		return []item{literal(text)}
	}

	text = strings.ReplaceAll(text, "\n", " ")
	return []item{literal(escapeText(text))}
}

// escapeText escapes AsciiDoc markup characters and replaces C++ with the {cpp} attribute.
func escapeText(text string) string {
	parts := strings.Split(text, "C++")
	for i, part := range parts {
		parts[i] = escapeSpecialChars(part)
	}
	return strings.Join(parts, "{cpp}")
}

func escapeSpecialChars(text string) string {
	if !strings.ContainsAny(text, asciidocSpecialChars) {
		return text
	}

	var sb strings.Builder
	for _, r := range text {
		if strings.ContainsRune(asciidocSpecialChars, r) {
			sb.WriteString("pass:[")
			sb.WriteRune(r)
			sb.WriteString("]")
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// convertHardBreak converts a line break to an AsciiDoc hard line break.
func (s *state) convertHardBreak() []item {
	if s.inPreformatted {
		return []item{literal("\n")}
	}
	return []item{literal(" +\n"), swallow()}
}
