package converter

import (
	"strings"
	"unicode"
)

// directive is a formatting instruction resolved against already emitted text.
type directive int

const (
	noDirective directive = iota
	// toLineStart ensures the next output starts at the beginning of a line.
	toLineStart
	// blankLineBefore separates a block from what precedes it: a blank line
	// at top level, a "+" continuation line inside a list.
	blankLineBefore
	// swallowLeadingSpace drops leading whitespace from the next non-blank literal.
	swallowLeadingSpace
)

// item is one unit of handler output: literal text or a directive.
type item struct {
	literal   string
	directive directive
	// inList records whether a list was open when a blankLineBefore was produced.
	inList bool
}

func literal(s string) item {
	return item{literal: s}
}

func lineStart() item {
	return item{directive: toLineStart}
}

func swallow() item {
	return item{directive: swallowLeadingSpace}
}

// blankLine returns a blankLineBefore directive bound to the current list state.
func (s *state) blankLine() item {
	return item{directive: blankLineBefore, inList: s.lists.open()}
}

func (it item) isDirective(d directive) bool {
	return it.directive == d
}

func (it item) isBlankLiteral() bool {
	return it.directive == noDirective && strings.TrimSpace(it.literal) == ""
}

// linearizer folds an item sequence into text in a single left-to-right pass.
type linearizer struct {
	sb      strings.Builder
	swallow bool
}

// resolve linearizes items into final text.
func resolve(items []item) string {
	var l linearizer
	l.write(items)
	return l.sb.String()
}

func (l *linearizer) write(items []item) {
	for _, it := range items {
		switch it.directive {
		case toLineStart:
			l.lineStart()
		case blankLineBefore:
			l.blankLine(it.inList)
		case swallowLeadingSpace:
			l.swallow = true
		default:
			l.literal(it.literal)
		}
	}
}

func (l *linearizer) literal(s string) {
	if l.swallow {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if s == "" {
			return
		}
		l.swallow = false
	}
	l.sb.WriteString(s)
}

func (l *linearizer) lineStart() {
	if l.sb.Len() == 0 || strings.HasSuffix(l.sb.String(), "\n") {
		return
	}
	l.sb.WriteString("\n")
}

func (l *linearizer) blankLine(inList bool) {
	l.lineStart()
	out := l.sb.String()
	if inList {
		if !strings.HasSuffix(out, "+\n") {
			l.sb.WriteString("+\n")
		}
		return
	}
	if out == "\n" || strings.HasSuffix(out, "\n\n") {
		return
	}
	l.sb.WriteString("\n")
}

// stripLeadingBlanks drops leading block separators and whitespace-only text so
// that content can follow a marker such as a list bullet on the same line.
// Swallow directives are kept.
func stripLeadingBlanks(items []item) []item {
	var kept []item
	for i, it := range items {
		switch {
		case it.isDirective(swallowLeadingSpace):
			kept = append(kept, it)
		case it.isDirective(blankLineBefore), it.isDirective(toLineStart), it.isBlankLiteral():
		default:
			return append(kept, items[i:]...)
		}
	}
	return kept
}

// wrap surrounds inner with literal open and close markers.
func wrap(open string, inner []item, close string) []item {
	out := make([]item, 0, len(inner)+2)
	out = append(out, literal(open))
	out = append(out, inner...)
	return append(out, literal(close))
}
