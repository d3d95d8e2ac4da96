package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func blankAt(inList bool) item {
	return item{directive: blankLineBefore, inList: inList}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		items []item
		want  string
	}{
		{name: "empty", items: nil, want: ""},
		{name: "literals concatenate", items: []item{literal("a"), literal("b")}, want: "ab"},
		{name: "line start on empty output", items: []item{lineStart(), literal("a")}, want: "a"},
		{name: "line start adds newline", items: []item{literal("a"), lineStart(), literal("b")}, want: "a\nb"},
		{name: "line start is idempotent", items: []item{literal("a\n"), lineStart(), lineStart(), literal("b")}, want: "a\nb"},
		{name: "blank line at start", items: []item{blankAt(false), literal("a")}, want: "\na"},
		{name: "blank lines do not stack", items: []item{blankAt(false), blankAt(false), literal("a"), blankAt(false), blankAt(false), literal("b")}, want: "\na\n\nb"},
		{name: "blank line in list", items: []item{literal("* a"), blankAt(true), literal("b")}, want: "* a\n+\nb"},
		{name: "continuations do not stack", items: []item{literal("* a"), blankAt(true), blankAt(true), literal("b")}, want: "* a\n+\nb"},
		{name: "swallow strips leading space", items: []item{swallow(), literal("  a")}, want: "a"},
		{name: "swallow survives blank literal", items: []item{swallow(), literal("  "), literal("\n b")}, want: "b"},
		{name: "swallow is consumed once", items: []item{swallow(), literal(" a"), literal(" b")}, want: "a b"},
		{name: "swallow survives directives", items: []item{literal("x"), swallow(), lineStart(), literal(" y")}, want: "x\ny"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolve(tt.items))
		})
	}
}

func TestBlankLineCapturesListState(t *testing.T) {
	s := &state{tables: newTableTracker()}

	outside := s.blankLine()
	s.lists.push("*")
	inside := s.blankLine()
	s.lists.pop()

	assert.False(t, outside.inList)
	assert.True(t, inside.inList)
	assert.Equal(t, "a\n+\nb", resolve([]item{literal("a"), inside, literal("b")}))
}

func TestStripLeadingBlanks(t *testing.T) {
	items := []item{blankAt(true), lineStart(), literal(" \n"), swallow(), literal("x"), blankAt(false), literal("y")}

	got := stripLeadingBlanks(items)

	assert.Equal(t, []item{swallow(), literal("x"), blankAt(false), literal("y")}, got)
	assert.Empty(t, stripLeadingBlanks([]item{blankAt(false), literal("  ")}))
}

func TestWrap(t *testing.T) {
	got := resolve(wrap("**", []item{literal("bold")}, "**"))
	assert.Equal(t, "**bold**", got)
}
