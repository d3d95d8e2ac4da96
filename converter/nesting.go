package converter

import (
	"fmt"
	"strings"
)

// listStack tracks open lists. Each entry is the full item prefix for that
// depth: "*", "**", ... for unordered lists and ".", "..", ... for ordered ones.
type listStack struct {
	prefixes []string
}

func (l *listStack) push(marker string) {
	l.prefixes = append(l.prefixes, strings.Repeat(marker, len(l.prefixes)+1))
}

func (l *listStack) pop() {
	if len(l.prefixes) > 0 {
		l.prefixes = l.prefixes[:len(l.prefixes)-1]
	}
}

func (l *listStack) depth() int {
	return len(l.prefixes)
}

func (l *listStack) open() bool {
	return len(l.prefixes) > 0
}

// prefix returns the prefix of the innermost open list.
func (l *listStack) prefix() (string, bool) {
	if len(l.prefixes) == 0 {
		return "", false
	}
	return l.prefixes[len(l.prefixes)-1], true
}

// stash detaches the current stack, leaving an empty one, and returns a
// function restoring it.
func (l *listStack) stash() func() {
	saved := l.prefixes
	l.prefixes = nil
	return func() { l.prefixes = saved }
}

// tableDelimiters holds the cell and block delimiters for one nesting depth.
type tableDelimiters struct {
	cell  string
	open  string
	close string
}

// tableLevels is indexed by table depth. AsciiDoc supports one level of
// nested tables, which must use a different cell separator.
var tableLevels = []tableDelimiters{
	{cell: "¦", open: "[separator=¦]\n|===\n", close: "|===\n"},
	{cell: "!", open: "!===\n", close: "!===\n"},
}

// tableTracker tracks how deeply tables are nested. Depth is -1 outside any table.
type tableTracker struct {
	depth int
}

func newTableTracker() tableTracker {
	return tableTracker{depth: -1}
}

// enter moves one level deeper and returns the delimiters for the new level.
func (t *tableTracker) enter() (tableDelimiters, error) {
	t.depth++
	if t.depth >= len(tableLevels) {
		depth := t.depth
		t.depth--
		return tableDelimiters{}, fmt.Errorf("%w: depth %d (max %d)", ErrTableNestingTooDeep, depth+1, len(tableLevels))
	}
	return tableLevels[t.depth], nil
}

func (t *tableTracker) exit() {
	if t.depth >= 0 {
		t.depth--
	}
}

// current returns the delimiters of the innermost open table.
func (t *tableTracker) current() (tableDelimiters, bool) {
	if t.depth < 0 {
		return tableDelimiters{}, false
	}
	return tableLevels[t.depth], true
}
