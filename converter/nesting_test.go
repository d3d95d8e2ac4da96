package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListStack(t *testing.T) {
	var lists listStack

	_, ok := lists.prefix()
	assert.False(t, ok)
	assert.False(t, lists.open())

	lists.push("*")
	lists.push(".")
	lists.push("*")

	prefix, ok := lists.prefix()
	require.True(t, ok)
	assert.Equal(t, "***", prefix)
	assert.Equal(t, 3, lists.depth())

	lists.pop()
	prefix, _ = lists.prefix()
	assert.Equal(t, "..", prefix)

	lists.pop()
	lists.pop()
	lists.pop()
	assert.Equal(t, 0, lists.depth())
}

func TestListStackStash(t *testing.T) {
	var lists listStack
	lists.push("*")

	restore := lists.stash()
	assert.False(t, lists.open())

	lists.push(".")
	prefix, _ := lists.prefix()
	assert.Equal(t, ".", prefix)
	lists.pop()

	restore()
	prefix, ok := lists.prefix()
	require.True(t, ok)
	assert.Equal(t, "*", prefix)
}

func TestTableTracker(t *testing.T) {
	tables := newTableTracker()

	_, ok := tables.current()
	assert.False(t, ok)

	outer, err := tables.enter()
	require.NoError(t, err)
	assert.Equal(t, "¦", outer.cell)
	assert.Equal(t, "[separator=¦]\n|===\n", outer.open)

	inner, err := tables.enter()
	require.NoError(t, err)
	assert.Equal(t, "!", inner.cell)
	assert.Equal(t, "!===\n", inner.close)

	_, err = tables.enter()
	require.ErrorIs(t, err, ErrTableNestingTooDeep)

	current, ok := tables.current()
	require.True(t, ok)
	assert.Equal(t, inner, current)

	tables.exit()
	tables.exit()
	tables.exit()
	assert.Equal(t, -1, tables.depth)
}
