package converter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultJSONSerialization(t *testing.T) {
	in := Result{
		AsciiDoc: "= T\n",
		Body:     "\nhello\n",
		Title:    "T",
		Renames:  []Rename{{Original: "content/images/journals/a.png", New: "t_1.png"}},
		Warnings: []Warning{
			{Type: WarningDroppedElement, NodeType: "script", Message: "<script> dropped"},
		},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"renames":[{"original":"content/images/journals/a.png","new":"t_1.png"}]`)

	var out Result
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
