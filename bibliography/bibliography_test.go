package bibliography

import (
	"strings"
	"testing"

	"github.com/accu-org/accu-website/article"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `% CVu 31.5 bibliography
@Article{cvu3105a,
  Title = {Code Critique Competition 121},
  Author = "Roger Orr",
  Journal = C Vu,
  Volume = 31,
  Number = 5,
  Year = 2019,
  Month = November,
  Pages = 28-31,
  Abstract = {Set and collated by Roger Orr.},
  Keywords = {code critique},
}

# second record
@ARTICLE{ol154b
  TITLE = Afterwood
  year = 2019
}
`

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, article.Metadata{
		ID:      "cvu3105a",
		Title:   "Code Critique Competition 121",
		Author:  "Roger Orr",
		Journal: "CVu",
		Volume:  "31",
		Issue:   "5",
		Year:    "2019",
		Month:   "Nov",
		Pages:   "28-31",
		Summary: "Set and collated by Roger Orr.",
		Path:    "journal/cvu/2019/nov/code_critique_competition_121.adoc",
		Extra:   map[string]string{"keywords": "code critique"},
	}, records[0])

	assert.Equal(t, article.Metadata{ID: "ol154b", Title: "Afterwood", Year: "2019"}, records[1])
}

func TestParseEmpty(t *testing.T) {
	records, err := Parse(strings.NewReader("\n% nothing here\n\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseIDField(t *testing.T) {
	records, err := Parse(strings.NewReader("@Article{key\nid = 1234\n}\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1234", records[0].ID)
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{name: "unmatched close", src: "@Article{a\n}\n}\n", line: 3, msg: "unmatched closing brace"},
		{name: "nested open", src: "@Article{a\nTitle = x\n@Article{b\n}\n", line: 3, msg: "record opened inside record"},
		{name: "duplicate key", src: "@Article{a\nTitle = x\ntitle = y\n}\n", line: 3, msg: "duplicate key"},
		{name: "unterminated", src: "\n@Article{a\nTitle = x\n", line: 2, msg: "unterminated record"},
		{name: "missing equals", src: "@Article{a\nTitle x\n}\n", line: 2, msg: "missing '='"},
		{name: "outside record", src: "Title = x\n", line: 1, msg: "text outside record"},
		{name: "bad header", src: "@Article a\n", line: 1, msg: "malformed record header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.ErrorIs(t, err, ErrSyntax)

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.line, syntaxErr.Line)
			assert.Contains(t, syntaxErr.Msg, tt.msg)
			assert.Contains(t, err.Error(), "line ")
		})
	}
}

func TestCleanValue(t *testing.T) {
	tests := map[string]string{
		"plain,":      "plain",
		" {braced} ,": "braced",
		`"quoted"`:    "quoted",
		"{{double}}":  "{double}",
		"{unbalanced": "{unbalanced",
		`""`:          "",
		"a, b":        "a, b",
	}
	for in, want := range tests {
		assert.Equal(t, want, cleanValue(in), "value %q", in)
	}
}
