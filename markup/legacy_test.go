package markup

import (
	"strings"
	"testing"

	"github.com/accu-org/accu-website/converter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyHeader = "= Title\n:author: Author\n:figure-caption!:\n:imagesdir: ..\n\n[.lead]\nSummary\n\n"

// convertLegacy converts an XML article snippet and strips the fixed header.
func convertLegacy(t *testing.T, src string) string {
	t.Helper()

	root, err := ParseXML(strings.NewReader(src))
	require.NoError(t, err)

	conv, err := converter.New(converter.Config{Title: "Title", Author: "Author", Summary: "Summary"})
	require.NoError(t, err)

	result, err := conv.Convert(root)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(result.AsciiDoc, legacyHeader), "missing header in %q", result.AsciiDoc)

	return strings.TrimPrefix(result.AsciiDoc, legacyHeader)
}

func TestLegacyArticleConversions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "h2", src: `<h2>heading</h2>`, want: "== heading\n"},
		{name: "references", src: `<h2>References</h2>`, want: "[bibliography]\n== References\n"},
		{name: "heading after text", src: `<xml><p>Text</p><h2>heading</h2></xml>`, want: "Text\n\n== heading\n"},
		{name: "h3", src: `<h3>heading</h3>`, want: "=== heading\n"},
		{name: "h4", src: `<h4>heading</h4>`, want: "==== heading\n"},
		{name: "h5", src: `<h5>heading</h5>`, want: "===== heading\n"},
		{name: "h6", src: `<h6>heading</h6>`, want: "====== heading\n"},
		{name: "p", src: `<p>text and more</p>`, want: "text and more\n"},
		{name: "p leading space", src: `<p> space then text and more</p>`, want: "space then text and more\n"},
		{name: "two paragraphs", src: `<xml><p>text and more</p><p>and a second</p></xml>`, want: "text and more\n\nand a second\n"},
		{name: "cite", src: `<p>text <cite>and</cite> more</p>`, want: "text __and__ more\n"},
		{name: "em", src: `<p>text <em>and</em> more</p>`, want: "text __and__ more\n"},
		{name: "i", src: `<p>text <i>and</i> more</p>`, want: "text __and__ more\n"},
		{name: "u", src: `<p>text <u>and</u> more</p>`, want: "text __and__ more\n"},
		{name: "b", src: `<p>text <b>and</b> more</p>`, want: "text **and** more\n"},
		{name: "span", src: `<p>text <span>and</span> more</p>`, want: "text and more\n"},
		{name: "span with class", src: `<p>text <span class="author">author2</span> more</p>`, want: "text author2 more\n"},
		{name: "strong", src: `<p>text <strong>and</strong> more</p>`, want: "text **and** more\n"},
		{name: "cpp", src: `<p>text C++ more</p>`, want: "text {cpp} more\n"},
		{name: "link", src: `<p>text and <a href="link.html">Link</a> more</p>`, want: "text and link:link.html[Link] more\n"},
		{name: "bib anchor id", src: `<p>text and <a id="[anid]" />more</p>`, want: "text and [[[refanid,anid]]] more\n"},
		{name: "bib anchor name", src: `<p>text and <a name="[anid]" />more</p>`, want: "text and [[[refanid,anid]]] more\n"},
		{name: "anchor id", src: `<p>text and <a id="anid">anchor</a> more</p>`, want: "text and [[refanid,anid]]anchor more\n"},
		{name: "anchor name", src: `<p>text and <a name="anid">anchor</a> more</p>`, want: "text and [[refanid,anid]]anchor more\n"},
		{name: "bib reference", src: `<p>text and <a href="#[link]">Link</a> more</p>`, want: "text and <<reflink>> more\n"},
		{name: "img", src: `<img src="link.html" />`, want: "image::link.html[]\n"},
		{name: "img after text", src: `<xml>text and <img src="link.html" /></xml>`, want: "text and \nimage::link.html[]\n"},
		{name: "ol", src: `<ol><li>List 1</li><li>List 2</li></ol>`, want: ". List 1\n. List 2\n"},
		{
			name: "nested ol",
			src:  `<ol><li>One<ol><li>List 1</li></ol></li><li>Two<ol><li>List 2</li></ol></li></ol>`,
			want: ". One\n+\n.. List 1\n. Two\n+\n.. List 2\n",
		},
		{name: "ul", src: `<ul><li>List 1</li><li>List 2</li></ul>`, want: "* List 1\n* List 2\n"},
		{name: "ul after text", src: `<xml>Text <ul><li>List 1</li><li>List 2</li></ul></xml>`, want: "Text \n\n* List 1\n* List 2\n"},
		{name: "li paragraph", src: `<ul><li><p>List 1</p></li><li>List 2</li></ul>`, want: "* List 1\n* List 2\n"},
		{
			name: "li two paragraphs",
			src:  "<ul><li>\n<p>List 1</p>\n<p>List 1 cont</p></li><li>List 2</li></ul>",
			want: "* List 1 \n+\nList 1 cont\n* List 2\n",
		},
		{name: "dt dd", src: "<xml><dt>Def</dt>\n<dd>The definition</dd></xml>", want: "Def:: \nThe definition\n"},
		{name: "table", src: `<table></table>`, want: "[separator=¦]\n|===\n|===\n"},
		{name: "table in p", src: `<p><table></table></p>`, want: "[separator=¦]\n|===\n|===\n"},
		{name: "table after text", src: `<p>Text <table></table></p>`, want: "Text \n\n[separator=¦]\n|===\n|===\n"},
		{name: "table in li", src: `<ul><li><p>Text <table></table></p></li></ul>`, want: "* Text \n+\n[separator=¦]\n|===\n|===\n"},
		{name: "br", src: `<p>This is<br> a second line</p>`, want: "This is +\na second line\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertLegacy(t, tt.src))
		})
	}
}
