package markup

import (
	"bytes"
	"strings"

	"github.com/accu-org/accu-website/converter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var markdownParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

const (
	hardBreakTag1 = "<br>"
	hardBreakTag2 = "<br/>"
	hardBreakTag3 = "<br />"
)

// markdownWalker converts a goldmark syntax tree into converter nodes.
type markdownWalker struct {
	source []byte
}

// ParseMarkdown parses GitHub flavoured Markdown. Raw HTML blocks are parsed
// as HTML fragments; inline raw HTML other than line breaks is dropped.
func ParseMarkdown(src []byte) *converter.Node {
	w := &markdownWalker{source: src}
	root := markdownParser.Parser().Parse(text.NewReader(src))

	doc := converter.Document()
	w.appendChildren(doc, root)
	return doc
}

func (w *markdownWalker) appendChildren(parent *converter.Node, node ast.Node) {
	for _, converted := range w.inline(node) {
		parent.AppendChild(converted)
	}
}

func (w *markdownWalker) element(name string, attrs map[string]string, node ast.Node) *converter.Node {
	el := newElement(name, attrs)
	w.appendChildren(el, node)
	return el
}

func (w *markdownWalker) convert(node ast.Node) []*converter.Node {
	switch typed := node.(type) {
	case *ast.Paragraph:
		return []*converter.Node{w.element("p", nil, node)}
	case *ast.TextBlock:
		// Tight list items hold their text directly.
		if _, inItem := node.Parent().(*ast.ListItem); inItem {
			return w.inline(node)
		}
		return []*converter.Node{w.element("p", nil, node)}
	case *ast.Heading:
		level := min(max(typed.Level, 1), 6)
		return []*converter.Node{w.element("h"+string(rune('0'+level)), nil, node)}
	case *ast.Blockquote:
		return []*converter.Node{w.element("blockquote", nil, node)}
	case *ast.ThematicBreak:
		return []*converter.Node{converter.Element("hr", nil)}
	case *ast.FencedCodeBlock:
		var attrs map[string]string
		if language := strings.TrimSpace(string(typed.Language(w.source))); language != "" {
			attrs = map[string]string{"class": "language-" + language}
		}
		code := newElement("code", attrs)
		code.AppendChild(converter.Text(w.blockText(node)))
		return []*converter.Node{converter.Element("pre", nil, code)}
	case *ast.CodeBlock:
		return []*converter.Node{converter.Element("pre", nil, converter.Text(w.blockText(node)))}
	case *ast.List:
		name := "ul"
		if typed.IsOrdered() {
			name = "ol"
		}
		return []*converter.Node{w.element(name, nil, node)}
	case *ast.ListItem:
		return []*converter.Node{w.element("li", nil, node)}
	case *ast.HTMLBlock:
		return w.htmlBlock(typed)

	case *extast.Table:
		return []*converter.Node{w.table(typed)}

	case *ast.Text:
		var out []*converter.Node
		if value := string(typed.Value(w.source)); value != "" {
			out = append(out, converter.Text(value))
		}
		if typed.HardLineBreak() {
			out = append(out, converter.Element("br", nil))
		} else if typed.SoftLineBreak() {
			out = append(out, converter.Text("\n"))
		}
		return out
	case *ast.String:
		return []*converter.Node{converter.Text(string(typed.Value))}
	case *ast.Emphasis:
		name := "em"
		if typed.Level >= 2 {
			name = "strong"
		}
		return []*converter.Node{w.element(name, nil, node)}
	case *extast.Strikethrough:
		return []*converter.Node{w.element("del", nil, node)}
	case *ast.CodeSpan:
		return []*converter.Node{w.element("code", nil, node)}
	case *ast.Link:
		return []*converter.Node{w.element("a", map[string]string{"href": strings.TrimSpace(string(typed.Destination))}, node)}
	case *ast.AutoLink:
		href := string(typed.URL(w.source))
		return []*converter.Node{converter.Element("a", map[string]string{"href": href}, converter.Text(string(typed.Label(w.source))))}
	case *ast.Image:
		attrs := map[string]string{"src": strings.TrimSpace(string(typed.Destination))}
		if title := strings.TrimSpace(string(typed.Title)); title != "" {
			attrs["title"] = title
		}
		return []*converter.Node{converter.Element("img", attrs)}
	case *extast.TaskCheckBox:
		if typed.IsChecked {
			return []*converter.Node{converter.Text("☑ ")}
		}
		return []*converter.Node{converter.Text("☐ ")}
	case *ast.RawHTML:
		return w.rawHTML(typed)
	}

	if node.HasChildren() {
		return w.inline(node)
	}
	return []*converter.Node{converter.Ignorable()}
}

// inline converts the children of node without a wrapping element.
func (w *markdownWalker) inline(node ast.Node) []*converter.Node {
	var out []*converter.Node
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, w.convert(child)...)
	}
	return out
}

// table converts a GFM table. goldmark puts header cells directly below the
// header node; they are wrapped in a row here.
func (w *markdownWalker) table(node *extast.Table) *converter.Node {
	table := converter.Element("table", nil)
	body := converter.Element("tbody", nil)

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *extast.TableHeader:
			row := converter.Element("tr", nil)
			for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
				row.AppendChild(w.element("th", nil, cell))
			}
			table.AppendChild(converter.Element("thead", nil, row))
		case *extast.TableRow:
			row := converter.Element("tr", nil)
			for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
				row.AppendChild(w.element("td", nil, cell))
			}
			body.AppendChild(row)
		}
	}

	if len(body.Children) > 0 {
		table.AppendChild(body)
	}
	return table
}

func (w *markdownWalker) htmlBlock(node *ast.HTMLBlock) []*converter.Node {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(w.source))
	}
	if node.HasClosure() {
		buf.Write(node.ClosureLine.Value(w.source))
	}

	fragment, err := ParseHTML(&buf)
	if err != nil {
		return []*converter.Node{converter.Ignorable()}
	}

	// Block boundaries already separate the surrounding content.
	var out []*converter.Node
	for _, child := range fragment.Children {
		if child.Kind == converter.TextNode && strings.TrimSpace(child.Text) == "" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func (w *markdownWalker) rawHTML(node *ast.RawHTML) []*converter.Node {
	var buf bytes.Buffer
	for i := 0; i < node.Segments.Len(); i++ {
		segment := node.Segments.At(i)
		buf.Write(segment.Value(w.source))
	}

	switch strings.ToLower(strings.TrimSpace(buf.String())) {
	case hardBreakTag1, hardBreakTag2, hardBreakTag3:
		return []*converter.Node{converter.Element("br", nil)}
	}
	return []*converter.Node{converter.Ignorable()}
}

func (w *markdownWalker) blockText(node ast.Node) string {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(w.source))
	}
	return strings.TrimRight(buf.String(), "\n")
}
