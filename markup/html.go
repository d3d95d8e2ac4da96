package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/accu-org/accu-website/converter"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML parses an HTML document or fragment. Full documents (starting
// with a doctype or an html element) keep their html/head/body structure;
// fragments are parsed in a body context so no wrapper elements are added.
func ParseHTML(r io.Reader) (*converter.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}
	content := string(data)

	trimmed := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return fromHTML(doc), nil
	}

	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	root := converter.Document()
	for _, n := range nodes {
		root.AppendChild(fromHTML(n))
	}
	return root, nil
}

// fromHTML converts an x/net/html node and its subtree.
func fromHTML(n *html.Node) *converter.Node {
	var node *converter.Node
	switch n.Type {
	case html.DocumentNode:
		node = converter.Document()
	case html.ElementNode:
		attrs := make(map[string]string, len(n.Attr))
		for _, attr := range n.Attr {
			key := attr.Key
			if attr.Namespace != "" {
				key = attr.Namespace + ":" + key
			}
			attrs[key] = attr.Val
		}
		node = newElement(n.Data, attrs)
	case html.TextNode:
		return converter.Text(n.Data)
	default:
		return converter.Ignorable()
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		node.AppendChild(fromHTML(child))
	}
	return node
}
