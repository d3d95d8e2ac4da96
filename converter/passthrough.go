package converter

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// unwrappedElements are replaced by their children in passthrough output.
var unwrappedElements = map[string]bool{
	"xml":  true,
	"html": true,
	"body": true,
}

// droppedElements never reach the output in either format.
var droppedElements = map[string]bool{
	"head":   true,
	"script": true,
	"style":  true,
}

// renderPassthrough re-serializes the tree as HTML inside an AsciiDoc
// passthrough block. Header fields are still captured and image sources are
// still planned.
func (s *state) renderPassthrough(root *Node) (string, error) {
	nodes, err := s.toHTML(root)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}

	content := strings.TrimSpace(buf.String())
	if content == "" {
		return "", nil
	}
	return "++++\n" + content + "\n++++\n", nil
}

// toHTML converts node to zero or more html nodes.
func (s *state) toHTML(node *Node) ([]*html.Node, error) {
	switch node.Kind {
	case DocumentNode:
		return s.childrenToHTML(node)
	case TextNode:
		return []*html.Node{{Type: html.TextNode, Data: node.Text}}, nil
	case IgnorableNode:
		return nil, nil
	}

	switch {
	case unwrappedElements[node.Name]:
		return s.childrenToHTML(node)
	case droppedElements[node.Name]:
		s.addWarning(WarningDroppedElement, node.Name, fmt.Sprintf("<%s> dropped", node.Name))
		return nil, nil
	case node.Name == "h1":
		_, err := s.convertTitleHeading(node)
		return nil, err
	case node.Name == "p" && node.HasClass("Byline"):
		_, err := s.captureSummary(node)
		return nil, err
	case node.Name == "p" && node.HasClass("bio"):
		_, err := s.captureBio(node)
		return nil, err
	}

	element := &html.Node{
		Type:     html.ElementNode,
		Data:     node.Name,
		DataAtom: atom.Lookup([]byte(node.Name)),
		Attr:     htmlAttributes(node),
	}

	if node.Name == "img" {
		src, ok := node.Attr("src")
		if !ok || strings.TrimSpace(src) == "" {
			return nil, ErrImageMissingSrc
		}
		planned := s.planImage(src)
		for i := range element.Attr {
			if element.Attr[i].Key == "src" {
				element.Attr[i].Val = planned
			}
		}
	}

	children, err := s.childrenToHTML(node)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		element.AppendChild(child)
	}
	return []*html.Node{element}, nil
}

func (s *state) childrenToHTML(node *Node) ([]*html.Node, error) {
	var out []*html.Node
	for _, child := range node.Children {
		converted, err := s.toHTML(child)
		if err != nil {
			return nil, err
		}
		out = append(out, converted...)
	}
	return out, nil
}

// htmlAttributes returns the attributes of node sorted by name so output is stable.
func htmlAttributes(node *Node) []html.Attribute {
	attrs := make([]html.Attribute, 0, len(node.Attrs)+1)
	for key, value := range node.Attrs {
		attrs = append(attrs, html.Attribute{Key: key, Val: value})
	}
	if _, ok := node.Attrs["class"]; !ok && len(node.Classes) > 0 {
		attrs = append(attrs, html.Attribute{Key: "class", Val: strings.Join(node.Classes, " ")})
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Key < attrs[j].Key })
	return attrs
}
