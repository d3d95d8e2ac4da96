package converter

import "strings"

// NodeKind identifies the variant of a Node.
type NodeKind int

const (
	// DocumentNode is the root of a parsed tree.
	DocumentNode NodeKind = iota
	// ElementNode is a named element with attributes and children.
	ElementNode
	// TextNode carries a raw text run.
	TextNode
	// IgnorableNode covers comments, CDATA, processing instructions, declarations and doctypes.
	IgnorableNode
)

// Node represents any node in a parsed article tree.
type Node struct {
	Kind     NodeKind
	Name     string
	Attrs    map[string]string
	Classes  []string
	Text     string
	Children []*Node
}

// Document returns a root node holding children.
func Document(children ...*Node) *Node {
	return &Node{Kind: DocumentNode, Children: children}
}

// Element returns an element node. attrs may be nil.
func Element(name string, attrs map[string]string, children ...*Node) *Node {
	return &Node{Kind: ElementNode, Name: name, Attrs: attrs, Children: children}
}

// Text returns a text node.
func Text(text string) *Node {
	return &Node{Kind: TextNode, Text: text}
}

// Ignorable returns a node the converter skips.
func Ignorable() *Node {
	return &Node{Kind: IgnorableNode}
}

// Attr returns the named attribute and whether it was present.
func (n *Node) Attr(key string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	value, ok := n.Attrs[key]
	return value, ok
}

// GetStringAttr returns the named attribute or fallback when absent.
func (n *Node) GetStringAttr(key, fallback string) string {
	if value, ok := n.Attr(key); ok {
		return value
	}
	return fallback
}

// HasClass reports whether name is one of the node's class tokens.
// HTML delivers class as a whitespace separated attribute, other dialects may
// deliver it as a set in Classes; both are consulted.
func (n *Node) HasClass(name string) bool {
	if n == nil {
		return false
	}
	for _, class := range n.Classes {
		if class == name {
			return true
		}
	}
	for _, class := range strings.Fields(n.GetStringAttr("class", "")) {
		if class == name {
			return true
		}
	}
	return false
}

// AppendChild adds child as the last child of n.
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// textContent concatenates all text below n.
func (n *Node) textContent() string {
	if n == nil {
		return ""
	}
	if n.Kind == TextNode {
		return n.Text
	}
	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(child.textContent())
	}
	return sb.String()
}

// isBlankText reports whether n is a text node holding only whitespace.
func (n *Node) isBlankText() bool {
	return n.Kind == TextNode && strings.TrimSpace(n.Text) == ""
}
