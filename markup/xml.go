package markup

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/accu-org/accu-website/converter"
)

// ParseXML parses the XHTML-like article dialect. The decoder runs in
// non-strict mode with HTML entities and auto-closed void elements, matching
// how the journal sources were written. Several top-level elements are allowed.
func ParseXML(r io.Reader) (*converter.Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	root := converter.Document()
	stack := []*converter.Node{root}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		parent := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make(map[string]string, len(t.Attr))
			for _, attr := range t.Attr {
				attrs[strings.ToLower(attr.Name.Local)] = attr.Value
			}
			node := newElement(t.Name.Local, attrs)
			parent.AppendChild(node)
			stack = append(stack, node)
		case xml.EndElement:
			stack = closeElement(stack, strings.ToLower(t.Name.Local))
		case xml.CharData:
			parent.AppendChild(converter.Text(string(t)))
		case xml.Comment, xml.ProcInst, xml.Directive:
			parent.AppendChild(converter.Ignorable())
		}
	}
	return root, nil
}

// closeElement pops the stack up to and including the innermost open element
// called name. An end tag with no matching open element is ignored.
func closeElement(stack []*converter.Node, name string) []*converter.Node {
	for i := len(stack) - 1; i > 0; i-- {
		if stack[i].Name == name {
			return stack[:i]
		}
	}
	return stack
}
