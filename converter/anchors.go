package converter

import (
	"fmt"
	"strings"
)

// convertAnchor converts an a element. Bracketed ids ("[n]") mark bibliography
// entries and bracketed fragment links ("#[n]") cite them; both drop the
// element content.
func (s *state) convertAnchor(node *Node) ([]item, error) {
	id, hasID := anchorID(node)
	if hasID {
		if ref, ok := bracketed(id); ok {
			return []item{literal(fmt.Sprintf("[[[ref%s,%s]]] ", SanitizeRefID(ref), ref))}, nil
		}
	}

	href, hasHref := node.Attr("href")
	if fragment, ok := strings.CutPrefix(href, "#"); hasHref && ok {
		if ref, ok := bracketed(fragment); ok {
			return []item{literal(fmt.Sprintf("<<ref%s>>", SanitizeRefID(ref)))}, nil
		}
	}

	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}

	var items []item
	if hasID {
		items = append(items, literal(fmt.Sprintf("[[ref%s,%s]]", SanitizeRefID(id), id)))
	}

	if hasHref {
		output, handled, err := s.applyLinkHook(node.Name, LinkInput{
			Href:  href,
			ID:    id,
			Text:  resolve(content),
			Attrs: node.Attrs,
		})
		if err != nil {
			return nil, err
		}
		if handled {
			if output.TextOnly {
				return append(items, content...), nil
			}
			href = output.Href
		}
	}

	switch {
	case hasHref:
		items = append(items, wrap("link:"+href+"[", content, "]")...)
	case hasID:
		items = append(items, content...)
	default:
		s.addWarning(WarningEmptyAnchor, node.Name, "anchor without id, name or href dropped")
	}
	return items, nil
}

// anchorID returns the non-empty id or name attribute of node.
func anchorID(node *Node) (string, bool) {
	for _, key := range []string{"id", "name"} {
		if value, ok := node.Attr(key); ok && strings.TrimSpace(value) != "" {
			return value, true
		}
	}
	return "", false
}
