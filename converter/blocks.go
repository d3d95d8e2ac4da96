package converter

import (
	"strings"
)

// convertTitleHeading captures a level 1 heading as the document title. The
// heading itself is not emitted; the title goes into the document header.
func (s *state) convertTitleHeading(node *Node) ([]item, error) {
	title, err := s.renderChildren(node)
	if err != nil {
		return nil, err
	}
	if s.title == "" {
		s.title = strings.TrimSpace(title)
	}
	return nil, nil
}

// convertHeading converts a level 2-6 heading to an AsciiDoc section title.
func (s *state) convertHeading(node *Node, level int) ([]item, error) {
	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}

	marker := strings.Repeat("=", level) + " "
	if resolve(content) == "References" {
		marker = "[bibliography]\n" + marker
	}

	items := []item{s.blankLine(), literal(marker), swallow()}
	items = append(items, content...)
	return append(items, literal("\n"), swallow()), nil
}

// convertParagraph converts a paragraph. A handful of classes used by the
// journal templates change what a paragraph means.
func (s *state) convertParagraph(node *Node) ([]item, error) {
	switch {
	case node.HasClass("bio"):
		return s.captureBio(node)
	case node.HasClass("quote"):
		return s.convertQuote(node)
	case node.HasClass("Byline"):
		return s.captureSummary(node)
	case node.HasClass("bibliomixed"):
		return s.convertBibliographyEntry(node)
	}

	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}
	return append([]item{s.blankLine(), swallow()}, content...), nil
}

// captureBio stores the paragraph as part of the author bio.
func (s *state) captureBio(node *Node) ([]item, error) {
	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}
	s.bio = append(s.bio, item{directive: blankLineBefore}, swallow())
	s.bio = append(s.bio, content...)
	return nil, nil
}

// captureSummary stores the paragraph as the document summary.
func (s *state) captureSummary(node *Node) ([]item, error) {
	summary, err := s.renderChildren(node)
	if err != nil {
		return nil, err
	}
	if s.summary == "" {
		s.summary = strings.TrimSpace(summary)
	}
	return nil, nil
}

// convertQuote converts a quotation paragraph. The attribution follows a text
// run starting with "~ "; without one, text after the last " - " is used.
func (s *state) convertQuote(node *Node) ([]item, error) {
	split := -1
	for i, child := range node.Children {
		if child.Kind == TextNode && strings.HasPrefix(strings.TrimLeft(child.Text, " \t\r\n"), "~ ") {
			split = i
			break
		}
	}

	var quote, attribution string
	if split >= 0 {
		body, err := s.convertNodes(node.Children[:split])
		if err != nil {
			return nil, err
		}
		marker := node.Children[split]
		rest := append([]*Node{Text(strings.TrimPrefix(strings.TrimLeft(marker.Text, " \t\r\n"), "~ "))}, node.Children[split+1:]...)
		attr, err := s.convertNodes(rest)
		if err != nil {
			return nil, err
		}
		quote, attribution = resolve(body), resolve(attr)
	} else {
		rendered, err := s.renderChildren(node)
		if err != nil {
			return nil, err
		}
		quote = rendered
		if idx := strings.LastIndex(rendered, " - "); idx >= 0 {
			quote, attribution = rendered[:idx], rendered[idx+len(" - "):]
		}
	}

	header := "[quote]\n"
	if attribution = strings.TrimSpace(attribution); attribution != "" {
		header = "[quote, " + attribution + "]\n"
	}

	return []item{
		s.blankLine(),
		literal(header + "____\n" + strings.TrimSpace(quote) + "\n____\n"),
		swallow(),
	}, nil
}

// convertBibliographyEntry converts one bibliography entry to a list item.
// The "[n]" index at the start of the entry text is dropped; the entry anchor
// carries the reference instead.
func (s *state) convertBibliographyEntry(node *Node) ([]item, error) {
	s.inBibliographyReference = true
	content, err := s.convertChildren(node)
	s.inBibliographyReference = false
	if err != nil {
		return nil, err
	}

	items := []item{s.blankLine(), literal("* "), swallow()}
	items = append(items, content...)
	return append(items, lineStart()), nil
}

// convertPreformatted converts a preformatted block to a source listing.
func (s *state) convertPreformatted(node *Node) ([]item, error) {
	previous := s.inPreformatted
	s.inPreformatted = true
	content, err := s.convertChildren(node)
	s.inPreformatted = previous
	if err != nil {
		return nil, err
	}

	items := []item{s.blankLine(), literal(s.sourceHeader(node) + "----\n")}
	items = append(items, content...)
	return append(items, literal("\n"), literal("----\n"), swallow()), nil
}

// convertRule converts a horizontal rule.
func (s *state) convertRule() []item {
	return []item{s.blankLine(), literal("'''\n"), swallow()}
}

// convertNodes converts a slice of sibling nodes in order.
func (s *state) convertNodes(nodes []*Node) ([]item, error) {
	var items []item
	for _, node := range nodes {
		converted, err := s.convertNode(node)
		if err != nil {
			return nil, err
		}
		items = append(items, converted...)
	}
	return items, nil
}

// convertBlockquote converts a block quotation to a quote block. Unlike the
// quote paragraph class it carries no attribution.
func (s *state) convertBlockquote(node *Node) ([]item, error) {
	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}

	items := []item{s.blankLine(), literal("____\n")}
	items = append(items, stripLeadingBlanks(content)...)
	return append(items, lineStart(), literal("____\n"), swallow()), nil
}
