package converter

import (
	"strconv"
	"strings"
)

// convertTable converts a table. Cell content is rendered as if no list were
// open; the separator in front of the table still continues an enclosing item.
func (s *state) convertTable(node *Node) ([]item, error) {
	delims, err := s.tables.enter()
	if err != nil {
		return nil, err
	}
	defer s.tables.exit()

	separator := s.blankLine()
	restore := s.lists.stash()
	defer restore()

	if s.config.SimplifyTables {
		if title, block, ok := singleBlockTable(node); ok {
			return s.convertTitledBlock(separator, title, block)
		}
	}

	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}

	sidebar := node.HasClass("sidebartable")

	items := []item{separator}
	if sidebar {
		items = append(items, literal("****\n"))
	}
	items = append(items, literal(delims.open))
	items = append(items, content...)
	items = append(items, lineStart(), literal(delims.close))
	if sidebar {
		items = append(items, literal("****\n"))
	}
	return append(items, swallow()), nil
}

func (s *state) convertTableBody(node *Node) ([]item, error) {
	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}
	return append(content, lineStart()), nil
}

func (s *state) convertTableRow(node *Node) ([]item, error) {
	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}
	return append([]item{s.blankLine()}, content...), nil
}

// convertTableCell emits the cell marker for the current table depth followed
// by the cell content. Body cells use the AsciiDoc style, header cells the
// header style.
func (s *state) convertTableCell(node *Node) ([]item, error) {
	delims, ok := s.tables.current()
	if !ok {
		delims = tableLevels[0]
	}

	var marker strings.Builder
	marker.WriteString(" ")
	if span, ok := node.Attr("colspan"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(span)); err == nil && n > 0 {
			marker.WriteString(strconv.Itoa(n))
			marker.WriteString("+")
		}
	}
	if node.Name == "th" {
		marker.WriteString("h")
	} else {
		marker.WriteString("a")
	}
	marker.WriteString(delims.cell)

	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}
	return append([]item{literal(marker.String())}, stripLeadingBlanks(content)...), nil
}

// convertTitledBlock renders a simplified table as a titled listing or image.
func (s *state) convertTitledBlock(separator item, title, block *Node) ([]item, error) {
	caption, err := s.renderChildren(title)
	if err != nil {
		return nil, err
	}
	content, err := s.convertNode(block)
	if err != nil {
		return nil, err
	}

	items := []item{separator}
	if caption = strings.Join(strings.Fields(caption), " "); caption != "" {
		items = append(items, literal("."+caption+"\n"))
	}
	return append(items, stripLeadingBlanks(content)...), nil
}

// singleBlockTable reports whether table holds exactly one header cell and one
// data cell whose only content is a pre or img element. Such tables are used
// by the journal templates to caption listings and figures.
func singleBlockTable(table *Node) (title, block *Node, ok bool) {
	var cells []*Node
	if !collectCells(table, &cells) || len(cells) != 2 {
		return nil, nil, false
	}

	for _, cell := range cells {
		switch cell.Name {
		case "th":
			if title != nil {
				return nil, nil, false
			}
			title = cell
		case "td":
			if block != nil {
				return nil, nil, false
			}
			block = onlyElement(cell)
			if block == nil || (block.Name != "pre" && block.Name != "img") {
				return nil, nil, false
			}
		}
	}
	return title, block, title != nil && block != nil
}

// collectCells gathers the cells of a table. It returns false when the table
// contains another table.
func collectCells(node *Node, cells *[]*Node) bool {
	for _, child := range node.Children {
		if child.Kind != ElementNode {
			continue
		}
		switch child.Name {
		case "td", "th":
			*cells = append(*cells, child)
		case "table":
			return false
		default:
			if !collectCells(child, cells) {
				return false
			}
		}
	}
	return true
}

// onlyElement returns the single element child of node, ignoring blank text
// and ignorable nodes. It returns nil if there is not exactly one.
func onlyElement(node *Node) *Node {
	var found *Node
	for _, child := range node.Children {
		switch child.Kind {
		case IgnorableNode:
		case TextNode:
			if !child.isBlankText() {
				return nil
			}
		case ElementNode:
			if found != nil {
				return nil
			}
			found = child
		}
	}
	return found
}
