package converter

import (
	"context"
	"fmt"
)

// Converter converts parsed article trees to AsciiDoc.
type Converter struct {
	config Config
}

// state is the context of a single conversion. It is created by Convert and
// never shared between conversions.
type state struct {
	ctx    context.Context
	config Config

	lists  listStack
	tables tableTracker

	inPreformatted          bool
	inBibliographyReference bool

	imageCounter int
	renames      []Rename

	title   string
	summary string
	bio     []item

	warnings []Warning
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{
		config: cfg,
	}, nil
}

// Convert converts the tree rooted at root. On error no partial output is returned.
func (c *Converter) Convert(root *Node) (Result, error) {
	return c.ConvertWithContext(context.Background(), root)
}

// ConvertWithContext is Convert with a context handed to the link hook.
func (c *Converter) ConvertWithContext(ctx context.Context, root *Node) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if root == nil {
		root = Document()
	}

	s := &state{
		ctx:    ctx,
		config: c.config,
		tables: newTableTracker(),
	}

	var body string
	switch c.config.Format {
	case FormatHTML:
		rendered, err := s.renderPassthrough(root)
		if err != nil {
			return Result{}, err
		}
		body = rendered
	default:
		items, err := s.convertNode(root)
		if err != nil {
			return Result{}, err
		}
		body = cleanup(resolve(items))
	}

	return s.assemble(body), nil
}

// convertNode routes a node to the handler for its kind.
func (s *state) convertNode(node *Node) ([]item, error) {
	switch node.Kind {
	case DocumentNode:
		return s.convertChildren(node)
	case TextNode:
		return s.convertText(node), nil
	case IgnorableNode:
		return nil, nil
	case ElementNode:
		return s.convertElement(node)
	default:
		return nil, fmt.Errorf("unsupported node kind %d", node.Kind)
	}
}

// convertElement dispatches on the element name. The set of names is closed:
// anything not listed is an error.
func (s *state) convertElement(node *Node) ([]item, error) {
	switch node.Name {
	case "xml", "html", "body", "article", "section", "div":
		return s.convertChildren(node)

	case "head", "colgroup", "col", "script", "style":
		s.addWarning(WarningDroppedElement, node.Name, fmt.Sprintf("<%s> dropped", node.Name))
		return nil, nil

	case "h1":
		return s.convertTitleHeading(node)
	case "h2", "h3", "h4", "h5", "h6":
		return s.convertHeading(node, int(node.Name[1]-'0'))

	case "p":
		return s.convertParagraph(node)
	case "pre":
		return s.convertPreformatted(node)
	case "blockquote":
		return s.convertBlockquote(node)
	case "hr":
		return s.convertRule(), nil
	case "br":
		return s.convertHardBreak(), nil

	case "code", "tt":
		return s.convertCode(node)
	case "em", "i", "u", "cite":
		return s.convertStyled(node, "__")
	case "strong", "b":
		return s.convertStyled(node, "**")
	case "sup":
		return s.convertStyled(node, "^")
	case "sub":
		return s.convertStyled(node, "~")
	case "del", "s", "strike":
		return s.convertLineThrough(node)
	case "span":
		return s.convertChildren(node)

	case "ul":
		return s.convertList(node, "*")
	case "ol":
		return s.convertList(node, ".")
	case "li":
		return s.convertListItem(node)
	case "dl":
		return s.convertDefinitionList(node)
	case "dt":
		return s.convertDefinitionTerm(node)
	case "dd":
		return s.convertDefinitionDescription(node)

	case "table":
		return s.convertTable(node)
	case "thead", "tfoot":
		return s.convertChildren(node)
	case "tbody":
		return s.convertTableBody(node)
	case "tr":
		return s.convertTableRow(node)
	case "td", "th":
		return s.convertTableCell(node)

	case "a":
		return s.convertAnchor(node)
	case "img":
		return s.convertImage(node)

	default:
		return nil, fmt.Errorf("%w: <%s>", ErrUnknownTag, node.Name)
	}
}

// convertChildren converts all children of node in order.
func (s *state) convertChildren(node *Node) ([]item, error) {
	return s.convertNodes(node.Children)
}

// renderChildren converts the children of node and linearizes them on their own.
func (s *state) renderChildren(node *Node) (string, error) {
	items, err := s.convertChildren(node)
	if err != nil {
		return "", err
	}
	return resolve(items), nil
}

func (s *state) addWarning(warnType WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}
