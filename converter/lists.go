package converter

// convertList converts ul and ol elements. The separator is bound before the
// list is pushed so a nested list continues its parent item.
func (s *state) convertList(node *Node, marker string) ([]item, error) {
	separator := s.blankLine()

	s.lists.push(marker)
	defer s.lists.pop()

	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}
	return append([]item{separator}, content...), nil
}

// convertListItem converts an li element using the prefix of the innermost open list.
func (s *state) convertListItem(node *Node) ([]item, error) {
	prefix, ok := s.lists.prefix()
	if !ok {
		return nil, ErrListItemWithoutEnclosingList
	}

	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}

	items := []item{lineStart(), literal(prefix + " ")}
	items = append(items, stripLeadingBlanks(content)...)
	return append(items, lineStart(), swallow()), nil
}

func (s *state) convertDefinitionList(node *Node) ([]item, error) {
	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}
	items := append([]item{s.blankLine()}, content...)
	return append(items, lineStart()), nil
}

func (s *state) convertDefinitionTerm(node *Node) ([]item, error) {
	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}
	items := append([]item{s.blankLine()}, content...)
	return append(items, literal("::")), nil
}

func (s *state) convertDefinitionDescription(node *Node) ([]item, error) {
	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}
	return append([]item{lineStart()}, stripLeadingBlanks(content)...), nil
}
