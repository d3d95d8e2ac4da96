package converter

// convertStyled wraps the converted children in delimiter on both sides.
func (s *state) convertStyled(node *Node, delimiter string) ([]item, error) {
	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}
	return wrap(delimiter, content, delimiter), nil
}

// convertCode converts code and tt elements. Inside a listing the content is
// already verbatim and is passed through unwrapped.
func (s *state) convertCode(node *Node) ([]item, error) {
	if s.inPreformatted {
		return s.convertChildren(node)
	}
	return s.convertStyled(node, "``")
}

// convertLineThrough converts struck-out text to a line-through role span.
func (s *state) convertLineThrough(node *Node) ([]item, error) {
	content, err := s.convertChildren(node)
	if err != nil {
		return nil, err
	}
	return wrap("[.line-through]#", content, "#"), nil
}
