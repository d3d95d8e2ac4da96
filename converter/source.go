package converter

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// sourceHeader returns the block attribute line for a listing. A language is
// named only when detection is enabled: an explicit language-* class on the
// listing or its code element wins over lexer analysis.
func (s *state) sourceHeader(node *Node) string {
	if !s.config.DetectSourceLanguage {
		return "[source]\n"
	}
	if lang := languageClass(node); lang != "" {
		return "[source," + lang + "]\n"
	}
	if lang := detectSourceLanguage(node.textContent()); lang != "" {
		return "[source," + lang + "]\n"
	}
	return "[source]\n"
}

// detectSourceLanguage guesses the language of code using chroma's lexer
// analysers and returns the lexer's primary alias.
func detectSourceLanguage(code string) string {
	if strings.TrimSpace(code) == "" {
		return ""
	}
	lexer := lexers.Analyse(code)
	if lexer == nil {
		return ""
	}
	config := lexer.Config()
	if config == nil {
		return ""
	}
	if len(config.Aliases) > 0 {
		return config.Aliases[0]
	}
	return strings.ToLower(config.Name)
}

// languageClass returns the language named by a "language-*" class on node or
// on its first code child.
func languageClass(node *Node) string {
	candidates := []*Node{node}
	for _, child := range node.Children {
		if child.Kind == ElementNode && child.Name == "code" {
			candidates = append(candidates, child)
			break
		}
	}

	for _, candidate := range candidates {
		classes := append(append([]string(nil), candidate.Classes...), strings.Fields(candidate.GetStringAttr("class", ""))...)
		for _, class := range classes {
			if lang, ok := strings.CutPrefix(class, "language-"); ok && lang != "" {
				return lang
			}
		}
	}
	return ""
}
