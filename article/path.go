package article

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Path returns the site path of an article page:
// journal/<journal>/<year>/<month>/<slug>.adoc. Journal and month are case
// folded. The slug is the case folded title with each whitespace character
// replaced by an underscore and everything else that is not a letter or digit
// dropped.
func Path(journal, year, month, title string) string {
	return path.Join("journal", fold(journal), year, fold(month), Slug(title)) + ".adoc"
}

// Slug turns a title into a file name stem.
func Slug(title string) string {
	var b strings.Builder
	for _, r := range fold(title) {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte('_')
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsNumber(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LinkPath returns the site path of a numbered legacy journal link.
func LinkPath(n string) string {
	return path.Join("journal", "index", n)
}

func fold(s string) string {
	// Casers keep state between calls; a fresh one per call is safe for concurrent use.
	return cases.Fold().String(s)
}
