// Package article describes journal articles: their metadata, their place
// in the site tree and how records exported from the old site are cleaned up.
package article

// Metadata describes one journal article.
type Metadata struct {
	ID      string            `json:"id,omitempty" yaml:"id,omitempty"`
	Title   string            `json:"title" yaml:"title"`
	Author  string            `json:"author,omitempty" yaml:"author,omitempty"`
	Journal string            `json:"journal,omitempty" yaml:"journal,omitempty"`
	Volume  string            `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue   string            `json:"issue,omitempty" yaml:"issue,omitempty"`
	Year    string            `json:"year,omitempty" yaml:"year,omitempty"`
	Month   string            `json:"month,omitempty" yaml:"month,omitempty"`
	Pages   string            `json:"pages,omitempty" yaml:"pages,omitempty"`
	Summary string            `json:"summary,omitempty" yaml:"summary,omitempty"`
	Path    string            `json:"path,omitempty" yaml:"path,omitempty"`
	Extra   map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// SitePath returns the article's page path derived from its metadata.
func (m Metadata) SitePath() string {
	return Path(m.Journal, m.Year, m.Month, m.Title)
}
