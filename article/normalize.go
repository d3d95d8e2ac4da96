package article

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"
)

// ErrInvalidRecord indicates an export record that cannot become metadata.
var ErrInvalidRecord = errors.New("invalid article record")

// Text is a JSON value that may be written as a string or a number.
type Text string

// UnmarshalJSON accepts strings, numbers and null.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*t = Text(n.String())
	return nil
}

// Record is one article as exported from the old site database.
type Record struct {
	ID      Text   `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Journal string `json:"journal"`
	Volume  Text   `json:"volume"`
	Issue   Text   `json:"issue"`
	Year    Text   `json:"year"`
	Month   string `json:"month"`
	Pages   string `json:"pages"`
	Summary string `json:"summary"`
}

// Correction overrides fields of a record. Empty fields leave the record
// value in place.
type Correction struct {
	Title   string `yaml:"title,omitempty"`
	Author  string `yaml:"author,omitempty"`
	Journal string `yaml:"journal,omitempty"`
	Year    string `yaml:"year,omitempty"`
	Month   string `yaml:"month,omitempty"`
	Issue   string `yaml:"issue,omitempty"`
}

// LoadCorrections reads a YAML mapping from record id to Correction.
// An empty document yields no corrections.
func LoadCorrections(r io.Reader) (map[string]Correction, error) {
	corrections := map[string]Correction{}
	if err := yaml.NewDecoder(r).Decode(&corrections); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode corrections: %w", err)
	}
	return corrections, nil
}

var months = map[string]string{
	"jan": "Jan", "january": "Jan", "1": "Jan", "01": "Jan",
	"feb": "Feb", "february": "Feb", "2": "Feb", "02": "Feb",
	"mar": "Mar", "march": "Mar", "3": "Mar", "03": "Mar",
	"apr": "Apr", "april": "Apr", "4": "Apr", "04": "Apr",
	"may": "May", "5": "May", "05": "May",
	"jun": "Jun", "june": "Jun", "6": "Jun", "06": "Jun",
	"jul": "Jul", "july": "Jul", "7": "Jul", "07": "Jul",
	"aug": "Aug", "august": "Aug", "8": "Aug", "08": "Aug",
	"sep": "Sep", "sept": "Sep", "september": "Sep", "9": "Sep", "09": "Sep",
	"oct": "Oct", "october": "Oct", "10": "Oct",
	"nov": "Nov", "november": "Nov", "11": "Nov",
	"dec": "Dec", "december": "Dec", "12": "Dec",
}

var journals = map[string]string{
	"cvu":              "CVu",
	"c vu":             "CVu",
	"c-vu":             "CVu",
	"overload":         "Overload",
	"ol":               "Overload",
	"overload journal": "Overload",
}

// NormalizeMonth maps month names, abbreviations and numbers to a three
// letter abbreviation. Unknown values are returned trimmed and unchanged.
func NormalizeMonth(month string) string {
	month = strings.TrimSpace(month)
	key := strings.TrimSuffix(strings.ToLower(month), ".")
	if abbrev, ok := months[key]; ok {
		return abbrev
	}
	return month
}

// NormalizeJournal maps the spellings of a journal name used in exports to
// its canonical name. Unknown journals are returned trimmed and unchanged.
func NormalizeJournal(journal string) string {
	journal = strings.TrimSpace(journal)
	if name, ok := journals[strings.Join(strings.Fields(strings.ToLower(journal)), " ")]; ok {
		return name
	}
	return journal
}

// Normalizer turns export records into article metadata.
type Normalizer struct {
	Corrections map[string]Correction
}

// NewNormalizer returns a normalizer applying corrections by record id.
// A nil map applies none.
func NewNormalizer(corrections map[string]Correction) *Normalizer {
	return &Normalizer{Corrections: corrections}
}

// Normalize cleans up a record and computes the article's site path.
func (n *Normalizer) Normalize(record Record) (Metadata, error) {
	meta := Metadata{
		ID:      strings.TrimSpace(string(record.ID)),
		Title:   cleanText(record.Title),
		Author:  cleanText(record.Author),
		Journal: NormalizeJournal(html.UnescapeString(record.Journal)),
		Volume:  strings.TrimSpace(string(record.Volume)),
		Issue:   strings.TrimSpace(string(record.Issue)),
		Year:    strings.TrimSpace(string(record.Year)),
		Month:   NormalizeMonth(record.Month),
		Pages:   strings.TrimSpace(record.Pages),
		Summary: cleanText(record.Summary),
	}

	if n != nil {
		if fix, ok := n.Corrections[meta.ID]; ok {
			meta = fix.apply(meta)
		}
	}

	if meta.Title == "" {
		return Metadata{}, fmt.Errorf("%w: record %q has no title", ErrInvalidRecord, meta.ID)
	}
	if !validYear(meta.Year) {
		return Metadata{}, fmt.Errorf("%w: record %q has year %q", ErrInvalidRecord, meta.ID, meta.Year)
	}

	meta.Path = meta.SitePath()
	return meta, nil
}

// NormalizeAll normalizes records in order, stopping at the first error.
func (n *Normalizer) NormalizeAll(records []Record) ([]Metadata, error) {
	out := make([]Metadata, 0, len(records))
	for i, record := range records {
		meta, err := n.Normalize(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, meta)
	}
	return out, nil
}

func (c Correction) apply(meta Metadata) Metadata {
	if c.Title != "" {
		meta.Title = c.Title
	}
	if c.Author != "" {
		meta.Author = c.Author
	}
	if c.Journal != "" {
		meta.Journal = c.Journal
	}
	if c.Year != "" {
		meta.Year = c.Year
	}
	if c.Month != "" {
		meta.Month = c.Month
	}
	if c.Issue != "" {
		meta.Issue = c.Issue
	}
	return meta
}

// cleanText unescapes HTML entities and collapses runs of whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

func validYear(year string) bool {
	if len(year) != 4 {
		return false
	}
	_, err := strconv.Atoi(year)
	return err == nil
}

// DecodeRecords reads a JSON array of records or a single record object.
func DecodeRecords(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	dec := json.NewDecoder(br)
	switch first {
	case '[':
		var records []Record
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		return records, nil
	case '{':
		var record Record
		if err := dec.Decode(&record); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		return []Record{record}, nil
	default:
		return nil, fmt.Errorf("%w: expected JSON array or object, found %q", ErrInvalidRecord, first)
	}
}

func peekNonSpace(br *bufio.Reader) (rune, error) {
	for {
		r, _, err := br.ReadRune()
		if err != nil {
			return 0, err
		}
		if !unicode.IsSpace(r) && r != '\ufeff' {
			return r, br.UnreadRune()
		}
	}
}
