package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	tests := []struct {
		name    string
		journal string
		year    string
		month   string
		title   string
		want    string
	}{
		{name: "simple", journal: "CVu", year: "2019", month: "Nov", title: "Code Critique Competition 121", want: "journal/cvu/2019/nov/code_critique_competition_121.adoc"},
		{name: "punctuation dropped", journal: "Overload", year: "2004", month: "Aug", title: "C++ Lookup: Mysteries!", want: "journal/overload/2004/aug/c_lookup_mysteries.adoc"},
		{name: "each space becomes underscore", journal: "CVu", year: "2001", month: "Jan", title: "a  b\tc", want: "journal/cvu/2001/jan/a__b_c.adoc"},
		{name: "unicode letters kept", journal: "CVu", year: "2010", month: "Mar", title: "Straße Ökonomie", want: "journal/cvu/2010/mar/strasse_ökonomie.adoc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Path(tt.journal, tt.year, tt.month, tt.title))
		})
	}
}

func TestLinkPath(t *testing.T) {
	assert.Equal(t, "journal/index/1234", LinkPath("1234"))
}

func TestMetadataSitePath(t *testing.T) {
	meta := Metadata{Journal: "Overload", Year: "2020", Month: "Feb", Title: "Hello World"}
	assert.Equal(t, "journal/overload/2020/feb/hello_world.adoc", meta.SitePath())
}
