package markup

import (
	"strings"
	"testing"

	"github.com/accu-org/accu-website/converter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHTMLFragment(t *testing.T) {
	root, err := ParseHTML(strings.NewReader(`<p class="bio  quote">Hi <b>there</b></p><!-- note -->`))
	require.NoError(t, err)

	require.Equal(t, converter.DocumentNode, root.Kind)
	require.Len(t, root.Children, 2)

	p := root.Children[0]
	assert.Equal(t, "p", p.Name)
	assert.Equal(t, []string{"bio", "quote"}, p.Classes)
	assert.True(t, p.HasClass("quote"))
	require.Len(t, p.Children, 2)
	assert.Equal(t, "Hi ", p.Children[0].Text)
	assert.Equal(t, "b", p.Children[1].Name)

	assert.Equal(t, converter.IgnorableNode, root.Children[1].Kind)
}

func TestParseHTMLDocument(t *testing.T) {
	root, err := ParseHTML(strings.NewReader(`<!DOCTYPE html><html><head><title>x</title></head><body><h1>T</h1></body></html>`))
	require.NoError(t, err)

	require.Len(t, root.Children, 2)
	assert.Equal(t, converter.IgnorableNode, root.Children[0].Kind)

	html := root.Children[1]
	assert.Equal(t, "html", html.Name)
	require.Len(t, html.Children, 2)
	assert.Equal(t, "head", html.Children[0].Name)
	assert.Equal(t, "body", html.Children[1].Name)
}

func TestParseHTMLConverts(t *testing.T) {
	root, err := ParseHTML(strings.NewReader(`<UL><LI>List 1</LI><li>List 2</li></UL>`))
	require.NoError(t, err)

	conv, err := converter.New(converter.Config{Title: "T"})
	require.NoError(t, err)
	result, err := conv.Convert(root)
	require.NoError(t, err)

	assert.Equal(t, "\n* List 1\n* List 2\n", result.Body)
}

func TestParseHTMLDocumentDropsHead(t *testing.T) {
	root, err := ParseHTML(strings.NewReader(`<html><head><title>x</title></head><body><p>Body</p></body></html>`))
	require.NoError(t, err)

	conv, err := converter.New(converter.Config{Title: "T"})
	require.NoError(t, err)
	result, err := conv.Convert(root)
	require.NoError(t, err)

	assert.Equal(t, "\nBody\n", result.Body)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, converter.WarningDroppedElement, result.Warnings[0].Type)
}
