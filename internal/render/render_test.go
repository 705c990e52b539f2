package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

var entries = []types.Entry{
	{Row: 1, Source: "RPI", Category: "Net Zero", Definition: "A balance between emissions."},
	{Row: 2, Source: "SAA", Category: "Divestment", Definition: "Selling assets.", Link: "http://x"},
}

func TestPlainEntries(t *testing.T) {
	got := New(types.StylePlain, 0).Entries(entries)
	want := "Source: RPI\nCategory: Net Zero\nDefinition: A balance between emissions.\n---\n" +
		"Source: SAA\nCategory: Divestment\nDefinition: Selling assets.\nLearn more: http://x\n---\n"
	assert.Equal(t, want, got)
}

func TestCardEntry(t *testing.T) {
	r := New(types.StyleCard, 0)
	assert.Equal(t, types.StyleCard, r.Style())

	card := r.Entry(entries[1])
	assert.Contains(t, card, "Divestment")
	assert.Contains(t, card, "Selling assets.")
	assert.Contains(t, card, "Source: SAA")
	assert.Contains(t, card, "Learn more: http://x")

	lines := strings.Split(card, "\n")
	require.Len(t, lines, 3)
	assert.Less(t, strings.Index(card, "Divestment"), strings.Index(card, "Selling assets."))

	noLink := r.Entry(entries[0])
	assert.NotContains(t, noLink, LearnMore)
}

func TestCardWrapsToWidth(t *testing.T) {
	long := types.Entry{Source: "RtR", Category: "Resilience", Definition: strings.Repeat("word ", 40)}
	card := New(types.StyleCard, 40).Entry(long)
	assert.Greater(t, len(strings.Split(card, "\n")), 3)
}

func TestUnknownStyleFallsBackToCard(t *testing.T) {
	assert.Equal(t, types.StyleCard, New("fancy", 0).Style())
}

func TestEntriesEmpty(t *testing.T) {
	assert.Equal(t, NoResults+"\n", New(types.StyleCard, 0).Entries(nil))
	assert.Equal(t, NoResults+"\n", New(types.StylePlain, 0).Entries([]types.Entry{}))
}

func TestNoFiltersInfo(t *testing.T) {
	got := NoFiltersInfo([]string{"RPI", "SAA"})
	assert.True(t, strings.HasSuffix(got, "Available sources: RPI, SAA"))
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, entries))

	out := buf.String()
	assert.Contains(t, out, "ROW")
	assert.Contains(t, out, "Net Zero")
	assert.Contains(t, out, "http://x")
	assert.True(t, strings.HasSuffix(out, "Total: 2 entries\n"))

	buf.Reset()
	require.NoError(t, Table(&buf, entries[:1]))
	assert.True(t, strings.HasSuffix(buf.String(), "Total: 1 entry\n"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestHTMLCard(t *testing.T) {
	var buf bytes.Buffer
	err := HTML(&buf, Page{
		Title:      "Glossary",
		Style:      types.StyleCard,
		Sources:    []string{"RPI", "SAA"},
		Categories: []string{"Divestment"},
		Source:     "SAA",
		Entries:    entries[1:],
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `<div class="card">`)
	assert.Contains(t, out, `<option value="SAA" selected>SAA</option>`)
	assert.Contains(t, out, `<a href="http://x" target="_blank">Learn more</a>`)
	assert.Contains(t, out, `<form method="get" action="">`)
}

func TestHTMLPlainAndEscaping(t *testing.T) {
	var buf bytes.Buffer
	err := HTML(&buf, Page{
		Title: "Glossary",
		Style: types.StylePlain,
		Entries: []types.Entry{
			{Source: "X", Category: "<script>", Definition: "a & b", Link: "javascript:alert(1)"},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, `<div class="card">`)
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "a &amp; b")
	assert.NotContains(t, out, `href="javascript:`)
}

func TestHTMLNoResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, Page{Title: "Glossary"}))
	assert.Contains(t, buf.String(), NoResults)
}
