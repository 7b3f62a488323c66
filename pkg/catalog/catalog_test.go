package catalog_test

import (
	"testing"

	"github.com/gnames/degportal/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		msg  string
		docs []catalog.Document
		err  string
	}{
		{"empty", nil, "no documents"},
		{"no name", []catalog.Document{{Kind: "genes", Location: "a.json"}}, "name is required"},
		{"no location", []catalog.Document{{Name: "a", Kind: "genes"}}, "location"},
		{"bad kind", []catalog.Document{{Name: "a", Kind: "proteins", Location: "a.json"}}, "invalid kind"},
		{
			"duplicate",
			[]catalog.Document{
				{Name: "a", Kind: "genes", Location: "a.json"},
				{Name: "a", Kind: "publications", Location: "b.json"},
			},
			"duplicate name",
		},
	}
	for _, v := range tests {
		c := catalog.Catalog{Documents: v.docs}
		err := c.Validate()
		require.Error(t, err, v.msg)
		assert.Contains(t, err.Error(), v.err, v.msg)
	}
}

func TestValidateNormalizes(t *testing.T) {
	c := catalog.Catalog{Documents: []catalog.Document{
		{Name: " bulk ", Kind: "Genes", Location: " https://example.org/bulk.json "},
		{Name: "pubs", Kind: "publications", Location: "file:///data/pubs.json"},
	}}
	require.NoError(t, c.Validate())
	assert.Equal(t, "bulk", c.Documents[0].Name)
	assert.Equal(t, catalog.Genes, c.Documents[0].Kind)
	assert.True(t, c.Documents[0].IsRemote())

	require.Len(t, c.Warnings, 1)
	assert.Equal(t, "pubs", c.Warnings[0].Document)
	assert.True(t, c.Documents[1].IsFileURL())
	assert.False(t, c.Documents[1].IsRemote())
}

func TestByKindAndGet(t *testing.T) {
	c := catalog.Catalog{Documents: []catalog.Document{
		{Name: "bulk", Kind: catalog.Genes},
		{Name: "pubs", Kind: catalog.Publications},
		{Name: "spatial", Kind: catalog.Genes},
	}}
	genes := c.ByKind(catalog.Genes)
	require.Len(t, genes, 2)
	assert.Equal(t, "bulk", genes[0].Name)
	assert.Equal(t, "spatial", genes[1].Name)

	d, ok := c.Get("pubs")
	assert.True(t, ok)
	assert.Equal(t, catalog.Publications, d.Kind)
	_, ok = c.Get("none")
	assert.False(t, ok)
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, catalog.IsValidURL("http://localhost:8080/genes.json"))
	assert.False(t, catalog.IsValidURL("/data/genes.json"))
	assert.False(t, catalog.IsValidURL("ftp://example.org/x"))
	assert.False(t, catalog.IsValidURL("https://"))
}
