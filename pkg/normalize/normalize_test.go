package normalize_test

import (
	"strings"
	"testing"

	"github.com/gnames/degportal/pkg/normalize"
	"github.com/gnames/degportal/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var th = record.Thresholds{PValue: 0.05, LogFC: 0.5}

func TestGeneAliases(t *testing.T) {
	raw := map[string]any{
		"primary_symbol":  "Cacna1g",
		"ensembl_id":      "ENSMUSG00000020866",
		"name":            "calcium channel, T type, alpha 1G",
		"is_seizure_gene": true,
		"unused":          "dropped",
		"datasets": map[string]any{
			"bulk": map[string]any{
				"logFC":       2.0,
				"adj_p_val":   0.01,
				"regulation":  "down", // stale, recomputed
				"significant": false,  // stale, recomputed
			},
			"spatial_a": map[string]any{
				"log2fc": -1.5,
				"padj":   0.2,
				"pvalue": "0.003",
			},
			"spatial_b": nil,
			"spatial_c": map[string]any{"padj": 0.01},
		},
	}

	g := normalize.Gene(raw, th)
	assert.Equal(t, "Cacna1g", g.ID)
	assert.Equal(t, "Cacna1g", g.Symbol)
	assert.Equal(t, "ENSMUSG00000020866", g.EnsemblID)
	assert.True(t, g.SeizureGene)
	require.Len(t, g.Datasets, 2, "null entry and entry without fold change are absent")

	bulk := g.Datasets["bulk"]
	assert.Equal(t, 2.0, bulk.LogFC)
	assert.Equal(t, record.Up, bulk.Regulation)
	assert.True(t, bulk.Significant)

	sp := g.Datasets["spatial_a"]
	assert.Equal(t, -1.5, sp.LogFC)
	assert.Equal(t, 0.2, sp.AdjPValue)
	assert.Equal(t, record.Down, sp.Regulation)
	assert.False(t, sp.Significant)
	require.NotNil(t, sp.PValue)
	assert.Equal(t, 0.003, *sp.PValue)
}

func TestGeneAlternativeKeys(t *testing.T) {
	raw := map[string]any{
		"symbol":       "Grin2b",
		"id":           "ENSMUSG00000030209",
		"seizure_gene": "yes",
	}
	g := normalize.Gene(raw, th)
	assert.Equal(t, "Grin2b", g.Symbol)
	assert.Equal(t, "ENSMUSG00000030209", g.EnsemblID)
	assert.True(t, g.SeizureGene)
	assert.NotNil(t, g.Datasets)
	assert.Empty(t, g.Datasets)
}

func TestGeneMissingAdjP(t *testing.T) {
	raw := map[string]any{
		"primary_symbol": "Scn1a",
		"datasets": map[string]any{
			"bulk": map[string]any{"logFC": "NA"},
			"sp":   map[string]any{"logFC": 3.0},
		},
	}
	g := normalize.Gene(raw, th)
	require.Len(t, g.Datasets, 1)
	assert.Equal(t, 1.0, g.Datasets["sp"].AdjPValue)
	assert.False(t, g.Datasets["sp"].Significant)
}

func TestGeneUnknownSymbol(t *testing.T) {
	a := normalize.Gene(map[string]any{"ensembl_id": "ENS1"}, th)
	b := normalize.Gene(map[string]any{"ensembl_id": "ENS2"}, th)
	c := normalize.Gene(map[string]any{"name": "mystery"}, th)
	d := normalize.Gene(map[string]any{}, th)
	e := normalize.Gene(map[string]any{"ensembl_id": "ENS1"}, th)

	for _, g := range []record.Gene{a, b, c, d} {
		assert.Equal(t, record.UnknownSymbol, g.Symbol)
		assert.True(t, strings.HasPrefix(g.ID, "unknown-"))
	}
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)
	assert.NotEqual(t, c.ID, d.ID)
	assert.Equal(t, a.ID, e.ID, "same content yields the same key")
}

func TestGenesPreservesOrder(t *testing.T) {
	raws := []map[string]any{
		{"primary_symbol": "B"},
		{"primary_symbol": "A"},
		{"primary_symbol": "C"},
	}
	var res []string
	for _, g := range normalize.Genes(raws, th) {
		res = append(res, g.Symbol)
	}
	assert.Equal(t, []string{"B", "A", "C"}, res)
}

func TestPublication(t *testing.T) {
	raw := map[string]any{
		"id":             12.0,
		"title":          "Fenfluramine in Dravet syndrome",
		"authors":        []any{"Lagae L", "Sullivan J"},
		"year":           "2019",
		"citations":      -3.0,
		"abstract":       "Background...",
		"takeaway":       "Reduces seizures",
		"journal":        "Lancet",
		"sjr_quartile":   "q1",
		"study_type":     "RCT",
		"doi":            "10.1016/S0140-6736(19)32500-0",
		"consensus_link": "https://consensus.app/x",
	}
	p := normalize.Publication(raw)
	assert.Equal(t, 12, p.ID)
	assert.Equal(t, "12", p.Ident)
	assert.Equal(t, "Lagae L, Sullivan J", p.Authors)
	require.NotNil(t, p.Year)
	assert.Equal(t, 2019, *p.Year)
	assert.Equal(t, 0, p.Citations, "negative citations clamp to zero")
	assert.Equal(t, "Reduces seizures", p.Summary)
	assert.Equal(t, record.Q1, p.Quartile)
	assert.Equal(t, "https://consensus.app/x", p.ConsensusLink)
}

func TestPublicationDefaults(t *testing.T) {
	p := normalize.Publication(map[string]any{"title": "Untitled draft", "year": nil})
	assert.Equal(t, 0, p.ID)
	assert.True(t, strings.HasPrefix(p.Ident, "pub-"))
	assert.Nil(t, p.Year)
	assert.Equal(t, 0, p.Citations)
	assert.Equal(t, record.Unranked, p.Quartile)
	assert.Empty(t, p.Authors)
}

func TestQuartileSpellings(t *testing.T) {
	tests := []struct {
		in  any
		res record.Quartile
	}{
		{"Q2", record.Q2},
		{"3", record.Q3},
		{4.0, record.Q4},
		{"-", record.Unranked},
		{"Q5", record.Unranked},
	}
	for _, v := range tests {
		p := normalize.Publication(map[string]any{"id": 1, "sjr_quartile": v.in})
		assert.Equal(t, v.res, p.Quartile, v.in)
	}
}

func TestTablesAreTotal(t *testing.T) {
	tables := map[string]normalize.Table{
		"gene":        normalize.GeneTable,
		"observation": normalize.ObservationTable,
		"publication": normalize.PublicationTable,
	}
	for name, tbl := range tables {
		seen := make(map[string]bool)
		for _, f := range tbl {
			assert.NotEmpty(t, f.Aliases, "%s: %s has no aliases", name, f.Canonical)
			assert.False(t, seen[f.Canonical], "%s: %s repeats", name, f.Canonical)
			seen[f.Canonical] = true
		}
	}
}

func TestTableApply(t *testing.T) {
	raw := map[string]any{"padj": 0.3, "logFC": 1.0, "other": "x"}
	res := normalize.ObservationTable.Apply(raw)
	assert.Equal(t, map[string]any{"log_fc": 1.0, "adj_p_val": 0.3}, res)
}
