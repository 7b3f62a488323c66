package filter_test

import (
	"testing"

	"github.com/gnames/degportal/pkg/filter"
	"github.com/gnames/degportal/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var th = record.Thresholds{PValue: 0.05, LogFC: 0.5}

func obs(fc, p float64) record.Observation {
	return record.NewObservation(fc, p, nil, th)
}

func genes() []record.Gene {
	return []record.Gene{
		{
			ID: "Cacna1g", Symbol: "Cacna1g", Name: "calcium channel 1G",
			SeizureGene: true,
			Datasets: map[string]record.Observation{
				"bulk":    obs(2, 0.01),
				"spatial": obs(-0.2, 0.5),
			},
		},
		{
			ID: "Grin2b", Symbol: "Grin2b", EnsemblID: "ENSMUSG00000030209",
			Datasets: map[string]record.Observation{
				"spatial": obs(-1.5, 0.001),
			},
		},
		{
			ID: "Cacna1h", Symbol: "Cacna1h",
			Datasets: map[string]record.Observation{
				"bulk": obs(0.3, 0.2),
			},
		},
	}
}

func symbols(gs []record.Gene) []string {
	res := make([]string, len(gs))
	for i := range gs {
		res[i] = gs[i].Symbol
	}
	return res
}

func ptr(f float64) *float64 {
	return &f
}

func TestSearchTerm(t *testing.T) {
	res := filter.Genes(genes(), filter.Criteria{SearchTerm: "CACNA"})
	assert.Equal(t, []string{"Cacna1g", "Cacna1h"}, symbols(res))

	res = filter.Genes(genes(), filter.Criteria{SearchTerm: "  cacna "})
	assert.Equal(t, []string{"Cacna1g", "Cacna1h"}, symbols(res))

	res = filter.Genes(genes(), filter.Criteria{SearchTerm: "030209"})
	assert.Equal(t, []string{"Grin2b"}, symbols(res), "ensembl id is searched")

	res = filter.Genes(genes(), filter.Criteria{SearchTerm: "channel"})
	assert.Equal(t, []string{"Cacna1g"}, symbols(res), "name is searched")
}

func TestDefaultCriteriaIsIdentity(t *testing.T) {
	in := genes()
	c := filter.Criteria{
		Categories: []filter.Category{{Field: filter.CategoryRegulation, Value: "All"}},
		Ranges:     []filter.Range{{Field: record.FieldLogFC}},
		Datasets:   map[string]bool{"bulk": true, "spatial": true},
	}
	assert.True(t, c.IsDefault())
	assert.Equal(t, in, filter.Genes(in, c))
	assert.Equal(t, in, filter.Genes(in, filter.Criteria{}))
}

func TestGeneCategories(t *testing.T) {
	tests := []struct {
		msg   string
		field string
		value string
		res   []string
	}{
		{"up", filter.CategoryRegulation, "up", []string{"Cacna1g", "Cacna1h"}},
		{"down", filter.CategoryRegulation, "Down", []string{"Cacna1g", "Grin2b"}},
		{"sig", filter.CategorySignificance, filter.Significant, []string{"Cacna1g", "Grin2b"}},
		{"not sig", filter.CategorySignificance, filter.NotSignificant, []string{"Cacna1g", "Cacna1h"}},
		{"seizure", filter.CategorySeizureGene, "yes", []string{"Cacna1g"}},
		{"no seizure", filter.CategorySeizureGene, "no", []string{"Grin2b", "Cacna1h"}},
		{"bad value", filter.CategorySeizureGene, "maybe", nil},
		{"bad field", "colour", "red", nil},
	}
	for _, v := range tests {
		c := filter.Criteria{}.SetCategory(v.field, v.value)
		res := filter.Genes(genes(), c)
		if v.res == nil {
			assert.Empty(t, res, v.msg)
			continue
		}
		assert.Equal(t, v.res, symbols(res), v.msg)
	}
}

func TestDatasetToggles(t *testing.T) {
	c := filter.Criteria{Datasets: map[string]bool{"bulk": true, "spatial": false}}
	res := filter.Genes(genes(), c)
	assert.Equal(t, []string{"Cacna1g", "Cacna1h"}, symbols(res))

	// per-dataset filters only look at enabled datasets
	c = c.SetCategory(filter.CategoryRegulation, "down")
	assert.Empty(t, filter.Genes(genes(), c))

	c = filter.Criteria{Datasets: map[string]bool{"bulk": false, "spatial": false}}
	assert.Empty(t, filter.Genes(genes(), c))
}

func TestGeneRanges(t *testing.T) {
	tests := []struct {
		msg    string
		field  string
		lo, hi *float64
		res    []string
	}{
		{"min log fc", record.FieldLogFC, ptr(1), nil, []string{"Cacna1g"}},
		{"max log fc", record.FieldLogFC, nil, ptr(-1), []string{"Grin2b"}},
		{"closed", record.FieldLogFC, ptr(0.3), ptr(0.3), []string{"Cacna1h"}},
		{"abs", record.FieldAbsLogFC, ptr(1), nil, []string{"Cacna1g", "Grin2b"}},
		{"adj p", record.FieldAdjP, nil, ptr(0.05), []string{"Cacna1g", "Grin2b"}},
		{"absent p value", record.FieldPValue, nil, ptr(1), nil},
		{"datasets number", record.FieldDatasetsNum, ptr(2), nil, []string{"Cacna1g"}},
	}
	for _, v := range tests {
		c := filter.Criteria{}.SetRange(v.field, v.lo, v.hi)
		res := filter.Genes(genes(), c)
		if v.res == nil {
			assert.Empty(t, res, v.msg)
			continue
		}
		assert.Equal(t, v.res, symbols(res), v.msg)
	}
}

func TestFiltersCombineWithAnd(t *testing.T) {
	c := filter.Criteria{SearchTerm: "cacna"}.
		SetCategory(filter.CategorySignificance, filter.Significant).
		SetRange(record.FieldLogFC, ptr(0), nil)
	res := filter.Genes(genes(), c)
	assert.Equal(t, []string{"Cacna1g"}, symbols(res))
}

func TestResultIsOrderedSubsequence(t *testing.T) {
	in := genes()
	criteria := []filter.Criteria{
		{SearchTerm: "a"},
		filter.Criteria{}.SetCategory(filter.CategoryRegulation, "up"),
		filter.Criteria{}.SetRange(record.FieldAbsLogFC, ptr(0.25), nil),
	}
	for _, c := range criteria {
		res := filter.Genes(in, c)
		j := 0
		for _, g := range res {
			for j < len(in) && in[j].ID != g.ID {
				j++
			}
			require.Less(t, j, len(in), "%s is out of order", g.ID)
			assert.Equal(t, in[j], g)
			j++
		}
	}
}

func TestSetDoesNotModifyReceiver(t *testing.T) {
	c := filter.Criteria{}.SetCategory(filter.CategoryRegulation, "up")
	c2 := c.SetCategory(filter.CategoryRegulation, "down")
	assert.Equal(t, "up", c.Categories[0].Value)
	assert.Equal(t, "down", c2.Categories[0].Value)

	c3 := c2.SetRange(record.FieldLogFC, ptr(1), nil)
	c4 := c3.SetRange(record.FieldLogFC, nil, nil)
	assert.Len(t, c4.Ranges, 1)
	assert.True(t, c3.Ranges[0].Active())
	assert.False(t, c4.Ranges[0].Active())
}

func TestParseBound(t *testing.T) {
	tests := []struct {
		in  string
		res *float64
	}{
		{"", nil},
		{"  ", nil},
		{"abc", nil},
		{"NaN", nil},
		{"1.5", ptr(1.5)},
		{" -2 ", ptr(-2)},
		{"1e-3", ptr(0.001)},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, filter.ParseBound(v.in), v.in)
	}
}

func publications() []record.Publication {
	y19, y21 := 2019, 2021
	return []record.Publication{
		{
			ID: 1, Ident: "1", Title: "Fenfluramine in Dravet syndrome",
			Authors: "Lagae L", Year: &y19, Citations: 120,
			Journal: "Lancet", Quartile: record.Q1, StudyType: "RCT",
		},
		{
			ID: 2, Ident: "2", Title: "Ketogenic diet",
			Abstract: "dravet patients", Year: &y21, Citations: 4,
			Journal: "Epilepsia", Quartile: record.Q2, StudyType: "Pilot",
		},
		{
			ID: 3, Ident: "3", Title: "Cannabidiol",
			Summary: "reduces seizures", Citations: 30,
			Quartile: record.Unranked, StudyType: "Review",
		},
	}
}

func ids(ps []record.Publication) []int {
	res := make([]int, len(ps))
	for i := range ps {
		res[i] = ps[i].ID
	}
	return res
}

func TestPublications(t *testing.T) {
	tests := []struct {
		msg string
		c   filter.Criteria
		res []int
	}{
		{"search", filter.Criteria{SearchTerm: "DRAVET"}, []int{1, 2}},
		{"search summary", filter.Criteria{SearchTerm: "seizures"}, []int{3}},
		{"quartile", filter.Criteria{}.SetCategory(filter.CategoryQuartile, "q2"), []int{2}},
		{"unranked", filter.Criteria{}.SetCategory(filter.CategoryQuartile, "unranked"), []int{3}},
		{"study type", filter.Criteria{}.SetCategory(filter.CategoryStudyType, "rct"), []int{1}},
		{"other", filter.Criteria{}.SetCategory(filter.CategoryStudyType, "other"), []int{2}},
		{"year", filter.Criteria{}.SetCategory(filter.CategoryYear, "2021"), []int{2}},
		{"year range", filter.Criteria{}.SetRange(record.FieldYear, ptr(2000), nil), []int{1, 2}},
		{"citations", filter.Criteria{}.SetRange(record.FieldCitations, ptr(10), ptr(100)), []int{3}},
		{"datasets ignored", filter.Criteria{Datasets: map[string]bool{"bulk": false}}, []int{1, 2, 3}},
	}
	for _, v := range tests {
		res := filter.Publications(publications(), v.c)
		assert.Equal(t, v.res, ids(res), v.msg)
	}
}
