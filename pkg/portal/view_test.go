package portal_test

import (
	"encoding/csv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gnames/degportal/pkg/export"
	"github.com/gnames/degportal/pkg/filter"
	"github.com/gnames/degportal/pkg/portal"
	"github.com/gnames/degportal/pkg/record"
	"github.com/gnames/degportal/pkg/sorter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var th = record.Thresholds{PValue: 0.05, LogFC: 0.5}

func store() *record.Store[record.Gene] {
	obs := func(fc, p float64) record.Observation {
		return record.NewObservation(fc, p, nil, th)
	}
	genes := []record.Gene{
		{ID: "Cacna1g", Symbol: "Cacna1g", Datasets: map[string]record.Observation{
			"bulk": obs(2, 0.01)}},
		{ID: "Grin2b", Symbol: "Grin2b", Datasets: map[string]record.Observation{
			"spatial": obs(-1.5, 0.001)}},
		{ID: "Cacna1h", Symbol: "Cacna1h", Datasets: map[string]record.Observation{
			"bulk": obs(0.7, 0.02)}},
		{ID: "Scn1a", Symbol: "Scn1a", SeizureGene: true, Datasets: map[string]record.Observation{
			"bulk": obs(-0.1, 0.9)}},
		{ID: "Kcnq2", Symbol: "Kcnq2", Datasets: map[string]record.Observation{
			"spatial": obs(1.1, 0.04)}},
	}
	return record.NewStore(record.Batch[record.Gene]{Source: "test", Records: genes})
}

func symbols(gs []record.Gene) []string {
	res := make([]string, len(gs))
	for i := range gs {
		res[i] = gs[i].Symbol
	}
	return res
}

func TestInitialView(t *testing.T) {
	v := portal.NewGeneView(store(), portal.OptPageSize(2))
	snap := v.Snapshot()
	assert.Equal(t, 5, snap.Total)
	assert.Equal(t, 5, snap.Filtered)
	assert.Equal(t, 3, snap.Page.TotalPages)
	assert.Equal(t, []string{"Cacna1g", "Grin2b"}, symbols(snap.Records))
	assert.Equal(t, "showing 1-2 of 5", snap.Range)
}

func TestSearchAndSort(t *testing.T) {
	v := portal.NewGeneView(store())
	v.SetSearchTerm("cacna")
	v.Flush()
	assert.Equal(t, []string{"Cacna1g", "Cacna1h"}, symbols(v.Records()))

	v.Sort(record.DatasetField("bulk", record.FieldLogFC))
	assert.Equal(t, []string{"Cacna1h", "Cacna1g"}, symbols(v.Records()))
	v.Sort(record.DatasetField("bulk", record.FieldLogFC))
	assert.Equal(t, []string{"Cacna1g", "Cacna1h"}, symbols(v.Records()))
	assert.Equal(t, sorter.Desc, v.Snapshot().Sort.Direction)

	// sort survives criteria changes
	v.SetSearchTerm("")
	v.Flush()
	assert.Equal(t, []string{"Cacna1g", "Cacna1h", "Scn1a", "Grin2b", "Kcnq2"},
		symbols(v.Records()))
}

func TestPageResetsOnChange(t *testing.T) {
	v := portal.NewGeneView(store(), portal.OptPageSize(2))
	require.True(t, v.GoToPage(3))
	assert.Equal(t, []string{"Kcnq2"}, symbols(v.Snapshot().Records))
	assert.False(t, v.GoToPage(4))
	assert.Equal(t, 3, v.Snapshot().Page.CurrentPage)

	v.SetCategory(filter.CategorySignificance, filter.Significant)
	v.Flush()
	snap := v.Snapshot()
	assert.Equal(t, 1, snap.Page.CurrentPage)
	assert.Equal(t, 4, snap.Filtered)
}

func TestDatasetToggles(t *testing.T) {
	v := portal.NewGeneView(store())
	names := []string{"bulk", "spatial"}
	v.ToggleDataset(names, "spatial", false)
	v.Flush()
	assert.Equal(t, []string{"Cacna1g", "Cacna1h", "Scn1a"}, symbols(v.Records()))
	assert.Equal(t, map[string]bool{"bulk": true, "spatial": false}, v.Criteria().Datasets)

	v.SetDatasets(map[string]bool{"bulk": true, "spatial": true})
	v.Flush()
	assert.Len(t, v.Records(), 5)
}

func TestRangeAndReset(t *testing.T) {
	lo := 1.0
	v := portal.NewGeneView(store())
	v.SetRange(record.FieldAbsLogFC, &lo, nil)
	v.Flush()
	assert.Equal(t, []string{"Cacna1g", "Grin2b", "Kcnq2"}, symbols(v.Records()))

	v.ResetFilters()
	assert.Len(t, v.Records(), 5)
	assert.True(t, v.Snapshot().Criteria.IsDefault())
}

func TestDebouncedLastWriteWins(t *testing.T) {
	v := portal.NewGeneView(store(), portal.OptDebounce(20*time.Millisecond))

	var mu sync.Mutex
	var snaps []portal.Snapshot[record.Gene]
	v.Subscribe(func(s portal.Snapshot[record.Gene]) {
		mu.Lock()
		snaps = append(snaps, s)
		mu.Unlock()
	})

	for _, s := range []string{"c", "ca", "cac", "grin"} {
		v.SetSearchTerm(s)
	}
	assert.Equal(t, "grin", v.Criteria().SearchTerm)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(snaps) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"Grin2b"}, symbols(snaps[0].Records))
	assert.Equal(t, "grin", snaps[0].Criteria.SearchTerm)
}

func TestStoreIsNotMutated(t *testing.T) {
	s := store()
	v := portal.NewGeneView(s)
	recs := v.Records()
	recs[0].Symbol = "changed"
	recs[0].Datasets["bulk"] = record.Observation{}

	g, ok := s.Get("Cacna1g")
	require.True(t, ok)
	assert.Equal(t, "Cacna1g", g.Symbol)
	assert.Equal(t, 2.0, g.Datasets["bulk"].LogFC)
}

func TestExport(t *testing.T) {
	v := portal.NewGeneView(store(), portal.OptPageSize(1))
	v.SetCategory(filter.CategoryRegulation, "up")
	v.Flush()

	txt, err := v.Export(export.GeneColumns([]string{"bulk"}), ',')
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(txt)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4, "export covers all pages")
	assert.Equal(t, "Cacna1g", rows[1][0])
	assert.Equal(t, "Kcnq2", rows[3][0])
	assert.Equal(t, "", rows[3][4])
}

func TestPublicationView(t *testing.T) {
	y := 2020
	pubs := []record.Publication{
		{ID: 1, Ident: "1", Title: "B", Citations: 5},
		{ID: 2, Ident: "2", Title: "a", Citations: 50, Year: &y},
	}
	s := record.NewStore(record.Batch[record.Publication]{Source: "p", Records: pubs})
	v := portal.NewPublicationView(s, portal.OptSort(record.FieldCitations, sorter.Desc))
	assert.Equal(t, 2, v.Records()[0].ID)

	v.SortBy(record.FieldTitle, sorter.Asc)
	assert.Equal(t, 2, v.Records()[0].ID)
	v.SortBy(record.FieldYear, sorter.Desc)
	assert.Equal(t, []int{2, 1}, []int{v.Records()[0].ID, v.Records()[1].ID})
}
