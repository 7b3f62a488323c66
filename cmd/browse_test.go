package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gnames/degportal/pkg/export"
	"github.com/gnames/degportal/pkg/portal"
	"github.com/gnames/degportal/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var th = record.Thresholds{PValue: 0.05, LogFC: 0.5}

func testBrowser() *browser[record.Gene] {
	obs := func(fc, p float64) record.Observation {
		return record.NewObservation(fc, p, nil, th)
	}
	store := record.NewStore(record.Batch[record.Gene]{
		Source: "bulk",
		Records: []record.Gene{
			{ID: "Scn1a", Symbol: "Scn1a",
				Datasets: map[string]record.Observation{"bulk": obs(2, 0.01)}},
			{ID: "Cacna1g", Symbol: "Cacna1g",
				Datasets: map[string]record.Observation{"bulk": obs(-1, 0.02)}},
			{ID: "Grin2b", Symbol: "Grin2b",
				Datasets: map[string]record.Observation{"spatial": obs(0.1, 0.9)}},
		},
	})
	names := record.DatasetNames(store)
	return &browser[record.Gene]{
		view: portal.NewGeneView(store, portal.OptPageSize(2), portal.OptDebounce(0)),
		columns: []export.Column{
			{SourceField: record.FieldSymbol, DisplayHeader: "Symbol"},
		},
		value:    record.GeneField,
		prefix:   "genes",
		datasets: names,
		now:      func() time.Time { return time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC) },
	}
}

func TestBrowserExec(t *testing.T) {
	tests := []struct {
		msg  string
		cmds []string
		res  []string
	}{
		{"search", []string{"search grin"}, []string{"Grin2b"}},
		{"filter", []string{"filter regulation down"}, []string{"Cacna1g"}},
		{"datasets", []string{"datasets spatial"}, []string{"Grin2b"}},
		{"datasets all", []string{"datasets spatial", "datasets all"}, []string{"Scn1a", "Cacna1g"}},
		{"range", []string{"range bulk.log_fc 0 -"}, []string{"Scn1a"}},
		{"sort", []string{"sort symbol"}, []string{"Cacna1g", "Grin2b"}},
		{"sort desc", []string{"sort symbol desc"}, []string{"Scn1a", "Grin2b"}},
		{"next", []string{"next"}, []string{"Grin2b"}},
		{"page", []string{"page 2"}, []string{"Grin2b"}},
		{"size", []string{"size 5"}, []string{"Scn1a", "Cacna1g", "Grin2b"}},
		{"reset", []string{"search zzz", "reset"}, []string{"Scn1a", "Cacna1g"}},
	}
	for _, v := range tests {
		b := testBrowser()
		var out bytes.Buffer
		for _, c := range v.cmds {
			quit, err := b.exec(&out, strings.Fields(c))
			require.NoError(t, err, v.msg)
			assert.False(t, quit, v.msg)
		}
		var res []string
		for _, g := range b.view.Snapshot().Records {
			res = append(res, g.Symbol)
		}
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestBrowserErrors(t *testing.T) {
	b := testBrowser()
	var out bytes.Buffer
	for _, c := range []string{
		"prev", "page 9", "page x", "size 0", "filter regulation",
		"range bulk.log_fc 1", "sort", "bogus", "export a b c",
	} {
		_, err := b.exec(&out, strings.Fields(c))
		assert.Error(t, err, c)
	}

	quit, err := b.exec(&out, []string{"quit"})
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestBrowserRun(t *testing.T) {
	b := testBrowser()
	in := strings.NewReader("search scn\nbogus\nquit\n")
	var out bytes.Buffer
	require.NoError(t, b.run(in, &out))

	res := out.String()
	assert.Contains(t, res, "page 1 of 2, showing 1-2 of 3")
	assert.Contains(t, res, "page 1 of 1, showing 1-1 of 1")
	assert.Contains(t, res, `unknown command "bogus"`)
}

func TestBrowserExport(t *testing.T) {
	t.Chdir(t.TempDir())
	b := testBrowser()
	var out bytes.Buffer

	_, err := b.exec(&out, []string{"search", "a"})
	require.NoError(t, err)
	_, err = b.exec(&out, []string{"export", ".", "tsv"})
	require.NoError(t, err)

	bs, err := os.ReadFile(filepath.Join(".", "genes_2026-10-14.tsv"))
	require.NoError(t, err)
	assert.Equal(t, "Symbol\nScn1a\nCacna1g\n", string(bs),
		"all filtered records, not only the page")
}
