package ioweb

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/degportal/pkg/filter"
	"github.com/gnames/degportal/pkg/sorter"
)

var (
	geneCategories = []string{
		filter.CategoryRegulation,
		filter.CategorySignificance,
		filter.CategorySeizureGene,
	}
	publicationCategories = []string{
		filter.CategoryQuartile,
		filter.CategoryStudyType,
		filter.CategoryYear,
		filter.CategoryJournal,
	}
)

// query is a parsed view request.
type query struct {
	criteria filter.Criteria
	sort     sorter.State
	page     int
	pageSize int
}

// parseQuery reads criteria, sort and page from URL parameters. Unknown
// parameters are ignored, numeric parameters that do not parse are
// disabled.
func parseQuery(
	v url.Values,
	categories []string,
	datasets []string,
	defaultPageSize int,
) query {
	var res query
	res.criteria.SearchTerm = v.Get("q")

	for _, c := range categories {
		if val := v.Get(c); val != "" {
			res.criteria = res.criteria.SetCategory(c, val)
		}
	}

	if v.Has("datasets") {
		res.criteria.Datasets = parseDatasets(v.Get("datasets"), datasets)
	}

	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if field, ok := strings.CutPrefix(k, "min_"); ok && field != "" {
			r := rangeOf(res.criteria, field)
			res.criteria = res.criteria.SetRange(field, filter.ParseBound(v.Get(k)), r.Max)
		}
		if field, ok := strings.CutPrefix(k, "max_"); ok && field != "" {
			r := rangeOf(res.criteria, field)
			res.criteria = res.criteria.SetRange(field, r.Min, filter.ParseBound(v.Get(k)))
		}
	}

	if col := v.Get("sort"); col != "" {
		res.sort = sorter.State{Column: col, Direction: sorter.ParseDirection(v.Get("dir"))}
	}

	res.page = positive(v.Get("page"), 1)
	res.pageSize = min(positive(v.Get("page_size"), defaultPageSize), maxPageSize)
	return res
}

// parseDatasets turns a comma list of enabled datasets into toggles of
// all known datasets.
func parseDatasets(list string, known []string) map[string]bool {
	res := make(map[string]bool, len(known))
	for _, k := range known {
		res[k] = false
	}
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			res[name] = true
		}
	}
	return res
}

func rangeOf(c filter.Criteria, field string) filter.Range {
	for _, r := range c.Ranges {
		if r.Field == field {
			return r
		}
	}
	return filter.Range{Field: field}
}

func positive(s string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || i < 1 {
		return def
	}
	return i
}
