/*
Copyright © 2026 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"github.com/gnames/degportal/pkg/filter"
	"github.com/gnames/degportal/pkg/sorter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// viewFlags are flags shared by genes and publications commands.
type viewFlags struct {
	sort     string
	desc     bool
	page     int
	pageSize int
	all      bool
	format   string
	output   string
}

func (f *viewFlags) register(cmd *cobra.Command, sortUsage string) {
	cmd.Flags().StringVarP(&f.sort, "sort", "s", "", sortUsage)
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort in descending order")
	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "page to show")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0,
		"records per page (default from config)")
	cmd.Flags().BoolVarP(&f.all, "all", "a", false, "show all records, no paging")
	cmd.Flags().StringVarP(&f.format, "format", "f", "",
		"output format: csv, tsv, compact, pretty (default is a table)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "",
		"write the filtered records to a file, '.' picks a dated name")
}

func (f *viewFlags) sortState() sorter.State {
	if f.sort == "" {
		return sorter.State{}
	}
	dir := sorter.Asc
	if f.desc {
		dir = sorter.Desc
	}
	return sorter.State{Column: f.sort, Direction: dir}
}

// rangeFlag binds a numeric bound to a filter field.
type rangeFlag struct {
	name  string
	field string
	upper bool
	usage string
}

func registerRanges(cmd *cobra.Command, ranges []rangeFlag) {
	for _, r := range ranges {
		cmd.Flags().String(r.name, "", r.usage)
	}
}

// applyRanges adds bounds of changed range flags to criteria. Values that
// are not numbers disable the bound.
func applyRanges(fs *pflag.FlagSet, c filter.Criteria, ranges []rangeFlag) filter.Criteria {
	for _, r := range ranges {
		if !fs.Changed(r.name) {
			continue
		}
		val, _ := fs.GetString(r.name)
		bound := filter.ParseBound(val)
		cur := currentRange(c, r.field)
		if r.upper {
			c = c.SetRange(r.field, cur.Min, bound)
		} else {
			c = c.SetRange(r.field, bound, cur.Max)
		}
	}
	return c
}

func currentRange(c filter.Criteria, field string) filter.Range {
	for _, v := range c.Ranges {
		if v.Field == field {
			return v
		}
	}
	return filter.Range{Field: field}
}

// categoryFlag binds a string flag to a categorical filter.
type categoryFlag struct {
	name  string
	field string
	usage string
}

func registerCategories(cmd *cobra.Command, cats []categoryFlag) {
	for _, v := range cats {
		cmd.Flags().String(v.name, "", v.usage)
	}
}

func applyCategories(fs *pflag.FlagSet, c filter.Criteria, cats []categoryFlag) filter.Criteria {
	for _, v := range cats {
		if val, _ := fs.GetString(v.name); val != "" {
			c = c.SetCategory(v.field, val)
		}
	}
	return c
}
