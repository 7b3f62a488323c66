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
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/degportal/pkg/export"
	"github.com/gnames/degportal/pkg/paginate"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// table is the terminal rendering of records, a header line and one
// aligned line per record.
func table[T any](
	w io.Writer,
	records []T,
	columns []export.Column,
	value export.Value[T],
) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := make([]string, len(columns))
	for i, c := range columns {
		row[i] = c.DisplayHeader
	}
	fmt.Fprintln(tw, strings.Join(row, "\t"))
	for _, r := range records {
		for i, c := range columns {
			row[i] = cell(export.Render(value(r, c.SourceField)))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

const maxCell = 40

// cell shortens long values so a table row fits a terminal line.
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxCell {
		return string(r[:maxCell-1]) + "…"
	}
	return s
}

// render writes records in the requested format. An empty format is a
// table.
func render[T any](
	w io.Writer,
	records []T,
	columns []export.Column,
	value export.Value[T],
	format string,
) error {
	if format == "" {
		return table(w, records, columns, value)
	}

	f, _ := gnfmt.NewFormat(strings.ToLower(format))
	switch f {
	case gnfmt.CSV, gnfmt.TSV:
		return export.Write(w, records, columns, value, export.Separator(f))
	case gnfmt.CompactJSON, gnfmt.PrettyJSON:
		enc := gnfmt.GNjson{Pretty: f == gnfmt.PrettyJSON}
		if records == nil {
			records = []T{}
		}
		bs, err := enc.Encode(records)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(bs))
		return err
	default:
		_, err := export.ParseFormat(format)
		return err
	}
}

// showPage renders one page of the records, or all of them.
func showPage[T any](
	w io.Writer,
	records []T,
	columns []export.Column,
	value export.Value[T],
	flags *viewFlags,
	defaultSize int,
) error {
	if flags.all {
		return render(w, records, columns, value, flags.format)
	}

	size := flags.pageSize
	if size <= 0 {
		size = defaultSize
	}
	p := paginate.New(records, size)
	if flags.page != 1 && !p.GoToPage(flags.page) {
		gn.Warn("Page <em>%d</em> does not exist, showing page 1 of %d",
			flags.page, p.TotalPages())
	}
	if err := render(w, p.Page(), columns, value, flags.format); err != nil {
		return err
	}
	if flags.format == "" {
		st := p.State()
		gn.Info("Page %d of %d, %s", st.CurrentPage, max(1, st.TotalPages), p.Range())
	}
	return nil
}

// writeFile exports all records into a delimited file. The format is TSV
// when requested or implied by the file extension, CSV otherwise.
func writeFile[T any](
	path string,
	prefix string,
	records []T,
	columns []export.Column,
	value export.Value[T],
	format string,
	now time.Time,
) (string, error) {
	f := gnfmt.CSV
	tf, err := gnfmt.NewFormat(strings.ToLower(format))
	if (err == nil && tf == gnfmt.TSV) || strings.HasSuffix(path, ".tsv") {
		f = gnfmt.TSV
	}
	if path == "." {
		path = export.FileName(prefix, now, f)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", export.CreateFileError(path, err)
	}

	err = export.Write(file, records, columns, value, export.Separator(f))
	if cerr := file.Close(); err == nil && cerr != nil {
		err = export.CreateFileError(path, cerr)
	}
	if err != nil {
		return "", err
	}
	gn.Info("Exported <em>%s</em> %s to <em>%s</em>",
		humanize.Comma(int64(len(records))), prefix, path)
	return path, nil
}
