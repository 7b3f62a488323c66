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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/degportal/internal/ioweb"
	"github.com/gnames/degportal/pkg/export"
	"github.com/gnames/degportal/pkg/filter"
	"github.com/gnames/degportal/pkg/portal"
	"github.com/gnames/degportal/pkg/record"
	"github.com/gnames/degportal/pkg/sorter"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

const browseHelp = `Commands:
  search [term]              set the search term, empty clears it
  filter <field> <value>     set a category filter, 'all' clears it
  range <field> <min> <max>  set a numeric filter, '-' leaves a bound open
  datasets <a,b|all>         enable only the listed datasets (genes)
  sort <column> [asc|desc]   sort, without a direction the column toggles
  next, prev, page <n>       move between pages
  size <n>                   change the page size
  reset                      drop all filters
  export <file|.> [csv|tsv]  write all filtered records to a file
  help                       show this text
  quit                       leave the session`

// getBrowseCmd returns the browse command.
func getBrowseCmd() *cobra.Command {
	browseCmd := &cobra.Command{
		Use:   "browse genes|publications",
		Short: "Interactive session over genes or publications",
		Long: `Start a line-oriented session over one view of the portal.
Each command changes the view and prints the current page.

` + browseHelp,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"genes", "publications"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBrowse(args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return browseCmd
}

func runBrowse(kind string) error {
	ctx := context.Background()

	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := []portal.Option{
		portal.OptPageSize(cfg.Browse.PageSize),
		portal.OptDebounce(time.Duration(cfg.Browse.DebounceMs) * time.Millisecond),
	}

	switch kind {
	case "genes":
		store, err := s.genes(ctx)
		if err != nil {
			return err
		}
		names := record.DatasetNames(store)
		b := &browser[record.Gene]{
			view:     portal.NewGeneView(store, opts...),
			columns:  export.GeneColumns(names),
			value:    record.GeneField,
			prefix:   "genes",
			datasets: names,
		}
		return b.run(os.Stdin, os.Stdout)
	case "publications", "pubs":
		store, err := s.publications(ctx)
		if err != nil {
			return err
		}
		b := &browser[record.Publication]{
			view:    portal.NewPublicationView(store, opts...),
			columns: export.PublicationColumns(),
			value:   record.PublicationField,
			prefix:  "publications",
		}
		return b.run(os.Stdin, os.Stdout)
	default:
		return fmt.Errorf("unknown view %q, use genes or publications", kind)
	}
}

// browser reads commands line by line and applies them to a view.
type browser[T record.Keyed[T]] struct {
	view     *portal.View[T]
	columns  []export.Column
	value    export.Value[T]
	prefix   string
	datasets []string
	now      func() time.Time
}

func (b *browser[T]) run(in io.Reader, out io.Writer) error {
	defer b.view.Close()

	if err := b.show(out); err != nil {
		return err
	}
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		quit, err := b.exec(out, strings.Fields(sc.Text()))
		if err != nil {
			fmt.Fprintln(out, ioweb.Message(err))
			continue
		}
		if quit {
			return nil
		}
	}
}

// exec applies one command. It returns true when the session ends.
func (b *browser[T]) exec(out io.Writer, words []string) (bool, error) {
	if len(words) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(words[0]), words[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(out, browseHelp)
		return false, nil
	case "search":
		b.view.SetSearchTerm(strings.Join(args, " "))
	case "filter":
		if len(args) < 2 {
			return false, usage("filter <field> <value>")
		}
		b.view.SetCategory(args[0], strings.Join(args[1:], " "))
	case "range":
		if len(args) != 3 {
			return false, usage("range <field> <min> <max>")
		}
		b.view.SetRange(args[0], filter.ParseBound(args[1]), filter.ParseBound(args[2]))
	case "datasets":
		if len(args) != 1 {
			return false, usage("datasets <a,b|all>")
		}
		b.view.SetDatasets(b.toggles(args[0]))
	case "sort":
		switch len(args) {
		case 1:
			b.view.Sort(args[0])
		case 2:
			b.view.SortBy(args[0], sorter.ParseDirection(args[1]))
		default:
			return false, usage("sort <column> [asc|desc]")
		}
	case "next", "n":
		if !b.view.Next() {
			return false, fmt.Errorf("already on the last page")
		}
	case "prev", "p":
		if !b.view.Previous() {
			return false, fmt.Errorf("already on the first page")
		}
	case "page", "size":
		if len(args) != 1 {
			return false, usage(cmd + " <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return false, usage(cmd + " <n>")
		}
		ok := b.view.GoToPage
		if cmd == "size" {
			ok = b.view.ChangePageSize
		}
		if !ok(n) {
			return false, fmt.Errorf("invalid %s %d", cmd, n)
		}
	case "reset":
		b.view.ResetFilters()
	case "export":
		return false, b.export(args)
	default:
		return false, fmt.Errorf("unknown command %q, type help", cmd)
	}

	b.view.Flush()
	return false, b.show(out)
}

// toggles turns "a,b" into dataset toggles; "all" enables every dataset.
func (b *browser[T]) toggles(list string) map[string]bool {
	if strings.EqualFold(list, filter.All) {
		return nil
	}
	res := make(map[string]bool, len(b.datasets))
	for _, v := range b.datasets {
		res[v] = false
	}
	for _, v := range strings.Split(list, ",") {
		if v = strings.TrimSpace(v); v != "" {
			res[v] = true
		}
	}
	return res
}

func (b *browser[T]) export(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return usage("export <file|.> [csv|tsv]")
	}
	format := ""
	if len(args) == 2 {
		if _, err := export.ParseFormat(args[1]); err != nil {
			return err
		}
		format = args[1]
	}
	now := time.Now
	if b.now != nil {
		now = b.now
	}
	b.view.Flush()
	_, err := writeFile(args[0], b.prefix, b.view.Records(), b.columns, b.value,
		format, now())
	return err
}

func (b *browser[T]) show(out io.Writer) error {
	snap := b.view.Snapshot()
	if err := table(out, snap.Records, b.columns, b.value); err != nil {
		return err
	}
	line := fmt.Sprintf("page %d of %d, %s",
		snap.Page.CurrentPage, max(1, snap.Page.TotalPages), snap.Range)
	if snap.Sort.Column != "" {
		line += fmt.Sprintf(", sorted by %s %s", snap.Sort.Column, snap.Sort.Direction)
	}
	_, err := fmt.Fprintln(out, line)
	return err
}

func usage(s string) error {
	return fmt.Errorf("usage: %s", s)
}
