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
	"context"
	"os"
	"strings"
	"time"

	"github.com/gnames/degportal/pkg/export"
	"github.com/gnames/degportal/pkg/filter"
	"github.com/gnames/degportal/pkg/record"
	"github.com/gnames/degportal/pkg/sorter"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var publicationCategoryFlags = []categoryFlag{
	{"quartile", filter.CategoryQuartile, "journal quartile: Q1..Q4, unranked or all"},
	{"study-type", filter.CategoryStudyType, "study type, 'other' for unlisted types"},
	{"journal", filter.CategoryJournal, "journal name"},
}

var publicationRangeFlags = []rangeFlag{
	{"min-year", record.FieldYear, false, "earliest publication year"},
	{"max-year", record.FieldYear, true, "latest publication year"},
	{"min-citations", record.FieldCitations, false, "minimum number of citations"},
}

// getPublicationsCmd returns the publications command.
func getPublicationsCmd() *cobra.Command {
	var flags viewFlags

	publicationsCmd := &cobra.Command{
		Use:     "publications [search term]",
		Aliases: []string{"pubs"},
		Short:   "Search and filter curated publications",
		Long: `Search, filter, sort and page publications of all publication
documents in catalog.yaml.

The search term matches titles, authors, abstracts, journals and
summaries, ignoring case.

Sort columns: id, title, authors, year, citations, journal, quartile,
study_type, doi.

Examples:
  degportal publications dravet
  degportal publications --quartile Q1 --min-year 2020 -s citations --desc
  degportal pubs --study-type RCT -f tsv -a`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPublications(cmd, args, &flags)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	flags.register(publicationsCmd, "sort column, for example year or citations")
	registerCategories(publicationsCmd, publicationCategoryFlags)
	registerRanges(publicationsCmd, publicationRangeFlags)

	return publicationsCmd
}

func runPublications(cmd *cobra.Command, args []string, flags *viewFlags) error {
	ctx := context.Background()

	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	store, err := s.publications(ctx)
	if err != nil {
		return err
	}

	c := publicationCriteria(cmd.Flags(), args)
	res := sorter.Apply(filter.Publications(store.Records(), c), flags.sortState(),
		record.PublicationField)
	columns := export.PublicationColumns()

	if flags.output != "" {
		_, err = writeFile(flags.output, "publications", res, columns,
			record.PublicationField, flags.format, time.Now())
		return err
	}
	return showPage(os.Stdout, res, columns, record.PublicationField, flags,
		cfg.Browse.PageSize)
}

func publicationCriteria(fs *pflag.FlagSet, args []string) filter.Criteria {
	c := filter.Criteria{SearchTerm: strings.Join(args, " ")}
	c = applyCategories(fs, c, publicationCategoryFlags)
	return applyRanges(fs, c, publicationRangeFlags)
}
