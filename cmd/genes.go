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
	"slices"
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

var geneCategoryFlags = []categoryFlag{
	{"regulation", filter.CategoryRegulation, "regulation: up, down or all"},
	{"significance", filter.CategorySignificance,
		"significance: significant, not_significant or all"},
	{"seizure", filter.CategorySeizureGene, "seizure gene: yes, no or all"},
}

var geneRangeFlags = []rangeFlag{
	{"min-log-fc", record.FieldLogFC, false, "minimum log2 fold change"},
	{"max-log-fc", record.FieldLogFC, true, "maximum log2 fold change"},
	{"min-abs-log-fc", record.FieldAbsLogFC, false, "minimum |log2 fold change|"},
	{"max-adj-p", record.FieldAdjP, true, "maximum adjusted p-value"},
}

// getGenesCmd returns the genes command.
func getGenesCmd() *cobra.Command {
	var (
		flags    viewFlags
		datasets []string
	)

	genesCmd := &cobra.Command{
		Use:   "genes [search term]",
		Short: "Search and filter differentially expressed genes",
		Long: `Search, filter, sort and page genes of all gene documents in
catalog.yaml.

The search term matches symbols, names and Ensembl IDs, ignoring case.
Per-dataset filters (regulation, significance, fold change, p-value)
match a gene when any enabled dataset satisfies them. --datasets enables
only the listed datasets and keeps genes observed in at least one of them.

Sort columns: symbol, name, ensembl_id, seizure_gene, datasets_number,
max_abs_log_fc, min_adj_p_val, or <dataset>.<field> with field one of
log_fc, abs_log_fc, adj_p_val, p_val, regulation, significant.

Examples:
  degportal genes scn
  degportal genes --regulation up --significance significant
  degportal genes --datasets bulk_rnaseq --min-abs-log-fc 1 -s bulk_rnaseq.log_fc --desc
  degportal genes --seizure yes -o .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runGenes(cmd, args, &flags, datasets)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	flags.register(genesCmd, "sort column, for example symbol or bulk.log_fc")
	registerCategories(genesCmd, geneCategoryFlags)
	registerRanges(genesCmd, geneRangeFlags)
	genesCmd.Flags().StringSliceVarP(&datasets, "datasets", "d", nil,
		"enabled datasets (empty = all)")

	return genesCmd
}

func runGenes(
	cmd *cobra.Command,
	args []string,
	flags *viewFlags,
	datasets []string,
) error {
	ctx := context.Background()

	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	store, err := s.genes(ctx)
	if err != nil {
		return err
	}
	names := record.DatasetNames(store)

	c := geneCriteria(cmd.Flags(), args, names, datasets)
	res := sorter.Apply(filter.Genes(store.Records(), c), flags.sortState(), record.GeneField)
	columns := export.GeneColumns(names)

	if flags.output != "" {
		_, err = writeFile(flags.output, "genes", res, columns, record.GeneField,
			flags.format, time.Now())
		return err
	}
	return showPage(os.Stdout, res, columns, record.GeneField, flags, cfg.Browse.PageSize)
}

// geneCriteria builds filter criteria from the command line.
func geneCriteria(
	fs *pflag.FlagSet,
	args []string,
	known []string,
	enabled []string,
) filter.Criteria {
	c := filter.Criteria{SearchTerm: strings.Join(args, " ")}
	c = applyCategories(fs, c, geneCategoryFlags)
	c = applyRanges(fs, c, geneRangeFlags)

	if len(enabled) > 0 {
		c.Datasets = make(map[string]bool, len(known))
		for _, v := range known {
			c.Datasets[v] = false
		}
		for _, v := range enabled {
			if !slices.Contains(known, v) {
				gn.Warn("Unknown dataset <em>%s</em>, known datasets: %s",
					v, strings.Join(known, ", "))
			}
			c.Datasets[v] = true
		}
	}
	return c
}
