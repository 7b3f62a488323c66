package chart

import (
	"math"
	"slices"
	"strconv"

	"github.com/gnames/degportal/pkg/record"
)

// Colors of regulation series.
const (
	ColorUp      = "#d62728"
	ColorDown    = "#1f77b4"
	ColorNeutral = "#9e9e9e"
)

// minAdjP replaces adjusted p-values of zero, so -log10 stays finite.
const minAdjP = 1e-300

// Volcano plots the fold change of genes in a dataset against -log10 of
// the adjusted p-value. Genes split into significant up, significant down
// and not significant series. Genes absent from the dataset are skipped.
func Volcano(genes []record.Gene, dataset string, th record.Thresholds) Config {
	up := Series{Name: "Up", Color: ColorUp, Points: []Point{}}
	down := Series{Name: "Down", Color: ColorDown, Points: []Point{}}
	ns := Series{Name: "Not significant", Color: ColorNeutral, Points: []Point{}}

	for _, g := range genes {
		obs, ok := g.Observation(dataset)
		if !ok {
			continue
		}
		p := Point{
			X:     obs.LogFC,
			Y:     -math.Log10(math.Max(obs.AdjPValue, minAdjP)),
			Label: g.Symbol,
		}
		switch {
		case !th.IsSignificant(obs.AdjPValue, obs.LogFC):
			ns.Points = append(ns.Points, p)
		case obs.Regulation == record.Up:
			up.Points = append(up.Points, p)
		default:
			down.Points = append(down.Points, p)
		}
	}

	return Config{
		Kind:   Scatter,
		Title:  "Volcano plot: " + dataset,
		XLabel: "log2 fold change",
		YLabel: "-log10 adjusted p-value",
		Series: []Series{up, down, ns},
	}
}

// RegulationSummary counts significant up and down regulated genes per
// dataset as a stacked bar chart.
func RegulationSummary(genes []record.Gene, datasets []string) Config {
	up := Series{Name: "Up", Color: ColorUp, Values: make([]float64, len(datasets))}
	down := Series{Name: "Down", Color: ColorDown, Values: make([]float64, len(datasets))}

	for _, g := range genes {
		for i, ds := range datasets {
			obs, ok := g.Observation(ds)
			if !ok || !obs.Significant {
				continue
			}
			if obs.Regulation == record.Up {
				up.Values[i]++
			} else {
				down.Values[i]++
			}
		}
	}

	return Config{
		Kind:    Bar,
		Title:   "Significant genes per dataset",
		YLabel:  "genes",
		Labels:  slices.Clone(datasets),
		Series:  []Series{up, down},
		Stacked: true,
	}
}

// PublicationsByYear counts publications per year in ascending order.
// Publications without a year are left out.
func PublicationsByYear(pubs []record.Publication) Config {
	counts := make(map[int]float64)
	for _, p := range pubs {
		if p.Year != nil {
			counts[*p.Year]++
		}
	}
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	slices.Sort(years)

	labels := make([]string, len(years))
	values := make([]float64, len(years))
	for i, y := range years {
		labels[i] = strconv.Itoa(y)
		values[i] = counts[y]
	}
	return Config{
		Kind:   Bar,
		Title:  "Publications by year",
		YLabel: "publications",
		Labels: labels,
		Series: []Series{{Name: "Publications", Values: values}},
	}
}

// QuartileDistribution counts publications per journal quartile.
func QuartileDistribution(pubs []record.Publication) Config {
	labels := make([]string, len(record.Quartiles))
	values := make([]float64, len(record.Quartiles))
	for i, q := range record.Quartiles {
		labels[i] = string(q)
	}
	for _, p := range pubs {
		if i := slices.Index(record.Quartiles, p.Quartile); i >= 0 {
			values[i]++
		} else {
			values[len(values)-1]++
		}
	}
	return Config{
		Kind:   Pie,
		Title:  "Journal quartiles",
		Labels: labels,
		Series: []Series{{Name: "Publications", Values: values}},
	}
}

// StudyTypeDistribution counts publications per study category. Study
// types without publications are left out.
func StudyTypeDistribution(pubs []record.Publication) Config {
	cats := append(slices.Clone(record.KnownStudyTypes), record.OtherStudyType)
	counts := make(map[string]float64)
	for _, p := range pubs {
		counts[p.StudyCategory()]++
	}

	var labels []string
	var values []float64
	for _, c := range cats {
		if n := counts[c]; n > 0 {
			labels = append(labels, c)
			values = append(values, n)
		}
	}
	return Config{
		Kind:   Doughnut,
		Title:  "Study types",
		Labels: labels,
		Series: []Series{{Name: "Publications", Values: values}},
	}
}
