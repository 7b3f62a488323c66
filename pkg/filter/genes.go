package filter

import (
	"strings"

	"github.com/gnames/degportal/pkg/record"
)

// Category fields of gene views.
const (
	CategoryRegulation   = "regulation"
	CategorySignificance = "significance"
	CategorySeizureGene  = "seizure_gene"
)

// Values of the significance category.
const (
	Significant    = "significant"
	NotSignificant = "not_significant"
)

// Genes filters gene records.
func Genes(records []record.Gene, c Criteria) []record.Gene {
	return Apply(records, GenePredicates(c)...)
}

// GenePredicates builds predicates of all active filters of the criteria.
func GenePredicates(c Criteria) []Predicate[record.Gene] {
	var res []Predicate[record.Gene]

	if term := normTerm(c.SearchTerm); term != "" {
		res = append(res, func(g record.Gene) bool {
			return containsAny(term, g.Symbol, g.Name, g.EnsemblID)
		})
	}

	if !c.allDatasetsEnabled() {
		res = append(res, func(g record.Gene) bool {
			for name := range g.Datasets {
				if c.Datasets[name] {
					return true
				}
			}
			return false
		})
	}

	for _, v := range c.Categories {
		if v.Active() {
			res = append(res, geneCategory(c, v))
		}
	}

	for _, v := range c.Ranges {
		if v.Active() {
			res = append(res, geneRange(c, v))
		}
	}
	return res
}

func geneCategory(c Criteria, cat Category) Predicate[record.Gene] {
	val := strings.ToLower(strings.TrimSpace(cat.Value))
	switch cat.Field {
	case CategoryRegulation:
		return anyObservation(c, func(obs record.Observation) bool {
			return string(obs.Regulation) == val
		})
	case CategorySignificance:
		want, ok := yesNo(val, Significant, NotSignificant)
		if !ok {
			return none[record.Gene]
		}
		return anyObservation(c, func(obs record.Observation) bool {
			return obs.Significant == want
		})
	case CategorySeizureGene:
		want, ok := yesNo(val, "yes", "no")
		if !ok {
			return none[record.Gene]
		}
		return func(g record.Gene) bool {
			return g.SeizureGene == want
		}
	default:
		return none[record.Gene]
	}
}

func geneRange(c Criteria, r Range) Predicate[record.Gene] {
	switch r.Field {
	case record.FieldLogFC, record.FieldAbsLogFC,
		record.FieldAdjP, record.FieldPValue:
		return anyObservation(c, func(obs record.Observation) bool {
			f, ok := number(record.ObservationField(obs, r.Field))
			return ok && r.Contains(f)
		})
	default:
		return func(g record.Gene) bool {
			f, ok := number(record.GeneField(g, r.Field))
			return ok && r.Contains(f)
		}
	}
}

// anyObservation passes genes with at least one observation in an enabled
// dataset that satisfies fn.
func anyObservation(
	c Criteria,
	fn func(record.Observation) bool,
) Predicate[record.Gene] {
	return func(g record.Gene) bool {
		for name, obs := range g.Datasets {
			if c.datasetEnabled(name) && fn(obs) {
				return true
			}
		}
		return false
	}
}

// yesNo maps a categorical value to a boolean. Besides the given spellings
// it accepts yes/no and true/false.
func yesNo(val, yes, no string) (bool, bool) {
	switch val {
	case yes, "yes", "true":
		return true, true
	case no, "no", "false":
		return false, true
	default:
		return false, false
	}
}

func none[T any](T) bool {
	return false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
