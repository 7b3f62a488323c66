package filter

import (
	"fmt"
	"strings"

	"github.com/gnames/degportal/pkg/record"
)

// Category fields of publication views.
const (
	CategoryQuartile  = "quartile"
	CategoryStudyType = "study_type"
	CategoryYear      = "year"
	CategoryJournal   = "journal"
)

// Publications filters publication records. Dataset toggles of the
// criteria do not apply to publications.
func Publications(records []record.Publication, c Criteria) []record.Publication {
	return Apply(records, PublicationPredicates(c)...)
}

// PublicationPredicates builds predicates of all active filters.
func PublicationPredicates(c Criteria) []Predicate[record.Publication] {
	var res []Predicate[record.Publication]

	if term := normTerm(c.SearchTerm); term != "" {
		res = append(res, func(p record.Publication) bool {
			return containsAny(term,
				p.Title, p.Authors, p.Abstract, p.Journal, p.Summary)
		})
	}

	for _, v := range c.Categories {
		if v.Active() {
			res = append(res, publicationCategory(v))
		}
	}

	for _, v := range c.Ranges {
		if v.Active() {
			r := v
			res = append(res, func(p record.Publication) bool {
				f, ok := number(record.PublicationField(p, r.Field))
				return ok && r.Contains(f)
			})
		}
	}
	return res
}

func publicationCategory(cat Category) Predicate[record.Publication] {
	val := strings.TrimSpace(cat.Value)
	switch cat.Field {
	case CategoryQuartile:
		return func(p record.Publication) bool {
			return strings.EqualFold(string(p.Quartile), val)
		}
	case CategoryStudyType:
		if strings.EqualFold(val, record.OtherStudyType) {
			return func(p record.Publication) bool {
				return p.StudyCategory() == record.OtherStudyType
			}
		}
		return func(p record.Publication) bool {
			return strings.EqualFold(p.StudyType, val)
		}
	case CategoryYear:
		return func(p record.Publication) bool {
			return p.Year != nil && fmt.Sprint(*p.Year) == val
		}
	case CategoryJournal:
		return func(p record.Publication) bool {
			return strings.EqualFold(p.Journal, val)
		}
	default:
		return none[record.Publication]
	}
}
