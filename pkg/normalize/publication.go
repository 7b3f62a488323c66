package normalize

import (
	"strconv"
	"strings"

	"github.com/gnames/degportal/pkg/record"
)

// Publication converts one raw publication into a canonical publication.
// A record without a numeric id gets an identity key generated from its
// DOI or title.
func Publication(raw map[string]any) record.Publication {
	var res record.Publication

	v, _ := PublicationTable.Lookup(raw, KeyID)
	if id, ok := toInt(v); ok && id > 0 {
		res.ID = id
	}

	v, _ = PublicationTable.Lookup(raw, KeyTitle)
	res.Title = toString(v)
	v, _ = PublicationTable.Lookup(raw, KeyAuthors)
	res.Authors = toAuthors(v)

	v, _ = PublicationTable.Lookup(raw, KeyYear)
	if y, ok := toInt(v); ok && y > 0 {
		res.Year = &y
	}

	v, _ = PublicationTable.Lookup(raw, KeyCitations)
	if c, ok := toInt(v); ok && c > 0 {
		res.Citations = c
	}

	v, _ = PublicationTable.Lookup(raw, KeyAbstract)
	res.Abstract = toString(v)
	v, _ = PublicationTable.Lookup(raw, KeySummary)
	res.Summary = toString(v)
	v, _ = PublicationTable.Lookup(raw, KeyJournal)
	res.Journal = toString(v)
	v, _ = PublicationTable.Lookup(raw, KeyQuartile)
	res.Quartile = quartile(toString(v))
	v, _ = PublicationTable.Lookup(raw, KeyStudyType)
	res.StudyType = toString(v)
	v, _ = PublicationTable.Lookup(raw, KeyDOI)
	res.DOI = toString(v)
	v, _ = PublicationTable.Lookup(raw, KeyConsensusLink)
	res.ConsensusLink = toString(v)

	if res.ID > 0 {
		res.Ident = strconv.Itoa(res.ID)
	} else {
		res.Ident = "pub-" + fallbackKey(raw, res.DOI, res.Title)
	}
	return res
}

// Publications normalizes all raw publications of a document in order.
func Publications(raws []map[string]any) []record.Publication {
	res := make([]record.Publication, len(raws))
	for i := range raws {
		res[i] = Publication(raws[i])
	}
	return res
}

// quartile accepts "Q1", "q1" or "1" spellings.
func quartile(s string) record.Quartile {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "Q") {
		s = "Q" + s
	}
	switch q := record.Quartile(s); q {
	case record.Q1, record.Q2, record.Q3, record.Q4:
		return q
	default:
		return record.Unranked
	}
}
