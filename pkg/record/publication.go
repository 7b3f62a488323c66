package record

import "slices"

// Quartile is a journal SJR quartile rank.
type Quartile string

const (
	Q1       Quartile = "Q1"
	Q2       Quartile = "Q2"
	Q3       Quartile = "Q3"
	Q4       Quartile = "Q4"
	Unranked Quartile = "unranked"
)

// Quartiles lists ranks in display order.
var Quartiles = []Quartile{Q1, Q2, Q3, Q4, Unranked}

// KnownStudyTypes is the closed set of study types with their own filter
// option. Anything else is grouped as "other".
var KnownStudyTypes = []string{
	"RCT",
	"Meta-Analysis",
	"Systematic Review",
	"Review",
	"Observational Study",
	"Case Report",
	"Animal Study",
}

// OtherStudyType is the category of study types outside KnownStudyTypes.
const OtherStudyType = "other"

// IsKnownStudyType reports if a study type label belongs to the known set.
func IsKnownStudyType(s string) bool {
	return slices.Contains(KnownStudyTypes, s)
}

// Publication is a canonical publication record.
type Publication struct {
	// ID is the numeric identifier from the source, 0 if absent.
	ID int `json:"id"`
	// Ident is the identity key within a Store.
	Ident string `json:"key"`
	// Title of the publication.
	Title string `json:"title"`
	// Authors is a comma-joined author list.
	Authors string `json:"authors,omitempty"`
	// Year of publication, nil if unknown.
	Year *int `json:"year,omitempty"`
	// Citations count, never negative.
	Citations int `json:"citations"`
	// Abstract text.
	Abstract string `json:"abstract,omitempty"`
	// Summary is the short takeaway.
	Summary string `json:"summary,omitempty"`
	// Journal name.
	Journal string `json:"journal,omitempty"`
	// Quartile of the journal.
	Quartile Quartile `json:"quartile"`
	// StudyType is a free text label.
	StudyType string `json:"study_type,omitempty"`
	// DOI is the digital object identifier.
	DOI string `json:"doi,omitempty"`
	// ConsensusLink is an external cross-reference link.
	ConsensusLink string `json:"consensus_link,omitempty"`
}

// Key implements Keyed.
func (p Publication) Key() string {
	return p.Ident
}

// Clone implements Keyed.
func (p Publication) Clone() Publication {
	res := p
	if p.Year != nil {
		y := *p.Year
		res.Year = &y
	}
	return res
}

// StudyCategory returns the study type if it is known, or OtherStudyType.
func (p Publication) StudyCategory() string {
	if IsKnownStudyType(p.StudyType) {
		return p.StudyType
	}
	return OtherStudyType
}
