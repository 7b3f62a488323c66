package record

import (
	"math"
	"strings"
)

// Gene fields understood by GeneField. Dataset fields are addressed as
// "<dataset>.<field>", for example "bulk.log_fc".
const (
	FieldSymbol      = "symbol"
	FieldName        = "name"
	FieldEnsemblID   = "ensembl_id"
	FieldSeizureGene = "seizure_gene"
	FieldDatasetsNum = "datasets_number"
	FieldMaxAbsLogFC = "max_abs_log_fc"
	FieldMinAdjP     = "min_adj_p_val"

	FieldLogFC       = "log_fc"
	FieldAbsLogFC    = "abs_log_fc"
	FieldAdjP        = "adj_p_val"
	FieldPValue      = "p_val"
	FieldRegulation  = "regulation"
	FieldSignificant = "significant"
)

// Publication fields understood by PublicationField.
const (
	FieldID            = "id"
	FieldTitle         = "title"
	FieldAuthors       = "authors"
	FieldYear          = "year"
	FieldCitations     = "citations"
	FieldAbstract      = "abstract"
	FieldSummary       = "summary"
	FieldJournal       = "journal"
	FieldQuartile      = "quartile"
	FieldStudyType     = "study_type"
	FieldDOI           = "doi"
	FieldConsensusLink = "consensus_link"
)

// DatasetField builds a gene field name for a dataset.
func DatasetField(dataset, field string) string {
	return dataset + "." + field
}

// GeneField returns the value of a field, or nil when the gene has no
// value for it. Values are string, float64, int or bool.
func GeneField(g Gene, field string) any {
	switch field {
	case FieldSymbol:
		return str(g.Symbol)
	case FieldName:
		return str(g.Name)
	case FieldEnsemblID:
		return str(g.EnsemblID)
	case FieldSeizureGene:
		return g.SeizureGene
	case FieldDatasetsNum:
		return len(g.Datasets)
	case FieldMaxAbsLogFC:
		if len(g.Datasets) == 0 {
			return nil
		}
		res := 0.0
		for _, v := range g.Datasets {
			res = math.Max(res, math.Abs(v.LogFC))
		}
		return res
	case FieldMinAdjP:
		if len(g.Datasets) == 0 {
			return nil
		}
		res := math.Inf(1)
		for _, v := range g.Datasets {
			res = math.Min(res, v.AdjPValue)
		}
		return res
	}

	dataset, sub, ok := strings.Cut(field, ".")
	if !ok {
		return nil
	}
	obs, ok := g.Datasets[dataset]
	if !ok {
		return nil
	}
	return ObservationField(obs, sub)
}

// ObservationField returns the value of an observation field or nil.
func ObservationField(obs Observation, field string) any {
	switch field {
	case FieldLogFC:
		return obs.LogFC
	case FieldAbsLogFC:
		return math.Abs(obs.LogFC)
	case FieldAdjP:
		return obs.AdjPValue
	case FieldPValue:
		if obs.PValue == nil {
			return nil
		}
		return *obs.PValue
	case FieldRegulation:
		return string(obs.Regulation)
	case FieldSignificant:
		return obs.Significant
	default:
		return nil
	}
}

// PublicationField returns the value of a field, or nil when the
// publication has no value for it.
func PublicationField(p Publication, field string) any {
	switch field {
	case FieldID:
		if p.ID == 0 {
			return nil
		}
		return p.ID
	case FieldTitle:
		return str(p.Title)
	case FieldAuthors:
		return str(p.Authors)
	case FieldYear:
		if p.Year == nil {
			return nil
		}
		return *p.Year
	case FieldCitations:
		return p.Citations
	case FieldAbstract:
		return str(p.Abstract)
	case FieldSummary:
		return str(p.Summary)
	case FieldJournal:
		return str(p.Journal)
	case FieldQuartile:
		return string(p.Quartile)
	case FieldStudyType:
		return str(p.StudyType)
	case FieldDOI:
		return str(p.DOI)
	case FieldConsensusLink:
		return str(p.ConsensusLink)
	default:
		return nil
	}
}

// str treats empty optional text as absent.
func str(s string) any {
	if s == "" {
		return nil
	}
	return s
}
