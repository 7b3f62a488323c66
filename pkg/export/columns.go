package export

import "github.com/gnames/degportal/pkg/record"

// GeneColumns is the default gene table: identity columns followed by the
// observation columns of every dataset in the given order.
func GeneColumns(datasets []string) []Column {
	res := []Column{
		{record.FieldSymbol, "Symbol"},
		{record.FieldName, "Name"},
		{record.FieldEnsemblID, "Ensembl ID"},
		{record.FieldSeizureGene, "Seizure Gene"},
	}
	for _, ds := range datasets {
		res = append(res,
			Column{record.DatasetField(ds, record.FieldLogFC), ds + " log2FC"},
			Column{record.DatasetField(ds, record.FieldAdjP), ds + " adj.P"},
			Column{record.DatasetField(ds, record.FieldRegulation), ds + " Regulation"},
			Column{record.DatasetField(ds, record.FieldSignificant), ds + " Significant"},
		)
	}
	return res
}

// PublicationColumns is the default publication table.
func PublicationColumns() []Column {
	return []Column{
		{record.FieldID, "ID"},
		{record.FieldTitle, "Title"},
		{record.FieldAuthors, "Authors"},
		{record.FieldYear, "Year"},
		{record.FieldJournal, "Journal"},
		{record.FieldQuartile, "Quartile"},
		{record.FieldStudyType, "Study Type"},
		{record.FieldCitations, "Citations"},
		{record.FieldDOI, "DOI"},
		{record.FieldSummary, "Summary"},
		{record.FieldConsensusLink, "Consensus Link"},
	}
}
