// Package normalize maps raw records of source documents onto canonical
// records. Sources disagree on key names and value types; the alias tables
// of this package reconcile them once at load time, so the rest of the
// portal only sees the canonical shape.
//
// Every function here is pure and tolerant: absent or malformed optional
// values become zero values, nothing returns an error.
package normalize

// Canonical keys of raw gene records.
const (
	KeySymbol      = "symbol"
	KeyEnsemblID   = "ensembl_id"
	KeyName        = "name"
	KeySeizureGene = "seizure_gene"
	KeyDatasets    = "datasets"
)

// Canonical keys of raw dataset observations.
const (
	KeyLogFC  = "log_fc"
	KeyAdjP   = "adj_p_val"
	KeyPValue = "p_val"
)

// Canonical keys of raw publications.
const (
	KeyID            = "id"
	KeyTitle         = "title"
	KeyAuthors       = "authors"
	KeyYear          = "year"
	KeyCitations     = "citations"
	KeyAbstract      = "abstract"
	KeySummary       = "summary"
	KeyJournal       = "journal"
	KeyQuartile      = "quartile"
	KeyStudyType     = "study_type"
	KeyDOI           = "doi"
	KeyConsensusLink = "consensus_link"
)

// Field is a canonical key with the raw keys that may carry its value, in
// order of preference.
type Field struct {
	Canonical string
	Aliases   []string
}

// Table is a static normalization table. Raw keys that are not mentioned
// in any Field are dropped.
type Table []Field

// GeneTable maps raw gene keys.
var GeneTable = Table{
	{KeySymbol, []string{"primary_symbol", "symbol", "gene_symbol", "gene"}},
	{KeyEnsemblID, []string{"ensembl_id", "id", "gene_id"}},
	{KeyName, []string{"name", "gene_name", "description"}},
	{KeySeizureGene, []string{"is_seizure_gene", "seizure_gene"}},
	{KeyDatasets, []string{"datasets"}},
}

// ObservationTable maps raw keys of a gene's dataset entry. The derived
// "regulation" and "significant" keys of sources are ignored on purpose,
// both are recomputed from values.
var ObservationTable = Table{
	{KeyLogFC, []string{"logFC", "log2fc", "log2FoldChange", "avg_log2FC", "log_fc"}},
	{KeyAdjP, []string{"adj_p_val", "padj", "adj.P.Val", "p_val_adj", "FDR"}},
	{KeyPValue, []string{"p_val", "pvalue", "P.Value", "PValue"}},
}

// PublicationTable maps raw publication keys.
var PublicationTable = Table{
	{KeyID, []string{"id"}},
	{KeyTitle, []string{"title"}},
	{KeyAuthors, []string{"authors"}},
	{KeyYear, []string{"year"}},
	{KeyCitations, []string{"citations", "citation_count"}},
	{KeyAbstract, []string{"abstract"}},
	{KeySummary, []string{"takeaway", "summary"}},
	{KeyJournal, []string{"journal"}},
	{KeyQuartile, []string{"sjr_quartile", "quartile"}},
	{KeyStudyType, []string{"study_type"}},
	{KeyDOI, []string{"doi"}},
	{KeyConsensusLink, []string{"consensus_link", "url"}},
}

// Lookup returns the value of the first alias of a canonical key that is
// present and not null.
func (t Table) Lookup(raw map[string]any, canonical string) (any, bool) {
	for _, f := range t {
		if f.Canonical != canonical {
			continue
		}
		for _, alias := range f.Aliases {
			if v, ok := raw[alias]; ok && v != nil {
				return v, true
			}
		}
		return nil, false
	}
	return nil, false
}

// Apply returns a map with canonical keys only.
func (t Table) Apply(raw map[string]any) map[string]any {
	res := make(map[string]any, len(t))
	for _, f := range t {
		if v, ok := t.Lookup(raw, f.Canonical); ok {
			res[f.Canonical] = v
		}
	}
	return res
}
