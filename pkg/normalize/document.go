package normalize

// GeneDocument is the raw shape of a gene-mode input document.
type GeneDocument struct {
	Metadata map[string]any   `json:"metadata"`
	Genes    []map[string]any `json:"genes"`
}

// PublicationDocument is the raw shape of a publication-mode input
// document.
type PublicationDocument struct {
	Metadata     map[string]any   `json:"metadata"`
	Publications []map[string]any `json:"publications"`
}
