// Package catalog describes the documents the portal loads its records
// from.
//
// The catalog lives in catalog.yaml in the configuration directory. Every
// document has a unique name, a kind (genes or publications) and a location
// that is either a local path or an http(s) URL. Documents of one kind are
// merged in catalog order, so the first document wins when records repeat.
package catalog

// Loader reads a catalog from its storage.
type Loader interface {
	Load() (*Catalog, error)
}

// Kind of records a document holds.
type Kind string

const (
	Genes        Kind = "genes"
	Publications Kind = "publications"
)

// Catalog represents the complete catalog.yaml file.
type Catalog struct {
	// Documents in merge order.
	Documents []Document `yaml:"documents"`

	// Warnings holds non-fatal validation warnings (not serialized)
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal catalog issue.
type ValidationWarning struct {
	Document   string // Name of the document
	Message    string // Description of the issue
	Suggestion string // How to fix it
}

// Document is one source document of records.
type Document struct {
	// Name identifies the document, for example "bulk_rnaseq".
	Name string `yaml:"name"`

	// Kind is "genes" or "publications".
	Kind Kind `yaml:"kind"`

	// Location is a file path or an http(s) URL.
	// Examples:
	//   - https://portal.example.org/data/genes.json
	//   - ~/data/publications.json
	Location string `yaml:"location"`

	// Description is shown in dataset listings.
	Description string `yaml:"description,omitempty"`
}
