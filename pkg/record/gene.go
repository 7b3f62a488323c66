// Package record defines the canonical records of the portal: genes with
// their per-dataset differential expression observations, and publications.
// It also provides the read-only Store that holds them for a session.
package record

import (
	"maps"
	"math"
	"slices"
)

// UnknownSymbol is the display symbol of a gene that came without one.
const UnknownSymbol = "Unknown"

// Regulation is the direction of a change in expression.
type Regulation string

const (
	Up   Regulation = "up"
	Down Regulation = "down"
)

// RegulationOf returns the direction tag for a fold change. Positive
// changes are up, everything else is down.
func RegulationOf(logFC float64) Regulation {
	if logFC > 0 {
		return Up
	}
	return Down
}

// Thresholds decide significance of an observation.
type Thresholds struct {
	// PValue is the exclusive upper bound of the adjusted p-value.
	PValue float64
	// LogFC is the exclusive lower bound of |log fold change|.
	LogFC float64
}

// IsSignificant is the significance composite of an adjusted p-value and a
// fold change.
func (t Thresholds) IsSignificant(adjP, logFC float64) bool {
	return adjP < t.PValue && math.Abs(logFC) > t.LogFC
}

// Observation is a differential expression result of one gene in one
// dataset.
type Observation struct {
	// LogFC is the signed log2 fold change.
	LogFC float64 `json:"log_fc"`
	// PValue is the raw p-value, if the source provides it.
	PValue *float64 `json:"p_val,omitempty"`
	// AdjPValue is the adjusted p-value in [0,1].
	AdjPValue float64 `json:"adj_p_val"`
	// Regulation is always RegulationOf(LogFC).
	Regulation Regulation `json:"regulation"`
	// Significant is always the Thresholds composite of AdjPValue and
	// LogFC, computed when the observation is created.
	Significant bool `json:"significant"`
}

// NewObservation creates an observation with derived fields computed from
// its own values.
func NewObservation(logFC, adjP float64, pValue *float64, th Thresholds) Observation {
	return Observation{
		LogFC:       logFC,
		PValue:      pValue,
		AdjPValue:   adjP,
		Regulation:  RegulationOf(logFC),
		Significant: th.IsSignificant(adjP, logFC),
	}
}

// Gene is a canonical gene record.
type Gene struct {
	// ID is the identity key within a Store. It is the symbol, or a
	// generated key when the symbol is missing.
	ID string `json:"id"`
	// Symbol is the display key.
	Symbol string `json:"symbol"`
	// Name is the full gene name.
	Name string `json:"name,omitempty"`
	// EnsemblID is the external identifier.
	EnsemblID string `json:"ensembl_id,omitempty"`
	// Datasets maps a dataset name to the gene's observation there.
	Datasets map[string]Observation `json:"datasets"`
	// SeizureGene is true for members of the curated seizure gene set.
	SeizureGene bool `json:"seizure_gene"`
}

// Key implements Keyed.
func (g Gene) Key() string {
	return g.ID
}

// Clone implements Keyed. The returned gene does not share memory with
// the receiver.
func (g Gene) Clone() Gene {
	res := g
	res.Datasets = maps.Clone(g.Datasets)
	for k, v := range res.Datasets {
		if v.PValue != nil {
			p := *v.PValue
			v.PValue = &p
			res.Datasets[k] = v
		}
	}
	return res
}

// Observation returns the gene's observation in a dataset.
func (g Gene) Observation(dataset string) (Observation, bool) {
	obs, ok := g.Datasets[dataset]
	return obs, ok
}

// DatasetNames returns sorted names of datasets the gene was observed in.
func (g Gene) DatasetNames() []string {
	return slices.Sorted(maps.Keys(g.Datasets))
}
