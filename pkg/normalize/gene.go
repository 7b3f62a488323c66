package normalize

import (
	"github.com/gnames/degportal/pkg/record"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
)

// Gene converts one raw gene record into a canonical gene. Derived fields
// of observations are computed with the given thresholds.
//
// A record without a symbol is kept with record.UnknownSymbol as its
// display symbol. Its identity key is generated from the remaining
// identifying content, so unnamed records do not collapse into one.
func Gene(raw map[string]any, th record.Thresholds) record.Gene {
	var res record.Gene

	v, _ := GeneTable.Lookup(raw, KeySymbol)
	res.Symbol = toString(v)
	v, _ = GeneTable.Lookup(raw, KeyEnsemblID)
	res.EnsemblID = toString(v)
	v, _ = GeneTable.Lookup(raw, KeyName)
	res.Name = toString(v)
	v, _ = GeneTable.Lookup(raw, KeySeizureGene)
	res.SeizureGene = toBool(v)

	res.Datasets = make(map[string]record.Observation)
	v, _ = GeneTable.Lookup(raw, KeyDatasets)
	if ds, ok := v.(map[string]any); ok {
		for name, entry := range ds {
			if obs, ok := Observation(entry, th); ok {
				res.Datasets[name] = obs
			}
		}
	}

	res.ID = res.Symbol
	if res.Symbol == "" {
		res.Symbol = record.UnknownSymbol
		res.ID = "unknown-" + fallbackKey(raw, res.EnsemblID, res.Name)
	}
	return res
}

// Observation converts a raw dataset entry of a gene. It returns false if
// the entry is not an object or has no usable fold change.
func Observation(entry any, th record.Thresholds) (record.Observation, bool) {
	raw, ok := entry.(map[string]any)
	if !ok {
		return record.Observation{}, false
	}

	v, _ := ObservationTable.Lookup(raw, KeyLogFC)
	logFC, ok := toFloat(v)
	if !ok {
		return record.Observation{}, false
	}

	adjP := 1.0
	v, _ = ObservationTable.Lookup(raw, KeyAdjP)
	if p, ok := toFloat(v); ok {
		adjP = p
	}

	var pValue *float64
	v, _ = ObservationTable.Lookup(raw, KeyPValue)
	if p, ok := toFloat(v); ok {
		pValue = &p
	}

	return record.NewObservation(logFC, adjP, pValue, th), true
}

// Genes normalizes all raw genes of a document in order.
func Genes(raws []map[string]any, th record.Thresholds) []record.Gene {
	res := make([]record.Gene, len(raws))
	for i := range raws {
		res[i] = Gene(raws[i], th)
	}
	return res
}

// fallbackKey returns a UUIDv5 string of the first non-empty candidate, or
// of the raw record content when all candidates are empty.
func fallbackKey(raw map[string]any, candidates ...string) string {
	for _, v := range candidates {
		if v != "" {
			return gnuuid.New(v).String()
		}
	}
	enc := gnfmt.GNjson{}
	bs, err := enc.Encode(raw)
	if err != nil {
		return gnuuid.New(toString(raw)).String()
	}
	return gnuuid.New(string(bs)).String()
}
