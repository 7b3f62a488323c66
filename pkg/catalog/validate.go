package catalog

import (
	"fmt"
	"strings"
)

// Validate checks the catalog for errors. Fatal issues return an error,
// the rest go to Warnings.
func (c *Catalog) Validate() error {
	if len(c.Documents) == 0 {
		return fmt.Errorf("no documents specified in catalog")
	}

	seen := make(map[string]struct{}, len(c.Documents))
	for i := range c.Documents {
		d := &c.Documents[i]
		warnings, err := d.Validate()
		if err != nil {
			return fmt.Errorf("document %d: %w", i+1, err)
		}
		if _, ok := seen[d.Name]; ok {
			return fmt.Errorf("document %d: duplicate name '%s'", i+1, d.Name)
		}
		seen[d.Name] = struct{}{}
		c.Warnings = append(c.Warnings, warnings...)
	}
	return nil
}

// Validate checks a single document. It normalizes the kind to lower case.
func (d *Document) Validate() ([]ValidationWarning, error) {
	var warnings []ValidationWarning

	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	d.Location = strings.TrimSpace(d.Location)
	if d.Location == "" {
		return nil, fmt.Errorf("location of '%s' is required", d.Name)
	}

	d.Kind = Kind(strings.ToLower(strings.TrimSpace(string(d.Kind))))
	if d.Kind != Genes && d.Kind != Publications {
		return nil, fmt.Errorf(
			"invalid kind '%s' of '%s': must be 'genes' or 'publications'",
			d.Kind, d.Name,
		)
	}

	if d.IsFileURL() {
		warnings = append(warnings, ValidationWarning{
			Document:   d.Name,
			Message:    "file:// locations cannot be fetched",
			Suggestion: "Serve the document over HTTP or use a plain file path",
		})
	}
	return warnings, nil
}
