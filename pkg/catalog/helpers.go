package catalog

import (
	"net/url"
	"strings"
)

// IsValidURL checks if a string is an http(s) URL.
func IsValidURL(str string) bool {
	u, err := url.Parse(str)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != ""
}

// IsRemote reports if the document is fetched over HTTP.
func (d Document) IsRemote() bool {
	return IsValidURL(d.Location)
}

// IsFileURL reports if the location uses the file:// scheme.
func (d Document) IsFileURL() bool {
	return strings.HasPrefix(strings.ToLower(d.Location), "file://")
}

// ByKind returns documents of a kind in catalog order.
func (c *Catalog) ByKind(k Kind) []Document {
	var res []Document
	for _, d := range c.Documents {
		if d.Kind == k {
			res = append(res, d)
		}
	}
	return res
}

// Get finds a document by name.
func (c *Catalog) Get(name string) (Document, bool) {
	for _, d := range c.Documents {
		if d.Name == name {
			return d, true
		}
	}
	return Document{}, false
}
