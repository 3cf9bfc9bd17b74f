// Package marker implements membership checks for configured marker tags.
package marker

// TagType names the two ancestor-lookup flavours: Primary resolves
// against the configured project tag, Secondary against the
// map-of-content tag.
type TagType int

const (
	Primary TagType = iota
	Secondary
)

// String returns the lookup name used in APIs and logs.
func (t TagType) String() string {
	if t == Secondary {
		return "secondary"
	}
	return "primary"
}

// Has reports whether m occurs verbatim in tags. Matching is exact and
// case-sensitive; no normalisation is applied.
func Has(tags []string, m string) bool {
	for _, t := range tags {
		if t == m {
			return true
		}
	}
	return false
}

// HasAny reports whether any of markers occurs verbatim in tags.
func HasAny(tags []string, markers []string) bool {
	for _, m := range markers {
		if Has(tags, m) {
			return true
		}
	}
	return false
}
