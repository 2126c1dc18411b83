// Package ingest adapts raw CSV rows into pipeline inputs
package ingest

import (
	"shopfeed/internal/adapters/ingest/csvfile"
	pstrings "shopfeed/internal/platform/strings"
	"shopfeed/internal/services/importer/domain"
)

// Normalizer fills the expected schema and cleans phone fields.
// It never fails; absent data degrades to empty strings
type Normalizer struct{}

// NewNormalizer constructs a Normalizer
func NewNormalizer() Normalizer { return Normalizer{} }

// Normalize maps a raw row onto the fixed Listing schema.
// Phone loses internal spaces; Phones keeps only its first comma entry,
// also space-stripped
func (Normalizer) Normalize(raw csvfile.RawRow) domain.Listing {
	get := func(col string) string { return raw[col] }

	return domain.Listing{
		Name:          get("Name"),
		Description:   get("Description"),
		Categories:    get("Categories"),
		FullAddress:   get("Fulladdress"),
		Phone:         pstrings.StripSpaces(get("Phone")),
		Phones:        pstrings.StripSpaces(pstrings.FirstCSV(get("Phones"))),
		FeaturedImage: get("Featured Image"),
		Latitude:      get("Latitude"),
		Longitude:     get("Longitude"),
		Street:        get("Street"),
		Website:       get("Website"),
		PlaceID:       get("Place Id"),
		OpeningHours:  get("Opening Hours"),
	}
}
