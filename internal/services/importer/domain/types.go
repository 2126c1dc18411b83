// Package domain holds the canonical vendor record and the import pipeline types
package domain

import (
	"time"

	"shopfeed/internal/core/hours"
)

// ExpectedColumns is the fixed schema of scraper export columns the pipeline
// consumes. Missing columns degrade to empty strings, never to failures
var ExpectedColumns = []string{
	"Name", "Description", "Categories", "Fulladdress", "Phone", "Phones",
	"Featured Image", "Latitude", "Longitude", "Street", "Website",
	"Place Id", "Opening Hours",
}

// Listing is one normalized scraper row. Every field is present (empty when
// the source column was absent) and phone fields carry no internal spaces
type Listing struct {
	Name          string
	Description   string
	Categories    string
	FullAddress   string
	Phone         string
	Phones        string
	FeaturedImage string
	Latitude      string
	Longitude     string
	Street        string
	Website       string
	PlaceID       string
	OpeningHours  string
}

// Enrichment is the outcome of the website/email fallback chain
type Enrichment struct {
	// Website is the resolved site the email scan ran against.
	// Empty when neither the row nor the place lookup produced one
	Website string

	// Email is the primary address, first distinct match on the page
	Email string

	// AdditionalEmails is the comma-joined remainder, empty when none
	AdditionalEmails string
}

// GeoPoint is a latitude/longitude pair
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RatingSummary is the zeroed rating skeleton every new vendor starts with
type RatingSummary struct {
	One    int     `json:"1"`
	Two    int     `json:"2"`
	Three  int     `json:"3"`
	Four   int     `json:"4"`
	Five   int     `json:"5"`
	Count  int     `json:"count"`
	Rating float64 `json:"rating"`
}

// SocialLinks is the empty social handle skeleton
type SocialLinks struct {
	FacebookID string `json:"facebookId"`
	InstaID    string `json:"instaId"`
}

// VendorRecord is the canonical output of the pipeline, one per imported row.
// Field names mirror the stored document keys
type VendorRecord struct {
	UID              string          `json:"uid"`
	OwnerID          string          `json:"ownerId"`
	Active           bool            `json:"active"`
	Name             string          `json:"name" validate:"required"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	Address          string          `json:"address"`
	Line1            string          `json:"line1"`
	City             string          `json:"city" validate:"required"`
	State            string          `json:"state"`
	Country          string          `json:"country" validate:"required"`
	Pincode          *string         `json:"pincode"`
	Latitude         string          `json:"latitude"`
	Longitude        string          `json:"longitude"`
	Location         *GeoPoint       `json:"location"`
	Phone            string          `json:"phone"`
	Contact          string          `json:"contact"`
	Email            string          `json:"email" validate:"omitempty,email"`
	AdditionalEmails string          `json:"additional_emails"`
	Website          string          `json:"website"`
	Images           string          `json:"images"`
	OpeningHours     hours.Week      `json:"openingHours"`
	WorkingDays      map[string]bool `json:"workingDays"`
	Rating           RatingSummary   `json:"rating"`
	Ratings          []any           `json:"ratings"`
	SocialLinks      SocialLinks     `json:"socialLinks"`
	DynamicLink      string          `json:"dynamicLink"`
	QRCode           string          `json:"qrCode"`
	StartTime        time.Time       `json:"startTime"`
	EndTime          time.Time       `json:"endTime"`
	GooglePlaceID    string          `json:"google_place_id"`
	IsVerified       bool            `json:"isVerified"`
	Extracted        bool            `json:"extracted"`
	Claimed          bool            `json:"claimed"`
}

// UserNotification is the stored copy of an onboarding push
type UserNotification struct {
	Title        string
	Body         string
	RedirectLink string
	Timestamp    time.Time
}

// NameRegistry answers membership tests against the pre-batch snapshot of
// already-imported vendor names. Exact string match, no folding
type NameRegistry map[string]struct{}

// NewNameRegistry builds a registry from a name list
func NewNameRegistry(names []string) NameRegistry {
	r := make(NameRegistry, len(names))
	for _, n := range names {
		r[n] = struct{}{}
	}
	return r
}

// Has reports whether name was already imported before this batch
func (r NameRegistry) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Summary counts one batch run
type Summary struct {
	Rows       int
	Imported   int
	Duplicates int
	Failed     int
}
