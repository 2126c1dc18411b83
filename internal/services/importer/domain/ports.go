package domain

import (
	"context"

	"shopfeed/internal/adapters/ingest/csvfile"
)

// RunnerPort is the public port exposed by the module
type RunnerPort interface {
	Run(ctx context.Context, csvPath string) (Summary, error)
}

// NamesPort exposes the registry snapshot for tooling
type NamesPort interface {
	Names(ctx context.Context) ([]string, error)
}

// StorageRepo is the storage repository interface
type StorageRepo interface {
	// ListVendorNames returns every imported vendor name
	ListVendorNames(ctx context.Context) ([]string, error)

	// InsertVendor stores a new canonical record
	InsertVendor(ctx context.Context, rec VendorRecord) error

	// InsertUserNotification stores the user-facing copy of a push
	InsertUserNotification(ctx context.Context, n UserNotification) error
}

// Source streams raw rows out of one export file
type Source interface {
	Next() (csvfile.RawRow, error)
	Close() error
	Stats() (rows int, bytes int64)
}

// SourceOpener opens a Source for a file path
type SourceOpener interface {
	Open(path string) (Source, error)
}

// Normalizer turns a raw row into a complete Listing
type Normalizer interface {
	Normalize(raw csvfile.RawRow) Listing
}

// WebsiteResolver looks up a business website by its external place id
type WebsiteResolver interface {
	WebsiteByPlaceID(ctx context.Context, placeID string) (string, error)
}

// PageFetcher fetches a website and returns its visible text
type PageFetcher interface {
	PageText(ctx context.Context, url string) (string, error)
}

// Notifier publishes onboarding pushes. Dispatch failures are advisory,
// never fatal for the row
type Notifier interface {
	Enabled() bool
	VendorOnboarded(ctx context.Context, name, address, vendorID string) error
}
