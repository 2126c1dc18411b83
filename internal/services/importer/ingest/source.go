package ingest

import (
	"shopfeed/internal/adapters/ingest/csvfile"
	"shopfeed/internal/services/importer/domain"
)

// FileOpener opens CSV export files as row sources
type FileOpener struct{}

// NewFileOpener constructs a FileOpener
func NewFileOpener() FileOpener { return FileOpener{} }

// Open opens the export at path
func (FileOpener) Open(path string) (domain.Source, error) {
	return csvfile.Open(path)
}
