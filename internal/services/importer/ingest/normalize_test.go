package ingest

import (
	"testing"

	"shopfeed/internal/adapters/ingest/csvfile"
)

func TestNormalize_Table(t *testing.T) {
	n := NewNormalizer()

	t.Run("full row passes through", func(t *testing.T) {
		l := n.Normalize(csvfile.RawRow{
			"Name":          "Corner Shop",
			"Fulladdress":   "12 Lane, London E1 6QL",
			"Phone":         "020 7946 0000",
			"Phones":        "020 7946 0000, 020 7946 0001",
			"Website":       "corner.example",
			"Place Id":      "ChIJabc",
			"Opening Hours": "Monday: [9 am-6 pm]",
		})
		if l.Name != "Corner Shop" || l.Website != "corner.example" || l.PlaceID != "ChIJabc" {
			t.Fatalf("listing = %+v", l)
		}
		if l.Phone != "02079460000" {
			t.Fatalf("Phone = %q, want spaces stripped", l.Phone)
		}
		if l.Phones != "02079460000" {
			t.Fatalf("Phones = %q, want first entry space-stripped", l.Phones)
		}
	})

	t.Run("missing columns degrade to empty strings", func(t *testing.T) {
		l := n.Normalize(csvfile.RawRow{"Name": "Book Nook"})
		if l.Name != "Book Nook" {
			t.Fatalf("Name = %q", l.Name)
		}
		if l.FullAddress != "" || l.Phone != "" || l.OpeningHours != "" || l.Website != "" {
			t.Fatalf("absent columns should be empty, got %+v", l)
		}
	})

	t.Run("empty row yields complete empty listing", func(t *testing.T) {
		l := n.Normalize(csvfile.RawRow{})
		if l.Name != "" || l.Phones != "" {
			t.Fatalf("listing = %+v", l)
		}
	})

	t.Run("trailing whitespace in name survives", func(t *testing.T) {
		l := n.Normalize(csvfile.RawRow{"Name": "Corner Shop "})
		if l.Name != "Corner Shop " {
			t.Fatalf("Name = %q, normalization must not trim names", l.Name)
		}
	})
}
