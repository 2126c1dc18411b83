// Package repo provides postgres access for vendor imports
package repo

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"shopfeed/internal/modkit/repokit"
	"shopfeed/internal/platform/store"
	"shopfeed/internal/services/importer/domain"
)

type (
	// PG is a Postgres binder for domain.StorageRepo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for domain.StorageRepo
func NewPG() repokit.Binder[domain.StorageRepo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.StorageRepo { return &queries{q: q} }

// ListVendorNames returns every imported vendor name, used to snapshot the
// dedup registry before a batch
func (r *queries) ListVendorNames(ctx context.Context) ([]string, error) {
	return store.Many(ctx, r.q,
		func(row store.Row) (string, error) {
			var n string
			err := row.Scan(&n)
			return n, err
		},
		`SELECT name FROM vendors ORDER BY name`,
	)
}

// InsertVendor stores the canonical record. The record's UID is the row key;
// the full document is kept as jsonb for downstream display
func (r *queries) InsertVendor(ctx context.Context, rec domain.VendorRecord) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO vendors (id, name, doc, created_at)
		VALUES ($1, $2, $3, now())
	`, rec.UID, rec.Name, doc)
	return err
}

// InsertUserNotification stores the user-facing copy of an onboarding push
func (r *queries) InsertUserNotification(ctx context.Context, n domain.UserNotification) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_notifications (id, title, body, redirect_link, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), n.Title, n.Body, n.RedirectLink, n.Timestamp)
	return err
}
