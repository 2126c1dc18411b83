// Package service runs the listing import pipeline
package service

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"shopfeed/internal/core/emailscan"
	"shopfeed/internal/core/hours"
	"shopfeed/internal/core/imageurl"
	"shopfeed/internal/core/postcode"
	"shopfeed/internal/modkit/repokit"
	"shopfeed/internal/platform/logger"
	"shopfeed/internal/services/importer/domain"
)

// Config holds configuration options for the import service
type Config struct {
	// ScaleFactor multiplies image w/h tokens; <=0 -> imageurl default
	ScaleFactor int

	// LookupTimeout bounds one place-id website lookup; <=0 -> 45s
	LookupTimeout time.Duration

	// FetchTimeout bounds one website page fetch; <=0 -> 15s
	FetchTimeout time.Duration
}

// Service implements the import pipeline
type Service struct {
	DB       repokit.TxRunner
	Binder   repokit.Binder[domain.StorageRepo]
	Opener   domain.SourceOpener
	Norm     domain.Normalizer
	Resolver domain.WebsiteResolver
	Pages    domain.PageFetcher
	Notify   domain.Notifier
	Cfg      Config

	validate *validator.Validate
}

// New constructs the import service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[domain.StorageRepo],
	opener domain.SourceOpener,
	norm domain.Normalizer,
	resolver domain.WebsiteResolver,
	pages domain.PageFetcher,
	notify domain.Notifier,
	cfg Config,
) *Service {
	if db == nil {
		panic("importer.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("importer.Service requires a non nil Repo binder")
	}
	if cfg.ScaleFactor <= 0 {
		cfg.ScaleFactor = imageurl.DefaultScaleFactor
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = 45 * time.Second
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 15 * time.Second
	}
	return &Service{
		DB: db, Binder: binder,
		Opener: opener, Norm: norm,
		Resolver: resolver, Pages: pages, Notify: notify,
		Cfg:      cfg,
		validate: validator.New(),
	}
}

// Run imports every row of the export at csvPath.
// One row failing never aborts the batch; the summary counts the outcomes
func (s *Service) Run(ctx context.Context, csvPath string) (domain.Summary, error) {
	var sum domain.Summary

	batchID := uuid.NewString()[:8]
	ctx = logger.WithBatch(ctx, batchID)
	log := logger.C(ctx)

	src, err := s.Opener.Open(csvPath)
	if err != nil {
		return sum, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("importer: close source")
		}
	}()

	repo := repokit.MustBind(s.Binder, s.DB)

	// registry snapshot is taken once; rows imported inside this batch do
	// not join it, so in-batch repeats both pass the gate
	names, err := repo.ListVendorNames(ctx)
	if err != nil {
		return sum, err
	}
	registry := domain.NewNameRegistry(names)
	log.Info().Str("csv", csvPath).Int("known_vendors", len(registry)).Msg("importer: batch start")

	for {
		raw, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return sum, err
		}
		sum.Rows++

		listing := s.Norm.Normalize(raw)
		rowCtx := logger.WithRow(ctx, listing.Name)
		rlog := logger.C(rowCtx)

		if registry.Has(listing.Name) {
			sum.Duplicates++
			rlog.Info().Msg("importer: already exists, skipping")
			continue
		}

		rec := s.buildRecord(rowCtx, listing)
		if err := s.validate.Struct(rec); err != nil {
			sum.Failed++
			rlog.Warn().Err(err).Msg("importer: record failed validation")
			continue
		}

		if err := repo.InsertVendor(rowCtx, rec); err != nil {
			sum.Failed++
			rlog.Error().Err(err).Msg("importer: insert failed")
			continue
		}
		sum.Imported++
		rlog.Info().Str("vendor_id", rec.UID).Msg("importer: vendor added")

		s.announce(rowCtx, repo, rec)
	}

	log.Info().
		Int("rows", sum.Rows).
		Int("imported", sum.Imported).
		Int("duplicates", sum.Duplicates).
		Int("failed", sum.Failed).
		Msg("importer: batch done")
	return sum, nil
}

// Names returns the registry snapshot, exposed for tooling
func (s *Service) Names(ctx context.Context) ([]string, error) {
	repo := repokit.MustBind(s.Binder, s.DB)
	return repo.ListVendorNames(ctx)
}

// buildRecord merges the listing and its derived pieces into a canonical
// record. Per-field failures degrade that field and keep the row alive
func (s *Service) buildRecord(ctx context.Context, l domain.Listing) domain.VendorRecord {
	log := logger.C(ctx)
	now := time.Now().UTC()

	week, malformed := hours.BuildWeek(hours.ParseRaw(l.OpeningHours), now)
	for _, day := range malformed {
		log.Warn().Str("day", day).Msg("importer: unparseable opening hours, using defaults")
	}

	var pin *string
	if pc, ok := postcode.Find(l.FullAddress); ok {
		pin = &pc
	}

	enr := s.enrich(ctx, l)

	var loc *domain.GeoPoint
	lat, latErr := strconv.ParseFloat(l.Latitude, 64)
	lng, lngErr := strconv.ParseFloat(l.Longitude, 64)
	if latErr == nil && lngErr == nil {
		loc = &domain.GeoPoint{Latitude: lat, Longitude: lng}
	} else if l.Latitude != "" || l.Longitude != "" {
		log.Warn().Str("lat", l.Latitude).Str("lng", l.Longitude).Msg("importer: bad coordinates, storing without location")
	}

	id := uuid.NewString()
	working := make(map[string]bool, len(hours.DayNames))
	for _, day := range hours.DayNames {
		working[day] = true
	}

	return domain.VendorRecord{
		UID:         id,
		OwnerID:     id,
		Active:      true,
		Name:        l.Name,
		Description: l.Description,
		Category:    l.Categories,
		Address:     l.FullAddress,
		Line1:       l.Street,
		City:        "London",
		State:       "NA",
		Country:     "United Kingdom",
		Pincode:     pin,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		Location:    loc,
		Phone:       l.Phone,
		Contact:     l.Phones,
		Email:       enr.Email,

		AdditionalEmails: enr.AdditionalEmails,

		// the stored website stays the row value; the resolved one only
		// feeds the email scan
		Website: l.Website,

		Images:        imageurl.Rescale(l.FeaturedImage, s.Cfg.ScaleFactor),
		OpeningHours:  week,
		WorkingDays:   working,
		Rating:        domain.RatingSummary{},
		Ratings:       []any{},
		SocialLinks:   domain.SocialLinks{},
		StartTime:     now,
		EndTime:       now,
		GooglePlaceID: l.PlaceID,
		IsVerified:    true,
		Extracted:     true,
		Claimed:       false,
	}
}

// enrich runs the website/email fallback chain: row website first, then the
// place-id lookup, then a page fetch feeding the email scan. Every step is
// allowed to fail; the chain degrades instead of erroring
func (s *Service) enrich(ctx context.Context, l domain.Listing) domain.Enrichment {
	log := logger.C(ctx)

	website := l.Website
	if website == "" && l.PlaceID != "" && s.Resolver != nil {
		lctx, cancel := context.WithTimeout(ctx, s.Cfg.LookupTimeout)
		w, err := s.Resolver.WebsiteByPlaceID(lctx, l.PlaceID)
		cancel()
		if err != nil {
			log.Warn().Str("place_id", l.PlaceID).Err(err).Msg("importer: website lookup failed")
		} else {
			website = w
		}
	}
	if website == "" || s.Pages == nil {
		return domain.Enrichment{Website: website}
	}

	fctx, cancel := context.WithTimeout(ctx, s.Cfg.FetchTimeout)
	text, err := s.Pages.PageText(fctx, website)
	cancel()
	if err != nil {
		log.Warn().Str("website", website).Err(err).Msg("importer: page fetch failed")
		return domain.Enrichment{Website: website}
	}

	emails := emailscan.Scan(text)
	if len(emails) == 0 {
		return domain.Enrichment{Website: website}
	}
	return domain.Enrichment{
		Website:          website,
		Email:            emails[0],
		AdditionalEmails: strings.Join(emails[1:], ", "),
	}
}

// announce publishes the onboarding push and stores its user-facing copy.
// Failures here are logged and dropped; the vendor is already imported
func (s *Service) announce(ctx context.Context, repo domain.StorageRepo, rec domain.VendorRecord) {
	if s.Notify == nil || !s.Notify.Enabled() {
		return
	}
	log := logger.C(ctx)

	if err := s.Notify.VendorOnboarded(ctx, rec.Name, rec.Address, rec.UID); err != nil {
		log.Warn().Err(err).Msg("importer: onboarding push failed")
		return
	}
	n := domain.UserNotification{
		Title:        "New Shop is Onboarded!!!",
		Body:         rec.Name + " is opened at " + rec.Address,
		RedirectLink: rec.UID,
		Timestamp:    time.Now().UTC(),
	}
	if err := repo.InsertUserNotification(ctx, n); err != nil {
		log.Warn().Err(err).Msg("importer: notification record failed")
	}
}
