package service

import (
	"context"
	"io"
	"testing"

	"shopfeed/internal/adapters/ingest/csvfile"
	"shopfeed/internal/modkit/repokit"
	perr "shopfeed/internal/platform/errors"
	"shopfeed/internal/platform/store"
	"shopfeed/internal/services/importer/domain"
	"shopfeed/internal/services/importer/ingest"
)

// stubDB satisfies the TxRunner seam; repos in these tests never touch SQL
type stubDB struct{}

func (stubDB) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (stubDB) Query(context.Context, string, ...any) (store.Rows, error)     { return nil, nil }
func (stubDB) QueryRow(context.Context, string, ...any) store.Row            { return nil }
func (stubDB) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	return fn(stubDB{})
}

type fakeRepo struct {
	names         []string
	inserted      []domain.VendorRecord
	notifications []domain.UserNotification
	insertErrFor  string
}

func (f *fakeRepo) ListVendorNames(context.Context) ([]string, error) { return f.names, nil }

func (f *fakeRepo) InsertVendor(_ context.Context, rec domain.VendorRecord) error {
	if f.insertErrFor != "" && rec.Name == f.insertErrFor {
		return perr.DBf("boom")
	}
	f.inserted = append(f.inserted, rec)
	return nil
}

func (f *fakeRepo) InsertUserNotification(_ context.Context, n domain.UserNotification) error {
	f.notifications = append(f.notifications, n)
	return nil
}

type fakeSource struct {
	rows []csvfile.RawRow
	i    int
}

func (f *fakeSource) Next() (csvfile.RawRow, error) {
	if f.i >= len(f.rows) {
		return nil, io.EOF
	}
	r := f.rows[f.i]
	f.i++
	return r, nil
}
func (f *fakeSource) Close() error        { return nil }
func (f *fakeSource) Stats() (int, int64) { return f.i, 0 }

type fakeOpener struct{ src *fakeSource }

func (f fakeOpener) Open(string) (domain.Source, error) { return f.src, nil }

type fakeResolver struct {
	byPlace map[string]string
	calls   int
}

func (f *fakeResolver) WebsiteByPlaceID(_ context.Context, placeID string) (string, error) {
	f.calls++
	return f.byPlace[placeID], nil
}

type fakePages struct {
	text  map[string]string
	calls []string
}

func (f *fakePages) PageText(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	if t, ok := f.text[url]; ok {
		return t, nil
	}
	return "", perr.Unavailablef("no such page")
}

type fakeNotifier struct {
	enabled bool
	pushes  []string
	fail    bool
}

func (f *fakeNotifier) Enabled() bool { return f.enabled }
func (f *fakeNotifier) VendorOnboarded(_ context.Context, name, _, _ string) error {
	if f.fail {
		return perr.Unavailablef("push down")
	}
	f.pushes = append(f.pushes, name)
	return nil
}

func newService(repo *fakeRepo, src *fakeSource, res *fakeResolver, pages *fakePages, notify domain.Notifier) *Service {
	binder := repokit.BindFunc[domain.StorageRepo](func(repokit.Queryer) domain.StorageRepo { return repo })
	return New(stubDB{}, binder, fakeOpener{src: src}, ingest.NewNormalizer(), res, pages, notify, Config{})
}

func row(name string, extra map[string]string) csvfile.RawRow {
	r := csvfile.RawRow{"Name": name}
	for k, v := range extra {
		r[k] = v
	}
	return r
}

func TestRun_DedupSkipsKnownNames(t *testing.T) {
	repo := &fakeRepo{names: []string{"Corner Shop"}}
	src := &fakeSource{rows: []csvfile.RawRow{
		row("Corner Shop", nil),
		row("Book Nook", nil),
		row("Plant Stop", nil),
	}}
	svc := newService(repo, src, &fakeResolver{}, &fakePages{}, nil)

	sum, err := svc.Run(context.Background(), "batch.csv")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Rows != 3 || sum.Imported != 2 || sum.Duplicates != 1 || sum.Failed != 0 {
		t.Fatalf("summary = %+v", sum)
	}
	if len(repo.inserted) != 2 {
		t.Fatalf("inserted %d records, want 2", len(repo.inserted))
	}
	for _, rec := range repo.inserted {
		if rec.Name == "Corner Shop" {
			t.Fatal("known vendor should not be re-imported")
		}
	}
}

func TestRun_ExactMatchOnly(t *testing.T) {
	// a trailing space is a different name; the gate never folds
	repo := &fakeRepo{names: []string{"Corner Shop"}}
	src := &fakeSource{rows: []csvfile.RawRow{row("Corner Shop ", nil)}}
	svc := newService(repo, src, &fakeResolver{}, &fakePages{}, nil)

	sum, err := svc.Run(context.Background(), "batch.csv")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Imported != 1 || sum.Duplicates != 0 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestRun_InBatchRepeatsBothPass(t *testing.T) {
	// the registry snapshot is pre-batch; repeats inside one file both import
	repo := &fakeRepo{}
	src := &fakeSource{rows: []csvfile.RawRow{
		row("Book Nook", nil),
		row("Book Nook", nil),
	}}
	svc := newService(repo, src, &fakeResolver{}, &fakePages{}, nil)

	sum, err := svc.Run(context.Background(), "batch.csv")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Imported != 2 || sum.Duplicates != 0 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestRun_RowWebsiteShortCircuitsLookup(t *testing.T) {
	repo := &fakeRepo{}
	res := &fakeResolver{byPlace: map[string]string{"pid-1": "other.example"}}
	pages := &fakePages{text: map[string]string{"corner.example": "mail hello@corner.example"}}
	src := &fakeSource{rows: []csvfile.RawRow{
		row("Corner Shop", map[string]string{"Website": "corner.example", "Place Id": "pid-1"}),
	}}
	svc := newService(repo, src, res, pages, nil)

	if _, err := svc.Run(context.Background(), "batch.csv"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.calls != 0 {
		t.Fatalf("place lookup ran %d times, want 0 when the row has a website", res.calls)
	}
	if repo.inserted[0].Email != "hello@corner.example" {
		t.Fatalf("email = %q", repo.inserted[0].Email)
	}
	if repo.inserted[0].Website != "corner.example" {
		t.Fatalf("stored website = %q, want the row value", repo.inserted[0].Website)
	}
}

func TestRun_PlaceLookupFallback(t *testing.T) {
	repo := &fakeRepo{}
	res := &fakeResolver{byPlace: map[string]string{"pid-2": "nook.example"}}
	pages := &fakePages{text: map[string]string{"nook.example": "a@nook.example b@nook.example a@nook.example"}}
	src := &fakeSource{rows: []csvfile.RawRow{
		row("Book Nook", map[string]string{"Place Id": "pid-2"}),
	}}
	svc := newService(repo, src, res, pages, nil)

	if _, err := svc.Run(context.Background(), "batch.csv"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.calls != 1 {
		t.Fatalf("place lookup ran %d times, want 1", res.calls)
	}
	rec := repo.inserted[0]
	if rec.Email != "a@nook.example" || rec.AdditionalEmails != "b@nook.example" {
		t.Fatalf("emails = %q / %q", rec.Email, rec.AdditionalEmails)
	}
	// the resolved site never lands on the record
	if rec.Website != "" {
		t.Fatalf("stored website = %q, want empty", rec.Website)
	}
}

func TestRun_FetchFailureKeepsRow(t *testing.T) {
	repo := &fakeRepo{}
	pages := &fakePages{} // every fetch errors
	src := &fakeSource{rows: []csvfile.RawRow{
		row("Plant Stop", map[string]string{"Website": "dead.example"}),
	}}
	svc := newService(repo, src, &fakeResolver{}, pages, nil)

	sum, err := svc.Run(context.Background(), "batch.csv")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Imported != 1 || sum.Failed != 0 {
		t.Fatalf("summary = %+v", sum)
	}
	if repo.inserted[0].Email != "" {
		t.Fatalf("email = %q, want empty after failed fetch", repo.inserted[0].Email)
	}
}

func TestRun_InsertFailureCountsAndContinues(t *testing.T) {
	repo := &fakeRepo{insertErrFor: "Book Nook"}
	src := &fakeSource{rows: []csvfile.RawRow{
		row("Book Nook", nil),
		row("Plant Stop", nil),
	}}
	svc := newService(repo, src, &fakeResolver{}, &fakePages{}, nil)

	sum, err := svc.Run(context.Background(), "batch.csv")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Failed != 1 || sum.Imported != 1 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestRun_MissingNameFailsValidation(t *testing.T) {
	repo := &fakeRepo{}
	src := &fakeSource{rows: []csvfile.RawRow{row("", nil)}}
	svc := newService(repo, src, &fakeResolver{}, &fakePages{}, nil)

	sum, err := svc.Run(context.Background(), "batch.csv")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Failed != 1 || sum.Imported != 0 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestRun_RecordShape(t *testing.T) {
	repo := &fakeRepo{}
	src := &fakeSource{rows: []csvfile.RawRow{
		row("Corner Shop", map[string]string{
			"Fulladdress":    "12 Lane, London E1 6QL",
			"Street":         "12 Lane",
			"Phone":          "020 7946 0000",
			"Phones":         "020 7946 0000, 020 7946 0001",
			"Featured Image": "https://img.example/p=w80-h106-k",
			"Latitude":       "51.5",
			"Longitude":      "-0.07",
			"Place Id":       "pid-9",
			"Opening Hours":  "Monday: [9 am-6 pm]",
		}),
	}}
	svc := newService(repo, src, &fakeResolver{}, &fakePages{}, nil)

	if _, err := svc.Run(context.Background(), "batch.csv"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	rec := repo.inserted[0]

	if rec.City != "London" || rec.Country != "United Kingdom" || rec.State != "NA" {
		t.Fatalf("fixed fields = %q/%q/%q", rec.City, rec.Country, rec.State)
	}
	if !rec.Active || !rec.IsVerified || !rec.Extracted || rec.Claimed {
		t.Fatalf("flags = %+v", rec)
	}
	if rec.UID == "" || rec.UID != rec.OwnerID {
		t.Fatalf("uid/ownerId = %q/%q", rec.UID, rec.OwnerID)
	}
	if rec.Pincode == nil || *rec.Pincode != "E1 6QL" {
		t.Fatalf("pincode = %v", rec.Pincode)
	}
	if rec.Images != "https://img.example/p=w560-h742-k" {
		t.Fatalf("images = %q", rec.Images)
	}
	if rec.Phone != "02079460000" || rec.Contact != "02079460000" {
		t.Fatalf("phone/contact = %q/%q", rec.Phone, rec.Contact)
	}
	if rec.Location == nil || rec.Location.Latitude != 51.5 || rec.Location.Longitude != -0.07 {
		t.Fatalf("location = %+v", rec.Location)
	}
	if mon, _ := rec.OpeningHours.Day("Monday"); !mon.IsOpen {
		t.Fatal("Monday should be open")
	}
	if sun, _ := rec.OpeningHours.Day("Sunday"); sun.IsOpen {
		t.Fatal("Sunday should be closed")
	}
	if len(rec.WorkingDays) != 7 || !rec.WorkingDays["Sunday"] {
		t.Fatalf("workingDays = %v", rec.WorkingDays)
	}
	if rec.GooglePlaceID != "pid-9" {
		t.Fatalf("google_place_id = %q", rec.GooglePlaceID)
	}
}

func TestRun_NotifierPublishesAndStores(t *testing.T) {
	repo := &fakeRepo{}
	notify := &fakeNotifier{enabled: true}
	src := &fakeSource{rows: []csvfile.RawRow{
		row("Corner Shop", map[string]string{"Fulladdress": "12 Lane"}),
	}}
	svc := newService(repo, src, &fakeResolver{}, &fakePages{}, notify)

	if _, err := svc.Run(context.Background(), "batch.csv"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(notify.pushes) != 1 || notify.pushes[0] != "Corner Shop" {
		t.Fatalf("pushes = %v", notify.pushes)
	}
	if len(repo.notifications) != 1 {
		t.Fatalf("notifications = %d, want 1", len(repo.notifications))
	}
	n := repo.notifications[0]
	if n.Title != "New Shop is Onboarded!!!" || n.Body != "Corner Shop is opened at 12 Lane" {
		t.Fatalf("notification = %+v", n)
	}
	if n.RedirectLink != repo.inserted[0].UID {
		t.Fatalf("redirect = %q, want vendor id", n.RedirectLink)
	}
}

func TestRun_NotifierFailureIsAdvisory(t *testing.T) {
	repo := &fakeRepo{}
	notify := &fakeNotifier{enabled: true, fail: true}
	src := &fakeSource{rows: []csvfile.RawRow{row("Corner Shop", nil)}}
	svc := newService(repo, src, &fakeResolver{}, &fakePages{}, notify)

	sum, err := svc.Run(context.Background(), "batch.csv")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Imported != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if len(repo.notifications) != 0 {
		t.Fatal("failed push must not store a notification record")
	}
}
