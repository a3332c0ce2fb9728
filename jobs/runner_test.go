package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seifshamyy/aqar-scraper/models"
	"github.com/seifshamyy/aqar-scraper/scraper"
)

type fakeDriver struct {
	sess *fakeSession
	err  error
}

func (d *fakeDriver) NewSession(ctx context.Context) (scraper.Session, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.sess, nil
}

type fakeSession struct {
	pages   []string
	idx     int
	navErr  error
	htmlErr error
	closed  bool
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error { return s.navErr }

func (s *fakeSession) WaitVisible(ctx context.Context, sel string, timeout time.Duration) error {
	return nil
}

func (s *fakeSession) HTML(ctx context.Context) (string, error) {
	if s.htmlErr != nil {
		return "", s.htmlErr
	}
	return s.pages[s.idx], nil
}

func (s *fakeSession) ClickNext(ctx context.Context) (bool, error) {
	if s.idx+1 >= len(s.pages) {
		return false, nil
	}
	s.idx++
	return true, nil
}

func (s *fakeSession) Close() { s.closed = true }

type recordingWriter struct {
	jobID    string
	listings []models.Listing
	err      error
}

func (w *recordingWriter) WriteResults(jobID string, listings []models.Listing) error {
	w.jobID = jobID
	w.listings = listings
	return w.err
}

func newTestRunner(driver scraper.Driver) *Runner {
	store := NewStore()
	return &Runner{Store: store, Driver: driver}
}

func submit(store *Store, id string) {
	store.Put(models.Job{ID: id, Status: models.StatusQueued, CreatedAt: time.Now()})
}

const twoListingsPage = `<html><body>
<a href="/listing/1">شقة 300,000 150 م²</a>
<a href="/listing/2">فيلا 900,000</a>
</body></html>`

// Page repeating listing/1 with updated values.
const overlapPage = `<html><body>
<a href="/listing/1">شقة محدثة 310,000 150 م²</a>
<a href="/listing/3">أرض 450,000</a>
</body></html>`

func TestRunnerCompletesAndDeduplicates(t *testing.T) {
	sess := &fakeSession{pages: []string{twoListingsPage, overlapPage}}
	r := newTestRunner(&fakeDriver{sess: sess})
	submit(r.Store, "j1")

	r.Run(context.Background(), "j1", "https://example.test/listings", 2)

	job, ok := r.Store.Get("j1")
	require.True(t, ok)
	assert.Equal(t, models.StatusCompleted, job.Status)
	assert.Equal(t, 100, job.Progress)
	assert.Equal(t, 2, job.CurrentPage)
	assert.Equal(t, 2, job.TotalPages)
	require.NotNil(t, job.CompletedAt)
	assert.Empty(t, job.Error)
	assert.True(t, sess.closed)

	require.Len(t, job.Results, 3)
	// listing/1 keeps first position but carries the page-2 values.
	assert.Equal(t, "https://example.test/listing/1", job.Results[0].Link)
	assert.Equal(t, "310,000", job.Results[0].Price)
}

func TestRunnerSessionAcquisitionFailure(t *testing.T) {
	r := newTestRunner(&fakeDriver{err: errors.New("chrome executable not found")})
	submit(r.Store, "j1")

	r.Run(context.Background(), "j1", "https://example.test/listings", 1)

	job, _ := r.Store.Get("j1")
	assert.Equal(t, models.StatusFailed, job.Status)
	assert.Equal(t, 0, job.Progress)
	assert.Contains(t, job.Error, "chrome executable not found")
	assert.Empty(t, job.Results)
}

func TestRunnerNavigationFailureDiscardsPartials(t *testing.T) {
	sess := &fakeSession{navErr: errors.New("navigation to https://example.test failed: timeout")}
	r := newTestRunner(&fakeDriver{sess: sess})
	submit(r.Store, "j1")

	r.Run(context.Background(), "j1", "https://example.test/listings", 3)

	job, _ := r.Store.Get("j1")
	assert.Equal(t, models.StatusFailed, job.Status)
	assert.Equal(t, 0, job.Progress)
	assert.NotEmpty(t, job.Error)
	assert.Empty(t, job.Results)
	assert.True(t, sess.closed, "session must be released on failure too")
}

func TestRunnerEarlyPaginationStop(t *testing.T) {
	sess := &fakeSession{pages: []string{twoListingsPage, overlapPage}}
	r := newTestRunner(&fakeDriver{sess: sess})
	submit(r.Store, "j1")

	r.Run(context.Background(), "j1", "https://example.test/listings", 5)

	job, _ := r.Store.Get("j1")
	assert.Equal(t, models.StatusCompleted, job.Status)
	assert.Equal(t, 100, job.Progress)
	// currentPage stalls at the last traversed page; totalPages keeps
	// the requested maximum.
	assert.Equal(t, 2, job.CurrentPage)
	assert.Equal(t, 5, job.TotalPages)
}

func TestRunnerSnapshotsResults(t *testing.T) {
	sess := &fakeSession{pages: []string{twoListingsPage}}
	w := &recordingWriter{}
	r := newTestRunner(&fakeDriver{sess: sess})
	r.Snapshots = w
	submit(r.Store, "j1")

	r.Run(context.Background(), "j1", "https://example.test/listings", 1)

	assert.Equal(t, "j1", w.jobID)
	assert.Len(t, w.listings, 2)
}

func TestRunnerSnapshotFailureDoesNotFailJob(t *testing.T) {
	sess := &fakeSession{pages: []string{twoListingsPage}}
	r := newTestRunner(&fakeDriver{sess: sess})
	r.Snapshots = &recordingWriter{err: errors.New("connection refused")}
	submit(r.Store, "j1")

	r.Run(context.Background(), "j1", "https://example.test/listings", 1)

	job, _ := r.Store.Get("j1")
	assert.Equal(t, models.StatusCompleted, job.Status)
	assert.Empty(t, job.Error)
}
