package scraper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession serves a fixed sequence of pages; ClickNext advances
// until the sequence is exhausted.
type fakeSession struct {
	pages   []string
	idx     int
	navErr  error
	waitErr error
	htmlErr error
	clicks  int
	closed  bool
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error {
	s.idx = 0
	return s.navErr
}

func (s *fakeSession) WaitVisible(ctx context.Context, sel string, timeout time.Duration) error {
	return s.waitErr
}

func (s *fakeSession) HTML(ctx context.Context) (string, error) {
	if s.htmlErr != nil {
		return "", s.htmlErr
	}
	return s.pages[s.idx], nil
}

func (s *fakeSession) ClickNext(ctx context.Context) (bool, error) {
	s.clicks++
	if s.idx+1 >= len(s.pages) {
		return false, nil
	}
	s.idx++
	return true, nil
}

func (s *fakeSession) Close() { s.closed = true }

func listingPage(n, count int) string {
	page := "<html><body>"
	for i := 0; i < count; i++ {
		page += fmt.Sprintf(`<a href="/listing/%d-%d">شقة %d 300,000 150 م²</a>`, n, i, i)
	}
	return page + "</body></html>"
}

func TestPaginateAllPages(t *testing.T) {
	sess := &fakeSession{pages: []string{
		listingPage(1, 2),
		listingPage(2, 2),
		listingPage(3, 2),
	}}

	var progress [][2]int
	got, err := Paginate(context.Background(), sess, baseURL, 3, Options{}, func(page, total int) {
		progress = append(progress, [2]int{page, total})
	})
	require.NoError(t, err)

	assert.Len(t, got, 6)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, progress)
	// No click attempted after the final planned page.
	assert.Equal(t, 2, sess.clicks)
}

func TestPaginateStopsEarlyWithoutNextControl(t *testing.T) {
	sess := &fakeSession{pages: []string{
		listingPage(1, 1),
		listingPage(2, 1),
	}}

	var progress [][2]int
	got, err := Paginate(context.Background(), sess, baseURL, 5, Options{}, func(page, total int) {
		progress = append(progress, [2]int{page, total})
	})
	require.NoError(t, err)

	assert.Len(t, got, 2)
	// Total still reflects the requested maximum.
	assert.Equal(t, [][2]int{{1, 5}, {2, 5}}, progress)
}

func TestPaginateProbeTimeoutIsNonFatal(t *testing.T) {
	sess := &fakeSession{
		pages:   []string{listingPage(1, 3)},
		waitErr: context.DeadlineExceeded,
	}

	got, err := Paginate(context.Background(), sess, baseURL, 1, Options{
		ProbeSelector: "a[href]",
		ProbeTimeout:  time.Millisecond,
	}, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestPaginateNavigationFailure(t *testing.T) {
	sess := &fakeSession{navErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}

	_, err := Paginate(context.Background(), sess, baseURL, 1, Options{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ERR_NAME_NOT_RESOLVED")
}

func TestPaginateExtractionFailure(t *testing.T) {
	sess := &fakeSession{
		pages:   []string{listingPage(1, 1)},
		htmlErr: errors.New("target closed"),
	}

	_, err := Paginate(context.Background(), sess, baseURL, 2, Options{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 1")
}

func TestPaginateClampsMaxPages(t *testing.T) {
	sess := &fakeSession{pages: []string{listingPage(1, 1)}}

	got, err := Paginate(context.Background(), sess, baseURL, 0, Options{}, nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 0, sess.clicks)
}
