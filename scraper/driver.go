package scraper

import (
	"context"
	"time"
)

// Driver opens browser sessions. The concrete implementation is
// ChromeDriver; tests substitute a fake.
type Driver interface {
	NewSession(ctx context.Context) (Session, error)
}

// Session is one rendered-page view the paginator drives. Close must
// be safe to call on every exit path.
type Session interface {
	// Navigate loads url and waits for the initial document.
	Navigate(ctx context.Context, url string) error

	// WaitVisible blocks until an element matching sel is visible or
	// the timeout elapses. A timeout is returned as an error; callers
	// decide whether it is fatal.
	WaitVisible(ctx context.Context, sel string, timeout time.Duration) error

	// HTML returns the current document markup.
	HTML(ctx context.Context) (string, error)

	// ClickNext activates the next-page control if one is visible.
	// It returns false (and no error) when there is no such control.
	ClickNext(ctx context.Context) (bool, error)

	Close()
}
