package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/seifshamyy/aqar-scraper/models"
	"github.com/seifshamyy/aqar-scraper/utils"
)

// Options tunes the per-page waits. The zero value disables all
// delays, which is what tests want.
type Options struct {
	// ProbeSelector is waited on after each page load; a timeout is
	// tolerated since content may render under a different selector.
	ProbeSelector string
	ProbeTimeout  time.Duration

	// SettleDelay is a fixed pause after the probe to let dynamic
	// content finish rendering.
	SettleDelay time.Duration

	// PageDelayMin/Max bound the jittered pause after activating the
	// next-page control.
	PageDelayMin time.Duration
	PageDelayMax time.Duration
}

// ProgressFunc is invoked after each extracted page with the page
// number just finished and the total planned pages.
type ProgressFunc func(page, total int)

// Paginate walks up to maxPages result pages in one session,
// extracting listings from each. It stops early, without error, when
// no next-page control is found. The returned sequence is not
// deduplicated.
func Paginate(ctx context.Context, sess Session, startURL string, maxPages int, opts Options, onPage ProgressFunc) ([]models.Listing, error) {
	if maxPages < 1 {
		maxPages = 1
	}

	if err := sess.Navigate(ctx, startURL); err != nil {
		return nil, err
	}

	var all []models.Listing

	for page := 1; page <= maxPages; page++ {
		if opts.ProbeSelector != "" {
			if err := sess.WaitVisible(ctx, opts.ProbeSelector, opts.ProbeTimeout); err != nil {
				// Non-fatal: extract whatever content is present.
				utils.Warn("Page %d: probe %q not visible: %v", page, opts.ProbeSelector, err)
			}
		}

		if opts.SettleDelay > 0 {
			time.Sleep(opts.SettleDelay)
		}

		html, err := sess.HTML(ctx)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		listings, err := ExtractListings(startURL, html)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		all = append(all, listings...)

		if onPage != nil {
			onPage(page, maxPages)
		}

		if page < maxPages {
			moved, err := sess.ClickNext(ctx)
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", page, err)
			}
			if !moved {
				utils.Info("No next-page control after page %d; stopping early", page)
				break
			}
			if opts.PageDelayMax > 0 {
				utils.RandomDelay(opts.PageDelayMin, opts.PageDelayMax)
			}
		}
	}

	return all, nil
}
