package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/seifshamyy/aqar-scraper/config"
	"github.com/seifshamyy/aqar-scraper/utils"
)

// ChromeDriver owns one shared Chrome allocator; each session gets
// its own tab so concurrent jobs do not interfere.
type ChromeDriver struct {
	cfg         *config.Config
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

func NewChromeDriver(cfg *config.Config) *ChromeDriver {
	utils.Info("Launching Chrome allocator (headless=%v)", cfg.Headless)
	allocCtx, allocCancel := chromedp.NewExecAllocator(
		context.Background(),
		utils.StealthOpts(cfg.Headless)...,
	)
	return &ChromeDriver{
		cfg:         cfg,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}
}

func (d *ChromeDriver) Close() {
	utils.Info("Closing browser...")
	d.allocCancel()
}

// NewSession opens a fresh tab and forces the browser to start, so
// acquisition failures surface here instead of mid-scrape.
func (d *ChromeDriver) NewSession(ctx context.Context) (Session, error) {
	tabCtx, tabCancel := chromedp.NewContext(d.allocCtx)

	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	return &chromeSession{cfg: d.cfg, ctx: tabCtx, cancel: tabCancel}, nil
}

type chromeSession struct {
	cfg    *config.Config
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(s.ctx, s.cfg.NavigationTimeout)
	defer cancel()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		utils.HideWebDriver(),
	)
	if err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

func (s *chromeSession) WaitVisible(ctx context.Context, sel string, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	return chromedp.Run(waitCtx, chromedp.WaitVisible(sel, chromedp.ByQuery))
}

func (s *chromeSession) HTML(ctx context.Context) (string, error) {
	var html string
	err := chromedp.Run(s.ctx, chromedp.Evaluate(
		`document.documentElement.outerHTML`, &html,
	))
	if err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}
	return html, nil
}

// ClickNext looks for the pagination affordance by its glyph; the
// portal marks the next-page control with "»".
func (s *chromeSession) ClickNext(ctx context.Context) (bool, error) {
	var clicked bool
	err := chromedp.Run(s.ctx, chromedp.Evaluate(`(() => {
		const els = Array.from(document.querySelectorAll('a, button'));
		const next = els.find(el =>
			(el.textContent || '').includes('»') &&
			el.offsetParent !== null
		);
		if (!next) return false;
		next.click();
		return true;
	})()`, &clicked))
	if err != nil {
		return false, fmt.Errorf("failed to activate next-page control: %w", err)
	}
	return clicked, nil
}

func (s *chromeSession) Close() {
	s.cancel()
}
