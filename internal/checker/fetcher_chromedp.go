package checker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ChromedpFetcher renders the product page with headless Chrome via
// chromedp. The storefront builds its DOM client-side, so a plain HTTP
// fetch sees none of the availability copy; the renderer waits for the
// page to settle before extracting text.
type ChromedpFetcher struct {
	allocatorCancel context.CancelFunc
	browserCtx      context.Context
	browserCancel   context.CancelFunc
	logger          *zap.Logger
	clock           Clock
	marker          string
	timeout         time.Duration
	settle          time.Duration
	userAgent       string
}

// NewChromedpFetcher starts a warm browser and returns the fetcher.
func NewChromedpFetcher(cfg Config, clock Clock, logger *zap.Logger) (*ChromedpFetcher, error) {
	opts := chromedp.DefaultExecAllocatorOptions[:]
	opts = append(opts,
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(cfg.UserAgent),
	)
	allocatorCtx, allocatorCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocatorCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		allocatorCancel()
		browserCancel()
		return nil, fmt.Errorf("chromedp warmup: %w", err)
	}

	return &ChromedpFetcher{
		allocatorCancel: allocatorCancel,
		browserCtx:      browserCtx,
		browserCancel:   browserCancel,
		logger:          logger,
		clock:           clock,
		marker:          cfg.SoldOutMarker,
		timeout:         cfg.PageLoadTimeout,
		settle:          cfg.SettleDelay,
		userAgent:       cfg.UserAgent,
	}, nil
}

// Close tears down the chromedp allocator and browser contexts.
func (f *ChromedpFetcher) Close(ctx context.Context) error {
	if f == nil {
		return nil
	}
	f.browserCancel()
	f.allocatorCancel()
	select {
	case <-ctx.Done():
	default:
	}
	return nil
}

// Fetch navigates to rawURL, waits for the page to reach a stable
// state, and extracts the visible text plus the outer HTML. When the
// text does not contain the sold-out marker, a full screenshot is
// captured as the evidence trail for manual verification. Every
// renderer-level failure is returned as a *FetchError; nothing
// propagates uncaught.
func (f *ChromedpFetcher) Fetch(ctx context.Context, rawURL string) (Snapshot, error) {
	start := f.clock.Now()

	tabCtx, cancelTab := chromedp.NewContext(f.browserCtx)
	defer cancelTab()

	taskCtx, cancelTask := context.WithTimeout(tabCtx, f.timeout)
	defer cancelTask()

	stopForward := forwardCancel(ctx, cancelTask)
	defer stopForward()

	var text, html string
	tasks := chromedp.Tasks{
		network.Enable(),
		emulation.SetUserAgentOverride(f.userAgent),
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// The storefront keeps mutating the DOM after load; give the
		// dynamic content a moment before reading it.
		chromedp.Sleep(f.settle),
		chromedp.Text("body", &text, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	}
	if err := chromedp.Run(taskCtx, tasks); err != nil {
		return Snapshot{}, &FetchError{URL: rawURL, Err: err}
	}

	snap := Snapshot{
		URL:       rawURL,
		HTML:      html,
		Text:      text,
		FetchedAt: start,
		Duration:  f.clock.Now().Sub(start),
	}

	if !strings.Contains(text, f.marker) {
		var shot []byte
		if err := chromedp.Run(taskCtx, chromedp.FullScreenshot(&shot, 80)); err != nil {
			// The text snapshot is already in hand; losing the
			// screenshot degrades the evidence trail, not the verdict.
			f.logger.Warn("Screenshot capture failed", zap.String("url", rawURL), zap.Error(err))
		} else {
			snap.Screenshot = shot
		}
	}

	return snap, nil
}

// forwardCancel propagates cancellation from the caller's context into
// the chromedp task context.
func forwardCancel(parent context.Context, cancel context.CancelFunc) func() {
	if parent == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-parent.Done():
			cancel()
		case <-done:
		}
	}()
	return func() { close(done) }
}
