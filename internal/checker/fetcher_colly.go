package checker

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// CollyFetcher fetches the product page over plain HTTP using Colly.
// It serves storefronts that render availability server-side; there is
// no screenshot capability on this path, so the evidence trail only
// exists in headless mode.
type CollyFetcher struct {
	baseCollector *colly.Collector
	logger        *zap.Logger
	clock         Clock
}

// NewCollyFetcher constructs a configured Colly-based Fetcher.
func NewCollyFetcher(cfg Config, clock Clock, logger *zap.Logger) (*CollyFetcher, error) {
	base := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          8,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.PageLoadTimeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(cfg.PageLoadTimeout)

	return &CollyFetcher{
		baseCollector: base,
		logger:        logger,
		clock:         clock,
	}, nil
}

// Close satisfies the Fetcher interface; Colly holds no long-lived
// resources beyond the HTTP transport.
func (f *CollyFetcher) Close(_ context.Context) error { return nil }

// Fetch retrieves the page and extracts its visible text. All
// transport and HTTP errors return as *FetchError.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string) (Snapshot, error) {
	start := f.clock.Now()

	collector := f.baseCollector.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		send(fetchResult{body: append([]byte{}, r.Body...)})
	})
	collector.OnError(func(_ *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown colly error")
		}
		send(fetchResult{err: err})
	})

	if err := collector.Visit(rawURL); err != nil {
		return Snapshot{}, &FetchError{URL: rawURL, Err: err}
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return Snapshot{}, &FetchError{URL: rawURL, Err: err}
		}
		if res.err != nil {
			return Snapshot{}, &FetchError{URL: rawURL, Err: res.err}
		}
		text, err := extractText(res.body)
		if err != nil {
			return Snapshot{}, &FetchError{URL: rawURL, Err: err}
		}
		return Snapshot{
			URL:       rawURL,
			HTML:      string(res.body),
			Text:      text,
			FetchedAt: start,
			Duration:  f.clock.Now().Sub(start),
		}, nil
	default:
		return Snapshot{}, &FetchError{URL: rawURL, Err: errors.New("fetch produced no result")}
	}
}

type fetchResult struct {
	body []byte
	err  error
}

func extractText(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	return doc.Find("body").Text(), nil
}
